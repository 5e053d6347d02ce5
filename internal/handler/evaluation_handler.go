package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// EvaluationHandler exposes evaluation endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs a evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	evaluations, err := h.service.List(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list evaluations")
	}
	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}

func (h *EvaluationHandler) get(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	evaluation, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch evaluation")
	}
	return utils.SendSuccess(c, "evaluation retrieved", evaluation)
}

func (h *EvaluationHandler) create(c *fiber.Ctx) error {
	var payload dto.EvaluationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	evaluation, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create evaluation")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation created", evaluation)
}

func (h *EvaluationHandler) update(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	var payload dto.EvaluationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	evaluation, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update evaluation")
	}
	return utils.SendSuccess(c, "evaluation updated", evaluation)
}

func (h *EvaluationHandler) delete(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete evaluation")
	}
	return utils.SendSuccess(c, "evaluation deleted", nil)
}
