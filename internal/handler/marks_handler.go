package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// MarksHandler exposes marks endpoints keyed by evaluation id, together with
// the percentage recompute and spreadsheet import operations.
type MarksHandler struct {
	service service.MarksService
	logger  zerolog.Logger
}

// NewMarksHandler constructs a marks handler.
func NewMarksHandler(service service.MarksService, logger zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		service: service,
		logger:  logger.With().Str("component", "marks_handler").Logger(),
	}
}

// Register wires marks routes.
func (h *MarksHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/recompute", h.recomputeAll)
	router.Post("/import", h.importSheet)
	router.Get("/:evaluation_id", h.get)
	router.Patch("/:evaluation_id", h.update)
	router.Delete("/:evaluation_id", h.delete)
	router.Post("/:evaluation_id/recompute", h.recompute)
}

func (h *MarksHandler) list(c *fiber.Ctx) error {
	marks, err := h.service.List(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list marks")
	}
	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) get(c *fiber.Ctx) error {
	evaluationID, err := parseKey(c, "evaluation_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	marks, err := h.service.Get(c.UserContext(), evaluationID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch marks")
	}
	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) create(c *fiber.Ctx) error {
	var payload dto.MarksCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	marks, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create marks")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "marks created", marks)
}

func (h *MarksHandler) update(c *fiber.Ctx) error {
	evaluationID, err := parseKey(c, "evaluation_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	var payload dto.MarksUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	marks, err := h.service.Update(c.UserContext(), evaluationID, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update marks")
	}
	return utils.SendSuccess(c, "marks updated", marks)
}

func (h *MarksHandler) delete(c *fiber.Ctx) error {
	evaluationID, err := parseKey(c, "evaluation_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	if err := h.service.Delete(c.UserContext(), evaluationID); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete marks")
	}
	return utils.SendSuccess(c, "marks deleted", nil)
}

func (h *MarksHandler) recompute(c *fiber.Ctx) error {
	evaluationID, err := parseKey(c, "evaluation_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	marks, err := h.service.Recompute(c.UserContext(), evaluationID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to recompute percentage")
	}
	return utils.SendSuccess(c, "percentage recomputed", marks)
}

func (h *MarksHandler) recomputeAll(c *fiber.Ctx) error {
	processed, err := h.service.RecomputeAll(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to recompute percentages")
	}
	return utils.SendSuccess(c, "percentages recomputed", dto.RecomputeAllResult{Processed: processed})
}

func (h *MarksHandler) importSheet(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return sendBadRequest(c, "file is required")
	}
	handle, err := file.Open()
	if err != nil {
		return sendBadRequest(c, "unable to read file")
	}
	defer handle.Close()

	result, err := h.service.Import(c.UserContext(), handle)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to import marks")
	}
	return utils.SendSuccess(c, "marks imported", result)
}
