package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// GradeHandler exposes grade endpoints keyed by project id.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register wires grade routes.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:project_id", h.get)
	router.Post("", h.create)
	router.Patch("/:project_id", h.update)
	router.Delete("/:project_id", h.delete)
}

func (h *GradeHandler) list(c *fiber.Ctx) error {
	grades, err := h.service.List(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list grades")
	}
	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) get(c *fiber.Ctx) error {
	projectID, err := parseKey(c, "project_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	grade, err := h.service.Get(c.UserContext(), projectID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch grade")
	}
	return utils.SendSuccess(c, "grade retrieved", grade)
}

func (h *GradeHandler) create(c *fiber.Ctx) error {
	var payload dto.GradeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	grade, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create grade")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade created", grade)
}

func (h *GradeHandler) update(c *fiber.Ctx) error {
	projectID, err := parseKey(c, "project_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	var payload dto.GradeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	grade, err := h.service.Update(c.UserContext(), projectID, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update grade")
	}
	return utils.SendSuccess(c, "grade updated", grade)
}

func (h *GradeHandler) delete(c *fiber.Ctx) error {
	projectID, err := parseKey(c, "project_id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	if err := h.service.Delete(c.UserContext(), projectID); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete grade")
	}
	return utils.SendSuccess(c, "grade deleted", nil)
}
