package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// TeamHandler exposes team endpoints.
type TeamHandler struct {
	service service.TeamService
	logger  zerolog.Logger
}

// NewTeamHandler constructs a team handler.
func NewTeamHandler(service service.TeamService, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		logger:  logger.With().Str("component", "team_handler").Logger(),
	}
}

// Register wires team routes.
func (h *TeamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *TeamHandler) list(c *fiber.Ctx) error {
	teams, err := h.service.List(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list teams")
	}
	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *TeamHandler) get(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	team, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch team")
	}
	return utils.SendSuccess(c, "team retrieved", team)
}

func (h *TeamHandler) create(c *fiber.Ctx) error {
	var payload dto.TeamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	team, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create team")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "team created", team)
}

func (h *TeamHandler) update(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	var payload dto.TeamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	team, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update team")
	}
	return utils.SendSuccess(c, "team updated", team)
}

func (h *TeamHandler) delete(c *fiber.Ctx) error {
	id, err := parseKey(c, "id")
	if err != nil {
		return sendBadRequest(c, err.Error())
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete team")
	}
	return utils.SendSuccess(c, "team deleted", nil)
}
