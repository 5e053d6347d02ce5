package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// ActivityHandler exposes the mutation audit trail.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return sendBadRequest(c, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return sendBadRequest(c, "invalid page size")
	}
	if pageSize == 0 {
		if limit, limitErr := parseQueryInt(c, "limit"); limitErr == nil {
			pageSize = limit
		}
	}

	result, err := h.service.List(c.UserContext(), dto.ActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	})
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list activity")
	}
	return utils.SendSuccess(c, "activity retrieved", result)
}
