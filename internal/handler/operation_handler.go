package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// OperationHandler invokes named store operations.
type OperationHandler struct {
	service service.OperationService
	logger  zerolog.Logger
}

// NewOperationHandler constructs an operation handler.
func NewOperationHandler(service service.OperationService, logger zerolog.Logger) *OperationHandler {
	return &OperationHandler{
		service: service,
		logger:  logger.With().Str("component", "operation_handler").Logger(),
	}
}

// Register wires operation routes.
func (h *OperationHandler) Register(router fiber.Router) {
	router.Get("", h.names)
	router.Post("/:name", h.execute)
}

func (h *OperationHandler) names(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "operations available", h.service.Names())
}

func (h *OperationHandler) execute(c *fiber.Ctx) error {
	args := map[string]interface{}{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&args); err != nil {
			return sendBadRequest(c, "invalid request body")
		}
	}

	result, err := h.service.Execute(c.UserContext(), c.Params("name"), args)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to execute operation")
	}
	return utils.SendSuccess(c, "operation executed", result)
}
