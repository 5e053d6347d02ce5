package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// AccountHandler exposes store login administration.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler constructs an account handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("component", "account_handler").Logger(),
	}
}

// Register wires account routes.
func (h *AccountHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/:name/grants", h.grant)
	router.Delete("/:name", h.drop)
}

func (h *AccountHandler) list(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list accounts")
	}
	return utils.SendSuccess(c, "accounts retrieved", accounts)
}

func (h *AccountHandler) create(c *fiber.Ctx) error {
	var payload dto.AccountCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	account, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create account")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", account)
}

func (h *AccountHandler) grant(c *fiber.Ctx) error {
	var payload dto.AccountGrantRequest
	if err := c.BodyParser(&payload); err != nil {
		return sendBadRequest(c, "invalid request body")
	}
	account, err := h.service.Grant(c.UserContext(), c.Params("name"), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to grant privileges")
	}
	return utils.SendSuccess(c, "privileges granted", account)
}

func (h *AccountHandler) drop(c *fiber.Ctx) error {
	if err := h.service.Drop(c.UserContext(), c.Params("name")); err != nil {
		return sendServiceError(c, h.logger, err, "failed to drop account")
	}
	return utils.SendSuccess(c, "account dropped", nil)
}
