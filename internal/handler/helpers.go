package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/middleware"
	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// parseKey reads a positive integer route parameter.
func parseKey(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(parsed), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// statusFor maps a failure kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusServiceUnavailable
	}
}

// sendServiceError renders a classified service failure. Store outages are
// logged and reported without their cause.
func sendServiceError(c *fiber.Ctx, base zerolog.Logger, err error, action string) error {
	status := statusFor(err)
	logger := requestLogger(base, c)

	if status == fiber.StatusServiceUnavailable {
		logger.Error().Err(err).Msg(action)
		c.Set(fiber.HeaderRetryAfter, "1")
		return utils.SendError(c, status, service.ErrStoreUnavailable.Error())
	}

	logger.Debug().Err(err).Int("status", status).Msg(action)
	return utils.SendError(c, status, err.Error())
}

func sendBadRequest(c *fiber.Ctx, message string) error {
	return utils.SendError(c, fiber.StatusBadRequest, message)
}
