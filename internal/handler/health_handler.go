package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/projeval-api/internal/config"
	"github.com/noah-isme/projeval-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Store       string    `json:"store"`
}

// Pinger checks that a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthCheck returns a handler that reports application and store health.
func HealthCheck(cfg config.Config, ping Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Store:       "up",
		}

		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				payload.Status = "degraded"
				payload.Store = "down"
				return utils.SendSuccessWithStatus(c, fiber.StatusServiceUnavailable, "store unreachable", payload)
			}
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
