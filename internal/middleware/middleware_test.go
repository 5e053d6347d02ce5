package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projeval-api/internal/middleware"
	"github.com/noah-isme/projeval-api/internal/observability"
)

func TestCorrelationIDPropagates(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-42", resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
}

func TestDeadlineBoundsUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Use(middleware.Deadline(time.Minute))
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if _, ok := ctx.Deadline(); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if middleware.CorrelationIDFromContext(ctx) == "" {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRateLimitRejectsBurst(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RateLimit("accounts", 2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestObservabilityCountsAPIRoutes(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Observability(zerolog.Nop()))
	app.Get("/api/probe/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	counter := observability.HTTPRequests().WithLabelValues(http.MethodGet, "/api/probe/:id", "404")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/probe/9", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestContextWithCorrelation(t *testing.T) {
	ctx := middleware.ContextWithCorrelation(context.Background(), "  corr-7 ")
	require.Equal(t, "corr-7", middleware.CorrelationIDFromContext(ctx))

	blank := middleware.ContextWithCorrelation(context.Background(), "   ")
	require.Empty(t, middleware.CorrelationIDFromContext(blank))

	require.Equal(t, "corr-8", middleware.CorrelationIDFromContext(middleware.ContextWithCorrelation(nil, "corr-8")))
}
