package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/projeval-api/internal/config"
	"github.com/noah-isme/projeval-api/internal/handler"
	"github.com/noah-isme/projeval-api/internal/middleware"
	"github.com/noah-isme/projeval-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler    *handler.StudentHandler
	TeamHandler       *handler.TeamHandler
	ProjectHandler    *handler.ProjectHandler
	EvaluationHandler *handler.EvaluationHandler
	MarksHandler      *handler.MarksHandler
	GradeHandler      *handler.GradeHandler
	ReportHandler     *handler.ReportHandler
	OperationHandler  *handler.OperationHandler
	ActivityHandler   *handler.ActivityHandler
	AccountHandler    *handler.AccountHandler
	StorePing         handler.Pinger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.StorePing))

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}
	if deps.TeamHandler != nil {
		deps.TeamHandler.Register(api.Group("/teams"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(api.Group("/projects"))
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(api.Group("/evaluations"))
	}
	if deps.MarksHandler != nil {
		deps.MarksHandler.Register(api.Group("/marks"))
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(api.Group("/grades"))
	}

	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(api.Group("/reports"))
	}
	if deps.OperationHandler != nil {
		deps.OperationHandler.Register(api.Group("/operations"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activity"))
	}

	// Account administration
	if deps.AccountHandler != nil {
		accounts := api.Group("/admin/accounts", middleware.RateLimit("accounts", cfg.AccountsRateLimit, time.Minute))
		deps.AccountHandler.Register(accounts)
	}
}
