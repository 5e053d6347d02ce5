package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/service"
	"github.com/noah-isme/projeval-api/internal/utils"
)

const (
	defaultTopProjectsLimit = 10
	xlsxContentType         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler exposes the reporting views and query templates by name.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("", h.names)
	router.Get("/:name", h.run)
	router.Get("/:name/export", h.export)
}

func (h *ReportHandler) names(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "reports available", h.service.Names())
}

func (h *ReportHandler) run(c *fiber.Ctx) error {
	limit, err := reportLimit(c)
	if err != nil {
		return sendBadRequest(c, "invalid limit")
	}
	table, err := h.service.Run(c.UserContext(), c.Params("name"), limit)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to run report")
	}
	return utils.SendSuccess(c, "report generated", table)
}

func (h *ReportHandler) export(c *fiber.Ctx) error {
	limit, err := reportLimit(c)
	if err != nil {
		return sendBadRequest(c, "invalid limit")
	}
	name := strings.ToLower(strings.TrimSpace(c.Params("name")))
	payload, err := h.service.Export(c.UserContext(), name, limit)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to export report")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	return c.Status(fiber.StatusOK).Send(payload)
}

// reportLimit reads ?limit=. When absent top_projects defaults to the first ten
// rows; zero or a negative value returns every row.
func reportLimit(c *fiber.Ctx) (int, error) {
	if strings.TrimSpace(c.Query("limit")) == "" {
		if strings.EqualFold(strings.TrimSpace(c.Params("name")), service.ReportTopProjects) {
			return defaultTopProjectsLimit, nil
		}
		return 0, nil
	}
	return parseQueryInt(c, "limit")
}
