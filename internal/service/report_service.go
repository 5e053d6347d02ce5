package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/repository"
)

// Report names accepted by Run and Export.
const (
	ReportProjectSummary     = "project_summary"
	ReportTopProjects        = "top_projects"
	ReportAboveAverageGrades = "above_average_grades"
	ReportTeamLeads          = "team_leads"
	ReportProjectsPerDomain  = "projects_per_domain"
)

// ReportService runs the reporting views and query templates. Every call
// reads the current committed state.
type ReportService interface {
	ProjectSummary(ctx context.Context) ([]models.ProjectSummaryRow, error)
	TopProjects(ctx context.Context, limit int) ([]models.TopProjectRow, error)
	AboveAverageGrades(ctx context.Context) ([]models.Grade, error)
	TeamLeads(ctx context.Context) ([]models.TeamLeadRow, error)
	ProjectsPerDomain(ctx context.Context) ([]models.DomainCountRow, error)
	Names() []string
	Run(ctx context.Context, name string, limit int) (dto.ReportTable, error)
	Export(ctx context.Context, name string, limit int) ([]byte, error)
}

type reportRunner func(ctx context.Context, limit int) (dto.ReportTable, error)

type reportService struct {
	repo    repository.ReportRepository
	runners map[string]reportRunner
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo repository.ReportRepository, logger zerolog.Logger) ReportService {
	s := &reportService{
		repo:   repo,
		tracer: otel.Tracer(tracerName),
		logger: logger.With().Str("component", "report_service").Logger(),
	}
	s.runners = map[string]reportRunner{
		ReportProjectSummary:     s.projectSummaryTable,
		ReportTopProjects:        s.topProjectsTable,
		ReportAboveAverageGrades: s.aboveAverageTable,
		ReportTeamLeads:          s.teamLeadsTable,
		ReportProjectsPerDomain:  s.projectsPerDomainTable,
	}
	return s
}

func (s *reportService) ProjectSummary(ctx context.Context) ([]models.ProjectSummaryRow, error) {
	rows, err := s.repo.ProjectSummary(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (s *reportService) TopProjects(ctx context.Context, limit int) ([]models.TopProjectRow, error) {
	rows, err := s.repo.TopProjects(ctx, limit)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (s *reportService) AboveAverageGrades(ctx context.Context) ([]models.Grade, error) {
	rows, err := s.repo.AboveAverageGrades(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (s *reportService) TeamLeads(ctx context.Context) ([]models.TeamLeadRow, error) {
	rows, err := s.repo.TeamLeads(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (s *reportService) ProjectsPerDomain(ctx context.Context) ([]models.DomainCountRow, error) {
	rows, err := s.repo.ProjectsPerDomain(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// Names lists the accepted report names in sorted order.
func (s *reportService) Names() []string {
	names := make([]string, 0, len(s.runners))
	for name := range s.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run evaluates the named report. The limit only applies to top_projects.
func (s *reportService) Run(ctx context.Context, name string, limit int) (dto.ReportTable, error) {
	ctx, span := s.tracer.Start(ctx, "report.run")
	defer span.End()

	name = strings.ToLower(strings.TrimSpace(name))
	span.SetAttributes(attribute.String("report.name", name), attribute.Int("report.limit", limit))

	runner, ok := s.runners[name]
	if !ok {
		err := invalidInput("unknown report %q, expected one of %s", name, strings.Join(s.Names(), ", "))
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err))
		return dto.ReportTable{}, err
	}

	table, err := runner(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err))
		return dto.ReportTable{}, err
	}
	span.SetAttributes(attribute.Int("report.rows", len(table.Rows)))
	return table, nil
}

// Export renders the named report as an XLSX workbook with one sheet.
func (s *reportService) Export(ctx context.Context, name string, limit int) ([]byte, error) {
	table, err := s.Run(ctx, name, limit)
	if err != nil {
		return nil, err
	}

	workbook := excelize.NewFile()
	defer func() {
		if err := workbook.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	sheet := workbook.GetSheetName(0)
	if err := workbook.SetSheetName(sheet, table.Name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sheet = table.Name

	header := make([]interface{}, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column
	}
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := workbook.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) projectSummaryTable(ctx context.Context, _ int) (dto.ReportTable, error) {
	rows, err := s.ProjectSummary(ctx)
	if err != nil {
		return dto.ReportTable{}, err
	}
	table := newReportTable(ReportProjectSummary,
		"project_id", "title", "domain", "technology", "duration", "team_name", "member_count", "grade", "final_score")
	for _, row := range rows {
		table.Rows = append(table.Rows, []interface{}{
			row.ProjectID, row.Title, row.Domain, row.Technology, row.Duration,
			deref(row.TeamName), deref(row.MemberCount), deref(row.Grade), deref(row.FinalScore),
		})
	}
	return table, nil
}

func (s *reportService) topProjectsTable(ctx context.Context, limit int) (dto.ReportTable, error) {
	rows, err := s.TopProjects(ctx, limit)
	if err != nil {
		return dto.ReportTable{}, err
	}
	table := newReportTable(ReportTopProjects, "project_id", "title", "final_score")
	for _, row := range rows {
		table.Rows = append(table.Rows, []interface{}{row.ProjectID, row.Title, row.FinalScore})
	}
	return table, nil
}

func (s *reportService) aboveAverageTable(ctx context.Context, _ int) (dto.ReportTable, error) {
	rows, err := s.AboveAverageGrades(ctx)
	if err != nil {
		return dto.ReportTable{}, err
	}
	table := newReportTable(ReportAboveAverageGrades, "project_id", "grade", "final_score")
	for _, row := range rows {
		table.Rows = append(table.Rows, []interface{}{row.ProjectID, row.Letter, row.FinalScore})
	}
	return table, nil
}

func (s *reportService) teamLeadsTable(ctx context.Context, _ int) (dto.ReportTable, error) {
	rows, err := s.TeamLeads(ctx)
	if err != nil {
		return dto.ReportTable{}, err
	}
	table := newReportTable(ReportTeamLeads, "student_id", "first_name", "team_name")
	for _, row := range rows {
		table.Rows = append(table.Rows, []interface{}{row.StudentID, row.FirstName, row.TeamName})
	}
	return table, nil
}

func (s *reportService) projectsPerDomainTable(ctx context.Context, _ int) (dto.ReportTable, error) {
	rows, err := s.ProjectsPerDomain(ctx)
	if err != nil {
		return dto.ReportTable{}, err
	}
	table := newReportTable(ReportProjectsPerDomain, "domain", "total_projects")
	for _, row := range rows {
		table.Rows = append(table.Rows, []interface{}{row.Domain, row.TotalProjects})
	}
	return table, nil
}

func newReportTable(name string, columns ...string) dto.ReportTable {
	return dto.ReportTable{Name: name, Columns: columns, Rows: make([][]interface{}, 0)}
}

func deref[T any](value *T) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
