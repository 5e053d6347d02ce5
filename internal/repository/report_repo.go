package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// ReportRepository computes the reporting views and query templates from the
// current table state on every call. Nothing is cached or materialised.
type ReportRepository interface {
	ProjectSummary(ctx context.Context) ([]models.ProjectSummaryRow, error)
	TopProjects(ctx context.Context, limit int) ([]models.TopProjectRow, error)
	AboveAverageGrades(ctx context.Context) ([]models.Grade, error)
	TeamLeads(ctx context.Context) ([]models.TeamLeadRow, error)
	ProjectsPerDomain(ctx context.Context) ([]models.DomainCountRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ProjectSummary left-joins every project with its team and grade.
func (r *reportRepository) ProjectSummary(ctx context.Context) ([]models.ProjectSummaryRow, error) {
	rows := make([]models.ProjectSummaryRow, 0)
	err := r.db.WithContext(ctx).
		Table("projects AS p").
		Select(`p.id AS project_id, p.title, p.domain, p.technology, p.duration,
			t.name AS team_name, t.members AS member_count,
			g.grade AS grade, g.final_score AS final_score`).
		Joins("LEFT JOIN teams t ON t.id = p.team_id").
		Joins("LEFT JOIN grades g ON g.project_id = p.id").
		Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProjects returns graded projects by final score, highest first. Ties keep
// project id order. A non-positive limit returns every row.
func (r *reportRepository) TopProjects(ctx context.Context, limit int) ([]models.TopProjectRow, error) {
	rows := make([]models.TopProjectRow, 0)
	query := r.db.WithContext(ctx).
		Table("projects AS p").
		Select("p.id AS project_id, p.title, g.final_score AS final_score").
		Joins("JOIN grades g ON g.project_id = p.id").
		Order("g.final_score DESC").
		Order("p.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AboveAverageGrades returns grades strictly above the mean final score. The
// mean of an empty table is NULL, so the comparison matches nothing.
func (r *reportRepository) AboveAverageGrades(ctx context.Context) ([]models.Grade, error) {
	grades := make([]models.Grade, 0)
	average := r.db.Model(&models.Grade{}).Select("AVG(final_score)")
	err := r.db.WithContext(ctx).
		Where("final_score > (?)", average).
		Order("final_score DESC").
		Order("project_id ASC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

// TeamLeads inner-joins students with the teams they lead.
func (r *reportRepository) TeamLeads(ctx context.Context) ([]models.TeamLeadRow, error) {
	rows := make([]models.TeamLeadRow, 0)
	err := r.db.WithContext(ctx).
		Table("students AS s").
		Select("s.id AS student_id, s.first_name, t.name AS team_name").
		Joins("JOIN teams t ON t.student_id = s.id").
		Order("s.id ASC").
		Order("t.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectsPerDomain counts projects per distinct domain.
func (r *reportRepository) ProjectsPerDomain(ctx context.Context) ([]models.DomainCountRow, error) {
	rows := make([]models.DomainCountRow, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("domain, COUNT(*) AS total_projects").
		Group("domain").
		Order("domain ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
