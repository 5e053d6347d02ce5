package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/repository"
)

// GradeService exposes the manual project grades. Grades are keyed by project.
type GradeService interface {
	List(ctx context.Context) ([]models.Grade, error)
	Get(ctx context.Context, projectID uint) (models.Grade, error)
	Create(ctx context.Context, req dto.GradeCreateRequest) (models.Grade, error)
	Update(ctx context.Context, projectID uint, req dto.GradeUpdateRequest) (models.Grade, error)
	Delete(ctx context.Context, projectID uint) error
}

type gradeService struct {
	repo      repository.GradeRepository
	validator *validator.Validate
	observer  entityObserver
}

// NewGradeService constructs the grade service.
func NewGradeService(repo repository.GradeRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) GradeService {
	return &gradeService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(models.EntityGrade, hooks, logger.With().Str("component", "grade_service").Logger()),
	}
}

func (s *gradeService) List(ctx context.Context) ([]models.Grade, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return grades, nil
}

func (s *gradeService) Get(ctx context.Context, projectID uint) (models.Grade, error) {
	ctx, span := s.observer.start(ctx, opGet, projectID)
	defer span.End()

	if projectID == 0 {
		return models.Grade{}, s.observer.fail(span, opGet, 0, invalidInput("project id is required"))
	}
	grade, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		return models.Grade{}, s.observer.fail(span, opGet, projectID, err)
	}
	s.observer.succeeded(opGet)
	return grade, nil
}

func (s *gradeService) Create(ctx context.Context, req dto.GradeCreateRequest) (models.Grade, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.ProjectID)
	defer span.End()

	req.Grade = strings.TrimSpace(req.Grade)
	if err := s.validator.Struct(req); err != nil {
		return models.Grade{}, s.observer.fail(span, opCreate, 0, err)
	}

	grade := models.Grade{
		ProjectID:  req.ProjectID,
		Letter:     req.Grade,
		FinalScore: *req.FinalScore,
	}
	if err := s.repo.Create(ctx, &grade); err != nil {
		return models.Grade{}, s.observer.fail(span, opCreate, req.ProjectID, err)
	}

	s.observer.committed(ctx, opCreate, grade.ProjectID, map[string]interface{}{
		"grade":       grade.Letter,
		"final_score": grade.FinalScore,
	})
	return grade, nil
}

func (s *gradeService) Update(ctx context.Context, projectID uint, req dto.GradeUpdateRequest) (models.Grade, error) {
	ctx, span := s.observer.start(ctx, opUpdate, projectID)
	defer span.End()

	if projectID == 0 {
		return models.Grade{}, s.observer.fail(span, opUpdate, 0, invalidInput("project id is required"))
	}
	trimFields(req.Grade)
	if err := s.validator.Struct(req); err != nil {
		return models.Grade{}, s.observer.fail(span, opUpdate, 0, err)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return models.Grade{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}

	grade, err := s.repo.Update(ctx, projectID, updates)
	if err != nil {
		return models.Grade{}, s.observer.fail(span, opUpdate, projectID, err)
	}

	s.observer.committed(ctx, opUpdate, projectID, map[string]interface{}{"fields": fieldNames(updates)})
	return grade, nil
}

func (s *gradeService) Delete(ctx context.Context, projectID uint) error {
	ctx, span := s.observer.start(ctx, opDelete, projectID)
	defer span.End()

	if projectID == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("project id is required"))
	}
	if err := s.repo.Delete(ctx, projectID); err != nil {
		return s.observer.fail(span, opDelete, projectID, err)
	}

	s.observer.committed(ctx, opDelete, projectID, nil)
	return nil
}
