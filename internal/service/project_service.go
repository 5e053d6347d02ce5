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

// ProjectService exposes the project records.
type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uint) (models.Project, error)
	Create(ctx context.Context, req dto.ProjectCreateRequest) (models.Project, error)
	Update(ctx context.Context, id uint, req dto.ProjectUpdateRequest) (models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectService struct {
	repo      repository.ProjectRepository
	validator *validator.Validate
	observer  entityObserver
}

// NewProjectService constructs the project service.
func NewProjectService(repo repository.ProjectRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(models.EntityProject, hooks, logger.With().Str("component", "project_service").Logger()),
	}
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (models.Project, error) {
	ctx, span := s.observer.start(ctx, opGet, id)
	defer span.End()

	if id == 0 {
		return models.Project{}, s.observer.fail(span, opGet, 0, invalidInput("project id is required"))
	}
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, s.observer.fail(span, opGet, id, err)
	}
	s.observer.succeeded(opGet)
	return project, nil
}

func (s *projectService) Create(ctx context.Context, req dto.ProjectCreateRequest) (models.Project, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.ID)
	defer span.End()

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return models.Project{}, s.observer.fail(span, opCreate, 0, err)
	}

	project := models.Project{
		ID:         req.ID,
		Title:      req.Title,
		Domain:     strings.TrimSpace(req.Domain),
		Technology: strings.TrimSpace(req.Technology),
		Duration:   strings.TrimSpace(req.Duration),
		TeamID:     req.TeamID,
	}
	if err := s.repo.Create(ctx, &project); err != nil {
		return models.Project{}, s.observer.fail(span, opCreate, req.ID, err)
	}

	s.observer.committed(ctx, opCreate, project.ID, map[string]interface{}{
		"team_id": project.TeamID,
		"domain":  project.Domain,
	})
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, req dto.ProjectUpdateRequest) (models.Project, error) {
	ctx, span := s.observer.start(ctx, opUpdate, id)
	defer span.End()

	if id == 0 {
		return models.Project{}, s.observer.fail(span, opUpdate, 0, invalidInput("project id is required"))
	}
	trimFields(req.Title, req.Domain, req.Technology, req.Duration)
	if err := s.validator.Struct(req); err != nil {
		return models.Project{}, s.observer.fail(span, opUpdate, 0, err)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return models.Project{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}

	project, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return models.Project{}, s.observer.fail(span, opUpdate, id, err)
	}

	s.observer.committed(ctx, opUpdate, id, map[string]interface{}{"fields": fieldNames(updates)})
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	ctx, span := s.observer.start(ctx, opDelete, id)
	defer span.End()

	if id == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("project id is required"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.observer.fail(span, opDelete, id, err)
	}

	s.observer.committed(ctx, opDelete, id, nil)
	return nil
}
