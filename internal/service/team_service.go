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

// TeamService exposes the team records.
type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	Get(ctx context.Context, id uint) (models.Team, error)
	Create(ctx context.Context, req dto.TeamCreateRequest) (models.Team, error)
	Update(ctx context.Context, id uint, req dto.TeamUpdateRequest) (models.Team, error)
	Delete(ctx context.Context, id uint) error
}

type teamService struct {
	repo      repository.TeamRepository
	validator *validator.Validate
	observer  entityObserver
}

// NewTeamService constructs the team service.
func NewTeamService(repo repository.TeamRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) TeamService {
	return &teamService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(models.EntityTeam, hooks, logger.With().Str("component", "team_service").Logger()),
	}
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return teams, nil
}

func (s *teamService) Get(ctx context.Context, id uint) (models.Team, error) {
	ctx, span := s.observer.start(ctx, opGet, id)
	defer span.End()

	if id == 0 {
		return models.Team{}, s.observer.fail(span, opGet, 0, invalidInput("team id is required"))
	}
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Team{}, s.observer.fail(span, opGet, id, err)
	}
	s.observer.succeeded(opGet)
	return team, nil
}

func (s *teamService) Create(ctx context.Context, req dto.TeamCreateRequest) (models.Team, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.ID)
	defer span.End()

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return models.Team{}, s.observer.fail(span, opCreate, 0, err)
	}

	team := models.Team{
		ID:        req.ID,
		Name:      req.Name,
		Members:   req.Members,
		StudentID: req.StudentID,
	}
	if err := s.repo.Create(ctx, &team); err != nil {
		return models.Team{}, s.observer.fail(span, opCreate, req.ID, err)
	}

	s.observer.committed(ctx, opCreate, team.ID, map[string]interface{}{"student_id": team.StudentID})
	return team, nil
}

func (s *teamService) Update(ctx context.Context, id uint, req dto.TeamUpdateRequest) (models.Team, error) {
	ctx, span := s.observer.start(ctx, opUpdate, id)
	defer span.End()

	if id == 0 {
		return models.Team{}, s.observer.fail(span, opUpdate, 0, invalidInput("team id is required"))
	}
	trimFields(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return models.Team{}, s.observer.fail(span, opUpdate, 0, err)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return models.Team{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}

	team, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return models.Team{}, s.observer.fail(span, opUpdate, id, err)
	}

	s.observer.committed(ctx, opUpdate, id, map[string]interface{}{"fields": fieldNames(updates)})
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id uint) error {
	ctx, span := s.observer.start(ctx, opDelete, id)
	defer span.End()

	if id == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("team id is required"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.observer.fail(span, opDelete, id, err)
	}

	s.observer.committed(ctx, opDelete, id, nil)
	return nil
}
