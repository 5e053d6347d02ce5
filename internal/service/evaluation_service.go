package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/repository"
)

// EvaluationService exposes the evaluation sessions.
type EvaluationService interface {
	List(ctx context.Context) ([]models.Evaluation, error)
	Get(ctx context.Context, id uint) (models.Evaluation, error)
	Create(ctx context.Context, req dto.EvaluationCreateRequest) (models.Evaluation, error)
	Update(ctx context.Context, id uint, req dto.EvaluationUpdateRequest) (models.Evaluation, error)
	Delete(ctx context.Context, id uint) error
}

type evaluationService struct {
	repo      repository.EvaluationRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	observer  entityObserver
}

// NewEvaluationService constructs the evaluation service. Comments are stored
// as plain text with any markup stripped.
func NewEvaluationService(repo repository.EvaluationRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:      repo,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		observer:  newEntityObserver(models.EntityEvaluation, hooks, logger.With().Str("component", "evaluation_service").Logger()),
	}
}

func (s *evaluationService) List(ctx context.Context) ([]models.Evaluation, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	evaluations, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return evaluations, nil
}

func (s *evaluationService) Get(ctx context.Context, id uint) (models.Evaluation, error) {
	ctx, span := s.observer.start(ctx, opGet, id)
	defer span.End()

	if id == 0 {
		return models.Evaluation{}, s.observer.fail(span, opGet, 0, invalidInput("evaluation id is required"))
	}
	evaluation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Evaluation{}, s.observer.fail(span, opGet, id, err)
	}
	s.observer.succeeded(opGet)
	return evaluation, nil
}

func (s *evaluationService) Create(ctx context.Context, req dto.EvaluationCreateRequest) (models.Evaluation, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.ID)
	defer span.End()

	req.EvalDate = strings.TrimSpace(req.EvalDate)
	if err := s.validator.Struct(req); err != nil {
		return models.Evaluation{}, s.observer.fail(span, opCreate, 0, err)
	}

	evaluation := models.Evaluation{
		ID:         req.ID,
		TotalMarks: req.TotalMarks,
		Rounds:     req.Rounds,
		Comments:   s.cleanComments(req.Comments),
	}
	if req.EvalDate != "" {
		date, err := parseEvalDate(req.EvalDate)
		if err != nil {
			return models.Evaluation{}, s.observer.fail(span, opCreate, 0, err)
		}
		evaluation.EvalDate = date
	}

	if err := s.repo.Create(ctx, &evaluation); err != nil {
		return models.Evaluation{}, s.observer.fail(span, opCreate, req.ID, err)
	}

	s.observer.committed(ctx, opCreate, evaluation.ID, map[string]interface{}{"rounds": evaluation.Rounds})
	return evaluation, nil
}

func (s *evaluationService) Update(ctx context.Context, id uint, req dto.EvaluationUpdateRequest) (models.Evaluation, error) {
	ctx, span := s.observer.start(ctx, opUpdate, id)
	defer span.End()

	if id == 0 {
		return models.Evaluation{}, s.observer.fail(span, opUpdate, 0, invalidInput("evaluation id is required"))
	}
	if err := s.validator.Struct(req); err != nil {
		return models.Evaluation{}, s.observer.fail(span, opUpdate, 0, err)
	}

	updates := map[string]interface{}{}
	if req.TotalMarks != nil {
		updates["total_marks"] = *req.TotalMarks
	}
	if req.Rounds != nil {
		updates["rounds"] = *req.Rounds
	}
	if req.EvalDate != nil {
		date, err := parseEvalDate(strings.TrimSpace(*req.EvalDate))
		if err != nil {
			return models.Evaluation{}, s.observer.fail(span, opUpdate, 0, err)
		}
		updates["eval_date"] = date
	}
	if req.Comments != nil {
		updates["comments"] = s.cleanComments(*req.Comments)
	}
	if len(updates) == 0 {
		return models.Evaluation{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}

	evaluation, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return models.Evaluation{}, s.observer.fail(span, opUpdate, id, err)
	}

	s.observer.committed(ctx, opUpdate, id, map[string]interface{}{"fields": fieldNames(updates)})
	return evaluation, nil
}

func (s *evaluationService) Delete(ctx context.Context, id uint) error {
	ctx, span := s.observer.start(ctx, opDelete, id)
	defer span.End()

	if id == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("evaluation id is required"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.observer.fail(span, opDelete, id, err)
	}

	s.observer.committed(ctx, opDelete, id, nil)
	return nil
}

func (s *evaluationService) cleanComments(comments string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(comments)))
}

func parseEvalDate(value string) (datatypes.Date, error) {
	parsed, err := time.ParseInLocation(dto.EvaluationDateLayout, value, time.UTC)
	if err != nil {
		return datatypes.Date{}, invalidInput("eval_date must use %s: %v", dto.EvaluationDateLayout, err)
	}
	return datatypes.Date(parsed), nil
}
