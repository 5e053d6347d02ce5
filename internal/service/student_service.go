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

// StudentService exposes the student records.
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id uint) (models.Student, error)
	Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	observer  entityObserver
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validator *validator.Validate, hooks ChangeHooks, logger zerolog.Logger) StudentService {
	logger = logger.With().Str("component", "student_service").Logger()
	return &studentService{
		repo:      repo,
		validator: validator,
		observer:  newEntityObserver(models.EntityStudent, hooks, logger),
		logger:    logger,
	}
}

func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	ctx, span := s.observer.start(ctx, opList, 0)
	defer span.End()

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.observer.fail(span, opList, 0, err)
	}
	s.observer.succeeded(opList)
	return students, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (models.Student, error) {
	ctx, span := s.observer.start(ctx, opGet, id)
	defer span.End()

	if id == 0 {
		return models.Student{}, s.observer.fail(span, opGet, 0, invalidInput("student id is required"))
	}
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Student{}, s.observer.fail(span, opGet, id, err)
	}
	s.observer.succeeded(opGet)
	return student, nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error) {
	ctx, span := s.observer.start(ctx, opCreate, req.ID)
	defer span.End()

	req.Department = strings.TrimSpace(req.Department)
	req.FirstName = strings.TrimSpace(req.FirstName)
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, s.observer.fail(span, opCreate, 0, err)
	}

	student := models.Student{
		ID:         req.ID,
		Department: req.Department,
		Year:       req.Year,
		FirstName:  req.FirstName,
		LastName:   strings.TrimSpace(req.LastName),
		Age:        req.Age,
		Phone:      strings.TrimSpace(req.Phone),
	}
	if err := s.repo.Create(ctx, &student); err != nil {
		return models.Student{}, s.observer.fail(span, opCreate, req.ID, err)
	}

	s.observer.committed(ctx, opCreate, student.ID, map[string]interface{}{
		"department": student.Department,
	})
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (models.Student, error) {
	ctx, span := s.observer.start(ctx, opUpdate, id)
	defer span.End()

	if id == 0 {
		return models.Student{}, s.observer.fail(span, opUpdate, 0, invalidInput("student id is required"))
	}
	trimFields(req.Department, req.FirstName, req.LastName, req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, s.observer.fail(span, opUpdate, 0, err)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return models.Student{}, s.observer.fail(span, opUpdate, 0, invalidInput("no fields to update"))
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return models.Student{}, s.observer.fail(span, opUpdate, id, err)
	}

	s.observer.committed(ctx, opUpdate, id, map[string]interface{}{"fields": fieldNames(updates)})
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	ctx, span := s.observer.start(ctx, opDelete, id)
	defer span.End()

	if id == 0 {
		return s.observer.fail(span, opDelete, 0, invalidInput("student id is required"))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.observer.fail(span, opDelete, id, err)
	}

	s.observer.committed(ctx, opDelete, id, nil)
	return nil
}
