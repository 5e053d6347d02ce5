package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// EvaluationRepository provides access to evaluation records.
type EvaluationRepository interface {
	List(ctx context.Context) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Evaluation, error)
	Delete(ctx context.Context, id uint) error
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs an evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) List(ctx context.Context) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAbsent(tx, &models.Evaluation{}, "id", evaluation.ID); err != nil {
			return err
		}
		return tx.Create(evaluation).Error
	})
}

func (r *evaluationRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateByKey(tx, &models.Evaluation{}, "id", id, updates); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&evaluation).Error
	})
	if err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNoDependents(tx, &models.Marks{}, "marks", "evaluation_id", id); err != nil {
			return err
		}
		return deleteByKey(tx, &models.Evaluation{}, "id", id)
	})
}
