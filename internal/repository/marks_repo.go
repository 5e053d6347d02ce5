package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// marksColumns are rewritten on every marks write so that the derived
// percentage always lands together with its operands.
var marksColumns = []string{"marks_obtained", "max_marks", "percentage", "updated_at"}

// MarksRepository persists evaluation marks. Every write re-derives the
// percentage inside the same transaction.
type MarksRepository interface {
	List(ctx context.Context) ([]models.Marks, error)
	GetByEvaluation(ctx context.Context, evaluationID uint) (models.Marks, error)
	Create(ctx context.Context, marks *models.Marks) error
	Update(ctx context.Context, evaluationID uint, mutate func(*models.Marks)) (models.Marks, error)
	Delete(ctx context.Context, evaluationID uint) error
	Recompute(ctx context.Context, evaluationID uint) (models.Marks, error)
	RecomputeAll(ctx context.Context) (int64, error)
	UpsertBatch(ctx context.Context, rows []models.Marks) (int64, error)
}

type marksRepository struct {
	db *gorm.DB
}

// NewMarksRepository constructs a marks repository.
func NewMarksRepository(db *gorm.DB) MarksRepository {
	return &marksRepository{db: db}
}

func (r *marksRepository) List(ctx context.Context) ([]models.Marks, error) {
	var marks []models.Marks
	if err := r.db.WithContext(ctx).Order("evaluation_id ASC").Find(&marks).Error; err != nil {
		return nil, err
	}
	return marks, nil
}

func (r *marksRepository) GetByEvaluation(ctx context.Context, evaluationID uint) (models.Marks, error) {
	var marks models.Marks
	if err := r.db.WithContext(ctx).Where("evaluation_id = ?", evaluationID).Take(&marks).Error; err != nil {
		return models.Marks{}, err
	}
	return marks, nil
}

func (r *marksRepository) Create(ctx context.Context, marks *models.Marks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAbsent(tx, &models.Marks{}, "evaluation_id", marks.EvaluationID); err != nil {
			return err
		}
		if err := ensureReference(tx, &models.Evaluation{}, "evaluations", marks.EvaluationID); err != nil {
			return err
		}
		marks.ApplyPercentage()
		return tx.Omit("Evaluation").Create(marks).Error
	})
}

func (r *marksRepository) Update(ctx context.Context, evaluationID uint, mutate func(*models.Marks)) (models.Marks, error) {
	var marks models.Marks
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := loadMarksForUpdate(tx, evaluationID)
		if err != nil {
			return err
		}
		if mutate != nil {
			mutate(&current)
		}
		current.EvaluationID = evaluationID
		if err := saveDerived(tx, &current); err != nil {
			return err
		}
		marks = current
		return nil
	})
	if err != nil {
		return models.Marks{}, err
	}
	return marks, nil
}

func (r *marksRepository) Delete(ctx context.Context, evaluationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByKey(tx, &models.Marks{}, "evaluation_id", evaluationID)
	})
}

// Recompute reloads the operands of one row and reapplies the percentage formula.
func (r *marksRepository) Recompute(ctx context.Context, evaluationID uint) (models.Marks, error) {
	return r.Update(ctx, evaluationID, nil)
}

// RecomputeAll reapplies the percentage formula to every stored row.
func (r *marksRepository) RecomputeAll(ctx context.Context) (int64, error) {
	var processed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Marks
		if err := lockForUpdate(tx).Order("evaluation_id ASC").Find(&rows).Error; err != nil {
			return err
		}
		for i := range rows {
			if err := saveDerived(tx, &rows[i]); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

// UpsertBatch writes all rows in one transaction: existing rows get their
// operands replaced, new rows are inserted. Nothing is written if any row fails.
func (r *marksRepository) UpsertBatch(ctx context.Context, rows []models.Marks) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := rows[i]
			if err := ensureReference(tx, &models.Evaluation{}, "evaluations", row.EvaluationID); err != nil {
				return err
			}

			exists, err := rowExists(tx, &models.Marks{}, "evaluation_id", row.EvaluationID)
			if err != nil {
				return err
			}

			if exists {
				current, err := loadMarksForUpdate(tx, row.EvaluationID)
				if err != nil {
					return err
				}
				current.MarksObtained = row.MarksObtained
				current.MaxMarks = row.MaxMarks
				if err := saveDerived(tx, &current); err != nil {
					return err
				}
				rows[i] = current
			} else {
				row.ApplyPercentage()
				if err := tx.Omit("Evaluation").Create(&row).Error; err != nil {
					return err
				}
				rows[i] = row
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func loadMarksForUpdate(tx *gorm.DB, evaluationID uint) (models.Marks, error) {
	var marks models.Marks
	if err := lockForUpdate(tx).Where("evaluation_id = ?", evaluationID).Take(&marks).Error; err != nil {
		return models.Marks{}, err
	}
	return marks, nil
}

func saveDerived(tx *gorm.DB, marks *models.Marks) error {
	marks.ApplyPercentage()
	result := tx.Model(marks).
		Where("evaluation_id = ?", marks.EvaluationID).
		Select(marksColumns).
		Updates(marks)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
