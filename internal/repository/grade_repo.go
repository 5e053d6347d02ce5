package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// GradeRepository provides access to grades, keyed by project.
type GradeRepository interface {
	List(ctx context.Context) ([]models.Grade, error)
	GetByProject(ctx context.Context, projectID uint) (models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, projectID uint, updates map[string]interface{}) (models.Grade, error)
	Delete(ctx context.Context, projectID uint) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs a grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Order("project_id ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) GetByProject(ctx context.Context, projectID uint) (models.Grade, error) {
	var grade models.Grade
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Take(&grade).Error; err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAbsent(tx, &models.Grade{}, "project_id", grade.ProjectID); err != nil {
			return err
		}
		if err := ensureReference(tx, &models.Project{}, "projects", grade.ProjectID); err != nil {
			return err
		}
		return tx.Omit("Project").Create(grade).Error
	})
}

func (r *gradeRepository) Update(ctx context.Context, projectID uint, updates map[string]interface{}) (models.Grade, error) {
	var grade models.Grade
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateByKey(tx, &models.Grade{}, "project_id", projectID, updates); err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Take(&grade).Error
	})
	if err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

func (r *gradeRepository) Delete(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByKey(tx, &models.Grade{}, "project_id", projectID)
	})
}
