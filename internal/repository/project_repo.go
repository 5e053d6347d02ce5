package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// ProjectRepository provides access to project records.
type ProjectRepository interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uint) (models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository constructs a project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&project).Error; err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAbsent(tx, &models.Project{}, "id", project.ID); err != nil {
			return err
		}
		if err := ensureReference(tx, &models.Team{}, "teams", project.TeamID); err != nil {
			return err
		}
		return tx.Omit("Team").Create(project).Error
	})
}

func (r *projectRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if teamID, ok := updates["team_id"].(uint); ok {
			if err := ensureReference(tx, &models.Team{}, "teams", teamID); err != nil {
				return err
			}
		}
		if err := updateByKey(tx, &models.Project{}, "id", id, updates); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&project).Error
	})
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNoDependents(tx, &models.Grade{}, "grades", "project_id", id); err != nil {
			return err
		}
		return deleteByKey(tx, &models.Project{}, "id", id)
	})
}
