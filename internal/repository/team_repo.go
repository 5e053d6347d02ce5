package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/models"
)

// TeamRepository provides access to team records and guards the team lead reference.
type TeamRepository interface {
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id uint) (models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Team, error)
	Delete(ctx context.Context, id uint) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository constructs a team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&team).Error; err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAbsent(tx, &models.Team{}, "id", team.ID); err != nil {
			return err
		}
		if err := ensureReference(tx, &models.Student{}, "students", team.StudentID); err != nil {
			return err
		}
		return tx.Omit("Lead").Create(team).Error
	})
}

func (r *teamRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if studentID, ok := updates["student_id"].(uint); ok {
			if err := ensureReference(tx, &models.Student{}, "students", studentID); err != nil {
				return err
			}
		}
		if err := updateByKey(tx, &models.Team{}, "id", id, updates); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&team).Error
	})
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNoDependents(tx, &models.Project{}, "projects", "team_id", id); err != nil {
			return err
		}
		return deleteByKey(tx, &models.Team{}, "id", id)
	})
}
