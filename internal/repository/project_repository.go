package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/database"
	"github.com/kw-muji/team-match-api/internal/models"
)

var (
	// ErrCreateProject is returned when creating the project fails inside the registration transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateParticipation is returned when creating the creator participation fails inside the registration transaction.
	ErrCreateParticipation = errors.New("project repository: create participation failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithCreator creates the project and its CREATOR participation
// atomically. A project without its creator link is never observable.
func (r *GormProjectRepository) CreateWithCreator(project *models.Project, creator *models.Participation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		creator.ProjectID = project.ID
		creator.Role = models.RoleCreator

		if err := tx.Create(creator).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateParticipation, err)
		}

		return nil
	})
}

func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if filter.OnGoingOnly {
		query = query.Where("project_type = ?", models.ProjectOngoing)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.Order("created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *GormProjectRepository) ListByCreator(userID uint64) ([]models.Project, error) {
	var projectIDs []uint64
	err := r.db.Model(&models.Participation{}).
		Where("user_id = ? AND role = ?", userID, models.RoleCreator).
		Pluck("project_id", &projectIDs).Error
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return []models.Project{}, nil
	}

	var projects []models.Project
	err = r.db.
		Preload("Participations", "role = ?", models.RoleApplicant).
		Preload("Participations.User").
		Where("id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateFields writes the given columns only, so created_at stays untouched.
func (r *GormProjectRepository) UpdateFields(id uint64, values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(values).Error
}

// Delete removes the project and everything it owns in one transaction.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Participation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.UserEventLink{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *GormProjectRepository) AddParticipation(p *models.Participation) error {
	return r.db.Create(p).Error
}

func (r *GormProjectRepository) FindParticipation(projectID, userID uint64) (*models.Participation, error) {
	var participation models.Participation
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}
