package repository

import (
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/models"
)

// GormResumeRepository is a GORM implementation of ResumeRepository
type GormResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository creates a new ResumeRepository
func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &GormResumeRepository{db: db}
}

func (r *GormResumeRepository) Create(resume *models.Resume) error {
	return r.db.Create(resume).Error
}

func (r *GormResumeRepository) FindByID(id uint64) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.First(&resume, id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *GormResumeRepository) ListByUser(userID uint64) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, err
	}
	return resumes, nil
}

// Delete soft deletes a resume. Participations keep their snapshotted
// resume path, so application history is unaffected.
func (r *GormResumeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Resume{}, id).Error
}
