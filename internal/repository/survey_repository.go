package repository

import (
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/database"
	"github.com/kw-muji/team-match-api/internal/models"
)

// GormSurveyRepository is a GORM implementation of SurveyRepository
type GormSurveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository creates a new SurveyRepository
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &GormSurveyRepository{db: db}
}

// Create stores the survey with its questions and options in one pass;
// GORM cascades the association inserts inside a single transaction.
func (r *GormSurveyRepository) Create(survey *models.Survey) error {
	return r.db.Create(survey).Error
}

func (r *GormSurveyRepository) FindByID(id uint64, preload ...string) (*models.Survey, error) {
	var survey models.Survey
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *GormSurveyRepository) List(filter SurveyFilter) ([]models.Survey, int64, error) {
	query := r.db.Model(&models.Survey{})

	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []models.Survey
	err := query.Order("created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

func (r *GormSurveyRepository) CreateResponse(response *models.SurveyResponse) error {
	return r.db.Create(response).Error
}
