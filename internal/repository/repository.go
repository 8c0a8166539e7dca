package repository

import (
	"github.com/kw-muji/team-match-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Search      string
	OnGoingOnly bool
	Page        int
	PageSize    int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithCreator creates a project together with its CREATOR
	// participation in a single transaction
	CreateWithCreator(project *models.Project, creator *models.Participation) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// ListByCreator lists projects created by the user, with applicant
	// participations preloaded
	ListByCreator(userID uint64) ([]models.Project, error)

	// UpdateFields updates the given columns only; created_at is never written
	UpdateFields(id uint64, values map[string]interface{}) error

	// Delete removes a project and its owned participations and event
	// links in one transaction
	Delete(id uint64) error

	// AddParticipation appends a participation row
	AddParticipation(p *models.Participation) error

	// FindParticipation finds the participation for a (project, user) pair
	FindParticipation(projectID, userID uint64) (*models.Participation, error)
}

// ResumeRepository defines the interface for resume data access
type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uint64) (*models.Resume, error)
	ListByUser(userID uint64) ([]models.Resume, error)
	Delete(id uint64) error
}

// SurveyFilter holds filtering options for listing surveys
type SurveyFilter struct {
	Search   string
	Page     int
	PageSize int
}

// SurveyRepository defines the interface for survey data access
type SurveyRepository interface {
	// Create creates a survey with its questions and options
	Create(survey *models.Survey) error

	// FindByID finds a survey by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Survey, error)

	// List retrieves surveys with search and pagination
	List(filter SurveyFilter) ([]models.Survey, int64, error)

	// CreateResponse stores a submission with its answers
	CreateResponse(response *models.SurveyResponse) error
}
