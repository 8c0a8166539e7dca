package dto

import (
	"time"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/utils"
)

// ApplyRequest is the body of POST /team/apply
type ApplyRequest struct {
	ProjectID uint64 `json:"projectId" binding:"required"`
	ResumeID  uint64 `json:"resumeId" binding:"required"`
}

// UpdateProjectRequest is the body of PATCH /team, bound from JSON or from
// multipart form fields when an image accompanies the update. Pointer fields
// are applied only when present.
type UpdateProjectRequest struct {
	ID          uint64              `json:"id" form:"id" binding:"required"`
	Name        *string             `json:"name" form:"name"`
	Description *string             `json:"description" form:"description"`
	DeadlineAt  *string             `json:"deadlineAt" form:"deadlineAt"`
	Start       *bool               `json:"start" form:"start"`
	ProjectType *models.ProjectType `json:"projectType" form:"projectType"`
	DeleteImage bool                `json:"isDeleteImage" form:"isDeleteImage"`
}

// ProjectDetailDTO represents a project in the detail response
type ProjectDetailDTO struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
	DeadlineAt  time.Time           `json:"deadline_at"`
	Image       string              `json:"image"`
	Role        *models.ProjectRole `json:"role"`
	IsOnGoing   bool                `json:"is_on_going"`
	Start       bool                `json:"start"`
}

// ProjectListItemDTO represents a project in list responses
type ProjectListItemDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DeadlineAt  time.Time `json:"deadline_at"`
	Start       bool      `json:"start"`
}

// ProjectListResponse is a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectListItemDTO     `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ApplicantDTO represents one applicant on a created project
type ApplicantDTO struct {
	UserID     uint64 `json:"user_id"`
	Name       string `json:"name"`
	ResumePath string `json:"resume_path"`
}

// MyProjectDTO represents a created project with its applicants
type MyProjectDTO struct {
	ID         uint64         `json:"id"`
	Name       string         `json:"name"`
	IsOnGoing  bool           `json:"is_on_going"`
	Applicants []ApplicantDTO `json:"applicants"`
}

// ResumeDTO represents a resume in API responses
type ResumeDTO struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	ResumePath string    `json:"resume_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResumeListResponse wraps the apply-screen resume list
type ResumeListResponse struct {
	Resumes []ResumeDTO `json:"resumes"`
}

// Conversion functions

// ToProjectDetailDTO converts a project plus the requester's role
func ToProjectDetailDTO(project models.Project, role *models.ProjectRole, imageURL string) ProjectDetailDTO {
	return ProjectDetailDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		DeadlineAt:  project.DeadlineAt,
		Image:       imageURL,
		Role:        role,
		IsOnGoing:   project.IsOnGoing(),
		Start:       project.Start,
	}
}

// ToProjectListResponse converts projects to a paginated list response
func ToProjectListResponse(projects []models.Project, params utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectListItemDTO, len(projects))
	for i, p := range projects {
		items[i] = ProjectListItemDTO{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			DeadlineAt:  p.DeadlineAt,
			Start:       p.Start,
		}
	}
	return ProjectListResponse{
		Projects:   items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}

// ToMyProjectDTO converts a created project with preloaded applicants
func ToMyProjectDTO(project models.Project) MyProjectDTO {
	applicants := make([]ApplicantDTO, 0, len(project.Participations))
	for _, p := range project.Participations {
		applicants = append(applicants, ApplicantDTO{
			UserID:     p.UserID,
			Name:       p.User.Name,
			ResumePath: p.ResumePath,
		})
	}
	return MyProjectDTO{
		ID:         project.ID,
		Name:       project.Name,
		IsOnGoing:  project.IsOnGoing(),
		Applicants: applicants,
	}
}

// ToResumeDTO converts a resume model
func ToResumeDTO(resume models.Resume) ResumeDTO {
	return ResumeDTO{
		ID:         resume.ID,
		Title:      resume.Title,
		ResumePath: resume.ResumePath,
		CreatedAt:  resume.CreatedAt,
	}
}

// ToResumeListResponse converts resumes for the apply screen
func ToResumeListResponse(resumes []models.Resume) ResumeListResponse {
	items := make([]ResumeDTO, len(resumes))
	for i, r := range resumes {
		items[i] = ToResumeDTO(r)
	}
	return ResumeListResponse{Resumes: items}
}
