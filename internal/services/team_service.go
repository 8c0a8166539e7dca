package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/repository"
	"github.com/kw-muji/team-match-api/internal/storage"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNameRequired        = errors.New("project name is required")
	ErrDescriptionRequired = errors.New("project description is required")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrNotResumeOwner      = errors.New("resume does not belong to the requesting user")
	ErrAlreadyApplied      = errors.New("user has already applied to this project")
	ErrNotProjectCreator   = errors.New("only the project creator can perform this action")
)

// TeamService handles project registration, application, and lifecycle.
type TeamService struct {
	projects repository.ProjectRepository
	resumes  repository.ResumeRepository
	uploader storage.Uploader
	log      *zap.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(projects repository.ProjectRepository, resumes repository.ResumeRepository, uploader storage.Uploader, log *zap.Logger) *TeamService {
	return &TeamService{
		projects: projects,
		resumes:  resumes,
		uploader: uploader,
		log:      log,
	}
}

// FileInput carries an uploaded file from the handler into the service.
type FileInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// RegisterProjectInput represents input for registering a project
type RegisterProjectInput struct {
	Name        string
	Description string
	DeadlineAt  time.Time
	CreatorID   uint64
	Image       *FileInput
}

// RegisterProject validates the input, uploads the optional image, and
// creates the project with its CREATOR participation atomically. The image
// upload happens first: if it fails, nothing is persisted.
func (s *TeamService) RegisterProject(ctx context.Context, input RegisterProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	var imagePath string
	if input.Image != nil {
		key := storage.ObjectKey("projects", input.Image.Filename)
		path, err := s.uploader.Upload(ctx, key, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to upload project image: %w", err)
		}
		imagePath = path
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		ProjectType: models.ProjectOngoing,
		DeadlineAt:  input.DeadlineAt,
		Image:       imagePath,
	}
	creator := &models.Participation{
		UserID: input.CreatorID,
		Role:   models.RoleCreator,
	}

	if err := s.projects.CreateWithCreator(project, creator); err != nil {
		if imagePath != "" {
			if delErr := s.uploader.Delete(ctx, imagePath); delErr != nil {
				s.log.Warn("failed to clean up image after aborted registration",
					zap.String("key", imagePath), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("failed to register project: %w", err)
	}

	return project, nil
}

// ApplyInput represents input for applying to a project
type ApplyInput struct {
	UserID    uint64
	ProjectID uint64
	ResumeID  uint64
}

// Apply creates an APPLICANT participation snapshotting the resume path.
// The resume must belong to the applicant, and the storage-level unique
// index rejects a second application for the same (project, user) pair.
func (s *TeamService) Apply(input ApplyInput) (*models.Participation, error) {
	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	resume, err := s.resumes.FindByID(input.ResumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	if resume.UserID != input.UserID {
		return nil, ErrNotResumeOwner
	}

	participation := &models.Participation{
		ProjectID:  input.ProjectID,
		UserID:     input.UserID,
		Role:       models.RoleApplicant,
		ResumePath: resume.ResumePath,
	}

	if err := s.projects.AddParticipation(participation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to save participation: %w", err)
	}

	return participation, nil
}

// GetProjectDetail returns the project and the requesting user's role in
// it; the role is nil when no participation exists.
func (s *TeamService) GetProjectDetail(projectID, userID uint64) (*models.Project, *models.ProjectRole, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	participation, err := s.projects.FindParticipation(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find participation: %w", err)
	}

	return project, &participation.Role, nil
}

// ListProjects returns ongoing projects matching the optional search term.
func (s *TeamService) ListProjects(search string, page, pageSize int) ([]models.Project, int64, error) {
	projects, total, err := s.projects.List(repository.ProjectFilter{
		Search:      search,
		OnGoingOnly: true,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// MyProjects returns projects the user created, with applicants preloaded.
func (s *TeamService) MyProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projects.ListByCreator(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created projects: %w", err)
	}
	return projects, nil
}

// ListResumes returns the user's resumes for the apply screen.
func (s *TeamService) ListResumes(userID uint64) ([]models.Resume, error) {
	resumes, err := s.resumes.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateProjectInput represents a partial project update. Pointer fields
// are applied only when present and non-blank.
type UpdateProjectInput struct {
	ProjectID   uint64
	ActorID     uint64
	Name        *string
	Description *string
	DeadlineAt  *time.Time
	Start       *bool
	ProjectType *models.ProjectType
	DeleteImage bool
	Image       *FileInput
}

// UpdateProject applies a creator-only partial update. createdAt is never
// written; the repository updates selected columns only.
func (s *TeamService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projects.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.ensureCreator(input.ProjectID, input.ActorID); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		values["name"] = *input.Name
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		values["description"] = *input.Description
	}
	if input.DeadlineAt != nil {
		values["deadline_at"] = *input.DeadlineAt
	}
	if input.Start != nil {
		values["start"] = *input.Start
	}
	if input.ProjectType != nil {
		values["project_type"] = *input.ProjectType
	}

	if input.DeleteImage && project.Image != "" {
		if err := s.uploader.Delete(ctx, project.Image); err != nil {
			s.log.Warn("failed to delete project image", zap.String("key", project.Image), zap.Error(err))
		}
		values["image"] = ""
	}
	if input.Image != nil {
		key := storage.ObjectKey("projects", input.Image.Filename)
		path, err := s.uploader.Upload(ctx, key, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to upload project image: %w", err)
		}
		if project.Image != "" && !input.DeleteImage {
			if delErr := s.uploader.Delete(ctx, project.Image); delErr != nil {
				s.log.Warn("failed to delete replaced project image",
					zap.String("key", project.Image), zap.Error(delErr))
			}
		}
		values["image"] = path
	}

	if err := s.projects.UpdateFields(input.ProjectID, values); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projects.FindByID(input.ProjectID)
}

// DeleteProject removes a project and everything it owns. Creator only.
func (s *TeamService) DeleteProject(ctx context.Context, projectID, actorID uint64) error {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.ensureCreator(projectID, actorID); err != nil {
		return err
	}

	if err := s.projects.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if project.Image != "" {
		if err := s.uploader.Delete(ctx, project.Image); err != nil {
			s.log.Warn("failed to delete project image", zap.String("key", project.Image), zap.Error(err))
		}
	}

	return nil
}

// ImageURL derives the public URL for a stored image path.
func (s *TeamService) ImageURL(path string) string {
	return s.uploader.PublicURL(path)
}

func (s *TeamService) ensureCreator(projectID, userID uint64) error {
	participation, err := s.projects.FindParticipation(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotProjectCreator
		}
		return fmt.Errorf("failed to verify project role: %w", err)
	}
	if participation.Role != models.RoleCreator {
		return ErrNotProjectCreator
	}
	return nil
}
