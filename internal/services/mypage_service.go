package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/models"
	"github.com/kw-muji/team-match-api/internal/repository"
	"github.com/kw-muji/team-match-api/internal/storage"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrResumeTitleRequired  = errors.New("resume title is required")
)

// MypageService handles profile and resume management.
type MypageService struct {
	users    repository.UserRepository
	resumes  repository.ResumeRepository
	uploader storage.Uploader
	log      *zap.Logger
}

// NewMypageService creates a new MypageService
func NewMypageService(users repository.UserRepository, resumes repository.ResumeRepository, uploader storage.Uploader, log *zap.Logger) *MypageService {
	return &MypageService{
		users:    users,
		resumes:  resumes,
		uploader: uploader,
		log:      log,
	}
}

// GetUser loads a profile by email.
func (s *MypageService) GetUser(email string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput is an explicit patch: each field is applied only when
// present and non-blank, so absent fields leave the stored value intact.
type UpdateUserInput struct {
	Name     *string
	StuNum   *int
	Major    *string
	Password *string
}

// UpdateUser applies a partial profile update for the user with the email.
func (s *MypageService) UpdateUser(email string, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(email)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = *input.Name
	}
	if input.StuNum != nil && *input.StuNum > 0 {
		user.StuNum = *input.StuNum
	}
	if input.Major != nil && strings.TrimSpace(*input.Major) != "" {
		user.Major = *input.Major
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// EqualPassword reports whether the plaintext matches the stored hash.
// Plaintext is never stored or compared directly.
func (s *MypageService) EqualPassword(email, password string) (bool, error) {
	user, err := s.GetUser(email)
	if err != nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// CreateResumeInput represents input for uploading a resume
type CreateResumeInput struct {
	UserID uint64
	Title  string
	File   *FileInput
}

// CreateResume uploads the resume file and stores the record. The upload
// happens first so a failed upload leaves no row behind.
func (s *MypageService) CreateResume(ctx context.Context, input CreateResumeInput) (*models.Resume, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrResumeTitleRequired
	}
	if input.File == nil {
		return nil, errors.New("resume file is required")
	}

	key := storage.ObjectKey("resumes", input.File.Filename)
	path, err := s.uploader.Upload(ctx, key, input.File.ContentType, input.File.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	resume := &models.Resume{
		UserID:     input.UserID,
		Title:      input.Title,
		ResumePath: path,
	}
	if err := s.resumes.Create(resume); err != nil {
		if delErr := s.uploader.Delete(ctx, path); delErr != nil {
			s.log.Warn("failed to clean up resume after aborted create",
				zap.String("key", path), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	return resume, nil
}

// DeleteResume removes the user's resume. Existing participations keep
// their snapshotted path.
func (s *MypageService) DeleteResume(ctx context.Context, userID, resumeID uint64) error {
	resume, err := s.resumes.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResumeNotFound
		}
		return fmt.Errorf("failed to find resume: %w", err)
	}

	if resume.UserID != userID {
		return ErrNotResumeOwner
	}

	if err := s.resumes.Delete(resumeID); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	if err := s.uploader.Delete(ctx, resume.ResumePath); err != nil {
		s.log.Warn("failed to delete resume file", zap.String("key", resume.ResumePath), zap.Error(err))
	}

	return nil
}
