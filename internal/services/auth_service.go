package services

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kw-muji/team-match-api/internal/auth"
	"github.com/kw-muji/team-match-api/internal/constants"
	"github.com/kw-muji/team-match-api/internal/mail"
	"github.com/kw-muji/team-match-api/internal/otp"
	"github.com/kw-muji/team-match-api/internal/repository"
)

var (
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrCodeMismatch       = errors.New("verification code does not match or has expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordPolicy     = errors.New("password must contain a letter, a digit, and a special character and be 5-11 characters long")
	ErrPasswordConfirm    = errors.New("password confirmation does not match")
)

// AuthService handles email verification, login, and password reset.
type AuthService struct {
	users  repository.UserRepository
	codes  *otp.Store
	sender mail.Sender
	tokens *auth.Manager
	log    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, codes *otp.Store, sender mail.Sender, tokens *auth.Manager, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		codes:  codes,
		sender: sender,
		tokens: tokens,
		log:    log,
	}
}

// JoinEmail generates a verification code for a not-yet-registered email,
// stores it with the TTL, and dispatches it by mail.
func (s *AuthService) JoinEmail(ctx context.Context, email string) (string, error) {
	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", ErrEmailRegistered
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.codes.Save(ctx, email, code); err != nil {
		return "", err
	}

	if err := s.sender.SendAuthCode(ctx, email, code); err != nil {
		s.log.Error("verification mail dispatch failed", zap.String("email", email), zap.Error(err))
		return "", err
	}

	return code, nil
}

// CheckAuthNum verifies the code for the email. True only for the most
// recently generated, unexpired code; success consumes it.
func (s *AuthService) CheckAuthNum(ctx context.Context, email, code string) error {
	ok, err := s.codes.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeMismatch
	}
	return nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ResetPassword replaces the user's password after policy and
// confirmation checks.
func (s *AuthService) ResetPassword(email, password, confirm string) error {
	if !validPassword(password) {
		return ErrPasswordPolicy
	}
	if password != confirm {
		return ErrPasswordConfirm
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashed)

	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// validPassword checks the policy: at least one letter, one digit, one
// special character, length between the configured bounds.
func validPassword(password string) bool {
	if len(password) < constants.MinPasswordLength || len(password) > constants.MaxPasswordLength {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
