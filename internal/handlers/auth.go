package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kw-muji/team-match-api/internal/dto"
	"github.com/kw-muji/team-match-api/internal/response"
	"github.com/kw-muji/team-match-api/internal/services"
)

// AuthHandler coordinates verification and authentication handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// MailSend generates and dispatches a verification code.
// POST /auth/mailSend {email}
func (h *AuthHandler) MailSend(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid email address")
		return
	}

	authNum, err := h.authService.JoinEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OKWith(c, "authNum", authNum)
}

// AuthCheck verifies a previously dispatched code.
// POST /auth/authCheck {email, authNum}
func (h *AuthHandler) AuthCheck(c *gin.Context) {
	var req dto.AuthCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.authService.CheckAuthNum(c.Request.Context(), req.Email, req.AuthNum); err != nil {
		respondAuthError(c, err)
		return
	}

	response.OKWith(c, "authCheck", true)
}

// Login verifies credentials and issues an access token.
// POST /auth/login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, gin.H{"token": token})
}

// ResetPW replaces a password after policy and confirmation checks.
// POST /auth/resetPW {email, password, confirmPassword}
func (h *AuthHandler) ResetPW(c *gin.Context) {
	var req dto.ResetPWRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(req.Email, req.Password, req.ConfirmPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	response.OK(c, true)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRegistered),
		errors.Is(err, services.ErrCodeMismatch),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrPasswordPolicy),
		errors.Is(err, services.ErrPasswordConfirm),
		errors.Is(err, services.ErrUserNotFound):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "mail dispatch failed, please try again later")
	}
}
