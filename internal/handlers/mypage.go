package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kw-muji/team-match-api/internal/dto"
	"github.com/kw-muji/team-match-api/internal/middleware"
	"github.com/kw-muji/team-match-api/internal/response"
	"github.com/kw-muji/team-match-api/internal/services"
)

// MypageHandler coordinates profile and resume handlers.
type MypageHandler struct {
	mypage *services.MypageService
}

// NewMypageHandler creates a new MypageHandler.
func NewMypageHandler(mypage *services.MypageService) *MypageHandler {
	return &MypageHandler{mypage: mypage}
}

// Profile returns the authenticated user's profile.
// GET /mypage
func (h *MypageHandler) Profile(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.mypage.GetUser(email)
	if err != nil {
		respondMypageError(c, err)
		return
	}

	response.OK(c, dto.ToUserDTO(*user))
}

// Update applies a partial profile update.
// PATCH /mypage
func (h *MypageHandler) Update(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.mypage.UpdateUser(email, services.UpdateUserInput{
		Name:     req.Name,
		StuNum:   req.StuNum,
		Major:    req.Major,
		Password: req.Password,
	})
	if err != nil {
		respondMypageError(c, err)
		return
	}

	response.OK(c, dto.ToUserDTO(*user))
}

// CheckPW compares a plaintext password with the stored hash.
// POST /mypage/checkPW {password}
func (h *MypageHandler) CheckPW(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CheckPWRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	equal, err := h.mypage.EqualPassword(email, req.Password)
	if err != nil {
		respondMypageError(c, err)
		return
	}

	response.OK(c, equal)
}

// CreateResume uploads a resume file and stores the record.
// POST /mypage/resume (multipart: title, file)
func (h *MypageHandler) CreateResume(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "resume file is required")
		return
	}

	file, upload, err := openUpload(fileHeader)
	if err != nil {
		response.InternalError(c, "")
		return
	}
	defer file.Close()

	resume, err := h.mypage.CreateResume(c.Request.Context(), services.CreateResumeInput{
		UserID: userID,
		Title:  c.PostForm("title"),
		File:   upload,
	})
	if err != nil {
		respondMypageError(c, err)
		return
	}

	response.OK(c, dto.ToResumeDTO(*resume))
}

// DeleteResume removes the user's resume.
// DELETE /mypage/resume/:resumeId
func (h *MypageHandler) DeleteResume(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	resumeID, err := strconv.ParseUint(c.Param("resumeId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resume id")
		return
	}

	if err := h.mypage.DeleteResume(c.Request.Context(), userID, resumeID); err != nil {
		respondMypageError(c, err)
		return
	}

	response.OK(c, true)
}

func respondMypageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrResumeNotFound),
		errors.Is(err, services.ErrNotResumeOwner),
		errors.Is(err, services.ErrResumeTitleRequired):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "")
	}
}
