package dto

import "github.com/kw-muji/team-match-api/internal/models"

// EmailRequest is the body of POST /auth/mailSend
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthCheckRequest is the body of POST /auth/authCheck
type AuthCheckRequest struct {
	Email   string `json:"email" binding:"required,email"`
	AuthNum string `json:"authNum" binding:"required"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPWRequest is the body of POST /auth/resetPW
type ResetPWRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UpdateUserRequest is the body of PATCH /mypage. Absent or blank fields
// leave the stored value unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	StuNum   *int    `json:"stuNum"`
	Major    *string `json:"major"`
	Password *string `json:"password"`
}

// CheckPWRequest is the body of POST /mypage/checkPW
type CheckPWRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserDTO represents a user profile in API responses
type UserDTO struct {
	ID     uint64 `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	StuNum int    `json:"stu_num"`
	Major  string `json:"major"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		StuNum: user.StuNum,
		Major:  user.Major,
	}
}
