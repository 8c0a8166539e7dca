package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kw-muji/team-match-api/internal/auth"
	"github.com/kw-muji/team-match-api/internal/constants"
	"github.com/kw-muji/team-match-api/internal/response"
)

// RequireAuth validates the bearer token and stores the caller's identity
// in the request context.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserEmail retrieves the current user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(constants.ContextKeyUserEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
