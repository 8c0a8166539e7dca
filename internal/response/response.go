package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the fixed response wrapper: {code, data|message}.
type Envelope struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Data: data})
}

// OKWith sends a 200 envelope carrying a single named field instead of
// "data", e.g. {"code":200,"surveyId":7}.
func OKWith(c *gin.Context, key string, value interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, key: value})
}

// BadRequest sends a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	c.JSON(http.StatusBadRequest, Envelope{Code: http.StatusBadRequest, Message: message})
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	c.JSON(http.StatusUnauthorized, Envelope{Code: http.StatusUnauthorized, Message: message})
}

// InternalError sends a 500 error envelope with a generic fallback message.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal error, please try again later"
	}
	c.JSON(http.StatusInternalServerError, Envelope{Code: http.StatusInternalServerError, Message: message})
}
