package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/apperr"
)

// JSON writes a success payload as-is. The API uses flat bodies, no envelope.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Error writes the error shape used by every endpoint: {"error": "<message>"}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// FromError maps a service error onto the HTTP status taxonomy.
func FromError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		Error(c, http.StatusBadRequest, apperr.Message(err))
	case apperr.IsNotFound(err):
		Error(c, http.StatusNotFound, apperr.Message(err))
	case apperr.IsConflict(err):
		Error(c, http.StatusConflict, apperr.Message(err))
	case apperr.IsUnavailable(err):
		Error(c, http.StatusServiceUnavailable, apperr.Message(err))
	default:
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
