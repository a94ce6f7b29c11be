package pkg

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextRequestID = "requestID"
)

type apiError struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// GetUserID returns the authenticated user id. When missing it writes a 401 and returns false.
func GetUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, apiError{Message: "User not authenticated"})
		return 0, false
	}
	id, ok := raw.(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, apiError{Message: "User not authenticated"})
		return 0, false
	}
	return id, true
}

// GetRequestID returns the id assigned to the current request, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
