package handler

import (
	"net/http"

	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps any error onto the taxonomy and writes the standard
// error payload.
func respondError(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.Status(), gin.H{"error": ae.Message, "code": string(ae.Kind)})
}

// currentUserID pulls the authenticated caller out of the context set by
// the JWT middleware. A missing or malformed value aborts with the
// matching taxonomy error.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "code": string(apperr.KindUnauthenticated)})
		return uuid.Nil, false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format", "code": string(apperr.KindInternal)})
		return uuid.Nil, false
	}

	return userID, true
}

// pathUUID parses a uuid path parameter, writing a validation error when it
// is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format", "code": string(apperr.KindValidation)})
		return uuid.Nil, false
	}
	return id, true
}
