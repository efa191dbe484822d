package handlers

import (
	"errors"
	"net/http"
	"strings"

	"lostlink/internal/errs"
	"lostlink/internal/middleware"
	"lostlink/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all HTML from free-text user input.
var textPolicy = bluemonday.StrictPolicy()

func cleanText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// currentUser returns the actor resolved by middleware.LoadUser.
func currentUser(c *gin.Context) (*models.User, bool) {
	u, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	return u.(*models.User), true
}

// fail maps sentinel errors to their HTTP status; everything else is an
// unhandled failure and surfaces as a 500 with the raw message.
func fail(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
	case errors.Is(err, errs.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
