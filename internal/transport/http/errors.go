package handlers

import (
	"errors"
	"net/http"

	"coursehub/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinels to HTTP statuses. Anything unknown is a
// failed upstream call (storage or database) and surfaces as a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyEnrolled):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTopicNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
