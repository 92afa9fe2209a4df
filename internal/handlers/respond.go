package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nvoloshyn/scrum-api/internal/errors"
)

// respondServiceError maps the core error taxonomy onto status codes.
// Not-found wins over access-denied by construction: services check entity
// existence before running the guard.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apierrors.ErrNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, apierrors.ErrAccessDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, apierrors.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, apierrors.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
