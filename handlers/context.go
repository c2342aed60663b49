package handlers

import (
	"FamCare/middlewares"
	"FamCare/services"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// actorFromContext resolves the authenticated user's ID and role placed in the
// request context by the token middleware.
func actorFromContext(c *gin.Context) (int64, string, error) {
	idStr, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return 0, "", err
	}
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		return 0, "", err
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, "", err
	}
	return id, role, nil
}

// statusFromError maps service-layer sentinel errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return 404
	case errors.Is(err, services.ErrForbidden):
		return 403
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrOverlap):
		return 400
	default:
		return 500
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
