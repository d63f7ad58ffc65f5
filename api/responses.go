package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body!"

type errorResponse struct {
	Message string `json:"message"`
}

// respondError maps a service error to its status code. fallback is the
// message used for anything that is not a known domain error.
func respondError(c *gin.Context, operation string, err error, fallback string) {
	status, message := http.StatusInternalServerError, fallback

	switch {
	case errors.Is(err, domain.ErrValidation):
		status, message = http.StatusUnprocessableEntity, "All fields are required!"
	case errors.Is(err, domain.ErrEmailTaken):
		status, message = http.StatusUnprocessableEntity, "This email is already in use!"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials!"
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Invalid token!"
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found!"
	case errors.Is(err, domain.ErrPlaceNotFound):
		status, message = http.StatusNotFound, "Place not found!"
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, "Not found!"
	case errors.Is(err, domain.ErrForbidden):
		status, message = http.StatusForbidden, "You don't have permission to update this place!"
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Default().Log(c.Request.Context(), level, "request failed",
		"module", "api",
		"operation", operation,
		"status_code", status,
		"error", err,
	)

	c.JSON(status, errorResponse{Message: message})
}

func respondBadBody(c *gin.Context, operation string, err error) {
	slog.Default().WarnContext(c.Request.Context(), "bad request body",
		"module", "api",
		"operation", operation,
		"error", err,
	)
	c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: msgInvalidBody})
}
