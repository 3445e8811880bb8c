package api

import (
	"errors"
	"net/http"

	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/service"
	"github.com/itomysh95/task-manager-project/internal/service/auth"
	"github.com/itomysh95/task-manager-project/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients. Note that "not found" and "not owned" are the same
// 404 on purpose; distinguishing them would leak resource existence.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad credentials: deliberately 400, never distinguishing which part
	// of the credentials was wrong.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors (covers not-owned as well)
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrAvatarTooLarge),
		errors.Is(err, service.ErrAvatarBadType),
		domain.IsValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Unable to login"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Please authenticate"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrAvatarNotFound):
		return "Avatar not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrAvatarTooLarge),
		errors.Is(err, service.ErrAvatarBadType):
		return "Please upload a valid jpg, jpeg or png file up to 1MB"

	case domain.IsValidationError(err):
		// Validation sentinels carry no internal detail; their text is
		// written for end users.
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
