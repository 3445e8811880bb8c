// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// IsValidationError reports whether err is one of the entity validation
// sentinels. The API boundary maps these to client errors.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrValidation,
		ErrInvalidEmail,
		ErrInvalidPassword,
		ErrEmptyUserID,
		ErrEmptyName,
		ErrEmptyEmail,
		ErrEmptyPassword,
		ErrEmptyHashedPassword,
		ErrPasswordTooShort,
		ErrPasswordTooLong,
		ErrPasswordForbidden,
		ErrNegativeAge,
		ErrEmptyTaskID,
		ErrEmptyDescription,
		ErrEmptyOwnerID,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
