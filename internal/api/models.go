package api

import "github.com/itomysh95/task-manager-project/internal/domain"

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=7"`
	Age      int    `json:"age"      validate:"omitempty,gte=0"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login. The embedded user
// serialization never includes the password hash, token list or avatar.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// UpdateUserRequest is the body of PATCH /users/me. All fields are optional;
// any key outside this set rejects the whole request.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Age      *int    `json:"age,omitempty"`
}

// CreateTaskRequest is the body of POST /tasks. The owner is always the
// authenticated caller and cannot be supplied.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. All fields are
// optional; any key outside this set rejects the whole request.
type UpdateTaskRequest struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// allow-lists for PATCH bodies; enforcement is all-or-nothing.
var (
	userUpdateAllowedFields = map[string]bool{
		"name":     true,
		"email":    true,
		"password": true,
		"age":      true,
	}

	taskUpdateAllowedFields = map[string]bool{
		"description": true,
		"completed":   true,
	}
)
