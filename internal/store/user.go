package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// HashedPassword; plaintext passwords are never persisted.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including the active
	// session token list but excluding the avatar bytes.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists changes to name, email, hashed password and age.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when changing to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user record. It does not touch the user's tasks;
	// cascade semantics are the service layer's responsibility so that
	// ordering and failure propagation stay explicit.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddToken appends a session token to the user's active token list.
	AddToken(ctx context.Context, userID uuid.UUID, token string) error

	// RemoveToken removes exactly the given token string from the user's
	// active token list. Removing a token that is not present is not an
	// error; the list simply stays unchanged.
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error

	// RemoveAllTokens clears the user's entire active token list,
	// invalidating every live session at once.
	RemoveAllTokens(ctx context.Context, userID uuid.UUID) error

	// UpdateAvatar stores the processed avatar bytes for the user.
	// A nil avatar clears the stored image.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error

	// GetAvatar returns the stored avatar bytes for the user.
	// Returns ErrAvatarNotFound when the user does not exist or has no avatar.
	GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// WithTx returns a UserStore bound to the provided transaction so that
	// multiple operations can be executed atomically.
	WithTx(tx *sql.Tx) UserStore
}
