package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account event types emitted by the user service.
const (
	// EventUserRegistered fires after a user account is first persisted.
	EventUserRegistered = "user.registered"

	// EventAccountClosed fires after an account and its tasks are deleted.
	EventAccountClosed = "account.closed"
)

// AccountEvent describes a change to a user account that side collaborators
// (currently the notification dispatcher) may react to. Carrying the name and
// email directly keeps handlers from re-reading a record that, for account
// closure, no longer exists.
type AccountEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Type is one of the Event* constants.
	Type string `json:"type"`

	// UserID identifies the affected account.
	UserID uuid.UUID `json:"user_id"`

	// Name and Email of the account at the time of the event.
	Name  string `json:"name"`
	Email string `json:"email"`

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountEvent creates an AccountEvent of the given type.
func NewAccountEvent(eventType string, userID uuid.UUID, name, email string) *AccountEvent {
	return &AccountEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *AccountEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *AccountEvent) error
}
