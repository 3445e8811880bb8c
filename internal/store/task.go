package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
)

// TaskListOptions captures the filter/sort/pagination parameters of a task
// listing. The zero value means "everything the caller owns, store order,
// unbounded".
type TaskListOptions struct {
	// Completed filters on the completed flag when non-nil. nil means no
	// filter, which is distinct from filtering on false.
	Completed *bool

	// SortBy is the column to sort on. Empty means no explicit ordering.
	// Implementations must allow-list sortable columns.
	SortBy string

	// SortDescending selects descending order; ascending is the default.
	SortDescending bool

	// Limit caps the number of returned tasks when positive.
	Limit int

	// Skip offsets into the result set when positive.
	Skip int
}

// TaskStore defines the interface for task data persistence. Every read or
// mutation is scoped by owner: a task id alone is never enough to reach a
// record, which keeps ownership filtering non-bypassable.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByOwner retrieves a task by id, restricted to the given owner.
	// Returns ErrTaskNotFound when the task does not exist or belongs to
	// someone else.
	GetByOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// ListByOwner returns the owner's tasks, filtered, sorted and paginated
	// per opts.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts TaskListOptions) ([]*domain.Task, error)

	// Update persists changes to a task's description and completed flag,
	// restricted to the given owner.
	// Returns ErrTaskNotFound when the task does not exist or is not owned.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteByOwner removes a task by id, restricted to the given owner.
	// Returns ErrTaskNotFound when the task does not exist or is not owned.
	DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) error

	// DeleteAllByOwner removes every task owned by the user and returns the
	// number of deleted rows. Used by the account cascade delete.
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
