package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByOwnerFn       func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	ListByOwnerFn      func(ctx context.Context, ownerID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error)
	UpdateFn           func(ctx context.Context, task *domain.Task) error
	DeleteByOwnerFn    func(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteAllByOwnerFn func(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Data for default implementation
	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByOwner implements the TaskStore interface
func (m *MockTaskStore) GetByOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if m.GetByOwnerFn != nil {
		return m.GetByOwnerFn(ctx, id, ownerID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// ListByOwner implements the TaskStore interface. The default implementation
// honors the completed filter, createdAt sorting and limit/skip, which covers
// what service tests exercise.
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.TaskListOptions,
) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, opts)
	}

	var tasks []*domain.Task
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if opts.Completed != nil && task.Completed != *opts.Completed {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if opts.SortDescending {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	if opts.Skip > 0 {
		if opts.Skip >= len(tasks) {
			return nil, nil
		}
		tasks = tasks[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(tasks) {
		tasks = tasks[:opts.Limit]
	}

	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// DeleteByOwner implements the TaskStore interface
func (m *MockTaskStore) DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, id, ownerID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// DeleteAllByOwner implements the TaskStore interface
func (m *MockTaskStore) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if m.DeleteAllByOwnerFn != nil {
		return m.DeleteAllByOwnerFn(ctx, ownerID)
	}

	var deleted int64
	for id, task := range m.Tasks {
		if task.OwnerID == ownerID {
			delete(m.Tasks, id)
			deleted++
		}
	}

	return deleted, nil
}

// WithTx implements the TaskStore interface for transaction support
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	// For mock purposes, just return the same mock
	return m
}
