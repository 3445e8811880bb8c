package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/store"
)

// TaskUpdate carries the whitelisted mutable task fields. nil means "leave
// unchanged".
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// TaskService implements task CRUD, always scoped to the authenticated
// owner. A task id belonging to someone else behaves exactly like a missing
// one.
type TaskService struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a TaskService backed by the given store.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// Create makes a new task owned by the caller. The owner is always the
// authenticated user; request bodies cannot override it.
func (s *TaskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	description string,
	completed bool,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, description, completed)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get returns the task with the given id if the caller owns it.
func (s *TaskService) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	return s.taskStore.GetByOwner(ctx, id, ownerID)
}

// List returns the caller's tasks filtered, sorted and paginated per opts.
func (s *TaskService) List(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.TaskListOptions,
) ([]*domain.Task, error) {
	return s.taskStore.ListByOwner(ctx, ownerID, opts)
}

// Update applies a whitelisted update to the caller's task and returns the
// updated record.
func (s *TaskService) Update(
	ctx context.Context,
	id, ownerID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the caller's task and returns the deleted record.
func (s *TaskService) Delete(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.DeleteByOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}

	return task, nil
}
