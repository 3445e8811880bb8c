package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/api/shared"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/mocks"
	"github.com/itomysh95/task-manager-project/internal/service"
	"github.com/itomysh95/task-manager-project/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskListOptions(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name  string
		query string
		want  store.TaskListOptions
	}{
		{
			name:  "no parameters",
			query: "",
			want:  store.TaskListOptions{},
		},
		{
			name:  "completed true",
			query: "completed=true",
			want:  store.TaskListOptions{Completed: boolPtr(true)},
		},
		{
			name:  "completed false",
			query: "completed=false",
			want:  store.TaskListOptions{Completed: boolPtr(false)},
		},
		{
			name:  "non-boolean completed ignored",
			query: "completed=banana",
			want:  store.TaskListOptions{},
		},
		{
			name:  "sort descending",
			query: "sortBy=createdAt:desc",
			want:  store.TaskListOptions{SortBy: "createdAt", SortDescending: true},
		},
		{
			name:  "sort without direction is ascending",
			query: "sortBy=createdAt",
			want:  store.TaskListOptions{SortBy: "createdAt"},
		},
		{
			name:  "unknown direction is ascending",
			query: "sortBy=createdAt:sideways",
			want:  store.TaskListOptions{SortBy: "createdAt"},
		},
		{
			name:  "limit and skip",
			query: "limit=10&skip=20",
			want:  store.TaskListOptions{Limit: 10, Skip: 20},
		},
		{
			name:  "non-numeric limit and skip fall back",
			query: "limit=ten&skip=twenty",
			want:  store.TaskListOptions{},
		},
		{
			name:  "negative limit and skip fall back",
			query: "limit=-5&skip=-5",
			want:  store.TaskListOptions{},
		},
		{
			name:  "all combined",
			query: "completed=true&sortBy=updatedAt:desc&limit=3&skip=6",
			want: store.TaskListOptions{
				Completed:      boolPtr(true),
				SortBy:         "updatedAt",
				SortDescending: true,
				Limit:          3,
				Skip:           6,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/tasks?"+tc.query, nil)
			got := parseTaskListOptions(req)

			if tc.want.Completed == nil {
				assert.Nil(t, got.Completed)
			} else {
				require.NotNil(t, got.Completed)
				assert.Equal(t, *tc.want.Completed, *got.Completed)
			}
			assert.Equal(t, tc.want.SortBy, got.SortBy)
			assert.Equal(t, tc.want.SortDescending, got.SortDescending)
			assert.Equal(t, tc.want.Limit, got.Limit)
			assert.Equal(t, tc.want.Skip, got.Skip)
		})
	}
}

// newTaskTestRequest builds a request carrying an authenticated user and a
// chi route context with the given task id, mirroring what the router and
// auth middleware provide in production.
func newTaskTestRequest(
	t *testing.T,
	method, target, body string,
	user *domain.User,
	taskID uuid.UUID,
) *http.Request {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := context.WithValue(req.Context(), shared.UserContextKey, user)

	routeCtx := chi.NewRouteContext()
	if taskID != uuid.Nil {
		routeCtx.URLParams.Add("id", taskID.String())
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	owner := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	stranger := &domain.User{ID: uuid.New(), Name: "Mallory", Email: "mallory@example.com"}

	newHandler := func(t *testing.T) (*TaskHandler, *domain.Task) {
		t.Helper()
		taskStore := mocks.NewMockTaskStore()
		task, err := domain.NewTask(owner.ID, "buy milk", false)
		require.NoError(t, err)
		taskStore.Tasks[task.ID] = task
		return NewTaskHandler(service.NewTaskService(taskStore, nil)), task
	}

	t.Run("updates allowed fields", func(t *testing.T) {
		t.Parallel()
		handler, task := newHandler(t)

		req := newTaskTestRequest(t,
			http.MethodPatch, "/tasks/"+task.ID.String(),
			`{"description":"buy oat milk","completed":true}`,
			owner, task.ID)
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "buy oat milk", task.Description)
		assert.True(t, task.Completed)
	})

	t.Run("rejects update with disallowed field", func(t *testing.T) {
		t.Parallel()
		handler, task := newHandler(t)

		req := newTaskTestRequest(t,
			http.MethodPatch, "/tasks/"+task.ID.String(),
			`{"description":"hijacked","owner":"`+stranger.ID.String()+`"}`,
			owner, task.ID)
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "buy milk", task.Description, "no field should be applied")
	})

	t.Run("task owned by someone else is 404", func(t *testing.T) {
		t.Parallel()
		handler, task := newHandler(t)

		req := newTaskTestRequest(t,
			http.MethodPatch, "/tasks/"+task.ID.String(),
			`{"completed":true}`,
			stranger, task.ID)
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, task.Completed)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(t)

		req := newTaskTestRequest(t,
			http.MethodPatch, "/tasks/not-a-uuid", `{"completed":true}`, owner, uuid.Nil)
		routeCtx := chi.RouteContext(req.Context())
		routeCtx.URLParams.Add("id", "not-a-uuid")
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	owner := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	taskStore := mocks.NewMockTaskStore()
	task, err := domain.NewTask(owner.ID, "buy milk", false)
	require.NoError(t, err)
	taskStore.Tasks[task.ID] = task

	handler := NewTaskHandler(service.NewTaskService(taskStore, nil))

	req := newTaskTestRequest(t, http.MethodDelete, "/tasks/"+task.ID.String(), "", owner, task.ID)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), task.ID.String(), "deleted task is echoed back")
	assert.Empty(t, taskStore.Tasks)
}
