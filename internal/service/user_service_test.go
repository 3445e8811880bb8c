package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/events"
	"github.com/itomysh95/task-manager-project/internal/mocks"
	"github.com/itomysh95/task-manager-project/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userServiceFixture bundles a UserService with its mock collaborators.
type userServiceFixture struct {
	svc        *UserService
	userStore  *mocks.MockUserStore
	taskStore  *mocks.MockTaskStore
	hasher     *mocks.MockPasswordHasher
	jwtService *mocks.MockJWTService
	emitter    *mocks.MockEventEmitter
}

func newUserServiceFixture() *userServiceFixture {
	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	hasher := &mocks.MockPasswordHasher{ShouldSucceed: true}
	emitter := &mocks.MockEventEmitter{}

	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			// Unique token per login so multi-session tests can tell them apart
			return uuid.NewString(), nil
		},
	}

	return &userServiceFixture{
		svc:        NewUserService(nil, userStore, taskStore, hasher, jwtService, emitter, nil),
		userStore:  userStore,
		taskStore:  taskStore,
		hasher:     hasher,
		jwtService: jwtService,
		emitter:    emitter,
	}
}

// newUserServiceFixtureWithDB swaps in a sqlmock database so operations that
// open a real transaction (account deletion) can run against the mock stores.
func newUserServiceFixtureWithDB(t *testing.T) (*userServiceFixture, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := newUserServiceFixture()
	f.svc = NewUserService(db, f.userStore, f.taskStore, f.hasher, f.jwtService, f.emitter, nil)
	return f, mock
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates account and issues token", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, token, err := f.svc.Register(context.Background(), "Alice", "Alice@Example.com", "tricky pony", 30)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.Equal(t, "alice@example.com", user.Email)
		assert.Empty(t, user.Password, "plaintext must be cleared before persisting")
		assert.Equal(t, "hashed:tricky pony", user.HashedPassword)
		assert.Contains(t, user.Tokens, token)

		stored, err := f.userStore.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("emits welcome event", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		emitted := f.emitter.Emitted()
		require.Len(t, emitted, 1)
		assert.Equal(t, events.EventUserRegistered, emitted[0].Type)
		assert.Equal(t, user.ID, emitted[0].UserID)
		assert.Equal(t, "alice@example.com", emitted[0].Email)
	})

	t.Run("rejects invalid password before touching the store", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		_, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "password123", 30)
		require.ErrorIs(t, err, domain.ErrPasswordForbidden)
		assert.Empty(t, f.userStore.Users)
		assert.Empty(t, f.emitter.Emitted())
	})

	t.Run("duplicate email surfaces store error", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		_, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		_, _, err = f.svc.Register(context.Background(), "Other Alice", "alice@example.com", "tricky pony", 31)
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials issue a fresh token per login", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		registered, firstToken, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		user, secondToken, err := f.svc.Login(context.Background(), "alice@example.com", "tricky pony")
		require.NoError(t, err)

		assert.Equal(t, registered.ID, user.ID)
		assert.NotEqual(t, firstToken, secondToken)
		// Both sessions stay live
		assert.Contains(t, user.Tokens, firstToken)
		assert.Contains(t, user.Tokens, secondToken)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		_, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		f.hasher.ShouldSucceed = false
		_, _, wrongPassErr := f.svc.Login(context.Background(), "alice@example.com", "nope")
		_, _, unknownErr := f.svc.Login(context.Background(), "nobody@example.com", "nope")

		assert.ErrorIs(t, wrongPassErr, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("revokes only the presented token", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, firstToken, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)
		_, secondToken, err := f.svc.Login(context.Background(), "alice@example.com", "tricky pony")
		require.NoError(t, err)

		require.NoError(t, f.svc.Logout(context.Background(), user.ID, firstToken))

		assert.NotContains(t, user.Tokens, firstToken)
		assert.Contains(t, user.Tokens, secondToken)
	})

	t.Run("logout all clears every session", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)
		_, _, err = f.svc.Login(context.Background(), "alice@example.com", "tricky pony")
		require.NoError(t, err)

		require.NoError(t, f.svc.LogoutAll(context.Background(), user.ID))
		assert.Empty(t, user.Tokens)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("removes the user and every owned task in one transaction", func(t *testing.T) {
		t.Parallel()
		f, mock := newUserServiceFixtureWithDB(t)

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		for _, description := range []string{"buy milk", "walk dog"} {
			task, err := domain.NewTask(user.ID, description, false)
			require.NoError(t, err)
			f.taskStore.Tasks[task.ID] = task
		}
		otherTask, err := domain.NewTask(uuid.New(), "someone else's errand", false)
		require.NoError(t, err)
		f.taskStore.Tasks[otherTask.ID] = otherTask

		mock.ExpectBegin()
		mock.ExpectCommit()

		require.NoError(t, f.svc.DeleteAccount(context.Background(), user))
		require.NoError(t, mock.ExpectationsWereMet())

		assert.NotContains(t, f.userStore.Users, user.Email)
		assert.Len(t, f.taskStore.Tasks, 1)
		assert.Contains(t, f.taskStore.Tasks, otherTask.ID)

		emitted := f.emitter.Emitted()
		require.Len(t, emitted, 2) // registration welcome + farewell
		assert.Equal(t, events.EventAccountClosed, emitted[1].Type)
		assert.Equal(t, user.Email, emitted[1].Email)
	})

	t.Run("task sweep failure rolls back and keeps the account", func(t *testing.T) {
		t.Parallel()
		f, mock := newUserServiceFixtureWithDB(t)

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		f.taskStore.DeleteAllByOwnerFn = func(ctx context.Context, ownerID uuid.UUID) (int64, error) {
			return 0, errors.New("connection reset")
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = f.svc.DeleteAccount(context.Background(), user)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())

		assert.Contains(t, f.userStore.Users, user.Email)
		// No farewell for an aborted delete
		require.Len(t, f.emitter.Emitted(), 1)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("updates fields without touching password hash", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)
		hashBefore := user.HashedPassword
		hashCallsBefore := f.hasher.CompareCallCount

		updated, err := f.svc.UpdateProfile(context.Background(), user, ProfileUpdate{
			Name: strPtr("Alice B"),
			Age:  intPtr(31),
		})
		require.NoError(t, err)

		assert.Equal(t, "Alice B", updated.Name)
		assert.Equal(t, 31, updated.Age)
		assert.Equal(t, hashBefore, updated.HashedPassword, "hash must only change when the password does")
		assert.Equal(t, hashCallsBefore, f.hasher.CompareCallCount)
	})

	t.Run("re-hashes when password changes", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		updated, err := f.svc.UpdateProfile(context.Background(), user, ProfileUpdate{
			Password: strPtr("new secret"),
		})
		require.NoError(t, err)
		assert.Equal(t, "hashed:new secret", updated.HashedPassword)
	})

	t.Run("rejects invalid new password", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)
		hashBefore := user.HashedPassword

		_, err = f.svc.UpdateProfile(context.Background(), user, ProfileUpdate{
			Password: strPtr("short"),
		})
		require.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Equal(t, hashBefore, user.HashedPassword)
	})

	t.Run("normalizes updated email", func(t *testing.T) {
		t.Parallel()
		f := newUserServiceFixture()

		user, _, err := f.svc.Register(context.Background(), "Alice", "alice@example.com", "tricky pony", 30)
		require.NoError(t, err)

		updated, err := f.svc.UpdateProfile(context.Background(), user, ProfileUpdate{
			Email: strPtr("  New.Alice@Example.COM "),
		})
		require.NoError(t, err)
		assert.Equal(t, "new.alice@example.com", updated.Email)
	})
}
