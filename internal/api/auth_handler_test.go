package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/mocks"
	"github.com/itomysh95/task-manager-project/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthHandlerFixture wires an AuthHandler onto a UserService backed
// entirely by mocks.
func newAuthHandlerFixture() (*AuthHandler, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return uuid.NewString(), nil
		},
	}
	hasher := &mocks.MockPasswordHasher{ShouldSucceed: true}

	userService := service.NewUserService(
		nil, userStore, mocks.NewMockTaskStore(), hasher, jwtService, nil, nil)
	return NewAuthHandler(userService), userStore
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()

		rec := postJSON(handler.Register, "/users",
			`{"name":"Alice","email":"alice@example.com","password":"tricky pony","age":30}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			User struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Alice", resp.User.Name)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)

		// Sensitive fields never appear in the response body
		body := rec.Body.String()
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "tokens")
		assert.NotContains(t, body, "hashed")
	})

	t.Run("missing required fields is 400", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()

		rec := postJSON(handler.Register, "/users", `{"name":"Alice"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forbidden password is 400", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()

		rec := postJSON(handler.Register, "/users",
			`{"name":"Alice","email":"alice@example.com","password":"bigpassword","age":30}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()

		body := `{"name":"Alice","email":"alice@example.com","password":"tricky pony","age":30}`
		rec := postJSON(handler.Register, "/users", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postJSON(handler.Register, "/users", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()

		rec := postJSON(handler.Register, "/users", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, handler *AuthHandler) {
		t.Helper()
		rec := postJSON(handler.Register, "/users",
			`{"name":"Alice","email":"alice@example.com","password":"tricky pony","age":30}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("valid credentials return token", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture()
		register(t, handler)

		rec := postJSON(handler.Login, "/users/login",
			`{"email":"alice@example.com","password":"tricky pony"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("all failures share one generic message", func(t *testing.T) {
		t.Parallel()

		bodies := []string{
			`{"email":"nobody@example.com","password":"tricky pony"}`, // unknown email
			`{"email":"alice@example.com"}`,                           // missing password
			`{"email":"not-an-email","password":"whatever"}`,          // malformed email
		}

		for _, body := range bodies {
			handler, _ := newAuthHandlerFixture()
			register(t, handler)

			rec := postJSON(handler.Login, "/users/login", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Unable to login")
		}
	})

	t.Run("wrong password uses the same generic message", func(t *testing.T) {
		t.Parallel()
		handler, userStore := newAuthHandlerFixture()
		register(t, handler)

		// Force the comparison to fail regardless of the mock hasher
		user := userStore.Users["alice@example.com"]
		require.NotNil(t, user)

		failingHandler, failingStore := newAuthHandlerFixtureWithHasher(&mocks.MockPasswordHasher{ShouldSucceed: false})
		failingStore.Users["alice@example.com"] = user

		rec := postJSON(failingHandler.Login, "/users/login",
			`{"email":"alice@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unable to login")
	})
}

// newAuthHandlerFixtureWithHasher is like newAuthHandlerFixture but with an
// explicit password hasher, for tests that need comparisons to fail.
func newAuthHandlerFixtureWithHasher(hasher *mocks.MockPasswordHasher) (*AuthHandler, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return uuid.NewString(), nil
		},
	}

	userService := service.NewUserService(
		nil, userStore, mocks.NewMockTaskStore(), hasher, jwtService, nil, nil)
	return NewAuthHandler(userService), userStore
}
