package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/mocks"
	"github.com/itomysh95/task-manager-project/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activeToken := "active-session-token"
	revokedToken := "revoked-session-token"

	newUser := func() *domain.User {
		return &domain.User{
			ID:     userID,
			Name:   "Alice",
			Email:  "alice@example.com",
			Tokens: []string{activeToken},
		}
	}

	newJWTService := func() *mocks.MockJWTService {
		return &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				switch tokenString {
				case activeToken, revokedToken:
					return &auth.Claims{UserID: userID}, nil
				default:
					return nil, auth.ErrInvalidToken
				}
			},
		}
	}

	tests := []struct {
		name       string
		authHeader string
		setupStore func(s *mocks.MockUserStore)
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + activeToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token " + activeToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signed token revoked by logout",
			authHeader: "Bearer " + revokedToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user no longer exists",
			authHeader: "Bearer " + activeToken,
			setupStore: func(s *mocks.MockUserStore) {
				s.Users = map[string]*domain.User{}
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			user := newUser()
			userStore.Users[user.Email] = user
			if tc.setupStore != nil {
				tc.setupStore(userStore)
			}

			mw := NewAuthMiddleware(newJWTService(), userStore)

			var gotUser *domain.User
			var gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUser(r)
				gotToken, _ = GetToken(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				require.NotNil(t, gotUser)
				assert.Equal(t, userID, gotUser.ID)
				assert.Equal(t, activeToken, gotToken)
			} else {
				assert.Nil(t, gotUser)
			}
		})
	}
}
