package sendgrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itomysh95/task-manager-project/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Parallel()

	t.Run("posts the v3 mail payload", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		var gotPayload sgMailPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &gotPayload))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sender := NewSender(config.EmailConfig{
			SendGridAPIKey: "sg-test-key",
			FromAddress:    "noreply@example.com",
			FromName:       "Task Manager",
		}, nil)
		sender.endpoint = server.URL

		err := sender.Send(context.Background(), "alice@example.com", "Welcome to the app", "Hello Alice")
		require.NoError(t, err)

		assert.Equal(t, "Bearer sg-test-key", gotAuth)
		require.Len(t, gotPayload.Personalizations, 1)
		require.Len(t, gotPayload.Personalizations[0].To, 1)
		assert.Equal(t, "alice@example.com", gotPayload.Personalizations[0].To[0].Email)
		assert.Equal(t, "noreply@example.com", gotPayload.From.Email)
		assert.Equal(t, "Welcome to the app", gotPayload.Subject)
		require.Len(t, gotPayload.Content, 1)
		assert.Equal(t, "text/plain", gotPayload.Content[0].Type)
		assert.Equal(t, "Hello Alice", gotPayload.Content[0].Value)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
		}))
		defer server.Close()

		sender := NewSender(config.EmailConfig{SendGridAPIKey: "bad-key"}, nil)
		sender.endpoint = server.URL

		err := sender.Send(context.Background(), "alice@example.com", "Welcome", "Hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing api key skips delivery without error", func(t *testing.T) {
		t.Parallel()

		sender := NewSender(config.EmailConfig{}, nil)
		// No endpoint override: a request would fail loudly if one were made
		assert.NoError(t, sender.Send(context.Background(), "alice@example.com", "Welcome", "Hello"))
	})
}
