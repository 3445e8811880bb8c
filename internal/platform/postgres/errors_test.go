package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/itomysh95/task-manager-project/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil stays nil",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows becomes not found",
			err:     sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name:    "unique violation becomes duplicate",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "foreign key violation becomes invalid entity",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_owner_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "check violation becomes invalid entity",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "users_age_check"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name: "wrapped pg error is still recognized",
			err: fmt.Errorf("insert failed: %w",
				&pgconn.PgError{Code: uniqueViolationCode}),
			wantErr: store.ErrDuplicate,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.err)
			if tc.wantErr == nil && tc.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantErr)
		})
	}

	t.Run("unrecognized errors pass through", func(t *testing.T) {
		t.Parallel()
		plain := errors.New("connection refused")
		assert.Equal(t, plain, MapError(plain))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}
