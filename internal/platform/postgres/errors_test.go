package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasktrack-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"username taken", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usernameUniqueConstraint}, store.ErrUsernameExists},
		{"email taken", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: emailUniqueConstraint}, store.ErrEmailExists},
		{"other unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "something_key"}, store.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_project_id_fkey"}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, store.ErrInvalidEntity},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode}), store.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.want)
		})
	}

	assert.NoError(t, MapError(nil))

	plain := errors.New("connection refused")
	assert.Same(t, plain, MapError(plain))

	assert.False(t, errors.Is(MapError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: emailUniqueConstraint}), store.ErrUsernameExists))
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: foreignKeyViolationCode})))
	assert.False(t, IsForeignKeyViolation(errors.New("x")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound), store.ErrTaskNotFound)
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, nil), store.ErrNotFound)

	countErr := errors.New("driver does not support RowsAffected")
	err := CheckRowsAffected(fakeResult{err: countErr}, store.ErrTaskNotFound)
	require.Error(t, err)
	assert.ErrorIs(t, err, countErr)

	assert.Error(t, CheckRowsAffected(nil, nil))
}
