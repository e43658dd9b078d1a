package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPostgresProjectStore_ListSearch(t *testing.T) {
	db, mock := newMock(t)
	projects := NewPostgresProjectStore(db, nil)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE p.owner_id = $1 AND (strpos(p.name, $2) > 0 OR strpos(p.description, $2) > 0) ORDER BY p.id",
	)).
		WithArgs(int64(1), "Alpha").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "owner_id", "username", "count"}).
			AddRow(int64(4), "Alpha", "first", created, int64(1), "alice", int64(2)))

	got, err := projects.List(context.Background(), 1, "Alpha")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, "alice", got[0].OwnerUsername)
	assert.Equal(t, 2, got[0].TaskCount)
	assert.True(t, created.Equal(got[0].CreatedAt))
}

func TestPostgresProjectStore_ListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	projects := NewPostgresProjectStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.owner_id = $1 ORDER BY p.id")).
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "owner_id", "username", "count"}))

	got, err := projects.List(context.Background(), 0, "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresProjectStore_GetByIDOutOfScope(t *testing.T) {
	db, mock := newMock(t)
	projects := NewPostgresProjectStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.owner_id = $1 AND p.id = $2")).
		WithArgs(int64(2), int64(10)).
		WillReturnError(sql.ErrNoRows)

	got, err := projects.GetByID(context.Background(), 10, 2)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestPostgresProjectStore_UpdateScopedToOwner(t *testing.T) {
	db, mock := newMock(t)
	projects := NewPostgresProjectStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET name = $1, description = $2 WHERE id = $3 AND owner_id = $4")).
		WithArgs("Renamed", "", int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := projects.Update(context.Background(), &domain.Project{ID: 10, Name: "Renamed", OwnerID: 2})
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestPostgresUserStore_CreateDuplicateUsername(t *testing.T) {
	db, mock := newMock(t)
	users := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usernameUniqueConstraint})

	err := users.Create(context.Background(), &domain.User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "hash",
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)
}

func TestPostgresUserStore_CreateSetsID(t *testing.T) {
	db, mock := newMock(t)
	users := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	user := &domain.User{Username: "bob", Email: "bob@example.com", HashedPassword: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	assert.Equal(t, int64(42), user.ID)
}

func TestPostgresTaskStore_GetByIDProjections(t *testing.T) {
	db, mock := newMock(t)
	tasks := NewPostgresTaskStore(db, nil)

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "title", "description", "status", "due_date", "project_id",
		"assigned_user_id", "name", "username", "count"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.owner_id = $1 AND t.id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), "T1", "", "InProgress", due, int64(3), nil, "Alpha", nil, int64(0)))

	got, err := tasks.GetByID(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	assert.Equal(t, "Alpha", got.ProjectName)
	assert.Nil(t, got.AssignedUserID)
	assert.Nil(t, got.AssignedUsername)
	assert.Zero(t, got.CommentCount)
}

func TestPostgresTaskStore_ListFilters(t *testing.T) {
	db, mock := newMock(t)
	tasks := NewPostgresTaskStore(db, nil)

	projectID := int64(3)
	status := domain.TaskStatusDone
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.owner_id = $1 AND t.project_id = $2 AND t.status = $3 ORDER BY t.id")).
		WithArgs(int64(1), int64(3), "Done").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := tasks.List(context.Background(), 1, domain.TaskFilter{ProjectID: &projectID, Status: &status})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPostgresTaskStore_UpdateStatusOutOfScope(t *testing.T) {
	db, mock := newMock(t)
	tasks := NewPostgresTaskStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE tasks SET status = $1 WHERE id = $2 AND project_id IN (SELECT id FROM projects WHERE owner_id = $3)",
	)).
		WithArgs("Done", int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := tasks.UpdateStatus(context.Background(), 5, domain.TaskStatusDone, 2)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = tasks.UpdateStatus(context.Background(), 5, domain.TaskStatus("Blocked"), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestPostgresCommentStore_DeleteRequiresAuthor(t *testing.T) {
	db, mock := newMock(t)
	comments := NewPostgresCommentStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1 AND author_id = $2")).
		WithArgs(int64(8), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, comments.Delete(context.Background(), 8, 1))
}

func TestPostgresStores_PanicOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresProjectStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresCommentStore(nil, nil) })
}
