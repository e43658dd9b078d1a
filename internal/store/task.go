package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// TaskStore defines the interface for task persistence. A task is in scope
// when its project belongs to ownerID.
type TaskStore interface {
	// List returns in-scope tasks ordered by id, narrowed by filter.
	List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.TaskDetails, error)

	// GetByID returns the task with its project name, assignee username and
	// comment count. Returns ErrTaskNotFound when out of scope.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.TaskDetails, error)

	// Create saves a new task and sets task.ID. The caller has already
	// checked ownership of task.ProjectID.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites every mutable field. Scope is checked against the
	// task's current project. Returns ErrTaskNotFound when out of scope.
	Update(ctx context.Context, task *domain.Task, ownerID int64) error

	// UpdateStatus changes only the status.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, ownerID int64) error

	// UpdateAssignee sets or clears (nil) the assigned user.
	UpdateAssignee(ctx context.Context, id int64, assigneeID *int64, ownerID int64) error

	// Delete removes the task and its comments.
	Delete(ctx context.Context, id, ownerID int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
