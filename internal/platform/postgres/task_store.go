package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.due_date, t.project_id,
	t.assigned_user_id, p.name, a.username,
	(SELECT COUNT(*) FROM comments cc WHERE cc.task_id = t.id)`

// ownedTaskPredicate restricts a statement on tasks to the caller's projects.
// The verb is the owner parameter's position.
const ownedTaskPredicate = `project_id IN (SELECT id FROM projects WHERE owner_id = $%d)`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

func scanTask(row rowScanner) (domain.TaskDetails, error) {
	var (
		t        domain.TaskDetails
		status   string
		assignee sql.NullInt64
		username sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&t.DueDate,
		&t.ProjectID,
		&assignee,
		&t.ProjectName,
		&username,
		&t.CommentCount,
	)
	if err != nil {
		return t, err
	}

	t.Status = domain.TaskStatus(status)
	t.DueDate = t.DueDate.UTC()
	if assignee.Valid {
		id := assignee.Int64
		t.AssignedUserID = &id
	}
	if username.Valid {
		name := username.String
		t.AssignedUsername = &name
	}
	return t, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.TaskDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := taskScope.forOwner(ownerID)
	if filter.ProjectID != nil {
		q.where("t.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		q.where("t.status = ?", string(*filter.Status))
	}
	query, args := q.build(taskColumns, "t.id")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.TaskDetails, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id, ownerID int64) (*domain.TaskDetails, error) {
	query, args := taskScope.forOwner(ownerID).where("t.id = ?", id).build(taskColumns, "")

	t, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.Int64("task_id", id), redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (title, description, status, due_date, project_id, assigned_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
		task.ProjectID,
		nullableID(task.AssignedUserID),
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task", redact.ErrorAttr(err))
		return MapError(err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID))
	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task, ownerID int64) error {
	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4,
			project_id = $5, assigned_user_id = $6
		WHERE id = $7 AND ` + fmt.Sprintf(ownedTaskPredicate, 8)

	return s.exec(ctx, "update", task.ID, query,
		task.Title,
		task.Description,
		string(task.Status),
		task.DueDate,
		task.ProjectID,
		nullableID(task.AssignedUserID),
		task.ID,
		ownerID,
	)
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, ownerID int64) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", "must be one of ToDo, InProgress, Done", domain.ErrInvalidTaskStatus)
	}

	query := `UPDATE tasks SET status = $1 WHERE id = $2 AND ` + fmt.Sprintf(ownedTaskPredicate, 3)
	return s.exec(ctx, "update_status", id, query, string(status), id, ownerID)
}

// UpdateAssignee implements store.TaskStore.UpdateAssignee
func (s *PostgresTaskStore) UpdateAssignee(ctx context.Context, id int64, assigneeID *int64, ownerID int64) error {
	query := `UPDATE tasks SET assigned_user_id = $1 WHERE id = $2 AND ` + fmt.Sprintf(ownedTaskPredicate, 3)
	return s.exec(ctx, "update_assignee", id, query, nullableID(assigneeID), id, ownerID)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND ` + fmt.Sprintf(ownedTaskPredicate, 2)
	return s.exec(ctx, "delete", id, query, id, ownerID)
}

func (s *PostgresTaskStore) exec(ctx context.Context, op string, id int64, query string, args ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("task statement failed",
			slog.String("operation", op),
			slog.Int64("task_id", id),
			redact.ErrorAttr(err))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Debug("task statement applied", slog.String("operation", op), slog.Int64("task_id", id))
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
