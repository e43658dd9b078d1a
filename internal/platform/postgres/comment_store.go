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

const commentColumns = `c.id, c.text, c.created_at, c.task_id, c.author_id, t.title, u.username`

// PostgresCommentStore implements the store.CommentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx implements store.CommentStore.WithTx
func (s *PostgresCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

func scanComment(row rowScanner) (domain.CommentDetails, error) {
	var c domain.CommentDetails
	err := row.Scan(
		&c.ID,
		&c.Text,
		&c.CreatedAt,
		&c.TaskID,
		&c.AuthorID,
		&c.TaskTitle,
		&c.AuthorUsername,
	)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

// ListByTask implements store.CommentStore.ListByTask
func (s *PostgresCommentStore) ListByTask(ctx context.Context, taskID, ownerID int64) ([]domain.CommentDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := commentScope.forOwner(ownerID).
		where("c.task_id = ?", taskID).
		build(commentColumns, "c.created_at, c.id")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list comments",
			slog.Int64("task_id", taskID), redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]domain.CommentDetails, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// GetByID implements store.CommentStore.GetByID
func (s *PostgresCommentStore) GetByID(ctx context.Context, id, ownerID int64) (*domain.CommentDetails, error) {
	query, args := commentScope.forOwner(ownerID).where("c.id = ?", id).build(commentColumns, "")

	c, err := scanComment(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get comment",
			slog.Int64("comment_id", id), redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	return &c, nil
}

// Create implements store.CommentStore.Create
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO comments (text, created_at, task_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		comment.Text,
		comment.CreatedAt,
		comment.TaskID,
		comment.AuthorID,
	).Scan(&comment.ID)
	if err != nil {
		log.Error("failed to create comment", redact.ErrorAttr(err))
		return MapError(err)
	}

	log.Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("task_id", comment.TaskID))
	return nil
}

// UpdateText implements store.CommentStore.UpdateText
func (s *PostgresCommentStore) UpdateText(ctx context.Context, id int64, text string, authorID int64) error {
	if err := domain.ValidateCommentText(text); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2 AND author_id = $3`, text, id, authorID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update comment",
			slog.Int64("comment_id", id), redact.ErrorAttr(err))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCommentNotFound)
}

// Delete implements store.CommentStore.Delete
func (s *PostgresCommentStore) Delete(ctx context.Context, id, authorID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete comment",
			slog.Int64("comment_id", id), redact.ErrorAttr(err))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCommentNotFound)
}
