package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// CommentStore defines the interface for comment persistence. A comment is
// visible when its task's project belongs to ownerID; changes are further
// restricted to the author.
type CommentStore interface {
	// ListByTask returns the visible comments of a task ordered by creation
	// time. An out-of-scope task yields an empty slice, not an error.
	ListByTask(ctx context.Context, taskID, ownerID int64) ([]domain.CommentDetails, error)

	// GetByID returns a visible comment with its task title and author username.
	// Returns ErrCommentNotFound when not visible.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.CommentDetails, error)

	// Create saves a new comment and sets comment.ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// UpdateText replaces the text of a comment written by authorID.
	// Returns ErrCommentNotFound when no such comment exists for that author.
	UpdateText(ctx context.Context, id int64, text string, authorID int64) error

	// Delete removes a comment written by authorID.
	Delete(ctx context.Context, id, authorID int64) error

	// WithTx returns a new CommentStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CommentStore
}
