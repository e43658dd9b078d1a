package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// CommentService provides comment operations. Comments are visible to the
// owner of the task's project; only the author may change them.
type CommentService interface {
	// ListByTask returns the task's comments oldest first. A task the caller
	// cannot see yields an empty slice.
	ListByTask(ctx context.Context, taskID, ownerID int64) ([]CommentDTO, error)

	// Get returns one visible comment.
	Get(ctx context.Context, commentID, ownerID int64) (*CommentDTO, error)

	// Create adds a comment authored by the caller. Returns
	// ErrTaskAccessDenied when the task is not visible.
	Create(ctx context.Context, input CreateCommentInput, ownerID int64) (*CommentDTO, error)

	// Update replaces the text. Returns ErrNotFound when the comment is not
	// visible and ErrNotCommentAuthor when the caller did not write it.
	Update(ctx context.Context, commentID int64, input UpdateCommentInput, ownerID int64) (*CommentDTO, error)

	// Delete removes the comment, with the same checks as Update.
	Delete(ctx context.Context, commentID, ownerID int64) error
}

type commentServiceImpl struct {
	commentStore store.CommentStore
	taskStore    store.TaskStore
	transactor   store.Transactor
	logger       *slog.Logger
}

// NewCommentService creates a new CommentService.
// It returns an error if any of the required dependencies are nil.
func NewCommentService(
	commentStore store.CommentStore,
	taskStore store.TaskStore,
	transactor store.Transactor,
	logger *slog.Logger,
) (CommentService, error) {
	if commentStore == nil {
		return nil, domain.NewValidationError("commentStore", "cannot be nil", domain.ErrValidation)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &commentServiceImpl{
		commentStore: commentStore,
		taskStore:    taskStore,
		transactor:   transactor,
		logger:       logger.With(slog.String("component", "comment_service")),
	}, nil
}

func (s *commentServiceImpl) ListByTask(ctx context.Context, taskID, ownerID int64) ([]CommentDTO, error) {
	comments, err := s.commentStore.ListByTask(ctx, taskID, ownerID)
	if err != nil {
		s.logFailure(ctx, "list", err, 0, ownerID)
		return nil, translateStoreError("comment", "list", err)
	}

	return toCommentDTOs(comments), nil
}

func (s *commentServiceImpl) Get(ctx context.Context, commentID, ownerID int64) (*CommentDTO, error) {
	comment, err := s.commentStore.GetByID(ctx, commentID, ownerID)
	if err != nil {
		s.logFailure(ctx, "get", err, commentID, ownerID)
		return nil, translateStoreError("comment", "get", err)
	}

	dto := ToCommentDTO(*comment)
	return &dto, nil
}

func (s *commentServiceImpl) Create(
	ctx context.Context,
	input CreateCommentInput,
	ownerID int64,
) (*CommentDTO, error) {
	comment, err := domain.NewComment(input.Text, input.TaskID, ownerID)
	if err != nil {
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.taskStore.WithTx(tx).GetByID(ctx, comment.TaskID, ownerID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskAccessDenied
			}
			return err
		}
		return s.commentStore.WithTx(tx).Create(ctx, comment)
	})
	if err != nil {
		s.logFailure(ctx, "create", err, 0, ownerID)
		return nil, translateStoreError("comment", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("task_id", comment.TaskID),
		slog.Int64("author_id", ownerID))

	return s.Get(ctx, comment.ID, ownerID)
}

func (s *commentServiceImpl) Update(
	ctx context.Context,
	commentID int64,
	input UpdateCommentInput,
	ownerID int64,
) (*CommentDTO, error) {
	text := strings.TrimSpace(input.Text)
	if err := domain.ValidateCommentText(text); err != nil {
		return nil, err
	}

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		comments := s.commentStore.WithTx(tx)
		if err := requireAuthor(ctx, comments, commentID, ownerID); err != nil {
			return err
		}
		return comments.UpdateText(ctx, commentID, text, ownerID)
	})
	if err != nil {
		s.logFailure(ctx, "update", err, commentID, ownerID)
		return nil, translateStoreError("comment", "update", err)
	}

	return s.Get(ctx, commentID, ownerID)
}

func (s *commentServiceImpl) Delete(ctx context.Context, commentID, ownerID int64) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		comments := s.commentStore.WithTx(tx)
		if err := requireAuthor(ctx, comments, commentID, ownerID); err != nil {
			return err
		}
		return comments.Delete(ctx, commentID, ownerID)
	})
	if err != nil {
		s.logFailure(ctx, "delete", err, commentID, ownerID)
		return translateStoreError("comment", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("author_id", ownerID))
	return nil
}

// requireAuthor checks visibility first, then authorship.
func requireAuthor(ctx context.Context, comments store.CommentStore, commentID, callerID int64) error {
	comment, err := comments.GetByID(ctx, commentID, callerID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return ErrNotCommentAuthor
	}
	return nil
}

func (s *commentServiceImpl) logFailure(ctx context.Context, op string, err error, commentID, ownerID int64) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	attrs := []any{
		slog.String("op", op),
		redact.ErrorAttr(err),
		slog.Int64("comment_id", commentID),
		slog.Int64("owner_id", ownerID),
	}
	if isExpected(err) {
		log.Debug("comment operation rejected", attrs...)
		return
	}
	log.Error("comment operation failed", attrs...)
}
