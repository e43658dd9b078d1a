package mocks

import (
	"context"

	"github.com/phrazzld/tasktrack-api/internal/service"
)

// MockCommentService implements service.CommentService for testing
type MockCommentService struct {
	ListByTaskFn func(ctx context.Context, taskID, ownerID int64) ([]service.CommentDTO, error)
	GetFn        func(ctx context.Context, commentID, ownerID int64) (*service.CommentDTO, error)
	CreateFn     func(ctx context.Context, input service.CreateCommentInput, ownerID int64) (*service.CommentDTO, error)
	UpdateFn     func(ctx context.Context, commentID int64, input service.UpdateCommentInput, ownerID int64) (*service.CommentDTO, error)
	DeleteFn     func(ctx context.Context, commentID, ownerID int64) error
}

var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) ListByTask(ctx context.Context, taskID, ownerID int64) ([]service.CommentDTO, error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID, ownerID)
	}
	return []service.CommentDTO{}, nil
}

func (m *MockCommentService) Get(ctx context.Context, commentID, ownerID int64) (*service.CommentDTO, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, commentID, ownerID)
	}
	return nil, service.ErrNotFound
}

func (m *MockCommentService) Create(
	ctx context.Context,
	input service.CreateCommentInput,
	ownerID int64,
) (*service.CommentDTO, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, ownerID)
	}
	return nil, nil
}

func (m *MockCommentService) Update(
	ctx context.Context,
	commentID int64,
	input service.UpdateCommentInput,
	ownerID int64,
) (*service.CommentDTO, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, commentID, input, ownerID)
	}
	return nil, nil
}

func (m *MockCommentService) Delete(ctx context.Context, commentID, ownerID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, commentID, ownerID)
	}
	return nil
}
