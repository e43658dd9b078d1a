package mocks

import (
	"context"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn         func(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]service.TaskDTO, error)
	GetFn          func(ctx context.Context, taskID, ownerID int64) (*service.TaskDTO, error)
	CreateFn       func(ctx context.Context, input service.CreateTaskInput, ownerID int64) (*service.TaskDTO, error)
	UpdateFn       func(ctx context.Context, taskID int64, input service.UpdateTaskInput, ownerID int64) (*service.TaskDTO, error)
	UpdateStatusFn func(ctx context.Context, taskID int64, status domain.TaskStatus, ownerID int64) (*service.TaskDTO, error)
	AssignFn       func(ctx context.Context, taskID int64, assigneeID *int64, ownerID int64) (*service.TaskDTO, error)
	DeleteFn       func(ctx context.Context, taskID, ownerID int64) error
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]service.TaskDTO, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter)
	}
	return []service.TaskDTO{}, nil
}

func (m *MockTaskService) Get(ctx context.Context, taskID, ownerID int64) (*service.TaskDTO, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, taskID, ownerID)
	}
	return nil, service.ErrNotFound
}

func (m *MockTaskService) Create(
	ctx context.Context,
	input service.CreateTaskInput,
	ownerID int64,
) (*service.TaskDTO, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) Update(
	ctx context.Context,
	taskID int64,
	input service.UpdateTaskInput,
	ownerID int64,
) (*service.TaskDTO, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, taskID, input, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateStatus(
	ctx context.Context,
	taskID int64,
	status domain.TaskStatus,
	ownerID int64,
) (*service.TaskDTO, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, taskID, status, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) Assign(
	ctx context.Context,
	taskID int64,
	assigneeID *int64,
	ownerID int64,
) (*service.TaskDTO, error) {
	if m.AssignFn != nil {
		return m.AssignFn(ctx, taskID, assigneeID, ownerID)
	}
	return nil, nil
}

func (m *MockTaskService) Delete(ctx context.Context, taskID, ownerID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, taskID, ownerID)
	}
	return nil
}
