package mocks

import (
	"context"

	"github.com/phrazzld/tasktrack-api/internal/service"
)

// MockProjectService implements service.ProjectService for testing
type MockProjectService struct {
	ListFn   func(ctx context.Context, ownerID int64, search string) ([]service.ProjectDTO, error)
	GetFn    func(ctx context.Context, projectID, ownerID int64) (*service.ProjectDTO, error)
	CreateFn func(ctx context.Context, input service.CreateProjectInput, ownerID int64) (*service.ProjectDTO, error)
	UpdateFn func(ctx context.Context, projectID int64, input service.UpdateProjectInput, ownerID int64) (*service.ProjectDTO, error)
	DeleteFn func(ctx context.Context, projectID, ownerID int64) error
}

var _ service.ProjectService = (*MockProjectService)(nil)

func (m *MockProjectService) List(ctx context.Context, ownerID int64, search string) ([]service.ProjectDTO, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, search)
	}
	return []service.ProjectDTO{}, nil
}

func (m *MockProjectService) Get(ctx context.Context, projectID, ownerID int64) (*service.ProjectDTO, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, projectID, ownerID)
	}
	return nil, service.ErrNotFound
}

func (m *MockProjectService) Create(
	ctx context.Context,
	input service.CreateProjectInput,
	ownerID int64,
) (*service.ProjectDTO, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, ownerID)
	}
	return nil, nil
}

func (m *MockProjectService) Update(
	ctx context.Context,
	projectID int64,
	input service.UpdateProjectInput,
	ownerID int64,
) (*service.ProjectDTO, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, projectID, input, ownerID)
	}
	return nil, nil
}

func (m *MockProjectService) Delete(ctx context.Context, projectID, ownerID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, projectID, ownerID)
	}
	return nil
}
