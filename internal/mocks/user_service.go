package mocks

import (
	"context"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn     func(ctx context.Context, username, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn      func(ctx context.Context, userID int64) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return nil, nil
}

// Authenticate implements service.UserService
func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return nil, nil
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, nil
}
