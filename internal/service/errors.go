package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in *ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotFound indicates the entity does not exist or is outside the
	// caller's ownership scope. The two cases are never distinguished.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the caller can see the entity but may not change it.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("operation not permitted")

	// ErrConflict indicates the operation would duplicate a unique resource.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Specific errors. Each wraps one of the categories above so the API layer
// only has to check the category.
var (
	// ErrProjectAccessDenied is returned when a task would be placed in a
	// project the caller does not own.
	ErrProjectAccessDenied = fmt.Errorf("%w: %w", ErrNotFound, store.ErrProjectNotFound)

	// ErrTaskAccessDenied is returned when a comment would be added to a task
	// outside the caller's scope.
	ErrTaskAccessDenied = fmt.Errorf("%w: %w", ErrNotFound, store.ErrTaskNotFound)

	// ErrNotCommentAuthor is returned when someone other than the author tries
	// to change or remove a comment.
	ErrNotCommentAuthor = fmt.Errorf("%w: only the author may modify a comment", ErrForbidden)

	// ErrAssigneeNotFound is returned when a task is assigned to a user id
	// that does not exist.
	ErrAssigneeNotFound = fmt.Errorf("%w: assigned user does not exist", domain.ErrValidation)

	// ErrUserExists is returned when the username or email is already registered.
	ErrUserExists = fmt.Errorf("%w: username or email already taken", ErrConflict)
)

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// translateStoreError turns store sentinels into service sentinels and
// wraps everything else. Service sentinels and validation errors pass
// through unchanged.
func translateStoreError(service, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden), errors.Is(err, ErrConflict):
		return err
	case store.IsNotFoundError(err):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case store.IsDuplicateError(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrValidation):
		return err
	case errors.Is(err, store.ErrInvalidEntity):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	default:
		return NewServiceError(service, op, err)
	}
}

// isExpected reports whether err is a caller-facing outcome rather than a
// failure worth an error log.
func isExpected(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err)
}
