package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		ErrNotFound,
		ErrUserNotFound,
		ErrProjectNotFound,
		ErrTaskNotFound,
		ErrCommentNotFound,
		fmt.Errorf("loading task: %w", ErrTaskNotFound),
	} {
		assert.True(t, IsNotFoundError(err), err.Error())
		assert.False(t, IsDuplicateError(err), err.Error())
	}

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("some error")))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrUsernameExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("register: %w", ErrEmailExists)))
	assert.False(t, IsDuplicateError(ErrInvalidEntity))
	assert.False(t, errors.Is(ErrUsernameExists, ErrEmailExists))
}

func TestEntityErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "entity not found: project", ErrProjectNotFound.Error())
	assert.Equal(t, "entity already exists: username", ErrUsernameExists.Error())
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("task", "update", "query failed", cause)

	assert.Equal(t, "update operation on task failed: query failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("task", "delete", "nothing to delete", nil)
	assert.Equal(t, "delete operation on task failed: nothing to delete", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
