package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityFromContext(t *testing.T) {
	t.Parallel()

	t.Run("missing identity resolves to user zero", func(t *testing.T) {
		t.Parallel()

		id := IdentityFromContext(context.Background())
		assert.Equal(t, int64(0), id.UserID)
		assert.False(t, id.Authenticated)
	})

	t.Run("nil context", func(t *testing.T) {
		t.Parallel()

		//nolint:staticcheck // exercising the nil guard
		assert.Equal(t, Identity{}, IdentityFromContext(nil))
	})

	t.Run("wrong value type", func(t *testing.T) {
		t.Parallel()

		ctx := context.WithValue(context.Background(), IdentityContextKey, "42")
		assert.Equal(t, Identity{}, IdentityFromContext(ctx))
	})

	t.Run("stored identity", func(t *testing.T) {
		t.Parallel()

		want := Identity{UserID: 42, Username: "alice", Authenticated: true}
		ctx := WithIdentity(context.Background(), want)
		assert.Equal(t, want, IdentityFromContext(ctx))
	})
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
