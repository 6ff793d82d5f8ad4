package locks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCoordinator_AcquireAndRelease(t *testing.T) {
	coordinator := NewMemoryCoordinator()
	ctx := context.Background()

	token, err := coordinator.Acquire(ctx, "key", DefaultLease)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = coordinator.Acquire(ctx, "key", DefaultLease)
	assert.ErrorIs(t, err, ErrNotAcquired)

	released, err := coordinator.Release(ctx, "key", token)
	require.NoError(t, err)
	assert.True(t, released)

	_, err = coordinator.Acquire(ctx, "key", DefaultLease)
	assert.NoError(t, err)
}

func TestMemoryCoordinator_ReleaseWrongToken(t *testing.T) {
	coordinator := NewMemoryCoordinator()
	ctx := context.Background()

	_, err := coordinator.Acquire(ctx, "key", DefaultLease)
	require.NoError(t, err)

	released, err := coordinator.Release(ctx, "key", "wrong")
	require.NoError(t, err)
	assert.False(t, released)
}

func TestMemoryCoordinator_LeaseExpiry(t *testing.T) {
	coordinator := NewMemoryCoordinator()
	ctx := context.Background()

	current := time.Now()
	coordinator.now = func() time.Time { return current }

	staleToken, err := coordinator.Acquire(ctx, "key", 30*time.Second)
	require.NoError(t, err)

	current = current.Add(31 * time.Second)

	// Expired lease no longer blocks acquisition
	token, err := coordinator.Acquire(ctx, "key", 30*time.Second)
	require.NoError(t, err)

	// Stale token cannot release the new holder's lock
	released, err := coordinator.Release(ctx, "key", staleToken)
	require.NoError(t, err)
	assert.False(t, released)

	released, err = coordinator.Release(ctx, "key", token)
	require.NoError(t, err)
	assert.True(t, released)
}

func TestMemoryCoordinator_CancelledContext(t *testing.T) {
	coordinator := NewMemoryCoordinator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := coordinator.Acquire(ctx, "key", DefaultLease)
	assert.Error(t, err)
}
