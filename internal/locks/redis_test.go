package locks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) (*RedisCoordinator, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCoordinator(client), mr
}

func TestRedisCoordinator_AcquireAndRelease(t *testing.T) {
	coordinator, _ := newTestCoordinator(t)
	ctx := context.Background()

	token, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", DefaultLease)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	released, err := coordinator.Release(ctx, "booking:lock:screening:abc", token)
	require.NoError(t, err)
	assert.True(t, released)

	// Fresh acquisition succeeds after release
	token2, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", DefaultLease)
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestRedisCoordinator_AcquireHeldLock(t *testing.T) {
	coordinator, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", DefaultLease)
	require.NoError(t, err)

	_, err = coordinator.Acquire(ctx, "booking:lock:screening:abc", DefaultLease)
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisCoordinator_IndependentKeys(t *testing.T) {
	coordinator, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := coordinator.Acquire(ctx, "booking:lock:screening:one", DefaultLease)
	require.NoError(t, err)

	// A lock on one screening does not block another
	_, err = coordinator.Acquire(ctx, "booking:lock:screening:two", DefaultLease)
	assert.NoError(t, err)
}

func TestRedisCoordinator_ReleaseWrongToken(t *testing.T) {
	coordinator, _ := newTestCoordinator(t)
	ctx := context.Background()

	token, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", DefaultLease)
	require.NoError(t, err)

	released, err := coordinator.Release(ctx, "booking:lock:screening:abc", "not-the-token")
	require.NoError(t, err)
	assert.False(t, released)

	// The holder's token still works
	released, err = coordinator.Release(ctx, "booking:lock:screening:abc", token)
	require.NoError(t, err)
	assert.True(t, released)
}

func TestRedisCoordinator_LeaseExpiry(t *testing.T) {
	coordinator, mr := newTestCoordinator(t)
	ctx := context.Background()

	staleToken, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", 30*time.Second)
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	// The lease expired, so a new holder can acquire
	token, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", 30*time.Second)
	require.NoError(t, err)

	// The stale token must not release the new holder's lock
	released, err := coordinator.Release(ctx, "booking:lock:screening:abc", staleToken)
	require.NoError(t, err)
	assert.False(t, released)

	released, err = coordinator.Release(ctx, "booking:lock:screening:abc", token)
	require.NoError(t, err)
	assert.True(t, released)
}

func TestRedisCoordinator_ZeroLeaseUsesDefault(t *testing.T) {
	coordinator, mr := newTestCoordinator(t)
	ctx := context.Background()

	_, err := coordinator.Acquire(ctx, "booking:lock:screening:abc", 0)
	require.NoError(t, err)

	ttl := mr.TTL("booking:lock:screening:abc")
	assert.Equal(t, DefaultLease, ttl)
}

func TestRedisCoordinator_PreloadScripts(t *testing.T) {
	coordinator, _ := newTestCoordinator(t)

	err := coordinator.PreloadScripts(context.Background())
	assert.NoError(t, err)
}
