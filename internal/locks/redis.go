package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lua script for token-gated release. Deleting only when the stored value
// still equals the caller's token closes the stolen-lock race: a delayed
// release cannot remove a key that expired and was re-acquired.
const luaCompareAndDelete = `
if redis.call('get', KEYS[1]) == ARGV[1] then
    return redis.call('del', KEYS[1])
else
    return 0
end
`

var releaseScript = redis.NewScript(luaCompareAndDelete)

// RedisCoordinator implements Coordinator on a Redis key per resource.
type RedisCoordinator struct {
	redis *redis.Client
}

// NewRedisCoordinator creates a Redis-backed lock coordinator.
func NewRedisCoordinator(redisClient *redis.Client) *RedisCoordinator {
	return &RedisCoordinator{redis: redisClient}
}

// Acquire sets the key to a fresh token only if it does not already exist,
// with the lease as TTL. Returns ErrNotAcquired when the key is held.
func (c *RedisCoordinator) Acquire(ctx context.Context, key string, lease time.Duration) (string, error) {
	if c.redis == nil {
		return "", fmt.Errorf("redis client not available")
	}
	if lease <= 0 {
		lease = DefaultLease
	}

	token := uuid.New().String()

	ok, err := c.redis.SetNX(ctx, key, token, lease).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", ErrNotAcquired
	}

	return token, nil
}

// Release removes the key only if it still holds token. Returns false when
// the key expired or belongs to a later acquisition.
func (c *RedisCoordinator) Release(ctx context.Context, key, token string) (bool, error) {
	if c.redis == nil {
		return false, fmt.Errorf("redis client not available")
	}

	// Run tries EVALSHA first and falls back to EVAL when the script is
	// not cached on the server.
	result, err := releaseScript.Run(ctx, c.redis, []string{key}, token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to release lock %s: %w", key, err)
	}

	deleted, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result from release script")
	}

	return deleted == 1, nil
}

// PreloadScripts loads the release script into Redis so the EVALSHA fast
// path works from the first call.
func (c *RedisCoordinator) PreloadScripts(ctx context.Context) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if err := releaseScript.Load(ctx, c.redis).Err(); err != nil {
		return fmt.Errorf("failed to load release script: %w", err)
	}

	return nil
}
