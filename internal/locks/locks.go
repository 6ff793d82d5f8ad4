package locks

import (
	"context"
	"errors"
	"time"
)

// DefaultLease bounds how long a crashed holder can keep a key before it
// self-expires.
const DefaultLease = 30 * time.Second

// ErrNotAcquired is returned when the key is already held by another caller.
// This is a no-wait primitive: callers fail fast and retry at a higher layer.
var ErrNotAcquired = errors.New("lock already held")

// Coordinator provides mutual exclusion keyed by resource id, usable across
// independent worker processes. Acquire returns an opaque token identifying
// the specific acquisition; Release removes the key only while it still holds
// that token, so a slow caller can never destroy a lock that expired and was
// re-acquired by someone else.
type Coordinator interface {
	Acquire(ctx context.Context, key string, lease time.Duration) (string, error)
	Release(ctx context.Context, key, token string) (bool, error)
}
