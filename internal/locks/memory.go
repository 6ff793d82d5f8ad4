package locks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token    string
	deadline time.Time
}

// MemoryCoordinator implements Coordinator on a process-local map. It mirrors
// the Redis semantics (set-if-absent with TTL, compare-and-delete) for tests
// and single-process deployments.
type MemoryCoordinator struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCoordinator creates an in-memory lock coordinator.
func NewMemoryCoordinator() *MemoryCoordinator {
	return &MemoryCoordinator{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Acquire sets the key if absent or expired. Returns ErrNotAcquired when the
// key is held within its lease window.
func (c *MemoryCoordinator) Acquire(ctx context.Context, key string, lease time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if lease <= 0 {
		lease = DefaultLease
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, held := c.entries[key]; held && now.Before(entry.deadline) {
		return "", ErrNotAcquired
	}

	token := uuid.New().String()
	c.entries[key] = memoryEntry{token: token, deadline: now.Add(lease)}
	return token, nil
}

// Release deletes the key only while it still holds token.
func (c *MemoryCoordinator) Release(ctx context.Context, key, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, held := c.entries[key]
	if !held || entry.token != token || !c.now().Before(entry.deadline) {
		return false, nil
	}

	delete(c.entries, key)
	return true, nil
}
