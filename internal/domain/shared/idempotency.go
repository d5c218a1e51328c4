package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks request keys that have already been handled.
// The HTTP layer uses it to absorb client retries before they reach the
// posting services; the ledger's unique idempotency index remains the
// authoritative guard.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL. Returns true if the
	// key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsProcessed checks whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)
	Close() error
}
