package cache

import (
	"context"
	"time"
)

// Cache is read-through bundle storage. Entries are only ever written
// whole and expire by TTL; there is no invalidation path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
