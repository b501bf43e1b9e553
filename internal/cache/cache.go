// Package cache stores normalized geocoding payloads keyed by query.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store safe for concurrent use.
// Expiry is the only eviction policy.
type Store interface {
	// Get returns the payload stored under key; ok is false on a miss or an expired entry
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key for ttl. A non-positive ttl removes the key instead.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

type noopStore struct{}

// NewNoop returns a Store that never hits and discards writes, used when caching is disabled
func NewNoop() Store {
	return noopStore{}
}

func (noopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (noopStore) Put(context.Context, string, []byte, time.Duration) error { return nil }

func (noopStore) Close() error { return nil }
