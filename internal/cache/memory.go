package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is an in-process Store backed by ttlcache
type MemoryStore struct {
	cache *ttlcache.Cache[string, []byte]
}

// NewMemory creates a MemoryStore and starts its expiry loop. Call Close to stop it.
func NewMemory() *MemoryStore {
	c := ttlcache.New(
		// entries live exactly ttl from insertion, reads do not extend them
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go c.Start()
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		s.cache.Delete(key)
		return nil
	}
	s.cache.Set(key, value, ttl)
	return nil
}

// Len returns the number of stored entries, including ones not yet swept
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

func (s *MemoryStore) Close() error {
	s.cache.Stop()
	return nil
}
