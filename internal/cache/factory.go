package cache

import (
	"context"
	"fmt"
	"strings"

	"location-finder/internal/config"
)

// New builds the Store selected by configuration
func New(ctx context.Context, cacheCfg config.CacheConfig, redisCfg config.RedisConfig) (Store, error) {
	if !cacheCfg.Enabled {
		return NewNoop(), nil
	}

	switch strings.ToLower(cacheCfg.Driver) {
	case "", config.CacheDriverMemory:
		return NewMemory(), nil
	case config.CacheDriverRedis:
		store, err := NewRedis(ctx, redisCfg.Addr, redisCfg.Password, redisCfg.DB)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cacheCfg.Driver)
	}
}
