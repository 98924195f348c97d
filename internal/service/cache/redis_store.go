package cache

import (
	"context"
	"errors"
	"time"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	pkgcache "PickRank/pkg/cache"
)

const resultKeyPrefix = "result"

// RedisStore shares composite results between replicas. Keys expire with the
// cache TTL, so nothing outlives its freshness window.
type RedisStore struct {
	cache pkgcache.Service
}

var _ repository.ResultStore = (*RedisStore)(nil)

func NewRedisStore(c pkgcache.Service) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Get(ctx context.Context, symbol string) (*models.CompositeResult, error) {
	var r models.CompositeResult
	if err := s.cache.Get(ctx, pkgcache.GenerateKey(resultKeyPrefix, symbol), &r); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *RedisStore) Set(ctx context.Context, symbol string, r *models.CompositeResult, ttl time.Duration) error {
	return s.cache.Set(ctx, pkgcache.GenerateKey(resultKeyPrefix, symbol), r, ttl)
}
