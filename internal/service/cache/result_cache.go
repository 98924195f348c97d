package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/internal/domain/service"
	applogger "PickRank/pkg/logger"
)

// DefaultTTL is how long an assembled result stays fresh.
const DefaultTTL = 120 * time.Second

// Clock returns the current time; tests substitute a controllable one.
type Clock func() time.Time

type entry struct {
	payload   *models.CompositeResult
	updatedAt time.Time
}

// ResultCache memoizes composite results per symbol for a fixed TTL. Entries
// are checked lazily on read and never evicted. A failed assembly leaves the
// previous entry in place and is not cached.
type ResultCache struct {
	assembler service.SignalAssembler
	store     repository.ResultStore
	metrics   repository.Metrics
	log       *applogger.Logger
	ttl       time.Duration
	now       Clock
	inflight  *singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

var _ service.ResultReader = (*ResultCache)(nil)

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now Clock) Option {
	return func(c *ResultCache) {
		c.now = now
	}
}

// WithStore adds a shared second-level store consulted on local misses.
func WithStore(store repository.ResultStore) Option {
	return func(c *ResultCache) {
		c.store = store
	}
}

// WithInflightDedupe collapses concurrent misses for the same symbol into one
// assembly.
func WithInflightDedupe(enabled bool) Option {
	return func(c *ResultCache) {
		if enabled {
			c.inflight = &singleflight.Group{}
		} else {
			c.inflight = nil
		}
	}
}

func NewResultCache(assembler service.SignalAssembler, metrics repository.Metrics, log *applogger.Logger, opts ...Option) *ResultCache {
	c := &ResultCache{
		assembler: assembler,
		metrics:   metrics,
		log:       log,
		ttl:       DefaultTTL,
		now:       time.Now,
		entries:   make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored result while it is fresh, otherwise assembles,
// stores and returns a new one.
func (c *ResultCache) Get(ctx context.Context, symbol string) (*models.CompositeResult, error) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries[symbol]
	c.mu.RUnlock()
	if ok && now.Sub(e.updatedAt) < c.ttl {
		c.metrics.RecordCacheResult(true)
		return e.payload, nil
	}

	if r := c.fromStore(ctx, symbol, now); r != nil {
		c.metrics.RecordCacheResult(true)
		return r, nil
	}

	c.metrics.RecordCacheResult(false)
	return c.assemble(ctx, symbol)
}

// Refresh assembles regardless of freshness.
func (c *ResultCache) Refresh(ctx context.Context, symbol string) (*models.CompositeResult, error) {
	return c.assemble(ctx, symbol)
}

func (c *ResultCache) fromStore(ctx context.Context, symbol string, now time.Time) *models.CompositeResult {
	if c.store == nil {
		return nil
	}
	r, err := c.store.Get(ctx, symbol)
	if err != nil {
		c.log.Warn("cache.store_get_failed", applogger.String("symbol", symbol), applogger.Error(err))
		return nil
	}
	if r == nil || now.Sub(r.UpdatedAt) >= c.ttl {
		return nil
	}
	// keep the original timestamp so promotion never extends freshness
	c.put(symbol, entry{payload: r, updatedAt: r.UpdatedAt})
	return r
}

func (c *ResultCache) assemble(ctx context.Context, symbol string) (*models.CompositeResult, error) {
	if c.inflight == nil {
		return c.load(ctx, symbol)
	}
	v, err, shared := c.inflight.Do(symbol, func() (interface{}, error) {
		return c.load(ctx, symbol)
	})
	if shared {
		c.log.Debug("cache.inflight_shared", applogger.String("symbol", symbol))
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.CompositeResult), nil
}

func (c *ResultCache) load(ctx context.Context, symbol string) (*models.CompositeResult, error) {
	r, err := c.assembler.Assemble(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.put(symbol, entry{payload: r, updatedAt: c.now()})
	if c.store != nil {
		if err := c.store.Set(ctx, symbol, r, c.ttl); err != nil {
			c.log.Warn("cache.store_set_failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
	return r, nil
}

func (c *ResultCache) put(symbol string, e entry) {
	c.mu.Lock()
	c.entries[symbol] = e
	c.mu.Unlock()
}
