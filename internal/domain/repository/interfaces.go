package repository

import (
	"context"
	"errors"
	"time"

	"PickRank/internal/domain/models"
)

var (
	// ErrNotConfigured marks a provider that has no credentials or endpoint.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrNoData marks an upstream response that parsed but held nothing usable.
	ErrNoData = errors.New("no data returned")
)

// PriceHistoryProvider returns daily bars in ascending date order.
type PriceHistoryProvider interface {
	FetchPriceHistory(ctx context.Context, symbol string) (models.PriceHistory, error)
}

// FundamentalsProvider returns named ratios; an empty overview is ErrNoData.
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsSnapshot, error)
}

// SentimentProvider returns nil, nil when sentiment is unavailable.
type SentimentProvider interface {
	FetchSentiment(ctx context.Context, symbol string) (*models.SentimentSnapshot, error)
}

// VolatilityProvider returns nil, nil when volatility data is unavailable.
type VolatilityProvider interface {
	FetchVolatility(ctx context.Context, symbol string) (*models.VolatilitySnapshot, error)
}

// ResultStore is a shared second-level store for composite results. A miss is
// (nil, nil).
type ResultStore interface {
	Get(ctx context.Context, symbol string) (*models.CompositeResult, error)
	Set(ctx context.Context, symbol string, r *models.CompositeResult, ttl time.Duration) error
}

// PicksPublisher ships ranked batches downstream.
type PicksPublisher interface {
	PublishPicks(ctx context.Context, resp *models.PicksResponse) error
	Close() error
}

type Metrics interface {
	RecordCacheResult(hit bool)
	RecordAssembly(symbol string, seconds float64, err error)
	RecordProviderError(provider string)
	RecordScore(symbol string, score float64)
	RecordDegraded(symbol string)
	RecordPublished(topic string, n int)
}
