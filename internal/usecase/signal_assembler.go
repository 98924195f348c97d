package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/internal/domain/service"
	"PickRank/internal/services/scoring"
	applogger "PickRank/pkg/logger"
)

// ErrPriceHistoryUnavailable is the only way an assembly fails.
var ErrPriceHistoryUnavailable = errors.New("price history unavailable")

// SignalAssembler fetches one symbol's inputs concurrently and scores them.
// Price history is required; fundamentals, sentiment and volatility each
// degrade to absent on their own failure.
type SignalAssembler struct {
	prices       repository.PriceHistoryProvider
	fundamentals repository.FundamentalsProvider
	sentiment    repository.SentimentProvider
	volatility   repository.VolatilityProvider
	metrics      repository.Metrics
	log          *applogger.Logger
	now          func() time.Time
}

var _ service.SignalAssembler = (*SignalAssembler)(nil)

func NewSignalAssembler(
	prices repository.PriceHistoryProvider,
	fundamentals repository.FundamentalsProvider,
	sentiment repository.SentimentProvider,
	volatility repository.VolatilityProvider,
	metrics repository.Metrics,
	log *applogger.Logger,
) *SignalAssembler {
	return &SignalAssembler{
		prices:       prices,
		fundamentals: fundamentals,
		sentiment:    sentiment,
		volatility:   volatility,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// WithClock replaces the timestamp source used for UpdatedAt.
func (a *SignalAssembler) WithClock(now func() time.Time) *SignalAssembler {
	a.now = now
	return a
}

func (a *SignalAssembler) Assemble(ctx context.Context, symbol string) (res *models.CompositeResult, err error) {
	start := time.Now()
	defer func() {
		a.metrics.RecordAssembly(symbol, time.Since(start).Seconds(), err)
	}()

	var (
		wg           sync.WaitGroup
		history      models.PriceHistory
		historyErr   error
		fundamentals models.FundamentalsSnapshot
		sentiment    *models.SentimentSnapshot
		volatility   *models.VolatilitySnapshot
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		defer recoverInto(&historyErr)
		history, historyErr = a.prices.FetchPriceHistory(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		fundamentals = optional(ctx, a, "fundamentals", symbol, a.fundamentals.FetchFundamentals)
	}()
	go func() {
		defer wg.Done()
		sentiment = optional(ctx, a, "sentiment", symbol, a.sentiment.FetchSentiment)
	}()
	go func() {
		defer wg.Done()
		volatility = optional(ctx, a, "volatility", symbol, a.volatility.FetchVolatility)
	}()
	wg.Wait()

	if historyErr == nil && len(history) == 0 {
		historyErr = repository.ErrNoData
	}
	if historyErr != nil {
		a.metrics.RecordProviderError("price")
		return nil, fmt.Errorf("%w: %s: %w", ErrPriceHistoryUnavailable, symbol, historyErr)
	}

	raw := scoring.Derive(history, fundamentals, sentiment, volatility)
	res = scoring.Compose(symbol, raw, a.now())
	a.metrics.RecordScore(symbol, res.Score)

	a.log.Debug("assembler.composed",
		applogger.String("symbol", symbol),
		applogger.Float64("score", res.Score),
		applogger.Int("bars", len(history)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return res, nil
}

// optional runs one non-essential fetch; any error or panic becomes the zero
// value, logged and counted.
func optional[T any](ctx context.Context, a *SignalAssembler, provider, symbol string, fetch func(context.Context, string) (T, error)) (out T) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			var zero T
			out = zero
			a.metrics.RecordProviderError(provider)
			a.log.Warn("assembler.optional_fetch_failed",
				applogger.String("provider", provider),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}()
	out, err = fetch(ctx, symbol)
	return out
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
