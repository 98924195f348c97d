package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	"PickRank/internal/domain/service"
	"PickRank/internal/services/scoring"
	applogger "PickRank/pkg/logger"
	"PickRank/pkg/util"
)

const (
	defaultConcurrency = 8
	defaultMaxSymbols  = 50
)

var (
	// ErrTooManySymbols rejects a batch larger than the configured limit.
	ErrTooManySymbols = errors.New("too many symbols")
	// ErrInvalidSymbol rejects a batch naming something that is not a ticker.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// PicksUseCase ranks a batch of symbols. One symbol failing never fails the
// batch; it is replaced by the unavailable placeholder.
type PicksUseCase struct {
	results     service.ResultReader
	metrics     repository.Metrics
	log         *applogger.Logger
	watchlist   []string
	concurrency int
	maxSymbols  int
	now         func() time.Time
}

// PicksOptions tunes batch behaviour.
type PicksOptions struct {
	Watchlist   []string
	Concurrency int
	MaxSymbols  int
}

func NewPicksUseCase(results service.ResultReader, metrics repository.Metrics, log *applogger.Logger, opts PicksOptions) *PicksUseCase {
	uc := &PicksUseCase{
		results:     results,
		metrics:     metrics,
		log:         log,
		watchlist:   util.NormalizeSymbols(opts.Watchlist),
		concurrency: opts.Concurrency,
		maxSymbols:  opts.MaxSymbols,
		now:         time.Now,
	}
	if uc.concurrency <= 0 {
		uc.concurrency = defaultConcurrency
	}
	if uc.maxSymbols <= 0 {
		uc.maxSymbols = defaultMaxSymbols
	}
	return uc
}

// WithClock replaces the timestamp source for batch and placeholder times.
func (uc *PicksUseCase) WithClock(now func() time.Time) *PicksUseCase {
	uc.now = now
	return uc
}

// Watchlist returns the symbols used when a request names none.
func (uc *PicksUseCase) Watchlist() []string {
	return append([]string(nil), uc.watchlist...)
}

// GetPicks scores every symbol (the watchlist when empty) and returns them
// best first, ties broken by symbol.
func (uc *PicksUseCase) GetPicks(ctx context.Context, symbols []string) (*models.PicksResponse, error) {
	symbols = util.NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		symbols = uc.Watchlist()
	}
	if len(symbols) > uc.maxSymbols {
		return nil, fmt.Errorf("%w: %d requested, limit %d", ErrTooManySymbols, len(symbols), uc.maxSymbols)
	}
	if bad := util.InvalidSymbols(symbols); len(bad) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSymbol, strings.Join(bad, ", "))
	}

	batchID := uuid.NewString()
	start := time.Now()
	log := uc.log.With(applogger.String("batch_id", batchID))

	// assemblies finish even if the caller goes away; their results are cached
	workCtx := context.WithoutCancel(ctx)
	picks := make([]*models.CompositeResult, len(symbols))
	degraded := make([]bool, len(symbols))

	g := new(errgroup.Group)
	g.SetLimit(uc.concurrency)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			r, err := uc.pick(workCtx, symbol, false)
			if err != nil {
				log.Warn("picks.degraded", applogger.String("symbol", symbol), applogger.Error(err))
				uc.metrics.RecordDegraded(symbol)
				degraded[i] = true
				r = scoring.Unavailable(symbol, uc.now())
			}
			picks[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rank(picks)

	resp := &models.PicksResponse{
		BatchID:   batchID,
		UpdatedAt: uc.now(),
		Symbols:   symbols,
		Picks:     picks,
	}
	for _, d := range degraded {
		if d {
			resp.Degraded++
		}
	}

	log.Info("picks.ranked",
		applogger.Int("symbols", len(symbols)),
		applogger.Int("degraded", resp.Degraded),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return resp, nil
}

// GetPick scores a single symbol; a failed assembly yields the placeholder.
func (uc *PicksUseCase) GetPick(ctx context.Context, symbol string, refresh bool) *models.CompositeResult {
	symbol = util.NormalizeSymbol(symbol)
	r, err := uc.pick(context.WithoutCancel(ctx), symbol, refresh)
	if err != nil {
		uc.log.Warn("picks.degraded", applogger.String("symbol", symbol), applogger.Error(err))
		uc.metrics.RecordDegraded(symbol)
		return scoring.Unavailable(symbol, uc.now())
	}
	return r
}

// pick isolates one symbol, turning a panic into an error.
func (uc *PicksUseCase) pick(ctx context.Context, symbol string, refresh bool) (r *models.CompositeResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("assembly panic: %v", p)
		}
	}()
	if refresh {
		return uc.results.Refresh(ctx, symbol)
	}
	return uc.results.Get(ctx, symbol)
}

// rank orders by score descending, then symbol ascending.
func rank(picks []*models.CompositeResult) {
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Score != picks[j].Score {
			return picks[i].Score > picks[j].Score
		}
		return picks[i].Symbol < picks[j].Symbol
	})
}
