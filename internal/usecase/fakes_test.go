package usecase

import (
	"context"
	"sync"
	"time"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
)

var fixedNow = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakePrices struct {
	series map[string]models.PriceHistory
	err    error
	panics bool
}

func (f *fakePrices) FetchPriceHistory(_ context.Context, symbol string) (models.PriceHistory, error) {
	if f.panics {
		panic("decoder exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

type fakeFundamentals struct {
	snap models.FundamentalsSnapshot
	err  error
}

func (f *fakeFundamentals) FetchFundamentals(context.Context, string) (models.FundamentalsSnapshot, error) {
	return f.snap, f.err
}

type fakeSentiment struct {
	snap   *models.SentimentSnapshot
	err    error
	panics bool
}

func (f *fakeSentiment) FetchSentiment(context.Context, string) (*models.SentimentSnapshot, error) {
	if f.panics {
		panic("nil map")
	}
	return f.snap, f.err
}

type fakeVolatility struct {
	snap *models.VolatilitySnapshot
	err  error
}

func (f *fakeVolatility) FetchVolatility(context.Context, string) (*models.VolatilitySnapshot, error) {
	return f.snap, f.err
}

// recordingMetrics counts the calls the use cases make.
type recordingMetrics struct {
	mu             sync.Mutex
	providerErrors map[string]int
	degraded       []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{providerErrors: map[string]int{}}
}

func (m *recordingMetrics) RecordCacheResult(bool)                {}
func (m *recordingMetrics) RecordAssembly(string, float64, error) {}
func (m *recordingMetrics) RecordScore(string, float64)           {}
func (m *recordingMetrics) RecordPublished(string, int)           {}

func (m *recordingMetrics) RecordProviderError(provider string) {
	m.mu.Lock()
	m.providerErrors[provider]++
	m.mu.Unlock()
}

func (m *recordingMetrics) RecordDegraded(symbol string) {
	m.mu.Lock()
	m.degraded = append(m.degraded, symbol)
	m.mu.Unlock()
}

var _ repository.Metrics = (*recordingMetrics)(nil)

func bars(closes []float64, volume float64) models.PriceHistory {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := make(models.PriceHistory, len(closes))
	for i, c := range closes {
		h[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c, Volume: volume}
	}
	return h
}

func flatCloses(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func risingCloses(n int, from, to float64) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}
