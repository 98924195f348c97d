package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PickRank/internal/domain/models"
)

type capturePublisher struct {
	batches []*models.PicksResponse
	err     error
	closed  bool
}

func (p *capturePublisher) PublishPicks(_ context.Context, resp *models.PicksResponse) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, resp)
	return nil
}

func (p *capturePublisher) Close() error {
	p.closed = true
	return nil
}

func TestPublishShipsRankedBatch(t *testing.T) {
	results := &stubResults{scores: map[string]float64{"AAPL": 0.1, "MSFT": 0.3}}
	pub := &capturePublisher{}
	uc := NewPublishUseCase(newPicks(results, newRecordingMetrics(), PicksOptions{}), pub)

	resp, err := uc.Publish(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Len(t, pub.batches, 1)
	assert.Same(t, resp, pub.batches[0])
	assert.Equal(t, []string{"MSFT", "AAPL"}, symbolsOf(resp.Picks))
}

func TestPublishReturnsBatchOnPublishFailure(t *testing.T) {
	results := &stubResults{scores: map[string]float64{"AAPL": 0.1}}
	boom := errors.New("broker down")
	uc := NewPublishUseCase(newPicks(results, newRecordingMetrics(), PicksOptions{}), &capturePublisher{err: boom})

	resp, err := uc.Publish(context.Background(), []string{"AAPL"})
	require.ErrorIs(t, err, boom)
	require.NotNil(t, resp)
	assert.Len(t, resp.Picks, 1)
}

func TestPublishSkipsOversizedBatch(t *testing.T) {
	pub := &capturePublisher{}
	uc := NewPublishUseCase(newPicks(&stubResults{}, newRecordingMetrics(), PicksOptions{MaxSymbols: 1}), pub)

	_, err := uc.Publish(context.Background(), []string{"A", "B"})
	require.ErrorIs(t, err, ErrTooManySymbols)
	assert.Empty(t, pub.batches)
}
