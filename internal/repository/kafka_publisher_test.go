package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PickRank/internal/domain/models"
	pkgkafka "PickRank/pkg/kafka"
	applogger "PickRank/pkg/logger"
	"PickRank/pkg/metrics"
)

type memWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error { return nil }

func TestPublishPicksWritesRankedMessagesAndSummary(t *testing.T) {
	w := &memWriter{}
	pub := NewKafkaPublisher(pkgkafka.NewProducerFromWriter(w, "snappy"), "picks.ranked", metrics.Nop{}, applogger.NewNop())

	resp := &models.PicksResponse{
		BatchID:   "batch-1",
		UpdatedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Symbols:   []string{"MSFT", "AAPL"},
		Degraded:  1,
		Picks: []*models.CompositeResult{
			{Symbol: "AAPL", Score: 0.4, Explanation: "up"},
			{Symbol: "MSFT", Score: 0, Explanation: "down"},
		},
	}
	require.NoError(t, pub.PublishPicks(context.Background(), resp))
	require.Len(t, w.msgs, 3)

	assert.Equal(t, "AAPL", string(w.msgs[0].Key))
	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &first))
	assert.Equal(t, "batch-1", first["batchId"])
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "AAPL", first["symbol"])
	assert.Equal(t, 0.4, first["score"])

	assert.Equal(t, SummaryKey, string(w.msgs[2].Key))
	var summary batchSummary
	require.NoError(t, json.Unmarshal(w.msgs[2].Value, &summary))
	assert.Equal(t, []string{"AAPL", "MSFT"}, summary.Ranking)
	assert.Equal(t, 1, summary.Degraded)
}

func TestPublishPicksPropagatesWriteError(t *testing.T) {
	boom := errors.New("no brokers")
	pub := NewKafkaPublisher(pkgkafka.NewProducerFromWriter(&memWriter{err: boom}, "snappy"), "t", metrics.Nop{}, applogger.NewNop())

	err := pub.PublishPicks(context.Background(), &models.PicksResponse{BatchID: "b"})
	assert.ErrorIs(t, err, boom)
}
