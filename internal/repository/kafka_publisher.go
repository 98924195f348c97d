package repository

import (
	"context"
	"time"

	"PickRank/internal/domain/models"
	"PickRank/internal/domain/repository"
	pkgkafka "PickRank/pkg/kafka"
	applogger "PickRank/pkg/logger"
)

// SummaryKey is the message key of the per-batch summary record.
const SummaryKey = "_batch"

// pickMessage is one ranked symbol as published, keyed by symbol.
type pickMessage struct {
	BatchID string `json:"batchId"`
	Rank    int    `json:"rank"`
	*models.CompositeResult
}

// batchSummary closes a batch so consumers know the full ranking.
type batchSummary struct {
	BatchID   string    `json:"batchId"`
	UpdatedAt time.Time `json:"updatedAt"`
	Symbols   []string  `json:"symbols"`
	Ranking   []string  `json:"ranking"`
	Degraded  int       `json:"degraded"`
}

// KafkaPublisher implements PicksPublisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	metrics  repository.Metrics
	log      *applogger.Logger
}

var _ repository.PicksPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string, metrics repository.Metrics, log *applogger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, metrics: metrics, log: log}
}

// PublishPicks writes one message per pick followed by the summary, all in a
// single batch.
func (p *KafkaPublisher) PublishPicks(ctx context.Context, resp *models.PicksResponse) error {
	if resp == nil {
		return nil
	}

	msgs := make([]pkgkafka.Message, 0, len(resp.Picks)+1)
	ranking := make([]string, 0, len(resp.Picks))
	for i, pick := range resp.Picks {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(pick.Symbol),
			Value: pickMessage{BatchID: resp.BatchID, Rank: i + 1, CompositeResult: pick},
		})
		ranking = append(ranking, pick.Symbol)
	}
	msgs = append(msgs, pkgkafka.Message{
		Key: []byte(SummaryKey),
		Value: batchSummary{
			BatchID:   resp.BatchID,
			UpdatedAt: resp.UpdatedAt,
			Symbols:   resp.Symbols,
			Ranking:   ranking,
			Degraded:  resp.Degraded,
		},
	})

	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		p.log.Error("kafka.publish_failed",
			applogger.String("topic", p.topic),
			applogger.String("batch_id", resp.BatchID),
			applogger.Error(err),
		)
		return err
	}

	p.metrics.RecordPublished(p.topic, len(msgs))
	p.log.Info("kafka.published",
		applogger.String("topic", p.topic),
		applogger.String("batch_id", resp.BatchID),
		applogger.Int("messages", len(msgs)),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
