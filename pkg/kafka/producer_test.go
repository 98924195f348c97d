package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishBatchEncodesValues(t *testing.T) {
	w := &captureWriter{}
	p := NewProducerFromWriter(w, "snappy")
	at := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	err := p.PublishBatch(context.Background(), "picks.ranked", []Message{
		{Key: []byte("AAPL"), Value: map[string]float64{"score": 0.5}},
		{Key: []byte("raw"), Value: []byte("as-is")},
		{Key: []byte("str"), Value: "text"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 3)

	assert.Equal(t, "picks.ranked", w.msgs[0].Topic)
	assert.Equal(t, []byte("AAPL"), w.msgs[0].Key)
	assert.JSONEq(t, `{"score":0.5}`, string(w.msgs[0].Value))
	assert.Equal(t, "as-is", string(w.msgs[1].Value))
	assert.Equal(t, "text", string(w.msgs[2].Value))
	assert.Equal(t, at, w.msgs[0].Time)
}

func TestPublishBatchEncodeFailureSendsNothing(t *testing.T) {
	w := &captureWriter{}
	p := NewProducerFromWriter(w, "snappy")

	err := p.PublishBatch(context.Background(), "t", []Message{
		{Key: []byte("ok"), Value: 1},
		{Key: []byte("bad"), Value: make(chan int)},
	})
	require.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := NewProducerFromWriter(&captureWriter{err: boom}, "gzip")

	err := p.Publish(context.Background(), "t", []byte("k"), "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	require.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("zstd"))
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestEmptyBatchIsNoop(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, NewProducerFromWriter(w, "snappy").PublishBatch(context.Background(), "t", nil))
	assert.Empty(t, w.msgs)
}

func TestNewProducerAppliesTopicCreation(t *testing.T) {
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithAutoCreateTopic(true))
	require.NoError(t, err)
	defer p.Close()

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.AllowAutoTopicCreation)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}
