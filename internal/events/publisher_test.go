package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"wellbeing/internal/model"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "wellbeing.submissions", nil)

	err := p.Publish(context.Background(), model.SubmissionEvent{
		Type:         TypeSubmissionScored,
		SubmissionID: "sub-1",
		Facility:     "EHPAD Nord",
		Scores:       []model.DimensionScore{{Dimension: "Stress", Average: 50, ItemCount: 2}},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "sub-1", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TypeSubmissionScored, string(msg.Headers[0].Value))

	var got model.SubmissionEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "EHPAD Nord", got.Facility)
	assert.False(t, got.OccurredAt.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, "t", nil)
	err := p.Publish(context.Background(), model.SubmissionEvent{Type: TypeReportFailed, SubmissionID: "x"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaPublisherValidates(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "t", nil)
	assert.ErrorIs(t, err, errNoBrokers)
	_, err = NewKafkaPublisher([]string{"localhost:9092"}, " ", nil)
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), model.SubmissionEvent{}))
	assert.NoError(t, p.Close())
}
