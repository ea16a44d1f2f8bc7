package publisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/vendorwize/internal/models"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func testEvent() *models.Event {
	return &models.Event{
		ID:        uuid.MustParse("7c6b1f1e-8f7d-4a51-9d7e-3c2f8c1d2a10"),
		Name:      "Spring Craft Fair",
		City:      "Cary",
		State:     "NC",
		Category:  "craft_fair",
		StartDate: time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 12, 16, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	event := testEvent()

	msg, err := serializeToMessage("created", event)
	require.NoError(t, err)

	assert.Equal(t, []byte(event.ID.String()), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"Spring Craft Fair"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "action", msg.Headers[0].Key)
	assert.Equal(t, []byte("created"), msg.Headers[0].Value)
	assert.Equal(t, []byte("craft_fair"), msg.Headers[1].Value)
	assert.Equal(t, []byte("2025-01-02T03:04:05Z"), msg.Headers[2].Value)
}

func TestPublishEventsWritesOneMessagePerEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	second := testEvent()
	second.ID = uuid.New()

	require.NoError(t, p.PublishEvents(context.Background(), "imported", testEvent(), second))
	assert.Len(t, w.msgs, 2)
	assert.Equal(t, []byte(second.ID.String()), w.msgs[1].Key)
}

func TestPublishEventsWrapsWriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.PublishEvents(context.Background(), "updated", testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestPublishEventsEmptyIsNoop(t *testing.T) {
	w := &fakeWriter{err: errors.New("should not be called")}
	p := &KafkaPublisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	assert.NoError(t, p.PublishEvents(context.Background(), "created"))
}
