package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/vendorwize/internal/models"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes event changes to a Kafka topic.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a producer for the events change topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

// PublishEvents sends one message per event in a single write. Messages are
// keyed by event id so changes to one event stay ordered within a partition.
func (p *KafkaPublisher) PublishEvents(ctx context.Context, action string, events ...*models.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		msg, err := serializeToMessage(action, event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d %s events: %w", len(msgs), action, err)
	}
	p.logger.Debug("published event changes", "action", action, "count", len(msgs))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(action string, event *models.Event) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event %s: %w", event.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(action)},
			{Key: "category", Value: []byte(event.Category)},
			{Key: "updated_at", Value: []byte(event.UpdatedAt.Format(time.RFC3339Nano))},
		},
	}, nil
}

// NopPublisher discards every change. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvents(context.Context, string, ...*models.Event) error { return nil }

func (NopPublisher) Close() error { return nil }
