//go:generate mockgen -source=events.go -destination=events_mock.go -package=services
package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher publishes user lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event string, userID int64)
}

// EventPublisher writes user events to Kafka. Delivery is best effort:
// failures are logged and never fail the request that caused the event.
type EventPublisher struct {
	writer KafkaWriter
}

// NewEventPublisher creates an EventPublisher. A nil writer disables publishing.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish implements Publisher.
func (p *EventPublisher) Publish(ctx context.Context, event string, userID int64) {
	if p == nil || p.writer == nil {
		logger.Log.Warnw("kafka writer is nil, skipping event", "event", event, "user_id", userID)
		return
	}

	payload, err := json.Marshal(models.UserEvent{
		EventID:   uuid.New(),
		Event:     event,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "event", event, "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event", event, "user_id", userID, "err", err)
		return
	}

	logger.Log.Infow("event published", "event", event, "user_id", userID)
}

// publish is a nil-safe helper used by the services.
func publish(ctx context.Context, p Publisher, event string, userID int64) {
	if p == nil {
		return
	}
	p.Publish(ctx, event, userID)
}
