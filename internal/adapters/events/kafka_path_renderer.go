package events

import (
	"context"
	"directions-route-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultPathTopic = "route.paths"

	// Writes are synchronous and carry one event; flush without batching.
	pathBatchSize    = 1
	pathBatchTimeout = 5 * time.Millisecond

	PathDrawn   = "path.drawn"
	PathCleared = "path.cleared"
)

// PathEvent is the message map surfaces consume to paint or erase a path.
type PathEvent struct {
	Type       string                 `json:"type"`
	PathID     string                 `json:"path_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Path       *domain.RenderablePath `json:"path,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPathRenderer implements PathRenderer by publishing PathEvents.
// Events are keyed by path ID so a path's draw and clear share a partition.
type KafkaPathRenderer struct {
	writer messageWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewKafkaPathRenderer creates a renderer writing to topic on brokers.
func NewKafkaPathRenderer(brokers []string, topic string, logger *zap.Logger) *KafkaPathRenderer {
	if topic == "" {
		topic = DefaultPathTopic
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchSize:              pathBatchSize,
		BatchTimeout:           pathBatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPathRenderer(w, logger)
}

func newKafkaPathRenderer(w messageWriter, logger *zap.Logger) *KafkaPathRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPathRenderer{writer: w, logger: logger, now: time.Now}
}

// Render publishes a path.drawn event.
func (k *KafkaPathRenderer) Render(ctx context.Context, path domain.RenderablePath) error {
	if path.ID == "" {
		return errors.New("render path: path id must not be empty")
	}

	p := path
	return k.publish(ctx, PathEvent{Type: PathDrawn, PathID: path.ID, Path: &p})
}

// Clear publishes a path.cleared event.
func (k *KafkaPathRenderer) Clear(ctx context.Context, pathID string) error {
	if pathID == "" {
		return errors.New("clear path: path id must not be empty")
	}

	return k.publish(ctx, PathEvent{Type: PathCleared, PathID: pathID})
}

// Close flushes and closes the underlying writer.
func (k *KafkaPathRenderer) Close() error {
	return k.writer.Close()
}

func (k *KafkaPathRenderer) publish(ctx context.Context, evt PathEvent) error {
	evt.OccurredAt = k.now().UTC()

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("publish %s: marshal event: %w", evt.Type, err)
	}

	msg := kafkago.Message{
		Key:   []byte(evt.PathID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		k.logger.Error("failed to publish path event",
			zap.String("type", evt.Type),
			zap.String("path_id", evt.PathID),
			zap.Error(err),
		)
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}

	k.logger.Debug("path event published",
		zap.String("type", evt.Type),
		zap.String("path_id", evt.PathID),
	)
	return nil
}
