package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/segmentio/kafka-go"
)

// Notifier delivers lifecycle events. Callers treat delivery as
// fire-and-forget and only log returned errors.
type Notifier interface {
	Notify(ctx context.Context, event entities.Event) error
}

type eventMessage struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

func encodeEvent(e entities.Event) ([]byte, error) {
	return json.Marshal(eventMessage{
		ID:         e.ID,
		Type:       string(e.Type),
		OccurredAt: e.OccurredAt.UTC(),
		Data:       e.Data,
	})
}

// LogNotifier only logs events.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(slog.String("gateway", "notification"), slog.Bool("mock", true))}
}

func (n *LogNotifier) Notify(ctx context.Context, e entities.Event) error {
	n.logger.InfoContext(ctx, "notification", slog.String("type", string(e.Type)), slog.Any("data", e.Data))
	return nil
}

type HTTPNotifier struct {
	client *client
}

func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{client: newClient("notification", url, timeout)}
}

type notificationRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func (n *HTTPNotifier) Notify(ctx context.Context, e entities.Event) error {
	resp, err := n.client.do(ctx, http.MethodPost, "", notificationRequest{Type: string(e.Type), Data: e.Data}, nil)
	if err != nil {
		return err
	}
	if resp.status >= http.StatusBadRequest {
		return fmt.Errorf("notification returned status %d", resp.status)
	}
	return nil
}

// KafkaNotifier publishes events keyed by order id, so events of one order
// stay ordered within a partition.
type KafkaNotifier struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewKafkaNotifier(brokers []string, topic string, batchTimeout, timeout time.Duration) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           batchTimeout,
			AllowAutoTopicCreation: true,
		},
		timeout: timeout,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, e entities.Event) error {
	value, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	var key []byte
	if id, ok := e.Data["order_id"]; ok {
		key = fmt.Appendf(nil, "%v", id)
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
