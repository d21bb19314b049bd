package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/config"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/SergeyBogomolovv/order-orchestrator/internal/handler"
	requestIDHeader = "request_id"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
}

type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	creator  OrderCreator
	tracer   trace.Tracer
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, creator OrderCreator) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.OrderRequestsTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		creator:  creator,
		tracer:   otel.Tracer(tracerName),
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			} else {
				h.logger.Error("failed to fetch message", slog.Any("error", err))
				continue
			}
		}

		ordersInProgress.Inc()
		start := time.Now()

		if err := h.handleMessage(ctx, m); err != nil {
			h.logger.Error("failed to handle message", slog.Any("error", err))

			// В библиотеке уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				ordersInProgress.Dec()
				continue
			}
			ordersDLQ.Inc()
		}

		orderProcessingDuration.Observe(time.Since(start).Seconds())
		ordersInProgress.Dec()

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// handleMessage runs the create workflow for one request. A returned error
// sends the message to the DLQ. A workflow that failed after the order was
// stored is final: the order is already cancelled and the client was
// notified, so the message is committed.
func (h *kafkaHandler) handleMessage(ctx context.Context, m kafka.Message) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: &m})
	ctx, span := h.tracer.Start(ctx, "consume-order-request", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	requestID := headerValue(m, requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	span.SetAttributes(
		attribute.String("messaging.kafka.topic", m.Topic),
		attribute.Int64("messaging.kafka.offset", m.Offset),
		attribute.String("request_id", requestID),
	)
	logger := h.logger.With(slog.String("request_id", requestID))

	var req CreateOrderRequest
	if err := json.Unmarshal(m.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal order request: %w", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid order request: %w", err)
	}

	order, err := h.creator.CreateOrder(ctx, CreateOrderJSONToEntity(req))
	if err != nil {
		span.RecordError(err)
		if order.OrderID == 0 {
			return err
		}
		ordersFailed.Inc()
		logger.WarnContext(ctx, "order workflow failed",
			slog.Int64("order_id", order.OrderID),
			slog.String("order_status", string(order.OrderStatus)),
			slog.Any("error", err),
		)
		return nil
	}

	ordersProcessed.Inc()
	logger.InfoContext(ctx, "order created", slog.Int64("order_id", order.OrderID))
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}

func headerValue(m kafka.Message, key string) string {
	for _, hdr := range m.Headers {
		if hdr.Key == key {
			return string(hdr.Value)
		}
	}
	return ""
}

// headerCarrier exposes kafka message headers to the otel propagator.
type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	return headerValue(*c.msg, key)
}

func (c headerCarrier) Set(key, value string) {
	for i, hdr := range c.msg.Headers {
		if hdr.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, len(c.msg.Headers))
	for i, hdr := range c.msg.Headers {
		keys[i] = hdr.Key
	}
	return keys
}

var _ propagation.TextMapCarrier = headerCarrier{}
