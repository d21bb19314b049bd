package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	mocks "github.com/SergeyBogomolovv/order-orchestrator/internal/handler/mocks"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel"
)

const validRequest = `{"customer_id":7,"items":[{"product_id":1,"sku":"SKU-1","quantity":2,"unit_price":"19.99"}]}`

func newTestKafkaHandler(creator OrderCreator) *kafkaHandler {
	return &kafkaHandler{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(),
		creator:  creator,
		tracer:   otel.Tracer(tracerName),
	}
}

func TestKafkaHandler_HandleMessage(t *testing.T) {
	testCases := []struct {
		name         string
		value        string
		mockBehavior func(c *mocks.MockOrderCreator)
		wantDLQ      bool
	}{
		{
			name:  "order created",
			value: validRequest,
			mockBehavior: func(c *mocks.MockOrderCreator) {
				c.EXPECT().CreateOrder(mock.Anything, mock.MatchedBy(func(in entities.NewOrder) bool {
					return in.CustomerID == 7 && len(in.Items) == 1 && in.Items[0].Quantity == 2
				})).Return(entities.Order{OrderID: 1, OrderStatus: entities.OrderStatusConfirmed}, nil).Once()
			},
		},
		{
			name:    "malformed json",
			value:   `{"customer_id":`,
			wantDLQ: true,
		},
		{
			name:    "fails validation",
			value:   `{"customer_id":0,"items":[]}`,
			wantDLQ: true,
		},
		{
			name:  "workflow cancelled stored order",
			value: validRequest,
			mockBehavior: func(c *mocks.MockOrderCreator) {
				c.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{OrderID: 2, OrderStatus: entities.OrderStatusCancelled},
						fmt.Errorf("%w: declined", entities.ErrPaymentCharge)).Once()
			},
		},
		{
			name:  "order never stored",
			value: validRequest,
			mockBehavior: func(c *mocks.MockOrderCreator) {
				c.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, errors.New("connection refused")).Once()
			},
			wantDLQ: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creator := mocks.NewMockOrderCreator(t)
			if tc.mockBehavior != nil {
				tc.mockBehavior(creator)
			}
			h := newTestKafkaHandler(creator)

			err := h.handleMessage(context.Background(), kafka.Message{
				Topic: "order-requests",
				Value: []byte(tc.value),
			})

			if tc.wantDLQ {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHeaderCarrier(t *testing.T) {
	m := kafka.Message{Headers: []kafka.Header{{Key: requestIDHeader, Value: []byte("req-1")}}}
	c := headerCarrier{msg: &m}

	c.Set("traceparent", "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01")
	c.Set(requestIDHeader, "req-2")

	assert.Equal(t, "req-2", c.Get(requestIDHeader))
	assert.Equal(t, "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01", c.Get("traceparent"))
	assert.Equal(t, []string{requestIDHeader, "traceparent"}, c.Keys())
	assert.Empty(t, c.Get("missing"))
}
