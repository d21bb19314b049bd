package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultPaymentMethod = "Card"

type Payment interface {
	Charge(ctx context.Context, orderID, customerID int64, amount decimal.Decimal) error
	Refund(ctx context.Context, orderID int64) error
}

type HTTPPayment struct {
	logger *slog.Logger
	client *client
}

func NewHTTPPayment(logger *slog.Logger, baseURL string, timeout time.Duration) *HTTPPayment {
	return &HTTPPayment{
		logger: logger.With(slog.String("gateway", "payment")),
		client: newClient("payment", baseURL, timeout),
	}
}

type chargeRequest struct {
	OrderID    int64       `json:"order_id"`
	CustomerID int64       `json:"customer_id"`
	Amount     json.Number `json:"amount"`
	Method     string      `json:"method"`
}

func (g *HTTPPayment) Charge(ctx context.Context, orderID, customerID int64, amount decimal.Decimal) error {
	resp, err := g.client.do(ctx, http.MethodPost, "/charge/", chargeRequest{
		OrderID:    orderID,
		CustomerID: customerID,
		Amount:     json.Number(amount.StringFixed(2)),
		Method:     defaultPaymentMethod,
	}, nil)
	if err != nil {
		return err
	}
	if err := g.client.expect(resp, http.StatusOK); err != nil {
		return err
	}
	g.logger.InfoContext(ctx, "payment charged", slog.Int64("order_id", orderID))
	return nil
}

func (g *HTTPPayment) Refund(ctx context.Context, orderID int64) error {
	resp, err := g.client.do(ctx, http.MethodPost, fmt.Sprintf("/%d/refund/", orderID), nil, nil)
	if err != nil {
		return err
	}
	return g.client.expect(resp, http.StatusOK)
}

// MockPayment accepts every charge and refund.
type MockPayment struct {
	logger *slog.Logger
}

func NewMockPayment(logger *slog.Logger) *MockPayment {
	return &MockPayment{logger: logger.With(slog.String("gateway", "payment"), slog.Bool("mock", true))}
}

func (g *MockPayment) Charge(ctx context.Context, orderID, _ int64, amount decimal.Decimal) error {
	g.logger.DebugContext(ctx, "payment charged", slog.Int64("order_id", orderID), slog.String("amount", amount.StringFixed(2)))
	return nil
}

func (g *MockPayment) Refund(ctx context.Context, orderID int64) error {
	g.logger.DebugContext(ctx, "payment refunded", slog.Int64("order_id", orderID))
	return nil
}
