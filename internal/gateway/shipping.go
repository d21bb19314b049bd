package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"golang.org/x/sync/errgroup"
)

const dateLayout = time.DateOnly

type Shipping interface {
	CreateShipment(ctx context.Context, orderID, customerID int64) (entities.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, orderID int64, status entities.ShippingStatus) (entities.Shipment, error)
	// ShippingBatch never fails as a whole: an order whose lookup fails
	// gets Unknown or Failed instead.
	ShippingBatch(ctx context.Context, orderIDs []int64) map[int64]entities.Shipment
}

type HTTPShipping struct {
	logger   *slog.Logger
	client   *client
	parallel int
}

func NewHTTPShipping(logger *slog.Logger, baseURL string, timeout time.Duration, parallel int) *HTTPShipping {
	if parallel < 1 {
		parallel = 1
	}
	return &HTTPShipping{
		logger:   logger.With(slog.String("gateway", "shipping")),
		client:   newClient("shipping", baseURL, timeout),
		parallel: parallel,
	}
}

type shipmentPayload struct {
	OrderID          int64  `json:"order_id,omitempty"`
	CustomerID       int64  `json:"customer_id,omitempty"`
	Status           string `json:"status,omitempty"`
	ExpectedDelivery string `json:"expected_delivery,omitempty"`
}

type updateShipmentRequest struct {
	ShippingStatus entities.ShippingStatus `json:"shipping_status"`
}

func (p shipmentPayload) toEntity(orderID int64) entities.Shipment {
	s := entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusUnknown}
	if st, ok := entities.ParseShippingStatus(p.Status); ok {
		s.Status = st
	}
	if p.ExpectedDelivery != "" {
		if d, err := parseDeliveryDate(p.ExpectedDelivery); err == nil {
			s.ExpectedDelivery = d
		}
	}
	return s
}

func parseDeliveryDate(v string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, v); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (g *HTTPShipping) CreateShipment(ctx context.Context, orderID, customerID int64) (entities.Shipment, error) {
	resp, err := g.client.do(ctx, http.MethodPost, "/create/", shipmentPayload{OrderID: orderID, CustomerID: customerID}, nil)
	if err != nil {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusFailed}, err
	}
	if err := g.client.expect(resp, http.StatusCreated); err != nil {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusUnknown}, err
	}

	var p shipmentPayload
	if err := json.Unmarshal(resp.body, &p); err != nil {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusUnknown}, fmt.Errorf("failed to decode shipment: %w", err)
	}
	return p.toEntity(orderID), nil
}

func (g *HTTPShipping) UpdateShipmentStatus(ctx context.Context, orderID int64, status entities.ShippingStatus) (entities.Shipment, error) {
	resp, err := g.client.do(ctx, http.MethodPatch, fmt.Sprintf("/%d/status/", orderID), updateShipmentRequest{ShippingStatus: status}, nil)
	if err != nil {
		return entities.Shipment{}, err
	}
	if err := g.client.expect(resp, http.StatusOK); err != nil {
		return entities.Shipment{}, err
	}

	var p shipmentPayload
	if err := json.Unmarshal(resp.body, &p); err != nil {
		return entities.Shipment{}, fmt.Errorf("failed to decode shipment: %w", err)
	}
	return p.toEntity(orderID), nil
}

func (g *HTTPShipping) ShippingBatch(ctx context.Context, orderIDs []int64) map[int64]entities.Shipment {
	results := make([]entities.Shipment, len(orderIDs))

	var eg errgroup.Group
	eg.SetLimit(g.parallel)
	for i, id := range orderIDs {
		eg.Go(func() error {
			results[i] = g.shipment(ctx, id)
			return nil
		})
	}
	_ = eg.Wait()

	out := make(map[int64]entities.Shipment, len(orderIDs))
	for _, s := range results {
		out[s.OrderID] = s
	}
	return out
}

func (g *HTTPShipping) shipment(ctx context.Context, orderID int64) entities.Shipment {
	resp, err := g.client.do(ctx, http.MethodGet, fmt.Sprintf("/%d/status/", orderID), nil, nil)
	if err != nil {
		g.logger.WarnContext(ctx, "failed to fetch shipment", slog.Int64("order_id", orderID), slog.Any("error", err))
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusFailed}
	}
	if resp.status != http.StatusOK {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusUnknown}
	}

	var p shipmentPayload
	if err := json.Unmarshal(resp.body, &p); err != nil {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusUnknown}
	}
	return p.toEntity(orderID)
}
