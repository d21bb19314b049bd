package gateway

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
)

const (
	mockDeliveryDays       = 7
	mockUpdateDeliveryDays = 3
)

// Progression lists, per status, the statuses a simulated shipment may move
// to on its next poll. It is simulation config, not domain truth.
type Progression map[entities.ShippingStatus][]entities.ShippingStatus

var DefaultProgression = Progression{
	entities.ShippingStatusPending:   {entities.ShippingStatusShipped, entities.ShippingStatusFailed},
	entities.ShippingStatusShipped:   {entities.ShippingStatusDelivered, entities.ShippingStatusFailed},
	entities.ShippingStatusDelivered: {entities.ShippingStatusDelivered},
	entities.ShippingStatusFailed:    {entities.ShippingStatusFailed},
	entities.ShippingStatusUnknown:   {entities.ShippingStatusPending},
}

// Next picks the following status. pick receives the number of options and
// returns an index in [0, n).
func (p Progression) Next(current entities.ShippingStatus, pick func(n int) int) entities.ShippingStatus {
	options := p[current]
	switch len(options) {
	case 0:
		return entities.ShippingStatusUnknown
	case 1:
		return options[0]
	default:
		return options[pick(len(options))]
	}
}

// MockShipping simulates a shipping backend whose shipments advance on
// every batch poll. State lives in the injected ShipmentStore.
type MockShipping struct {
	logger      *slog.Logger
	store       ShipmentStore
	progression Progression
	pick        func(n int) int
	now         func() time.Time
}

type MockShippingOption func(*MockShipping)

func WithProgression(p Progression) MockShippingOption {
	return func(m *MockShipping) { m.progression = p }
}

func WithPicker(pick func(n int) int) MockShippingOption {
	return func(m *MockShipping) { m.pick = pick }
}

func WithClock(now func() time.Time) MockShippingOption {
	return func(m *MockShipping) { m.now = now }
}

func NewMockShipping(logger *slog.Logger, store ShipmentStore, opts ...MockShippingOption) *MockShipping {
	m := &MockShipping{
		logger:      logger.With(slog.String("gateway", "shipping"), slog.Bool("mock", true)),
		store:       store,
		progression: DefaultProgression,
		pick:        rand.IntN,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (g *MockShipping) deliveryIn(days int) time.Time {
	y, mo, d := g.now().Date()
	return time.Date(y, mo, d+days, 0, 0, 0, 0, time.UTC)
}

func (g *MockShipping) CreateShipment(ctx context.Context, orderID, _ int64) (entities.Shipment, error) {
	s := entities.Shipment{
		OrderID:          orderID,
		Status:           entities.ShippingStatusPending,
		ExpectedDelivery: g.deliveryIn(mockDeliveryDays),
	}
	if err := g.store.Put(ctx, s); err != nil {
		return entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusFailed}, err
	}
	return s, nil
}

func (g *MockShipping) UpdateShipmentStatus(ctx context.Context, orderID int64, status entities.ShippingStatus) (entities.Shipment, error) {
	s := entities.Shipment{
		OrderID:          orderID,
		Status:           status,
		ExpectedDelivery: g.deliveryIn(mockUpdateDeliveryDays),
	}
	if err := g.store.Put(ctx, s); err != nil {
		return entities.Shipment{}, err
	}
	return s, nil
}

// ShippingBatch initializes unseen orders as Pending and advances known ones
// one step along the progression.
func (g *MockShipping) ShippingBatch(ctx context.Context, orderIDs []int64) map[int64]entities.Shipment {
	out := make(map[int64]entities.Shipment, len(orderIDs))
	for _, id := range orderIDs {
		s, ok, err := g.store.Get(ctx, id)
		if err != nil {
			g.logger.WarnContext(ctx, "failed to load shipment", slog.Int64("order_id", id), slog.Any("error", err))
			out[id] = entities.Shipment{OrderID: id, Status: entities.ShippingStatusUnknown}
			continue
		}

		if ok {
			s.Status = g.progression.Next(s.Status, g.pick)
		} else {
			s = entities.Shipment{
				OrderID:          id,
				Status:           entities.ShippingStatusPending,
				ExpectedDelivery: g.deliveryIn(mockDeliveryDays),
			}
		}

		if err := g.store.Put(ctx, s); err != nil {
			g.logger.WarnContext(ctx, "failed to save shipment", slog.Int64("order_id", id), slog.Any("error", err))
		}
		out[id] = s
	}
	return out
}
