package gateway

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
)

const defaultWarehouse = "WH1"

type Inventory interface {
	Reserve(ctx context.Context, orderID int64, items []entities.Item) error
	Release(ctx context.Context, orderID int64, items []entities.Item) error
}

type HTTPInventory struct {
	logger *slog.Logger
	client *client
}

func NewHTTPInventory(logger *slog.Logger, baseURL string, timeout time.Duration) *HTTPInventory {
	return &HTTPInventory{
		logger: logger.With(slog.String("gateway", "inventory")),
		client: newClient("inventory", baseURL, timeout),
	}
}

type reserveRequest struct {
	ProductID int64  `json:"product_id"`
	Warehouse string `json:"warehouse"`
	Quantity  int    `json:"quantity"`
}

type releaseItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type releaseRequest struct {
	OrderID int64         `json:"order_id"`
	Items   []releaseItem `json:"items"`
}

// Reserve reserves every item under the order id as idempotency key, so a
// repeated call for the same order does not reserve twice. Items reserved
// before a failure are released again before returning.
func (g *HTTPInventory) Reserve(ctx context.Context, orderID int64, items []entities.Item) error {
	header := http.Header{}
	header.Set("Idempotency-Key", strconv.FormatInt(orderID, 10))

	reserved := make([]entities.Item, 0, len(items))
	for _, it := range items {
		resp, err := g.client.do(ctx, http.MethodPost, "/reserve/", reserveRequest{
			ProductID: it.ProductID,
			Warehouse: defaultWarehouse,
			Quantity:  it.Quantity,
		}, header)
		if err == nil {
			err = g.client.expect(resp, http.StatusOK)
		}
		if err != nil {
			if len(reserved) > 0 {
				if rerr := g.Release(ctx, orderID, reserved); rerr != nil {
					g.logger.ErrorContext(ctx, "failed to release partial reservation",
						slog.Int64("order_id", orderID), slog.Any("error", rerr))
				}
			}
			return fmt.Errorf("reserve product %d: %w", it.ProductID, err)
		}
		reserved = append(reserved, it)
	}
	return nil
}

func (g *HTTPInventory) Release(ctx context.Context, orderID int64, items []entities.Item) error {
	req := releaseRequest{OrderID: orderID, Items: make([]releaseItem, 0, len(items))}
	for _, it := range items {
		req.Items = append(req.Items, releaseItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	resp, err := g.client.do(ctx, http.MethodPost, "/release/", req, nil)
	if err != nil {
		return err
	}
	return g.client.expect(resp, http.StatusOK)
}

// maxMockReservations bounds MockInventory since confirmed orders are never released.
const maxMockReservations = 10_000

type mockReservation struct {
	orderID int64
	items   []entities.Item
}

// MockInventory always succeeds. It remembers reservations per order so
// repeated reserves and releases are no-ops. Past its limit the oldest
// reservation is forgotten.
type MockInventory struct {
	logger *slog.Logger

	mu       sync.Mutex
	limit    int
	order    *list.List
	reserved map[int64]*list.Element
}

func NewMockInventory(logger *slog.Logger) *MockInventory {
	return &MockInventory{
		logger:   logger.With(slog.String("gateway", "inventory"), slog.Bool("mock", true)),
		limit:    maxMockReservations,
		order:    list.New(),
		reserved: make(map[int64]*list.Element),
	}
}

func (g *MockInventory) Reserve(ctx context.Context, orderID int64, items []entities.Item) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.reserved[orderID]; ok {
		g.logger.DebugContext(ctx, "reservation already exists", slog.Int64("order_id", orderID))
		return nil
	}
	for g.order.Len() >= g.limit {
		oldest := g.order.Front()
		delete(g.reserved, g.order.Remove(oldest).(mockReservation).orderID)
	}
	g.reserved[orderID] = g.order.PushBack(mockReservation{
		orderID: orderID,
		items:   append([]entities.Item(nil), items...),
	})
	g.logger.DebugContext(ctx, "inventory reserved", slog.Int64("order_id", orderID), slog.Int("items", len(items)))
	return nil
}

func (g *MockInventory) Release(ctx context.Context, orderID int64, _ []entities.Item) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	ele, ok := g.reserved[orderID]
	if !ok {
		g.logger.DebugContext(ctx, "nothing to release", slog.Int64("order_id", orderID))
		return nil
	}
	g.order.Remove(ele)
	delete(g.reserved, orderID)
	g.logger.DebugContext(ctx, "inventory released", slog.Int64("order_id", orderID))
	return nil
}

// Reserved reports whether the order currently holds a reservation.
func (g *MockInventory) Reserved(orderID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.reserved[orderID]
	return ok
}
