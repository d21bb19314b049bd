package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/pricing"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/trm"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	// SaveOrder inserts the order row and returns it with the assigned id and creation time.
	SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error)
	SaveItems(ctx context.Context, orderID int64, items []entities.Item) error
	GetOrderByID(ctx context.Context, orderID int64) (entities.Order, error)
	// UpdateStatus writes both statuses only if the stored order status still
	// equals expected, otherwise it returns entities.ErrStatusConflict.
	UpdateStatus(ctx context.Context, orderID int64, expected entities.OrderStatus, status entities.OrderStatus, payment entities.PaymentStatus) error
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type InventoryGateway interface {
	Reserve(ctx context.Context, orderID int64, items []entities.Item) error
	Release(ctx context.Context, orderID int64, items []entities.Item) error
}

type PaymentGateway interface {
	Charge(ctx context.Context, orderID, customerID int64, amount decimal.Decimal) error
	Refund(ctx context.Context, orderID int64) error
}

type ShippingGateway interface {
	CreateShipment(ctx context.Context, orderID, customerID int64) (entities.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, orderID int64, status entities.ShippingStatus) (entities.Shipment, error)
	ShippingBatch(ctx context.Context, orderIDs []int64) map[int64]entities.Shipment
}

type Notifier interface {
	Notify(ctx context.Context, event entities.Event) error
}

// Locker gives a workflow exclusive ownership of one order.
type Locker interface {
	Lock(ctx context.Context, orderID int64) (func(), error)
}

type OrderDeps struct {
	TxManager trm.Manager
	Repo      OrderRepo
	Cache     Cache
	Locks     Locker
	Inventory InventoryGateway
	Payment   PaymentGateway
	Shipping  ShippingGateway
	Notifier  Notifier

	// Optional, default to time.Now and uuid.NewString.
	Clock   func() time.Time
	EventID func() string
}

var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}

type OrderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	locks     Locker
	inventory InventoryGateway
	payment   PaymentGateway
	shipping  ShippingGateway
	notifier  Notifier
	now       func() time.Time
	eventID   func() string
}

func NewOrderService(logger *slog.Logger, deps OrderDeps) *OrderService {
	s := &OrderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: deps.TxManager,
		repo:      deps.Repo,
		cache:     deps.Cache,
		locks:     deps.Locks,
		inventory: deps.Inventory,
		payment:   deps.Payment,
		shipping:  deps.Shipping,
		notifier:  deps.Notifier,
		now:       deps.Clock,
		eventID:   deps.EventID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.eventID == nil {
		s.eventID = uuid.NewString
	}
	return s
}

// CreateOrder runs the create saga: persist PENDING, reserve inventory,
// charge payment, confirm. Every failure after the first write leaves the
// order CANCELLED and is returned together with that order.
func (s *OrderService) CreateOrder(ctx context.Context, in entities.NewOrder) (order entities.Order, err error) {
	if err := in.Validate(); err != nil {
		return entities.Order{}, err
	}

	start := s.now()
	defer func() {
		workflowTotal.WithLabelValues(workflowCreate, resultLabel(err)).Inc()
		workflowDuration.WithLabelValues(workflowCreate).Observe(time.Since(start).Seconds())
	}()

	order = entities.Order{
		CustomerID:    in.CustomerID,
		OrderStatus:   entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusPending,
		Total:         pricing.OrderTotal(in.Items),
		CreatedAt:     s.now().UTC(),
		Items:         in.Items,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		saved, err := s.repo.SaveOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.repo.SaveItems(ctx, saved.OrderID, order.Items); err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		order.OrderID = saved.OrderID
		order.CreatedAt = saved.CreatedAt
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	// From here on the saga runs to a final state even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	logger := s.logger.With(slog.Int64("order_id", order.OrderID))

	unlock, err := s.locks.Lock(ctx, order.OrderID)
	if err != nil {
		return order, fmt.Errorf("failed to lock order: %w", err)
	}
	defer unlock()

	if err := s.inventory.Reserve(ctx, order.OrderID, order.Items); err != nil {
		logger.WarnContext(ctx, "inventory reservation failed", slog.Any("error", err))
		return order, s.abort(ctx, &order, order.PaymentStatus, fmt.Errorf("%w: %w", entities.ErrInventoryReservation, err))
	}

	if err := s.payment.Charge(ctx, order.OrderID, order.CustomerID, order.Total); err != nil {
		logger.WarnContext(ctx, "payment failed", slog.Any("error", err))
		s.releaseInventory(ctx, order)
		return order, s.abort(ctx, &order, entities.PaymentStatusFailed, fmt.Errorf("%w: %w", entities.ErrPaymentCharge, err))
	}

	if err := s.setStatus(ctx, &order, entities.OrderStatusConfirmed, entities.PaymentStatusPaid); err != nil {
		logger.ErrorContext(ctx, "failed to confirm order, compensating", slog.Any("error", err))
		s.refundPayment(ctx, order)
		s.releaseInventory(ctx, order)
		return order, s.abort(ctx, &order, entities.PaymentStatusRefunded, fmt.Errorf("failed to confirm order: %w", err))
	}

	if sh, err := s.shipping.CreateShipment(ctx, order.OrderID, order.CustomerID); err != nil {
		logger.WarnContext(ctx, "failed to create shipment", slog.String("shipping_status", string(sh.Status)), slog.Any("error", err))
		s.notify(ctx, entities.EventShipmentFailed, map[string]any{
			"order_id": order.OrderID,
			"status":   string(sh.Status),
		})
	}

	s.notify(ctx, entities.EventOrderCreated, map[string]any{
		"order_id":    order.OrderID,
		"customer_id": order.CustomerID,
		"total":       order.Total.StringFixed(pricing.Places),
	})

	logger.InfoContext(ctx, "order confirmed", slog.String("total", order.Total.StringFixed(pricing.Places)))
	return order, nil
}

// abort marks a failed create as CANCELLED and reports it.
func (s *OrderService) abort(ctx context.Context, order *entities.Order, payment entities.PaymentStatus, cause error) error {
	if err := s.setStatus(ctx, order, entities.OrderStatusCancelled, payment); err != nil {
		s.logger.ErrorContext(ctx, "failed to cancel order after failed workflow",
			slog.Int64("order_id", order.OrderID), slog.Any("error", err))
		return errors.Join(cause, err)
	}
	s.notify(ctx, entities.EventOrderFailed, map[string]any{
		"order_id": order.OrderID,
		"reason":   cause.Error(),
	})
	return cause
}

func (s *OrderService) releaseInventory(ctx context.Context, order entities.Order) {
	err := s.inventory.Release(ctx, order.OrderID, order.Items)
	compensationsTotal.WithLabelValues("release_inventory", resultLabel(err)).Inc()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to release inventory", slog.Int64("order_id", order.OrderID), slog.Any("error", err))
	}
}

func (s *OrderService) refundPayment(ctx context.Context, order entities.Order) {
	err := s.payment.Refund(ctx, order.OrderID)
	compensationsTotal.WithLabelValues("refund_payment", resultLabel(err)).Inc()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to refund payment", slog.Int64("order_id", order.OrderID), slog.Any("error", err))
	}
}

// setStatus persists both statuses conditioned on the status the order had
// when it was read, then drops the cached copy.
func (s *OrderService) setStatus(ctx context.Context, order *entities.Order, status entities.OrderStatus, payment entities.PaymentStatus) error {
	if err := s.repo.UpdateStatus(ctx, order.OrderID, order.OrderStatus, status, payment); err != nil {
		return err
	}
	order.OrderStatus = status
	order.PaymentStatus = payment
	s.cache.Delete(cacheKey(order.OrderID))
	return nil
}

func (s *OrderService) notify(ctx context.Context, typ entities.EventType, data map[string]any) {
	event := entities.Event{
		ID:         s.eventID(),
		Type:       typ,
		OccurredAt: s.now().UTC(),
		Data:       data,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to send notification", slog.String("type", string(typ)), slog.Any("error", err))
	}
}

// CancelOrder releases inventory and marks the order CANCELLED/REFUNDED.
// A failed release does not stop the cancellation.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (order entities.Order, err error) {
	defer func() { workflowTotal.WithLabelValues(workflowCancel, resultLabel(err)).Inc() }()

	unlock, err := s.locks.Lock(ctx, orderID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}
	defer unlock()

	order, err = s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.OrderStatus.Terminal() {
		return order, fmt.Errorf("%w: order %d is %s and cannot be cancelled", entities.ErrOrderFinalized, orderID, order.OrderStatus)
	}

	s.releaseInventory(ctx, order)
	if order.PaymentStatus == entities.PaymentStatusPaid {
		s.refundPayment(ctx, order)
	}

	if err := s.setStatus(ctx, &order, entities.OrderStatusCancelled, entities.PaymentStatusRefunded); err != nil {
		return order, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.notify(ctx, entities.EventOrderCancelled, map[string]any{"order_id": order.OrderID})
	return order, nil
}

// UpdateStatus applies a generic status change. Order status follows the
// transition table, payment status may not go from FAILED to PAID, and
// shipping status is forwarded to the shipping gateway unvalidated.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, upd entities.StatusUpdate) (order entities.Order, err error) {
	defer func() { workflowTotal.WithLabelValues(workflowUpdate, resultLabel(err)).Inc() }()

	if err := validateUpdate(upd); err != nil {
		return entities.Order{}, err
	}

	unlock, err := s.locks.Lock(ctx, orderID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}
	defer unlock()

	order, err = s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.OrderStatus.Terminal() {
		return order, fmt.Errorf("%w: order %d is %s", entities.ErrOrderFinalized, orderID, order.OrderStatus)
	}

	status, payment := order.OrderStatus, order.PaymentStatus
	if upd.PaymentStatus != nil {
		if err := validatePaymentChange(order.PaymentStatus, *upd.PaymentStatus); err != nil {
			return order, err
		}
		payment = *upd.PaymentStatus
	}
	// The table has no self-loops, so resubmitting the current status is rejected too.
	if upd.OrderStatus != nil {
		if err := ValidateTransition(order.OrderStatus, *upd.OrderStatus); err != nil {
			return order, err
		}
		status = *upd.OrderStatus
	}

	previous := order.OrderStatus
	if status != order.OrderStatus || payment != order.PaymentStatus {
		if err := s.setStatus(ctx, &order, status, payment); err != nil {
			return order, fmt.Errorf("failed to update order: %w", err)
		}
	}

	if upd.ShippingStatus != nil {
		if _, err := s.shipping.UpdateShipmentStatus(ctx, orderID, *upd.ShippingStatus); err != nil {
			s.logger.WarnContext(ctx, "failed to update shipment status", slog.Int64("order_id", orderID), slog.Any("error", err))
		}
	}

	data := map[string]any{
		"order_id":        order.OrderID,
		"previous_status": string(previous),
		"order_status":    string(order.OrderStatus),
		"payment_status":  string(order.PaymentStatus),
	}
	if upd.ShippingStatus != nil {
		data["shipping_status"] = string(*upd.ShippingStatus)
	}
	s.notify(ctx, entities.EventOrderStatusUpdated, data)

	return order, nil
}

func validateUpdate(upd entities.StatusUpdate) error {
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", entities.ErrInvalidOrder)
	}
	if upd.OrderStatus != nil && !upd.OrderStatus.Valid() {
		return fmt.Errorf("%w: unknown order status %q", entities.ErrInvalidOrder, *upd.OrderStatus)
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", entities.ErrInvalidOrder, *upd.PaymentStatus)
	}
	if upd.ShippingStatus != nil && !upd.ShippingStatus.Valid() {
		return fmt.Errorf("%w: unknown shipping status %q", entities.ErrInvalidOrder, *upd.ShippingStatus)
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	if order, ok := s.cached(ctx, orderID); ok {
		return order, nil
	}

	// The fill runs under the order lock so it cannot interleave with a
	// writer's update and cache invalidation.
	unlock, err := s.locks.Lock(ctx, orderID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}
	defer unlock()

	if order, ok := s.cached(ctx, orderID); ok {
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(ctx, readRetry, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.store(ctx, order)
	return order, nil
}

func (s *OrderService) cached(ctx context.Context, orderID int64) (entities.Order, bool) {
	key := cacheKey(orderID)
	data, ok := s.cache.Get(key)
	if !ok {
		return entities.Order{}, false
	}
	var order entities.Order
	if err := order.Unmarshal(data); err != nil {
		s.logger.WarnContext(ctx, "dropping undecodable cache entry", slog.Int64("order_id", orderID))
		s.cache.Delete(key)
		return entities.Order{}, false
	}
	return order, true
}

// WarmUpCache loads the most recent orders into the cache.
func (s *OrderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, o := range orders {
		s.store(ctx, o)
	}
	s.logger.InfoContext(ctx, "cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func (s *OrderService) store(ctx context.Context, order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal order", slog.Int64("order_id", order.OrderID), slog.Any("error", err))
		return
	}
	s.cache.Set(cacheKey(order.OrderID), data)
}

func cacheKey(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}
