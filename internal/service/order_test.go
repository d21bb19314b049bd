package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	mocks "github.com/SergeyBogomolovv/order-orchestrator/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/order-orchestrator/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dbError  = errors.New("db error")
)

type orderMocks struct {
	tx        *txMocks.MockManager
	repo      *mocks.MockOrderRepo
	cache     *mocks.MockCache
	locks     *mocks.MockLocker
	inventory *mocks.MockInventoryGateway
	payment   *mocks.MockPaymentGateway
	shipping  *mocks.MockShippingGateway
	notifier  *mocks.MockNotifier
}

func newOrderMocks(t *testing.T) orderMocks {
	return orderMocks{
		tx:        txMocks.NewMockManager(t),
		repo:      mocks.NewMockOrderRepo(t),
		cache:     mocks.NewMockCache(t),
		locks:     mocks.NewMockLocker(t),
		inventory: mocks.NewMockInventoryGateway(t),
		payment:   mocks.NewMockPaymentGateway(t),
		shipping:  mocks.NewMockShippingGateway(t),
		notifier:  mocks.NewMockNotifier(t),
	}
}

func (m orderMocks) service() *service.OrderService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewOrderService(logger, service.OrderDeps{
		TxManager: m.tx,
		Repo:      m.repo,
		Cache:     m.cache,
		Locks:     m.locks,
		Inventory: m.inventory,
		Payment:   m.payment,
		Shipping:  m.shipping,
		Notifier:  m.notifier,
		Clock:     func() time.Time { return fixedNow },
		EventID:   func() string { return "event-1" },
	})
}

func (m orderMocks) expectTx() {
	m.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		})
}

func (m orderMocks) expectLock(orderID int64) {
	m.locks.EXPECT().Lock(mock.Anything, orderID).Return(func() {}, nil).Once()
}

func (m orderMocks) expectStatus(orderID int64, expected, status entities.OrderStatus, payment entities.PaymentStatus, err error) {
	m.repo.EXPECT().UpdateStatus(mock.Anything, orderID, expected, status, payment).Return(err).Once()
	if err == nil {
		m.cache.EXPECT().Delete(strconv.FormatInt(orderID, 10)).Return().Once()
	}
}

func (m orderMocks) expectEvent(typ entities.EventType, err error) {
	m.expectEventData(typ, nil, err)
}

// expectEventData matches the event type and every key of data by equality.
func (m orderMocks) expectEventData(typ entities.EventType, data map[string]any, err error) {
	m.notifier.EXPECT().
		Notify(mock.Anything, mock.MatchedBy(func(e entities.Event) bool {
			if e.Type != typ {
				return false
			}
			for k, v := range data {
				if e.Data[k] != v {
					return false
				}
			}
			return true
		})).
		Return(err).Once()
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrder() entities.NewOrder {
	return entities.NewOrder{
		CustomerID: 7,
		Items: []entities.Item{
			{ProductID: 1, SKU: "SKU-1", Quantity: 2, UnitPrice: price("19.99")},
			{ProductID: 2, SKU: "SKU-2", Quantity: 1, UnitPrice: price("5.50")},
		},
	}
}

func amountIs(want string) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(price(want)) })
}

func TestOrderService_CreateOrder(t *testing.T) {
	const orderID int64 = 1
	gatewayErr := errors.New("gateway down")

	expectSave := func(m orderMocks) {
		m.expectTx()
		m.repo.EXPECT().
			SaveOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
				return o.OrderStatus == entities.OrderStatusPending &&
					o.PaymentStatus == entities.PaymentStatusPending &&
					o.Total.Equal(price("45.48"))
			})).
			RunAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
				o.OrderID = orderID
				return o, nil
			}).Once()
		m.repo.EXPECT().SaveItems(mock.Anything, orderID, mock.Anything).Return(nil).Once()
		m.expectLock(orderID)
	}

	testCases := []struct {
		name          string
		input         entities.NewOrder
		mockBehavior  func(m orderMocks)
		wantErr       error
		wantStatus    entities.OrderStatus
		wantPayment   entities.PaymentStatus
		wantPersisted bool
	}{
		{
			name:  "confirmed",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), amountIs("45.48")).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusConfirmed, entities.PaymentStatusPaid, nil)
				m.shipping.EXPECT().CreateShipment(mock.Anything, orderID, int64(7)).
					Return(entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusPending}, nil).Once()
				m.expectEventData(entities.EventOrderCreated, map[string]any{
					"order_id":    orderID,
					"customer_id": int64(7),
					"total":       "45.48",
				}, nil)
			},
			wantStatus:    entities.OrderStatusConfirmed,
			wantPayment:   entities.PaymentStatusPaid,
			wantPersisted: true,
		},
		{
			name:         "no items",
			input:        entities.NewOrder{CustomerID: 7},
			mockBehavior: func(m orderMocks) {},
			wantErr:      entities.ErrInvalidOrder,
		},
		{
			name: "negative quantity",
			input: entities.NewOrder{CustomerID: 7, Items: []entities.Item{
				{ProductID: 1, SKU: "SKU-1", Quantity: -1, UnitPrice: price("1.00")},
			}},
			mockBehavior: func(m orderMocks) {},
			wantErr:      entities.ErrInvalidOrder,
		},
		{
			name:  "save fails",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				m.expectTx()
				m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(entities.Order{}, dbError).Once()
			},
			wantErr: dbError,
		},
		{
			name:  "reservation fails",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(gatewayErr).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusPending, nil)
				m.expectEvent(entities.EventOrderFailed, nil)
			},
			wantErr:       entities.ErrInventoryReservation,
			wantStatus:    entities.OrderStatusCancelled,
			wantPayment:   entities.PaymentStatusPending,
			wantPersisted: true,
		},
		{
			name:  "charge fails releases inventory",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), amountIs("45.48")).Return(gatewayErr).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusFailed, nil)
				m.expectEvent(entities.EventOrderFailed, nil)
			},
			wantErr:       entities.ErrPaymentCharge,
			wantStatus:    entities.OrderStatusCancelled,
			wantPayment:   entities.PaymentStatusFailed,
			wantPersisted: true,
		},
		{
			name:  "charge fails and release fails",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), mock.Anything).Return(gatewayErr).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(gatewayErr).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusFailed, nil)
				m.expectEvent(entities.EventOrderFailed, nil)
			},
			wantErr:       entities.ErrPaymentCharge,
			wantStatus:    entities.OrderStatusCancelled,
			wantPayment:   entities.PaymentStatusFailed,
			wantPersisted: true,
		},
		{
			name:  "confirm write fails refunds and releases",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusConfirmed, entities.PaymentStatusPaid, dbError)
				m.payment.EXPECT().Refund(mock.Anything, orderID).Return(nil).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusRefunded, nil)
				m.expectEvent(entities.EventOrderFailed, nil)
			},
			wantErr:       dbError,
			wantStatus:    entities.OrderStatusCancelled,
			wantPayment:   entities.PaymentStatusRefunded,
			wantPersisted: true,
		},
		{
			name:  "shipment failure does not fail the order",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusConfirmed, entities.PaymentStatusPaid, nil)
				m.shipping.EXPECT().CreateShipment(mock.Anything, orderID, int64(7)).
					Return(entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusFailed}, gatewayErr).Once()
				m.expectEvent(entities.EventShipmentFailed, nil)
				m.expectEvent(entities.EventOrderCreated, nil)
			},
			wantStatus:    entities.OrderStatusConfirmed,
			wantPayment:   entities.PaymentStatusPaid,
			wantPersisted: true,
		},
		{
			name:  "notification failure does not fail the order",
			input: sampleOrder(),
			mockBehavior: func(m orderMocks) {
				expectSave(m)
				m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusConfirmed, entities.PaymentStatusPaid, nil)
				m.shipping.EXPECT().CreateShipment(mock.Anything, orderID, int64(7)).Return(entities.Shipment{}, nil).Once()
				m.expectEvent(entities.EventOrderCreated, gatewayErr)
			},
			wantStatus:    entities.OrderStatusConfirmed,
			wantPayment:   entities.PaymentStatusPaid,
			wantPersisted: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newOrderMocks(t)
			tc.mockBehavior(m)

			got, err := m.service().CreateOrder(context.Background(), tc.input)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			if !tc.wantPersisted {
				assert.Zero(t, got.OrderID)
				return
			}
			assert.Equal(t, orderID, got.OrderID)
			assert.Equal(t, tc.wantStatus, got.OrderStatus)
			assert.Equal(t, tc.wantPayment, got.PaymentStatus)
			assert.True(t, got.Total.Equal(price("45.48")), "total %s", got.Total)
		})
	}
}

func TestOrderService_CreateOrder_DetachesFromCaller(t *testing.T) {
	const orderID int64 = 3
	m := newOrderMocks(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.expectTx()
	m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			o.OrderID = orderID
			return o, nil
		}).Once()
	m.repo.EXPECT().SaveItems(mock.Anything, orderID, mock.Anything).Return(nil).Once()
	m.expectLock(orderID)
	m.inventory.EXPECT().Reserve(mock.Anything, orderID, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ int64, _ []entities.Item) error {
			cancel()
			return nil
		}).Once()
	m.payment.EXPECT().Charge(mock.Anything, orderID, int64(7), mock.Anything).
		RunAndReturn(func(ctx context.Context, _, _ int64, _ decimal.Decimal) error {
			return ctx.Err()
		}).Once()
	m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusConfirmed, entities.PaymentStatusPaid, nil)
	m.shipping.EXPECT().CreateShipment(mock.Anything, orderID, int64(7)).Return(entities.Shipment{}, nil).Once()
	m.expectEvent(entities.EventOrderCreated, nil)

	got, err := m.service().CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusConfirmed, got.OrderStatus)
}

func TestOrderService_CancelOrder(t *testing.T) {
	const orderID int64 = 5
	gatewayErr := errors.New("gateway down")

	stored := func(status entities.OrderStatus, payment entities.PaymentStatus) entities.Order {
		return entities.Order{
			OrderID:       orderID,
			CustomerID:    7,
			OrderStatus:   status,
			PaymentStatus: payment,
			Total:         price("10.00"),
			Items:         []entities.Item{{ProductID: 1, SKU: "SKU-1", Quantity: 1, UnitPrice: price("10.00")}},
		}
	}

	testCases := []struct {
		name         string
		mockBehavior func(m orderMocks)
		wantErr      error
		wantStatus   entities.OrderStatus
		wantPayment  entities.PaymentStatus
	}{
		{
			name: "confirmed order is refunded",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.payment.EXPECT().Refund(mock.Anything, orderID).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusConfirmed, entities.OrderStatusCancelled, entities.PaymentStatusRefunded, nil)
				m.expectEvent(entities.EventOrderCancelled, nil)
			},
			wantStatus:  entities.OrderStatusCancelled,
			wantPayment: entities.PaymentStatusRefunded,
		},
		{
			name: "unpaid order skips refund",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusPending, entities.PaymentStatusPending), nil).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusRefunded, nil)
				m.expectEvent(entities.EventOrderCancelled, nil)
			},
			wantStatus:  entities.OrderStatusCancelled,
			wantPayment: entities.PaymentStatusRefunded,
		},
		{
			name: "release failure still cancels",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(gatewayErr).Once()
				m.payment.EXPECT().Refund(mock.Anything, orderID).Return(gatewayErr).Once()
				m.expectStatus(orderID, entities.OrderStatusConfirmed, entities.OrderStatusCancelled, entities.PaymentStatusRefunded, nil)
				m.expectEvent(entities.EventOrderCancelled, gatewayErr)
			},
			wantStatus:  entities.OrderStatusCancelled,
			wantPayment: entities.PaymentStatusRefunded,
		},
		{
			name: "already cancelled",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusCancelled, entities.PaymentStatusRefunded), nil).Once()
			},
			wantErr: entities.ErrOrderFinalized,
		},
		{
			name: "delivered",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusDelivered, entities.PaymentStatusPaid), nil).Once()
			},
			wantErr: entities.ErrOrderFinalized,
		},
		{
			name: "not found",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "lost race",
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusPending, entities.PaymentStatusPending), nil).Once()
				m.inventory.EXPECT().Release(mock.Anything, orderID, mock.Anything).Return(nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusCancelled, entities.PaymentStatusRefunded, entities.ErrStatusConflict)
			},
			wantErr: entities.ErrStatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newOrderMocks(t)
			m.expectLock(orderID)
			tc.mockBehavior(m)

			got, err := m.service().CancelOrder(context.Background(), orderID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.OrderStatus)
			assert.Equal(t, tc.wantPayment, got.PaymentStatus)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	const orderID int64 = 9

	orderStatus := func(s entities.OrderStatus) *entities.OrderStatus { return &s }
	paymentStatus := func(s entities.PaymentStatus) *entities.PaymentStatus { return &s }
	shippingStatus := func(s entities.ShippingStatus) *entities.ShippingStatus { return &s }

	stored := func(status entities.OrderStatus, payment entities.PaymentStatus) entities.Order {
		return entities.Order{OrderID: orderID, CustomerID: 7, OrderStatus: status, PaymentStatus: payment}
	}

	testCases := []struct {
		name         string
		update       entities.StatusUpdate
		noLock       bool
		mockBehavior func(m orderMocks)
		wantErr      error
		wantErrText  string
		wantStatus   entities.OrderStatus
		wantPayment  entities.PaymentStatus
	}{
		{
			name:   "confirmed to shipped",
			update: entities.StatusUpdate{OrderStatus: orderStatus(entities.OrderStatusShipped)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
				m.expectStatus(orderID, entities.OrderStatusConfirmed, entities.OrderStatusShipped, entities.PaymentStatusPaid, nil)
				m.expectEvent(entities.EventOrderStatusUpdated, nil)
			},
			wantStatus:  entities.OrderStatusShipped,
			wantPayment: entities.PaymentStatusPaid,
		},
		{
			name:   "pending to delivered is rejected",
			update: entities.StatusUpdate{OrderStatus: orderStatus(entities.OrderStatusDelivered)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusPending, entities.PaymentStatusPending), nil).Once()
			},
			wantErr:     entities.ErrInvalidTransition,
			wantErrText: "invalid transition from PENDING to DELIVERED",
		},
		{
			name:   "failed payment cannot become paid",
			update: entities.StatusUpdate{PaymentStatus: paymentStatus(entities.PaymentStatusPaid)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusPending, entities.PaymentStatusFailed), nil).Once()
			},
			wantErr: entities.ErrPaymentRuleViolation,
		},
		{
			name:   "payment only",
			update: entities.StatusUpdate{PaymentStatus: paymentStatus(entities.PaymentStatusPaid)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusPending, entities.PaymentStatusPending), nil).Once()
				m.expectStatus(orderID, entities.OrderStatusPending, entities.OrderStatusPending, entities.PaymentStatusPaid, nil)
				m.expectEvent(entities.EventOrderStatusUpdated, nil)
			},
			wantStatus:  entities.OrderStatusPending,
			wantPayment: entities.PaymentStatusPaid,
		},
		{
			name:   "same status is rejected",
			update: entities.StatusUpdate{OrderStatus: orderStatus(entities.OrderStatusConfirmed)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
			},
			wantErr:     entities.ErrInvalidTransition,
			wantErrText: "invalid transition from CONFIRMED to CONFIRMED",
		},
		{
			name:   "shipping status is forwarded",
			update: entities.StatusUpdate{ShippingStatus: shippingStatus(entities.ShippingStatusShipped)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
				m.shipping.EXPECT().UpdateShipmentStatus(mock.Anything, orderID, entities.ShippingStatusShipped).
					Return(entities.Shipment{OrderID: orderID, Status: entities.ShippingStatusShipped}, nil).Once()
				m.expectEvent(entities.EventOrderStatusUpdated, nil)
			},
			wantStatus:  entities.OrderStatusConfirmed,
			wantPayment: entities.PaymentStatusPaid,
		},
		{
			name:   "shipping failure does not fail the update",
			update: entities.StatusUpdate{ShippingStatus: shippingStatus(entities.ShippingStatusDelivered)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusShipped, entities.PaymentStatusPaid), nil).Once()
				m.shipping.EXPECT().UpdateShipmentStatus(mock.Anything, orderID, entities.ShippingStatusDelivered).
					Return(entities.Shipment{}, errors.New("down")).Once()
				m.expectEvent(entities.EventOrderStatusUpdated, nil)
			},
			wantStatus:  entities.OrderStatusShipped,
			wantPayment: entities.PaymentStatusPaid,
		},
		{
			name:   "terminal order",
			update: entities.StatusUpdate{OrderStatus: orderStatus(entities.OrderStatusPending)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusCancelled, entities.PaymentStatusRefunded), nil).Once()
			},
			wantErr: entities.ErrOrderFinalized,
		},
		{
			name:         "empty update",
			update:       entities.StatusUpdate{},
			noLock:       true,
			mockBehavior: func(m orderMocks) {},
			wantErr:      entities.ErrInvalidOrder,
		},
		{
			name:         "unknown status value",
			update:       entities.StatusUpdate{OrderStatus: orderStatus("LOST")},
			noLock:       true,
			mockBehavior: func(m orderMocks) {},
			wantErr:      entities.ErrInvalidOrder,
		},
		{
			name:   "concurrent change",
			update: entities.StatusUpdate{OrderStatus: orderStatus(entities.OrderStatusShipped)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, orderID).
					Return(stored(entities.OrderStatusConfirmed, entities.PaymentStatusPaid), nil).Once()
				m.expectStatus(orderID, entities.OrderStatusConfirmed, entities.OrderStatusShipped, entities.PaymentStatusPaid, entities.ErrStatusConflict)
			},
			wantErr: entities.ErrStatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newOrderMocks(t)
			if !tc.noLock {
				m.expectLock(orderID)
			}
			tc.mockBehavior(m)

			got, err := m.service().UpdateStatus(context.Background(), orderID, tc.update)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				if tc.wantErrText != "" {
					assert.Contains(t, err.Error(), tc.wantErrText)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.OrderStatus)
			assert.Equal(t, tc.wantPayment, got.PaymentStatus)
		})
	}
}

func TestOrderService_LockFailure(t *testing.T) {
	m := newOrderMocks(t)
	m.locks.EXPECT().Lock(mock.Anything, int64(4)).Return(nil, context.DeadlineExceeded).Once()

	_, err := m.service().CancelOrder(context.Background(), 4)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOrderService_GetOrder(t *testing.T) {
	validOrder := entities.Order{
		OrderID:       123,
		CustomerID:    7,
		OrderStatus:   entities.OrderStatusConfirmed,
		PaymentStatus: entities.PaymentStatusPaid,
		Total:         price("12.50"),
		CreatedAt:     fixedNow,
	}
	validData, err := validOrder.Marshal()
	require.NoError(t, err)

	testCases := []struct {
		name         string
		mockBehavior func(m orderMocks)
		wantErr      error
	}{
		{
			name: "success from cache",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(validData, true).Once()
			},
		},
		{
			name: "broken cache entry is replaced",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return([]byte("broken"), true).Once()
				m.cache.EXPECT().Delete("123").Return().Once()
				m.expectLock(123)
				m.cache.EXPECT().Get("123").Return(nil, false).Once()
				m.repo.EXPECT().GetOrderByID(mock.Anything, int64(123)).Return(validOrder, nil).Once()
				m.cache.EXPECT().Set("123", validData).Return().Once()
			},
		},
		{
			name: "success from repo and set to cache",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(nil, false).Twice()
				m.expectLock(123)
				m.repo.EXPECT().GetOrderByID(mock.Anything, int64(123)).Return(validOrder, nil).Once()
				m.cache.EXPECT().Set("123", validData).Return().Once()
			},
		},
		{
			name: "filled by another reader while waiting for the lock",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(nil, false).Once()
				m.expectLock(123)
				m.cache.EXPECT().Get("123").Return(validData, true).Once()
			},
		},
		{
			name: "lock timeout",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(nil, false).Once()
				m.locks.EXPECT().Lock(mock.Anything, int64(123)).Return(nil, context.DeadlineExceeded).Once()
			},
			wantErr: context.DeadlineExceeded,
		},
		{
			name: "not found is not retried",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(nil, false).Twice()
				m.expectLock(123)
				m.repo.EXPECT().GetOrderByID(mock.Anything, int64(123)).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "second attempt from repo",
			mockBehavior: func(m orderMocks) {
				m.cache.EXPECT().Get("123").Return(nil, false).Twice()
				m.expectLock(123)
				m.repo.EXPECT().GetOrderByID(mock.Anything, int64(123)).
					Return(entities.Order{}, errors.New("some error")).Once()
				m.repo.EXPECT().GetOrderByID(mock.Anything, int64(123)).Return(validOrder, nil).Once()
				m.cache.EXPECT().Set("123", validData).Return().Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newOrderMocks(t)
			tc.mockBehavior(m)

			got, err := m.service().GetOrder(context.Background(), 123)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, validOrder.OrderID, got.OrderID)
			assert.Equal(t, validOrder.OrderStatus, got.OrderStatus)
			assert.True(t, validOrder.Total.Equal(got.Total))
			assert.True(t, validOrder.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestOrderService_WarmUpCache(t *testing.T) {
	t.Run("stores latest orders", func(t *testing.T) {
		m := newOrderMocks(t)
		orders := []entities.Order{{OrderID: 1}, {OrderID: 2}}
		m.repo.EXPECT().LatestOrders(mock.Anything, 10).Return(orders, nil).Once()
		m.cache.EXPECT().Set("1", mock.Anything).Return().Once()
		m.cache.EXPECT().Set("2", mock.Anything).Return().Once()

		require.NoError(t, m.service().WarmUpCache(context.Background(), 10))
	})

	t.Run("repo error", func(t *testing.T) {
		m := newOrderMocks(t)
		m.repo.EXPECT().LatestOrders(mock.Anything, 10).Return(nil, dbError).Once()

		assert.ErrorIs(t, m.service().WarmUpCache(context.Background(), 10), dbError)
	})
}
