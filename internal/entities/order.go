package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID int64
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Order struct {
	OrderID       int64
	CustomerID    int64
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	Total         decimal.Decimal
	CreatedAt     time.Time

	Items []Item
}

// NewOrder is the input of the create workflow.
type NewOrder struct {
	CustomerID int64
	Items      []Item
}

// StatusUpdate carries the optional fields of a generic status update.
// Nil means "leave as is".
type StatusUpdate struct {
	OrderStatus    *OrderStatus
	PaymentStatus  *PaymentStatus
	ShippingStatus *ShippingStatus
}

func (u StatusUpdate) Empty() bool {
	return u.OrderStatus == nil && u.PaymentStatus == nil && u.ShippingStatus == nil
}

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrOrderFinalized       = errors.New("order is finalized")
	ErrPaymentRuleViolation = errors.New("failed payment cannot be marked as paid")
	ErrStatusConflict       = errors.New("order status changed concurrently")
	ErrInventoryReservation = errors.New("inventory reservation failed")
	ErrPaymentCharge        = errors.New("payment failed")
)

func (o NewOrder) Validate() error {
	if o.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidOrder)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidOrder)
	}
	for i, it := range o.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be greater than 0", ErrInvalidOrder, i)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d: unit price cannot be negative", ErrInvalidOrder, i)
		}
	}
	return nil
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(Item{})
}
