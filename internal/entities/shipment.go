package entities

import "time"

// Shipment is the shipping gateway's view of an order. It is referenced,
// never persisted by the order store.
type Shipment struct {
	OrderID          int64
	Status           ShippingStatus
	ExpectedDelivery time.Time
}

func (s Shipment) HasExpectedDelivery() bool {
	return !s.ExpectedDelivery.IsZero()
}
