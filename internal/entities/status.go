package entities

import "strings"

// Values are stored as-is and exposed through the API, never renumber them.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Terminal reports whether no further mutation is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type ShippingStatus string

const (
	ShippingStatusPending   ShippingStatus = "Pending"
	ShippingStatusShipped   ShippingStatus = "Shipped"
	ShippingStatusDelivered ShippingStatus = "Delivered"
	ShippingStatusFailed    ShippingStatus = "Failed"
	ShippingStatusUnknown   ShippingStatus = "Unknown"
)

var ShippingStatuses = []ShippingStatus{
	ShippingStatusPending,
	ShippingStatusShipped,
	ShippingStatusDelivered,
	ShippingStatusFailed,
	ShippingStatusUnknown,
}

func (s ShippingStatus) Valid() bool {
	for _, v := range ShippingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// SortBy keys. SortByTotal keeps the historical "Total" wire value.
type SortBy string

const (
	SortByDate  SortBy = "Date"
	SortByTotal SortBy = "Total"
)

var SortKeys = []SortBy{SortByDate, SortByTotal}

type Direction string

const (
	DirectionAsc  Direction = "Ascending"
	DirectionDesc Direction = "Descending"
)

var Directions = []Direction{DirectionAsc, DirectionDesc}

// ParseOrderStatus matches case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, v := range OrderStatuses {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for _, v := range PaymentStatuses {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

func ParseShippingStatus(s string) (ShippingStatus, bool) {
	for _, v := range ShippingStatuses {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}
