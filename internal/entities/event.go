package entities

import "time"

type EventType string

const (
	EventOrderCreated       EventType = "ORDER_CREATED"
	EventOrderFailed        EventType = "ORDER_FAILED"
	EventOrderCancelled     EventType = "ORDER_CANCELLED"
	EventOrderStatusUpdated EventType = "ORDER_STATUS_UPDATED"
	EventShipmentFailed     EventType = "SHIPMENT_FAILED"
)

type Event struct {
	ID         string
	Type       EventType
	OccurredAt time.Time
	Data       map[string]any
}
