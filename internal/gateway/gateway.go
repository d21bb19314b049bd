package gateway

import (
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/config"
	"github.com/redis/go-redis/v9"
)

// Set bundles the collaborators selected by config. Swapping a mock for a
// real backend only changes what New returns, never how they are used.
type Set struct {
	Inventory Inventory
	Payment   Payment
	Shipping  Shipping
	Notifier  Notifier

	closers []func() error
}

// New builds the gateways. rdb is only used when the mock shipping
// progression is configured to live in redis and may be nil otherwise.
func New(logger *slog.Logger, cfg config.Config, rdb *redis.Client) (*Set, error) {
	gw := cfg.Gateways
	s := &Set{}

	if gw.InventoryMock {
		s.Inventory = NewMockInventory(logger)
	} else {
		s.Inventory = NewHTTPInventory(logger, gw.InventoryURL, gw.Timeout)
	}

	if gw.PaymentMock {
		s.Payment = NewMockPayment(logger)
	} else {
		s.Payment = NewHTTPPayment(logger, gw.PaymentURL, gw.Timeout)
	}

	if gw.ShippingMock {
		var store ShipmentStore
		switch gw.ShipmentStore {
		case "redis":
			if rdb == nil {
				return nil, fmt.Errorf("redis shipment store requires a redis client")
			}
			store = NewRedisShipmentStore(rdb, 0)
		default:
			store = NewMemoryShipmentStore()
		}
		s.Shipping = NewMockShipping(logger, store)
	} else {
		s.Shipping = NewHTTPShipping(logger, gw.ShippingURL, gw.Timeout, gw.ShippingParallel)
	}

	switch gw.Notifier {
	case "kafka":
		kn := NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic, cfg.Kafka.BatchTimeout, gw.Timeout)
		s.Notifier = kn
		s.closers = append(s.closers, kn.Close)
	case "http":
		s.Notifier = NewHTTPNotifier(gw.NotificationURL, gw.Timeout)
	default:
		s.Notifier = NewLogNotifier(logger)
	}

	return s, nil
}

func (s *Set) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
