package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/redis/go-redis/v9"
)

// ShipmentStore keeps simulated shipments keyed by order id.
type ShipmentStore interface {
	Get(ctx context.Context, orderID int64) (entities.Shipment, bool, error)
	Put(ctx context.Context, s entities.Shipment) error
	Clear(ctx context.Context) error
}

type MemoryShipmentStore struct {
	mu        sync.RWMutex
	shipments map[int64]entities.Shipment
}

func NewMemoryShipmentStore() *MemoryShipmentStore {
	return &MemoryShipmentStore{shipments: make(map[int64]entities.Shipment)}
}

func (s *MemoryShipmentStore) Get(_ context.Context, orderID int64) (entities.Shipment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shipments[orderID]
	return sh, ok, nil
}

func (s *MemoryShipmentStore) Put(_ context.Context, sh entities.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments[sh.OrderID] = sh
	return nil
}

func (s *MemoryShipmentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.shipments)
	return nil
}

const shipmentKeyPrefix = "order-orchestrator:shipment:"

// RedisShipmentStore shares the simulation between several instances.
type RedisShipmentStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisShipmentStore(client *redis.Client, ttl time.Duration) *RedisShipmentStore {
	return &RedisShipmentStore{client: client, ttl: ttl}
}

type storedShipment struct {
	Status           entities.ShippingStatus `json:"status"`
	ExpectedDelivery string                  `json:"expected_delivery,omitempty"`
}

func shipmentKey(orderID int64) string {
	return shipmentKeyPrefix + strconv.FormatInt(orderID, 10)
}

func (s *RedisShipmentStore) Get(ctx context.Context, orderID int64) (entities.Shipment, bool, error) {
	raw, err := s.client.Get(ctx, shipmentKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Shipment{}, false, nil
	}
	if err != nil {
		return entities.Shipment{}, false, fmt.Errorf("failed to get shipment: %w", err)
	}

	var st storedShipment
	if err := json.Unmarshal(raw, &st); err != nil {
		return entities.Shipment{}, false, fmt.Errorf("failed to decode shipment: %w", err)
	}
	sh := entities.Shipment{OrderID: orderID, Status: st.Status}
	if st.ExpectedDelivery != "" {
		if d, err := time.Parse(dateLayout, st.ExpectedDelivery); err == nil {
			sh.ExpectedDelivery = d
		}
	}
	return sh, true, nil
}

func (s *RedisShipmentStore) Put(ctx context.Context, sh entities.Shipment) error {
	st := storedShipment{Status: sh.Status}
	if sh.HasExpectedDelivery() {
		st.ExpectedDelivery = sh.ExpectedDelivery.Format(dateLayout)
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode shipment: %w", err)
	}
	if err := s.client.Set(ctx, shipmentKey(sh.OrderID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}
	return nil
}

func (s *RedisShipmentStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, shipmentKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan shipments: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
