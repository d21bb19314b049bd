package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, 5*time.Second, cfg.Gateways.Timeout)
	assert.True(t, cfg.Gateways.InventoryMock)
	assert.True(t, cfg.Gateways.PaymentMock)
	assert.True(t, cfg.Gateways.ShippingMock)
	assert.Equal(t, "mock", cfg.Gateways.Notifier)
	assert.Equal(t, "memory", cfg.Gateways.ShipmentStore)
	assert.Equal(t, 3, cfg.History.PageSize)
	assert.Equal(t, "order-orchestrator", cfg.Tracing.ServiceName)
	assert.Empty(t, cfg.Tracing.Endpoint)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("PAYMENT_MOCK", "false")
	t.Setenv("GATEWAY_TIMEOUT", "2s")
	t.Setenv("HISTORY_PAGE_SIZE", "10")
	t.Setenv("SHIPMENT_STORE", "redis")
	t.Setenv("INVENTORY_MOCK", "not-a-bool")

	cfg := New()

	assert.False(t, cfg.Gateways.PaymentMock)
	assert.True(t, cfg.Gateways.InventoryMock, "unparsable value falls back")
	assert.Equal(t, 2*time.Second, cfg.Gateways.Timeout)
	assert.Equal(t, 10, cfg.History.PageSize)
	assert.Equal(t, "redis", cfg.Gateways.ShipmentStore)
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv("POSTGRES_USER", "orders")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg := New()
	require.NoError(t, cfg.Validate())

	cfg.Gateways.Notifier = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.History.PageSize = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Tracing.Endpoint = "not a url"
	assert.Error(t, cfg.Validate())
}
