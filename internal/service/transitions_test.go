package service_test

import (
	"slices"
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	allowed := map[entities.OrderStatus][]entities.OrderStatus{
		entities.OrderStatusPending:   {entities.OrderStatusConfirmed, entities.OrderStatusCancelled},
		entities.OrderStatusConfirmed: {entities.OrderStatusShipped, entities.OrderStatusCancelled},
		entities.OrderStatusShipped:   {entities.OrderStatusDelivered},
	}

	for _, from := range entities.OrderStatuses {
		for _, to := range entities.OrderStatuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				err := service.ValidateTransition(from, to)
				if slices.Contains(allowed[from], to) {
					assert.NoError(t, err)
					return
				}
				assert.ErrorIs(t, err, entities.ErrInvalidTransition)
				assert.EqualError(t, err, "invalid transition from "+string(from)+" to "+string(to))
			})
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	assert.Empty(t, service.AllowedTransitions(entities.OrderStatusCancelled))
	assert.Empty(t, service.AllowedTransitions(entities.OrderStatusDelivered))

	got := service.AllowedTransitions(entities.OrderStatusPending)
	assert.ElementsMatch(t, []entities.OrderStatus{entities.OrderStatusConfirmed, entities.OrderStatusCancelled}, got)

	got[0] = entities.OrderStatusDelivered
	assert.NotContains(t, service.AllowedTransitions(entities.OrderStatusPending), entities.OrderStatusDelivered)
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range entities.OrderStatuses {
		assert.Equal(t, len(service.AllowedTransitions(s)) == 0, s.Terminal(), s)
	}
}
