package service

import (
	"fmt"
	"slices"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
)

// orderTransitions is the complete order lifecycle. Statuses without an
// entry are terminal.
var orderTransitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderStatusPending:   {entities.OrderStatusConfirmed, entities.OrderStatusCancelled},
	entities.OrderStatusConfirmed: {entities.OrderStatusShipped, entities.OrderStatusCancelled},
	entities.OrderStatusShipped:   {entities.OrderStatusDelivered},
}

// AllowedTransitions returns the statuses reachable from s in one step.
func AllowedTransitions(s entities.OrderStatus) []entities.OrderStatus {
	return slices.Clone(orderTransitions[s])
}

func ValidateTransition(from, to entities.OrderStatus) error {
	if slices.Contains(orderTransitions[from], to) {
		return nil
	}
	return fmt.Errorf("%w from %s to %s", entities.ErrInvalidTransition, from, to)
}

// validatePaymentChange enforces that a failed charge is never marked paid
// without going through the create workflow again.
func validatePaymentChange(from, to entities.PaymentStatus) error {
	if from == entities.PaymentStatusFailed && to == entities.PaymentStatusPaid {
		return fmt.Errorf("%w: %s to %s", entities.ErrPaymentRuleViolation, from, to)
	}
	return nil
}
