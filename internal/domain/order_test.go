package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderStatusActive))
	assert.True(t, IsValidOrderStatus(OrderStatusCompleted))
	assert.True(t, IsValidOrderStatus(OrderStatusCancelled))
	assert.False(t, IsValidOrderStatus("PENDING"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestCanTransition_FromActive(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusActive, OrderStatusCompleted))
	assert.True(t, CanTransition(OrderStatusActive, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusActive, OrderStatusActive))
}

func TestCanTransition_TerminalStatesAreFinal(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusActive))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusActive))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusCompleted))

	// Same-status writes stay legal so generic updates can touch other fields.
	assert.True(t, CanTransition(OrderStatusCompleted, OrderStatusCompleted))
}

func TestOrder_IsActive(t *testing.T) {
	assert.True(t, Order{Status: OrderStatusActive}.IsActive())
	assert.False(t, Order{Status: OrderStatusCompleted}.IsActive())
}
