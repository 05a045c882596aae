package domain

import "time"

type Order struct {
	ID          uint
	TableNumber int
	Status      string
	CreatedAt   time.Time
}

const (
	OrderStatusActive    = "ACTIVE"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// IsValidOrderStatus reports whether s is one of the known status values.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusActive, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. COMPLETED and CANCELLED are terminal.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if from != OrderStatusActive {
		return false
	}
	return to == OrderStatusCompleted || to == OrderStatusCancelled
}

func (o Order) IsActive() bool {
	return o.Status == OrderStatusActive
}
