package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mesero/internal/domain"
	"mesero/internal/errors"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type OrderRepository interface {
	Insert(ctx context.Context, tableNumber int) (uint, error)
	Update(ctx context.Context, order domain.Order) error
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindLatestActive(ctx context.Context) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
	ObserveByID(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.Order]]
	ObserveLatestActive(ctx context.Context) *watch.Stream[result.Result[*domain.Order]]
}

type LineItemRepository interface {
	Insert(ctx context.Context, item domain.OrderLineItem) (uint, error)
	Update(ctx context.Context, id uint, quantity int, specialRequests string) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*domain.OrderLineItem, error)
	ListForOrder(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error)
	ObserveForOrder(ctx context.Context, orderID uint) *watch.Stream[result.Result[[]domain.OrderLineItem]]
	ObserveByID(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.OrderLineItem]]
}

// OrderService owns the order lifecycle. Store failures propagate to the
// caller untouched; retries, if anyone wants them, belong to the consumer.
type OrderService struct {
	orderRepo    OrderRepository
	lineItemRepo LineItemRepository
	logger       *zap.Logger
}

func NewOrderService(orderRepo OrderRepository, lineItemRepo LineItemRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		lineItemRepo: lineItemRepo,
		logger:       logger,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, tableNumber int) (uint, error) {
	if tableNumber <= 0 {
		return 0, errors.NewValidationError("tableNumber must be a positive integer", errors.ValidationDetail{
			Field:   "tableNumber",
			Message: "tableNumber must be a positive integer",
		})
	}

	id, err := s.orderRepo.Insert(ctx, tableNumber)
	if err != nil {
		return 0, err
	}

	s.logger.Info("order created", zap.Uint("orderId", id), zap.Int("tableNumber", tableNumber))
	return id, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// GetActiveOrder returns the latest ACTIVE order, nil when there is none.
func (s *OrderService) GetActiveOrder(ctx context.Context) (*domain.Order, error) {
	return s.orderRepo.FindLatestActive(ctx)
}

// UpdateOrder replaces an order's mutable fields. A status change must be a
// sanctioned transition: ACTIVE is the only non-terminal state.
func (s *OrderService) UpdateOrder(ctx context.Context, order domain.Order) error {
	if !domain.IsValidOrderStatus(order.Status) {
		return errors.NewValidationError(fmt.Sprintf("unknown order status %q", order.Status), errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of ACTIVE, COMPLETED, CANCELLED",
		})
	}
	if order.TableNumber <= 0 {
		return errors.NewValidationError("tableNumber must be a positive integer", errors.ValidationDetail{
			Field:   "tableNumber",
			Message: "tableNumber must be a positive integer",
		})
	}

	current, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(current.Status, order.Status) {
		return errors.NewValidationError(
			fmt.Sprintf("order cannot move from %s to %s", current.Status, order.Status),
			errors.ValidationDetail{
				Field:   "status",
				Message: fmt.Sprintf("%s is terminal", current.Status),
			},
		)
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	if current.Status != order.Status {
		s.logger.Info("order status changed",
			zap.Uint("orderId", order.ID),
			zap.String("from", current.Status),
			zap.String("to", order.Status),
		)
	}
	return nil
}

func (s *OrderService) CompleteOrder(ctx context.Context, id uint) error {
	return s.transition(ctx, id, domain.OrderStatusCompleted)
}

func (s *OrderService) CancelOrder(ctx context.Context, id uint) error {
	return s.transition(ctx, id, domain.OrderStatusCancelled)
}

func (s *OrderService) transition(ctx context.Context, id uint, to string) error {
	current, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	updated := *current
	updated.Status = to
	return s.UpdateOrder(ctx, updated)
}

// DeleteOrder removes an order and, through the store cascade, all of its
// line items.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Uint("orderId", id))
	return nil
}

// AddLineItem records an ordered menu entry on an order. Name and price are
// captured here; later catalog changes never touch the row.
func (s *OrderService) AddLineItem(ctx context.Context, item domain.OrderLineItem) (uint, error) {
	if err := s.validateLineItem(item); err != nil {
		return 0, err
	}

	// The owning order must exist; FK enforcement alone would surface an
	// opaque driver error.
	if _, err := s.orderRepo.FindByID(ctx, item.OrderID); err != nil {
		return 0, err
	}

	id, err := s.lineItemRepo.Insert(ctx, item)
	if err != nil {
		return 0, err
	}

	s.logger.Info("line item added",
		zap.Uint("orderId", item.OrderID),
		zap.Uint("orderItemId", id),
		zap.String("menuItemId", item.MenuItemID),
		zap.Int("quantity", item.Quantity),
	)
	return id, nil
}

// UpdateLineItem changes quantity and the special-request note. Nothing else
// on the row is reachable through this operation.
func (s *OrderService) UpdateLineItem(ctx context.Context, id uint, quantity int, specialRequests string) error {
	if quantity <= 0 {
		return errors.NewValidationError("quantity must be a positive integer", errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	return s.lineItemRepo.Update(ctx, id, quantity, specialRequests)
}

// RemoveLineItem deletes one line item. Removing an absent item is a no-op.
func (s *OrderService) RemoveLineItem(ctx context.Context, id uint) error {
	return s.lineItemRepo.Delete(ctx, id)
}

func (s *OrderService) GetLineItems(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error) {
	return s.lineItemRepo.ListForOrder(ctx, orderID)
}

func (s *OrderService) ObserveOrder(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.Order]] {
	return s.orderRepo.ObserveByID(ctx, id)
}

func (s *OrderService) ObserveActiveOrder(ctx context.Context) *watch.Stream[result.Result[*domain.Order]] {
	return s.orderRepo.ObserveLatestActive(ctx)
}

func (s *OrderService) ObserveLineItems(ctx context.Context, orderID uint) *watch.Stream[result.Result[[]domain.OrderLineItem]] {
	return s.lineItemRepo.ObserveForOrder(ctx, orderID)
}

func (s *OrderService) ObserveLineItem(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.OrderLineItem]] {
	return s.lineItemRepo.ObserveByID(ctx, id)
}

func (s *OrderService) validateLineItem(item domain.OrderLineItem) error {
	var details []errors.ValidationDetail

	if item.OrderID == 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId is required",
		})
	}
	if strings.TrimSpace(item.MenuItemID) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "menuItemId",
			Message: "menuItemId is required",
		})
	}
	if strings.TrimSpace(item.ItemName) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "itemName",
			Message: "itemName is required",
		})
	}
	if strings.TrimSpace(item.ItemPrice) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "itemPrice",
			Message: "itemPrice is required",
		})
	}
	if item.Quantity <= 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("invalid line item", details...)
	}
	return nil
}
