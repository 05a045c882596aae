package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mesero/internal/domain"
	"mesero/internal/errors"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type SQLLineItemRepository struct {
	db  *sql.DB
	hub *watch.Hub
}

func NewSQLLineItemRepository(db *sql.DB, hub *watch.Hub) *SQLLineItemRepository {
	return &SQLLineItemRepository{db: db, hub: hub}
}

func (r *SQLLineItemRepository) Insert(ctx context.Context, item domain.OrderLineItem) (uint, error) {
	query := `
		INSERT INTO order_items (orderIdFk, menuOriginalId, itemName, itemPrice, quantity, specialRequests)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		item.OrderID, item.MenuItemID, item.ItemName, item.ItemPrice, item.Quantity, item.SpecialRequests,
	)
	if err != nil {
		return 0, errors.NewStorageError("inserting order item", err)
	}

	lastInsertID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewStorageError("getting last insert id", err)
	}

	id := uint(lastInsertID)
	r.hub.Notify(orderItemsTopic(item.OrderID), lineItemTopic(id))
	return id, nil
}

// Update mutates quantity and the special-request note only. The owning
// order, the captured name and the captured price stay as inserted.
func (r *SQLLineItemRepository) Update(ctx context.Context, id uint, quantity int, specialRequests string) error {
	orderID, err := r.owningOrderID(ctx, id)
	if err != nil {
		return err
	}

	query := `UPDATE order_items SET quantity = ?, specialRequests = ? WHERE orderItemId = ?`
	if _, err := r.db.ExecContext(ctx, query, quantity, specialRequests, id); err != nil {
		return errors.NewStorageError("updating order item", err)
	}

	r.hub.Notify(orderItemsTopic(orderID), lineItemTopic(id))
	return nil
}

// Delete is idempotent: deleting an already-absent item is not an error.
func (r *SQLLineItemRepository) Delete(ctx context.Context, id uint) error {
	orderID, err := r.owningOrderID(ctx, id)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil
		}
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE orderItemId = ?`, id); err != nil {
		return errors.NewStorageError("deleting order item", err)
	}

	r.hub.Notify(orderItemsTopic(orderID), lineItemTopic(id))
	return nil
}

func (r *SQLLineItemRepository) FindByID(ctx context.Context, id uint) (*domain.OrderLineItem, error) {
	query := `
		SELECT orderItemId, orderIdFk, menuOriginalId, itemName, itemPrice, quantity, specialRequests
		FROM order_items
		WHERE orderItemId = ?
	`

	var item domain.OrderLineItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName, &item.ItemPrice,
		&item.Quantity, &item.SpecialRequests,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order item with id %d not found", id))
	}
	if err != nil {
		return nil, errors.NewStorageError("querying order item by id", err)
	}

	return &item, nil
}

// ListForOrder returns an order's line items in stable insertion order.
func (r *SQLLineItemRepository) ListForOrder(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error) {
	query := `
		SELECT orderItemId, orderIdFk, menuOriginalId, itemName, itemPrice, quantity, specialRequests
		FROM order_items
		WHERE orderIdFk = ?
		ORDER BY orderItemId ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, errors.NewStorageError("querying order items", err)
	}
	defer rows.Close()

	items := []domain.OrderLineItem{}
	for rows.Next() {
		var item domain.OrderLineItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName, &item.ItemPrice,
			&item.Quantity, &item.SpecialRequests,
		)
		if err != nil {
			return nil, errors.NewStorageError("scanning order item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterating order item rows", err)
	}

	return items, nil
}

func (r *SQLLineItemRepository) ObserveForOrder(ctx context.Context, orderID uint) *watch.Stream[result.Result[[]domain.OrderLineItem]] {
	topics := []string{orderItemsTopic(orderID)}
	return watch.Observe(ctx, r.hub, topics, result.Loading[[]domain.OrderLineItem](), func(ctx context.Context) result.Result[[]domain.OrderLineItem] {
		items, err := r.ListForOrder(ctx, orderID)
		if err != nil {
			return result.Failure[[]domain.OrderLineItem](err)
		}
		return result.Success(items)
	})
}

func (r *SQLLineItemRepository) ObserveByID(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.OrderLineItem]] {
	topics := []string{lineItemTopic(id)}
	return watch.Observe(ctx, r.hub, topics, result.Loading[*domain.OrderLineItem](), func(ctx context.Context) result.Result[*domain.OrderLineItem] {
		item, err := r.FindByID(ctx, id)
		if err != nil {
			if _, ok := errors.IsNotFoundError(err); ok {
				return result.Success[*domain.OrderLineItem](nil)
			}
			return result.Failure[*domain.OrderLineItem](err)
		}
		return result.Success(item)
	})
}

func (r *SQLLineItemRepository) owningOrderID(ctx context.Context, id uint) (uint, error) {
	var orderID uint
	err := r.db.QueryRowContext(ctx, `SELECT orderIdFk FROM order_items WHERE orderItemId = ?`, id).Scan(&orderID)
	if err == sql.ErrNoRows {
		return 0, errors.NewNotFoundError(fmt.Sprintf("order item with id %d not found", id))
	}
	if err != nil {
		return 0, errors.NewStorageError("querying order item owner", err)
	}
	return orderID, nil
}
