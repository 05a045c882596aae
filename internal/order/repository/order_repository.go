package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mesero/internal/domain"
	"mesero/internal/errors"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type SQLOrderRepository struct {
	db  *sql.DB
	hub *watch.Hub
}

func NewSQLOrderRepository(db *sql.DB, hub *watch.Hub) *SQLOrderRepository {
	return &SQLOrderRepository{db: db, hub: hub}
}

// Insert creates a new ACTIVE order stamped with the current time and
// returns its store-assigned identifier.
func (r *SQLOrderRepository) Insert(ctx context.Context, tableNumber int) (uint, error) {
	query := `INSERT INTO orders (tableNumber, timestamp, status) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, tableNumber, time.Now().UnixMilli(), domain.OrderStatusActive)
	if err != nil {
		return 0, errors.NewStorageError("inserting order", err)
	}

	lastInsertID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewStorageError("getting last insert id", err)
	}

	id := uint(lastInsertID)
	r.hub.Notify(topicOrders, orderTopic(id))
	return id, nil
}

// Update replaces the mutable columns of an order row. The creation
// timestamp is immutable and never written back.
func (r *SQLOrderRepository) Update(ctx context.Context, order domain.Order) error {
	query := `UPDATE orders SET tableNumber = ?, status = ? WHERE orderId = ?`

	res, err := r.db.ExecContext(ctx, query, order.TableNumber, order.Status, order.ID)
	if err != nil {
		return errors.NewStorageError("updating order", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", order.ID))
	}

	r.hub.Notify(topicOrders, orderTopic(order.ID))
	return nil
}

func (r *SQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT orderId, tableNumber, timestamp, status FROM orders WHERE orderId = ?`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, errors.NewStorageError("querying order by id", err)
	}

	return order, nil
}

// FindLatestActive returns the ACTIVE order with the greatest creation
// timestamp, or nil when there is none. Absence is a normal outcome here,
// not an error.
func (r *SQLOrderRepository) FindLatestActive(ctx context.Context) (*domain.Order, error) {
	query := `
		SELECT orderId, tableNumber, timestamp, status
		FROM orders
		WHERE status = ?
		ORDER BY timestamp DESC, orderId DESC
		LIMIT 1
	`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, domain.OrderStatusActive))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("querying latest active order", err)
	}

	return order, nil
}

// Delete removes an order; its line items go with it via the cascade.
func (r *SQLOrderRepository) Delete(ctx context.Context, id uint) error {
	// Capture line item ids before the cascade wipes them so their
	// observers get a final notification.
	itemIDs, err := r.lineItemIDs(ctx, id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE orderId = ?`, id)
	if err != nil {
		return errors.NewStorageError("deleting order", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	topics := []string{topicOrders, orderTopic(id), orderItemsTopic(id)}
	for _, itemID := range itemIDs {
		topics = append(topics, lineItemTopic(itemID))
	}
	r.hub.Notify(topics...)
	return nil
}

// ObserveByID is a live view of a single order row: nil payload means the
// row is (or became) absent.
func (r *SQLOrderRepository) ObserveByID(ctx context.Context, id uint) *watch.Stream[result.Result[*domain.Order]] {
	topics := []string{orderTopic(id)}
	return watch.Observe(ctx, r.hub, topics, result.Loading[*domain.Order](), func(ctx context.Context) result.Result[*domain.Order] {
		order, err := r.FindByID(ctx, id)
		if err != nil {
			if _, ok := errors.IsNotFoundError(err); ok {
				return result.Success[*domain.Order](nil)
			}
			return result.Failure[*domain.Order](err)
		}
		return result.Success(order)
	})
}

// ObserveLatestActive re-evaluates the "latest active order" query on every
// write to the orders table.
func (r *SQLOrderRepository) ObserveLatestActive(ctx context.Context) *watch.Stream[result.Result[*domain.Order]] {
	topics := []string{topicOrders}
	return watch.Observe(ctx, r.hub, topics, result.Loading[*domain.Order](), func(ctx context.Context) result.Result[*domain.Order] {
		order, err := r.FindLatestActive(ctx)
		if err != nil {
			return result.Failure[*domain.Order](err)
		}
		return result.Success(order)
	})
}

func (r *SQLOrderRepository) lineItemIDs(ctx context.Context, orderID uint) ([]uint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT orderItemId FROM order_items WHERE orderIdFk = ?`, orderID)
	if err != nil {
		return nil, errors.NewStorageError("querying order item ids", err)
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewStorageError("scanning order item id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterating order item ids", err)
	}
	return ids, nil
}

func (r *SQLOrderRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	var createdAtMs int64
	if err := row.Scan(&order.ID, &order.TableNumber, &createdAtMs, &order.Status); err != nil {
		return nil, err
	}
	order.CreatedAt = time.UnixMilli(createdAtMs)
	return &order, nil
}
