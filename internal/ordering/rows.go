package ordering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
)

func loadItem(ctx context.Context, tx *sql.Tx, id int64) (models.Item, error) {
	var it models.Item
	err := tx.QueryRowContext(ctx,
		"SELECT id, name, slug, price FROM items WHERE id = ?", id,
	).Scan(&it.ID, &it.Name, &it.Slug, &it.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, notFound("item", id)
		}
		return models.Item{}, fmt.Errorf("load item: %w", err)
	}
	return it, nil
}

func loadOrder(ctx context.Context, tx *sql.Tx, id int64) (models.Order, error) {
	var o models.Order
	err := tx.QueryRowContext(ctx,
		"SELECT id, member_id, delivery_id, status FROM orders WHERE id = ?", id,
	).Scan(&o.ID, &o.MemberID, &o.DeliveryID, &o.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, notFound("order", id)
		}
		return models.Order{}, fmt.Errorf("load order: %w", err)
	}
	return o, nil
}

func insertLine(ctx context.Context, tx *sql.Tx, orderID int64, li models.OrderItem) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO order_items (order_id, item_id, unit_price, quantity) VALUES (?, ?, ?, ?)",
		orderID, li.ItemID, li.UnitPrice, li.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// statusUpdated checks that a guarded status UPDATE hit the order. Zero rows
// means another writer moved it first.
func statusUpdated(res sql.Result, orderID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: order %d changed concurrently", models.ErrInvalidTransition, orderID)
	}
	return nil
}
