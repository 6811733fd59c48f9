// Package ordering is the write side of the order lifecycle: it places
// orders, adds line items and moves orders between statuses. Reads go
// through package query.
package ordering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// Service writes orders through the primary pool.
type Service struct {
	db      *sql.DB
	nowFunc func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, for deterministic order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.nowFunc = now }
}

// NewService returns a Service over the primary (read/write) pool.
func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{db: db, nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%w: %s %d", models.ErrNotFound, kind, id)
}

// CreateMember inserts a member and returns its id.
func (s *Service) CreateMember(ctx context.Context, name string, addr models.Address) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: member name is required", models.ErrInvalidArgument)
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO members (name, city, street, zipcode) VALUES (?, ?, ?, ?)",
		name, addr.City, addr.Street, addr.Zipcode,
	)
	if err != nil {
		return 0, fmt.Errorf("insert member: %w", err)
	}
	return res.LastInsertId()
}

// CreateItem inserts a catalog item; its slug is derived from the name.
func (s *Service) CreateItem(ctx context.Context, name string, price decimal.Decimal) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: item name is required", models.ErrInvalidArgument)
	}
	if !price.IsPositive() {
		return 0, fmt.Errorf("%w: item price must be positive", models.ErrInvalidArgument)
	}
	itemSlug := slug.Make(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net

	var taken int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM items WHERE slug = ?", itemSlug).Scan(&taken); err != nil {
		return 0, fmt.Errorf("check item slug: %w", err)
	}
	if taken > 0 {
		return 0, fmt.Errorf("%w: item slug %q already exists", models.ErrConflict, itemSlug)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO items (name, slug, price) VALUES (?, ?, ?)",
		name, itemSlug, price,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit item: %w", err)
	}
	return id, nil
}

// Line is one requested line of a new order.
type Line struct {
	ItemID   int64
	Quantity int
}

// PlaceOrder creates an order for memberID with its delivery and lines in
// one transaction. The delivery copies the member's address and every line
// snapshots the item's current price.
func (s *Service) PlaceOrder(ctx context.Context, memberID int64, lines []Line) (int64, error) {
	// 1. --- Begin Transaction ---
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net

	// 2. --- Load Member ---
	var member models.Member
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, city, street, zipcode FROM members WHERE id = ?", memberID,
	).Scan(&member.ID, &member.Name, &member.Address.City, &member.Address.Street, &member.Address.Zipcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, notFound("member", memberID)
		}
		return 0, fmt.Errorf("load member: %w", err)
	}

	// 3. --- Snapshot Lines ---
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		item, err := loadItem(ctx, tx, l.ItemID)
		if err != nil {
			return 0, err
		}
		li, err := models.NewOrderItem(item, l.Quantity)
		if err != nil {
			return 0, err
		}
		items = append(items, li)
	}
	order, err := models.NewOrder(member.ID, items, s.nowFunc())
	if err != nil {
		return 0, err
	}

	// 4. --- Create Delivery & Order ---
	res, err := tx.ExecContext(ctx,
		"INSERT INTO deliveries (city, street, zipcode, status) VALUES (?, ?, ?, ?)",
		member.Address.City, member.Address.Street, member.Address.Zipcode, models.DeliveryReady,
	)
	if err != nil {
		return 0, fmt.Errorf("insert delivery: %w", err)
	}
	if order.DeliveryID, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("delivery id: %w", err)
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO orders (member_id, delivery_id, status, order_date) VALUES (?, ?, ?, ?)",
		order.MemberID, order.DeliveryID, order.Status, order.OrderDate.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	if order.ID, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	// 5. --- Create Order Items ---
	for _, li := range items {
		if err := insertLine(ctx, tx, order.ID, li); err != nil {
			return 0, err
		}
	}

	// 6. --- Commit Transaction ---
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return order.ID, nil
}

// AddOrderItem appends a line to a PLACED order.
func (s *Service) AddOrderItem(ctx context.Context, orderID, itemID int64, quantity int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := loadOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusPlaced {
		return fmt.Errorf("%w: cannot add items to a %s order", models.ErrInvalidTransition, order.Status)
	}

	item, err := loadItem(ctx, tx, itemID)
	if err != nil {
		return err
	}
	li, err := models.NewOrderItem(item, quantity)
	if err != nil {
		return err
	}
	if err := insertLine(ctx, tx, orderID, li); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order item: %w", err)
	}
	return nil
}

// ChangeStatus moves an order to next if the lifecycle allows it. Completing
// an order also completes its delivery.
func (s *Service) ChangeStatus(ctx context.Context, orderID int64, next models.Status) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := loadOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}
	prev := order.Status
	if err := order.Transition(next); err != nil {
		return err
	}

	// Guard against a concurrent writer having moved the order meanwhile.
	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ? AND status = ?",
		order.Status, order.ID, prev,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if err := statusUpdated(res, orderID); err != nil {
		return err
	}

	if next == models.StatusCompleted {
		if _, err := tx.ExecContext(ctx,
			"UPDATE deliveries SET status = ? WHERE id = ?", models.DeliveryCompleted, order.DeliveryID,
		); err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status change: %w", err)
	}
	return nil
}
