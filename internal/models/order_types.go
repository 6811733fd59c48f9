package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// rank orders the forward path PLACED -> SHIPPED -> COMPLETED.
var rank = map[Status]int{
	StatusPlaced:    0,
	StatusShipped:   1,
	StatusCompleted: 2,
}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusPlaced, StatusShipped, StatusCancelled, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidArgument, raw)
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether moving from s to next is allowed.
// The forward path is monotonic; CANCELLED is reachable from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, ok := rank[s]
	if !ok {
		return false
	}
	to, ok := rank[next]
	return ok && to > from
}

// Order is the model for the 'orders' table.
// Member and Delivery are referenced by identity; the line items live in the Graph.
type Order struct {
	ID         int64     `json:"id" db:"id"`
	MemberID   int64     `json:"memberId" db:"member_id"`     // Non-owning
	DeliveryID int64     `json:"deliveryId" db:"delivery_id"` // Owned, one-to-one
	Status     Status    `json:"status" db:"status"`
	OrderDate  time.Time `json:"orderDate" db:"order_date"`
}

// Transition moves the order to next or returns ErrInvalidTransition.
func (o *Order) Transition(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"` // Back-link, traversal only
	ItemID    int64           `json:"itemId" db:"item_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"` // Price at the time of purchase
}

// NewOrderItem snapshots the item's current price into a new line.
func NewOrderItem(item Item, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}
	return OrderItem{
		ItemID:    item.ID,
		Quantity:  quantity,
		UnitPrice: item.Price,
	}, nil
}

// NewOrder builds a PLACED order. A placed order always carries at least one line.
func NewOrder(memberID int64, lines []OrderItem, at time.Time) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrNoLineItems
	}
	for _, li := range lines {
		if li.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, li.Quantity)
		}
	}
	return Order{
		MemberID:  memberID,
		Status:    StatusPlaced,
		OrderDate: at.UTC(),
	}, nil
}
