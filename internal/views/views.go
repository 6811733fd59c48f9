// Package views holds the flat, read-only shapes returned to API clients.
// A view carries scalars only; it is safe to serialize or retain after the
// query that produced it has finished.
package views

import (
	"time"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/shopspring/decimal"
)

// Address is the flattened shipping address.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// OrderSummary is an order without its line items.
type OrderSummary struct {
	OrderID     int64         `json:"orderId"`
	MemberName  string        `json:"name"`
	OrderDate   time.Time     `json:"orderDate"`
	OrderStatus models.Status `json:"orderStatus"`
	Address     Address       `json:"address"`
}

// OrderLine is one line item with its derived total.
type OrderLine struct {
	OrderItemID int64           `json:"orderItemId"`
	ItemID      int64           `json:"itemId"`
	ItemName    string          `json:"itemName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderDetail is a summary plus the full line item sequence.
type OrderDetail struct {
	OrderSummary
	OrderItems []OrderLine `json:"orderItems"`
}

// OrderList wraps a list payload with its size.
type OrderList[T any] struct {
	Count  int `json:"count"`
	Orders []T `json:"orders"`
}
