package views

import (
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/shopspring/decimal"
)

// ErrUnresolved is returned when an order is assembled without a relation
// the view needs. The assembler never fetches.
var ErrUnresolved = errors.New("relation not resolved")

// AddressOf copies an address value.
func AddressOf(a models.Address) Address {
	return Address{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

// NewLine builds a line view and derives its total.
func NewLine(orderItemID, itemID int64, itemName string, quantity int, unitPrice decimal.Decimal) OrderLine {
	return OrderLine{
		OrderItemID: orderItemID,
		ItemID:      itemID,
		ItemName:    itemName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewSummary builds a summary from already-flattened scalars.
func NewSummary(orderID int64, memberName string, orderDate time.Time, status models.Status, addr Address) OrderSummary {
	return OrderSummary{
		OrderID:     orderID,
		MemberName:  memberName,
		OrderDate:   orderDate.UTC(),
		OrderStatus: status,
		Address:     addr,
	}
}

// Summarize maps an order to its summary. The member and delivery must be in g.
func Summarize(g *models.Graph, o *models.Order) (OrderSummary, error) {
	m, ok := g.Member(o.MemberID)
	if !ok {
		return OrderSummary{}, fmt.Errorf("%w: member %d of order %d", ErrUnresolved, o.MemberID, o.ID)
	}
	d, ok := g.Delivery(o.DeliveryID)
	if !ok {
		return OrderSummary{}, fmt.Errorf("%w: delivery %d of order %d", ErrUnresolved, o.DeliveryID, o.ID)
	}
	return NewSummary(o.ID, m.Name, o.OrderDate, o.Status, AddressOf(d.Address)), nil
}

// Detail maps an order to its detailed view. Besides the summary relations,
// the line collection and every referenced item must be in g.
func Detail(g *models.Graph, o *models.Order) (OrderDetail, error) {
	s, err := Summarize(g, o)
	if err != nil {
		return OrderDetail{}, err
	}
	lines, ok := g.Lines(o.ID)
	if !ok {
		return OrderDetail{}, fmt.Errorf("%w: line items of order %d", ErrUnresolved, o.ID)
	}
	out := make([]OrderLine, 0, len(lines))
	for _, li := range lines {
		it, ok := g.Item(li.ItemID)
		if !ok {
			return OrderDetail{}, fmt.Errorf("%w: item %d of order %d", ErrUnresolved, li.ItemID, o.ID)
		}
		out = append(out, NewLine(li.ID, li.ItemID, it.Name, li.Quantity, li.UnitPrice))
	}
	return OrderDetail{OrderSummary: s, OrderItems: out}, nil
}

// Summaries maps every order of g, in first-seen order.
func Summaries(g *models.Graph) ([]OrderSummary, error) {
	out := make([]OrderSummary, 0, g.Len())
	for _, o := range g.Orders() {
		s, err := Summarize(g, o)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Details maps every order of g, in first-seen order.
func Details(g *models.Graph) ([]OrderDetail, error) {
	out := make([]OrderDetail, 0, g.Len())
	for _, o := range g.Orders() {
		d, err := Detail(g, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// NewOrderList wraps orders; a nil slice is serialized as [].
func NewOrderList[T any](orders []T) OrderList[T] {
	if orders == nil {
		orders = []T{}
	}
	return OrderList[T]{Count: len(orders), Orders: orders}
}
