package query

import (
	"database/sql"
	"time"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
	"github.com/shopspring/decimal"
)

const (
	fromOrders     = "orders o"
	joinMember     = "JOIN members m ON m.id = o.member_id"
	joinDelivery   = "JOIN deliveries d ON d.id = o.delivery_id"
	leftJoinLines  = "LEFT JOIN order_items oi ON oi.order_id = o.id"
	leftJoinItems  = "LEFT JOIN items i ON i.id = oi.item_id"
	fromOrderItems = "order_items oi"
	joinItems      = "JOIN items i ON i.id = oi.item_id"
)

// newestFirst is the order every strategy returns.
var newestFirst = []string{"o.order_date DESC", "o.id ASC"}

var (
	orderColumns    = []string{"o.id", "o.member_id", "o.delivery_id", "o.status", "o.order_date"}
	memberColumns   = []string{"m.id", "m.name", "m.city", "m.street", "m.zipcode"}
	deliveryColumns = []string{"d.id", "d.city", "d.street", "d.zipcode", "d.status"}
	lineColumns     = []string{"oi.id", "oi.order_id", "oi.item_id", "oi.unit_price", "oi.quantity"}
	itemColumns     = []string{"i.id", "i.name", "i.slug", "i.price"}

	// summaryColumns select scalars only; nothing in the result is an entity.
	summaryColumns  = []string{"o.id", "m.name", "o.order_date", "o.status", "d.city", "d.street", "d.zipcode"}
	lineViewColumns = []string{"oi.order_id", "oi.id", "oi.item_id", "i.name", "oi.quantity", "oi.unit_price"}
)

func columns(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// orderRow scans orderColumns.
type orderRow struct {
	order     models.Order
	orderDate int64
}

func (r *orderRow) dest() []any {
	return []any{&r.order.ID, &r.order.MemberID, &r.order.DeliveryID, &r.order.Status, &r.orderDate}
}

func (r *orderRow) value() models.Order {
	r.order.OrderDate = fromMillis(r.orderDate)
	return r.order
}

// toOneRow scans orderColumns + memberColumns + deliveryColumns.
type toOneRow struct {
	orderRow
	member   models.Member
	delivery models.Delivery
}

func (r *toOneRow) dest() []any {
	m, d := &r.member, &r.delivery
	return append(r.orderRow.dest(),
		&m.ID, &m.Name, &m.Address.City, &m.Address.Street, &m.Address.Zipcode,
		&d.ID, &d.Address.City, &d.Address.Street, &d.Address.Zipcode, &d.Status,
	)
}

func (r *toOneRow) putInto(g *models.Graph) *models.Order {
	g.PutMember(r.member)
	g.PutDelivery(r.delivery)
	o, _ := g.PutOrder(r.value())
	return o
}

// lineRow scans lineColumns + itemColumns. The fields are nullable because
// the join fetch reaches them through LEFT JOINs.
type lineRow struct {
	id, orderID, itemID sql.NullInt64
	unitPrice           decimal.NullDecimal
	quantity            sql.NullInt64
	itemRefID           sql.NullInt64
	itemName, itemSlug  sql.NullString
	itemPrice           decimal.NullDecimal
}

func (r *lineRow) dest() []any {
	return []any{
		&r.id, &r.orderID, &r.itemID, &r.unitPrice, &r.quantity,
		&r.itemRefID, &r.itemName, &r.itemSlug, &r.itemPrice,
	}
}

// putInto attaches the line and its item. It reports false for the
// all-NULL row an order without lines produces.
func (r *lineRow) putInto(g *models.Graph) bool {
	if !r.id.Valid {
		return false
	}
	if r.itemRefID.Valid {
		g.PutItem(models.Item{
			ID:    r.itemRefID.Int64,
			Name:  r.itemName.String,
			Slug:  r.itemSlug.String,
			Price: r.itemPrice.Decimal,
		})
	}
	return g.AttachLine(models.OrderItem{
		ID:        r.id.Int64,
		OrderID:   r.orderID.Int64,
		ItemID:    r.itemID.Int64,
		Quantity:  int(r.quantity.Int64),
		UnitPrice: r.unitPrice.Decimal,
	})
}

func scanSummary(rows *sql.Rows) (views.OrderSummary, error) {
	var (
		id, orderDate int64
		name          string
		status        models.Status
		addr          views.Address
	)
	if err := rows.Scan(&id, &name, &orderDate, &status, &addr.City, &addr.Street, &addr.Zipcode); err != nil {
		return views.OrderSummary{}, err
	}
	return views.NewSummary(id, name, fromMillis(orderDate), status, addr), nil
}

func scanLineView(rows *sql.Rows) (int64, views.OrderLine, error) {
	var (
		orderID, orderItemID, itemID int64
		name                         string
		quantity                     int
		unitPrice                    decimal.Decimal
	)
	if err := rows.Scan(&orderID, &orderItemID, &itemID, &name, &quantity, &unitPrice); err != nil {
		return 0, views.OrderLine{}, err
	}
	return orderID, views.NewLine(orderItemID, itemID, name, quantity, unitPrice), nil
}
