package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
)

// The plain strategy fetches the orders alone and then resolves every
// relation with its own query: one for the page, then per order one for the
// member, one for the delivery, one for the lines and one per item. The
// graph acts as an identity map, so an entity already fetched in this
// request is not fetched again. This is the 1+N baseline.

func loadOrders(ctx context.Context, q Querier, g *models.Graph, p Plan) error {
	p.Columns = orderColumns
	p.From = fromOrders
	return run(ctx, q, "load orders", p, func(rows *sql.Rows) error {
		var r orderRow
		if err := rows.Scan(r.dest()...); err != nil {
			return err
		}
		g.PutOrder(r.value())
		return nil
	})
}

func loadMember(ctx context.Context, q Querier, g *models.Graph, id int64) error {
	p := Plan{Columns: memberColumns, From: "members m", Where: "m.id = ?", Args: []any{id}}
	return run(ctx, q, "load member", p, func(rows *sql.Rows) error {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Address.City, &m.Address.Street, &m.Address.Zipcode); err != nil {
			return err
		}
		g.PutMember(m)
		return nil
	})
}

func loadDelivery(ctx context.Context, q Querier, g *models.Graph, id int64) error {
	p := Plan{Columns: deliveryColumns, From: "deliveries d", Where: "d.id = ?", Args: []any{id}}
	return run(ctx, q, "load delivery", p, func(rows *sql.Rows) error {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.Address.City, &d.Address.Street, &d.Address.Zipcode, &d.Status); err != nil {
			return err
		}
		g.PutDelivery(d)
		return nil
	})
}

func loadLines(ctx context.Context, q Querier, g *models.Graph, orderID int64) error {
	p := Plan{
		Columns: lineColumns,
		From:    fromOrderItems,
		Where:   "oi.order_id = ?",
		Args:    []any{orderID},
		OrderBy: []string{"oi.id ASC"},
	}
	err := run(ctx, q, "load order items", p, func(rows *sql.Rows) error {
		var li models.OrderItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ItemID, &li.UnitPrice, &li.Quantity); err != nil {
			return err
		}
		g.AttachLine(li)
		return nil
	})
	if err != nil {
		return err
	}
	g.MarkLinesLoaded(orderID)
	return nil
}

func loadItem(ctx context.Context, q Querier, g *models.Graph, id int64) error {
	p := Plan{Columns: itemColumns, From: "items i", Where: "i.id = ?", Args: []any{id}}
	return run(ctx, q, "load item", p, func(rows *sql.Rows) error {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.Price); err != nil {
			return err
		}
		g.PutItem(it)
		return nil
	})
}

// resolveEach walks every order in g and fetches what is missing, one
// relation at a time.
func resolveEach(ctx context.Context, q Querier, g *models.Graph) error {
	for _, o := range g.Orders() {
		if _, ok := g.Member(o.MemberID); !ok {
			if err := loadMember(ctx, q, g, o.MemberID); err != nil {
				return err
			}
		}
		if _, ok := g.Delivery(o.DeliveryID); !ok {
			if err := loadDelivery(ctx, q, g, o.DeliveryID); err != nil {
				return err
			}
		}
		if _, ok := g.Lines(o.ID); !ok {
			if err := loadLines(ctx, q, g, o.ID); err != nil {
				return err
			}
		}
		lines, _ := g.Lines(o.ID)
		for _, li := range lines {
			if _, ok := g.Item(li.ItemID); ok {
				continue
			}
			if err := loadItem(ctx, q, g, li.ItemID); err != nil {
				return err
			}
		}
	}
	return nil
}

// FetchPlain returns one order, resolving its relations one query at a time.
func FetchPlain(ctx context.Context, q Querier, id int64) (views.OrderDetail, error) {
	g := models.NewGraph()
	if err := loadOrders(ctx, q, g, Plan{Where: "o.id = ?", Args: []any{id}}); err != nil {
		return views.OrderDetail{}, err
	}
	o, ok := g.Order(id)
	if !ok {
		return views.OrderDetail{}, notFound(id)
	}
	if err := resolveEach(ctx, q, g); err != nil {
		return views.OrderDetail{}, err
	}
	return assembleDetail(g, o)
}

// FetchPlainList pages over orders and resolves each one's relations separately.
func FetchPlainList(ctx context.Context, q Querier, page Page) ([]views.OrderDetail, error) {
	g := models.NewGraph()
	if err := loadOrders(ctx, q, g, Plan{OrderBy: newestFirst}.Paged(page)); err != nil {
		return nil, err
	}
	if err := resolveEach(ctx, q, g); err != nil {
		return nil, err
	}
	return assembleDetails(g)
}

// assembleDetail maps through the assembler. An unresolved relation here
// means the rows were inconsistent (a dangling reference).
func assembleDetail(g *models.Graph, o *models.Order) (views.OrderDetail, error) {
	d, err := views.Detail(g, o)
	if err != nil {
		return views.OrderDetail{}, &QueryError{Op: "assemble order", Err: fmt.Errorf("order %d: %w", o.ID, err)}
	}
	return d, nil
}

func assembleDetails(g *models.Graph) ([]views.OrderDetail, error) {
	out, err := views.Details(g)
	if err != nil {
		return nil, &QueryError{Op: "assemble orders", Err: err}
	}
	return out, nil
}
