package query

import (
	"context"
	"database/sql"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
)

// distinctIDs drops repeats, keeping first-seen order.
func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func batchPlan(cols []string, ids []int64) Plan {
	where, args := In("oi.order_id", ids)
	return Plan{
		Columns: cols,
		From:    fromOrderItems,
		Joins:   []string{joinItems},
		Where:   where,
		Args:    args,
		OrderBy: []string{"oi.id ASC"},
	}
}

// LoadOrderItems loads the line items of every order in ids, together with
// the items they reference, into g. It costs exactly one round trip, or
// none when ids is empty. Each collection keeps insertion order.
func LoadOrderItems(ctx context.Context, q Querier, g *models.Graph, ids []int64) error {
	ids = distinctIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	plan := batchPlan(columns(lineColumns, itemColumns), ids)
	err := run(ctx, q, "batch load order items", plan, func(rows *sql.Rows) error {
		var r lineRow
		if err := rows.Scan(r.dest()...); err != nil {
			return err
		}
		r.putInto(g)
		return nil
	})
	if err != nil {
		return err
	}
	for _, id := range ids {
		g.MarkLinesLoaded(id)
	}
	return nil
}

// LoadOrderLines is the projection flavour of LoadOrderItems: it scans the
// lines straight into views, grouped by order id.
func LoadOrderLines(ctx context.Context, q Querier, ids []int64) (map[int64][]views.OrderLine, error) {
	ids = distinctIDs(ids)
	out := make(map[int64][]views.OrderLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	err := run(ctx, q, "batch load order lines", batchPlan(lineViewColumns, ids), func(rows *sql.Rows) error {
		orderID, line, err := scanLineView(rows)
		if err != nil {
			return err
		}
		out[orderID] = append(out[orderID], line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// attachLines pairs each summary with its group. A summary without lines
// gets an empty, non-nil slice.
func attachLines(summaries []views.OrderSummary, lines map[int64][]views.OrderLine) []views.OrderDetail {
	out := make([]views.OrderDetail, 0, len(summaries))
	for _, s := range summaries {
		ls := lines[s.OrderID]
		if ls == nil {
			ls = []views.OrderLine{}
		}
		out = append(out, views.OrderDetail{OrderSummary: s, OrderItems: ls})
	}
	return out
}
