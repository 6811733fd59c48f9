package query

import (
	"context"
	"database/sql"
	"log"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
)

// toOnePlan joins the to-one relations only, so a LIMIT bounds parents.
func toOnePlan() Plan {
	return Plan{
		Columns: columns(orderColumns, memberColumns, deliveryColumns),
		From:    fromOrders,
		Joins:   []string{joinMember, joinDelivery},
		OrderBy: newestFirst,
	}
}

func loadToOne(ctx context.Context, q Querier, g *models.Graph, p Plan) error {
	return run(ctx, q, "load orders with member and delivery", p, func(rows *sql.Rows) error {
		var r toOneRow
		if err := rows.Scan(r.dest()...); err != nil {
			return err
		}
		r.putInto(g)
		return nil
	})
}

func assembleSummaries(g *models.Graph) ([]views.OrderSummary, error) {
	out, err := views.Summaries(g)
	if err != nil {
		return nil, &QueryError{Op: "assemble orders", Err: err}
	}
	return out, nil
}

// FetchJoinToOne returns one order summary in a single round trip.
func FetchJoinToOne(ctx context.Context, q Querier, id int64) (views.OrderSummary, error) {
	p := toOnePlan()
	p.Where, p.Args = "o.id = ?", []any{id}

	g := models.NewGraph()
	if err := loadToOne(ctx, q, g, p); err != nil {
		return views.OrderSummary{}, err
	}
	o, ok := g.Order(id)
	if !ok {
		return views.OrderSummary{}, notFound(id)
	}
	s, err := views.Summarize(g, o)
	if err != nil {
		return views.OrderSummary{}, &QueryError{Op: "assemble order", Err: err}
	}
	return s, nil
}

// FetchJoinToOneList returns a page of summaries in a single round trip.
func FetchJoinToOneList(ctx context.Context, q Querier, page Page) ([]views.OrderSummary, error) {
	g := models.NewGraph()
	if err := loadToOne(ctx, q, g, toOnePlan().Paged(page)); err != nil {
		return nil, err
	}
	return assembleSummaries(g)
}

// joined is the outcome of a fetch join: the deduplicated graph plus the
// parent identity of every result row, duplicates included.
type joined struct {
	graph *models.Graph
	rows  []int64
}

// fetchJoined runs the to-one + to-many join. The result has one row per
// (order, line) pair, or a single row for an order without lines. It is
// never paged in SQL: a LIMIT here would cut lines, not orders.
func fetchJoined(ctx context.Context, q Querier, where string, args []any) (joined, error) {
	p := Plan{
		Columns: columns(orderColumns, memberColumns, deliveryColumns, lineColumns, itemColumns),
		From:    fromOrders,
		Joins:   []string{joinMember, joinDelivery, leftJoinLines, leftJoinItems},
		Where:   where,
		Args:    args,
		OrderBy: append(append([]string(nil), newestFirst...), "oi.id ASC"),
	}

	out := joined{graph: models.NewGraph()}
	err := run(ctx, q, "fetch join orders with items", p, func(rows *sql.Rows) error {
		var (
			parent toOneRow
			line   lineRow
		)
		if err := rows.Scan(append(parent.dest(), line.dest()...)...); err != nil {
			return err
		}
		o := parent.putInto(out.graph)
		out.graph.MarkLinesLoaded(o.ID)
		line.putInto(out.graph)
		out.rows = append(out.rows, o.ID)
		return nil
	})
	return out, err
}

// FetchJoinFetch returns one order with its lines in a single round trip.
func FetchJoinFetch(ctx context.Context, q Querier, id int64) (views.OrderDetail, error) {
	j, err := fetchJoined(ctx, q, "o.id = ?", []any{id})
	if err != nil {
		return views.OrderDetail{}, err
	}
	o, ok := j.graph.Order(id)
	if !ok {
		return views.OrderDetail{}, notFound(id)
	}
	return assembleDetail(j.graph, o)
}

// FetchJoinFetchList returns one detail per joined row, the way a fetch join
// without DISTINCT does: an order with k lines appears k times, each copy
// carrying the full collection. The page counts rows.
func FetchJoinFetchList(ctx context.Context, q Querier, page Page) ([]views.OrderDetail, error) {
	j, err := fetchJoined(ctx, q, "", nil)
	if err != nil {
		return nil, err
	}
	rows := window(j.rows, page)
	out := make([]views.OrderDetail, 0, len(rows))
	for _, id := range rows {
		o, _ := j.graph.Order(id)
		d, err := assembleDetail(j.graph, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FetchJoinFetchDistinctList collapses the joined rows by order identity,
// keeping first-seen order and accumulating every line under its single
// parent. The page is applied in memory over distinct orders, after the
// whole join has been read.
func FetchJoinFetchDistinctList(ctx context.Context, q Querier, page Page) ([]views.OrderDetail, error) {
	j, err := fetchJoined(ctx, q, "", nil)
	if err != nil {
		return nil, err
	}
	ids := j.graph.OrderIDs()
	if len(ids) > page.Limit {
		log.Printf("WARNING: join fetch read %d orders (%d rows) and applied offset=%d limit=%d in memory",
			len(ids), len(j.rows), page.Offset, page.Limit)
	}
	ids = window(ids, page)
	out := make([]views.OrderDetail, 0, len(ids))
	for _, id := range ids {
		o, _ := j.graph.Order(id)
		d, err := assembleDetail(j.graph, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
