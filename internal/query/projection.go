package query

import (
	"context"
	"database/sql"

	"github.com/01moynul/orderquery/internal/views"
)

func summaryPlan() Plan {
	return Plan{
		Columns: summaryColumns,
		From:    fromOrders,
		Joins:   []string{joinMember, joinDelivery},
		OrderBy: newestFirst,
	}
}

func loadSummaries(ctx context.Context, q Querier, p Plan) ([]views.OrderSummary, error) {
	var out []views.OrderSummary
	err := run(ctx, q, "project orders", p, func(rows *sql.Rows) error {
		s, err := scanSummary(rows)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

func summaryIDs(summaries []views.OrderSummary) []int64 {
	ids := make([]int64, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.OrderID)
	}
	return ids
}

// FetchProjection selects the summary scalars of one order.
func FetchProjection(ctx context.Context, q Querier, id int64) (views.OrderSummary, error) {
	p := summaryPlan()
	p.Where, p.Args = "o.id = ?", []any{id}
	out, err := loadSummaries(ctx, q, p)
	if err != nil {
		return views.OrderSummary{}, err
	}
	if len(out) == 0 {
		return views.OrderSummary{}, notFound(id)
	}
	return out[0], nil
}

// FetchProjectionList selects a page of summary scalars.
func FetchProjectionList(ctx context.Context, q Querier, page Page) ([]views.OrderSummary, error) {
	return loadSummaries(ctx, q, summaryPlan().Paged(page))
}

// FetchProjectionBatched projects one order and batch-loads its lines.
func FetchProjectionBatched(ctx context.Context, q Querier, id int64) (views.OrderDetail, error) {
	s, err := FetchProjection(ctx, q, id)
	if err != nil {
		return views.OrderDetail{}, err
	}
	lines, err := LoadOrderLines(ctx, q, []int64{s.OrderID})
	if err != nil {
		return views.OrderDetail{}, err
	}
	return attachLines([]views.OrderSummary{s}, lines)[0], nil
}

// FetchProjectionBatchedList projects a page of orders, then loads every
// line of the page in one more round trip.
func FetchProjectionBatchedList(ctx context.Context, q Querier, page Page) ([]views.OrderDetail, error) {
	summaries, err := FetchProjectionList(ctx, q, page)
	if err != nil {
		return nil, err
	}
	lines, err := LoadOrderLines(ctx, q, summaryIDs(summaries))
	if err != nil {
		return nil, err
	}
	return attachLines(summaries, lines), nil
}
