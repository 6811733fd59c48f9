package query

import (
	"context"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
)

// FetchPagedList pages over parents with their to-one relations, then
// loads the page's line items in one batch: two round trips for any page.
// If the batch step fails the whole call fails.
func FetchPagedList(ctx context.Context, q Querier, page Page) ([]views.OrderDetail, error) {
	g := models.NewGraph()
	if err := loadToOne(ctx, q, g, toOnePlan().Paged(page)); err != nil {
		return nil, err
	}
	if err := LoadOrderItems(ctx, q, g, g.OrderIDs()); err != nil {
		return nil, err
	}
	return assembleDetails(g)
}

// FetchPaged is the single-order form of FetchPagedList.
func FetchPaged(ctx context.Context, q Querier, id int64) (views.OrderDetail, error) {
	p := toOnePlan()
	p.Where, p.Args = "o.id = ?", []any{id}

	g := models.NewGraph()
	if err := loadToOne(ctx, q, g, p); err != nil {
		return views.OrderDetail{}, err
	}
	o, ok := g.Order(id)
	if !ok {
		return views.OrderDetail{}, notFound(id)
	}
	if err := LoadOrderItems(ctx, q, g, []int64{id}); err != nil {
		return views.OrderDetail{}, err
	}
	return assembleDetail(g, o)
}
