package query_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/01moynul/orderquery/internal/database/databasetest"
	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/ordering"
	"github.com/01moynul/orderquery/internal/query"
	"github.com/01moynul/orderquery/internal/views"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fixture is a migrated database, a write service whose clock advances one
// hour per placed order, and a Reader whose round trips are recorded.
type fixture struct {
	t      *testing.T
	db     *sql.DB
	svc    *ordering.Service
	reader *query.Reader
	spans  *tracetest.SpanRecorder
	tracer trace.Tracer
	clock  time.Time
	items  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, db: databasetest.Open(t), clock: epoch}
	f.svc = ordering.NewService(f.db, ordering.WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Hour)
		return f.clock
	}))

	f.spans = tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	f.tracer = tp.Tracer("query_test")
	f.reader = query.NewReader(f.db, query.WithTracerProvider(tp))
	return f
}

func (f *fixture) member(name, city string) int64 {
	f.t.Helper()
	id, err := f.svc.CreateMember(f.t.Context(), name, models.Address{City: city, Street: name + " street", Zipcode: "0" + city})
	require.NoError(f.t, err)
	return id
}

func (f *fixture) item(name string, price int64) int64 {
	f.t.Helper()
	id, err := f.svc.CreateItem(f.t.Context(), name, decimal.NewFromInt(price))
	require.NoError(f.t, err)
	return id
}

func (f *fixture) order(memberID int64, lines ...ordering.Line) int64 {
	f.t.Helper()
	id, err := f.svc.PlaceOrder(f.t.Context(), memberID, lines)
	require.NoError(f.t, err)
	return id
}

// orderWithLines places an order with k lines over distinct items.
func (f *fixture) orderWithLines(memberID int64, k int) int64 {
	f.t.Helper()
	lines := make([]ordering.Line, 0, k)
	for i := range k {
		f.items++
		itemID := f.item(fmt.Sprintf("Item %d", f.items), int64(i+1))
		lines = append(lines, ordering.Line{ItemID: itemID, Quantity: i + 1})
	}
	return f.order(memberID, lines...)
}

// bareOrder inserts an order that has no line items, which the write
// service never produces but the read side must still handle.
func (f *fixture) bareOrder(memberID int64) int64 {
	f.t.Helper()
	f.clock = f.clock.Add(time.Hour)
	res, err := f.db.Exec("INSERT INTO deliveries (city, street, zipcode, status) VALUES ('Busan', 'Pier', '600', 'READY')")
	require.NoError(f.t, err)
	deliveryID, err := res.LastInsertId()
	require.NoError(f.t, err)
	res, err = f.db.Exec("INSERT INTO orders (member_id, delivery_id, status, order_date) VALUES (?, ?, 'PLACED', ?)",
		memberID, deliveryID, f.clock.UnixMilli())
	require.NoError(f.t, err)
	id, err := res.LastInsertId()
	require.NoError(f.t, err)
	return id
}

func (f *fixture) roundTrips() int {
	n := 0
	for _, s := range f.spans.Ended() {
		if s.Name() == query.QuerySpanName {
			n++
		}
	}
	return n
}

// counted runs fn and returns how many round trips it made.
func (f *fixture) counted(fn func()) int {
	before := f.roundTrips()
	fn()
	return f.roundTrips() - before
}

func (f *fixture) details(s query.Strategy, offset, limit int) []views.OrderDetail {
	f.t.Helper()
	res, err := f.reader.Orders(f.t.Context(), s, query.Page{Offset: offset, Limit: limit})
	require.NoError(f.t, err)
	list, ok := res.(views.OrderList[views.OrderDetail])
	require.Truef(f.t, ok, "strategy %s returned %T", s, res)
	require.Len(f.t, list.Orders, list.Count)
	return list.Orders
}

func (f *fixture) summaries(s query.Strategy, offset, limit int) []views.OrderSummary {
	f.t.Helper()
	res, err := f.reader.Orders(f.t.Context(), s, query.Page{Offset: offset, Limit: limit})
	require.NoError(f.t, err)
	list, ok := res.(views.OrderList[views.OrderSummary])
	require.Truef(f.t, ok, "strategy %s returned %T", s, res)
	return list.Orders
}

func detailIDs(ds []views.OrderDetail) []int64 {
	out := make([]int64, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.OrderID)
	}
	return out
}

func summaryIDs(ss []views.OrderSummary) []int64 {
	out := make([]int64, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.OrderID)
	}
	return out
}
