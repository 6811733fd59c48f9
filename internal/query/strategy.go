// Package query holds the order retrieval strategies. Each strategy answers
// "fetch order(s) for display" with its own round-trip and row-multiplication
// profile; Reader selects one by name and runs it inside a read-only snapshot.
package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/views"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Strategy names a query plan family.
type Strategy string

const (
	Plain             Strategy = "plain"
	JoinToOne         Strategy = "join-to-one"
	JoinFetch         Strategy = "join-fetch"
	JoinFetchDistinct Strategy = "join-fetch-distinct"
	Projection        Strategy = "projection"
	Paged             Strategy = "paged"
	ProjectionBatched Strategy = "projection-batched"
)

// Strategies lists every strategy the Reader accepts.
func Strategies() []Strategy {
	return []Strategy{Plain, JoinToOne, JoinFetch, JoinFetchDistinct, Projection, Paged, ProjectionBatched}
}

// ParseStrategy resolves a strategy name; the empty string yields def.
func ParseStrategy(raw string, def Strategy) (Strategy, error) {
	if raw == "" {
		return def, nil
	}
	for _, s := range Strategies() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidArgument, raw)
}

const tracerName = "github.com/01moynul/orderquery/internal/query"

// Reader runs strategies against a read-only pool. It holds no entity state
// between calls and is safe for concurrent use.
type Reader struct {
	db        *sql.DB
	tracer    trace.Tracer
	txOptions *sql.TxOptions
	maxLimit  int
}

// Option configures a Reader.
type Option func(*Reader)

// WithTracerProvider records query spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Reader) { r.tracer = tp.Tracer(tracerName) }
}

// WithMaxLimit sets the largest page a caller may request.
func WithMaxLimit(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLimit = n
		}
	}
}

// WithTxOptions overrides the snapshot transaction options.
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(r *Reader) { r.txOptions = opts }
}

// NewReader returns a Reader over db.
func NewReader(db *sql.DB, opts ...Option) *Reader {
	r := &Reader{
		db:        db,
		tracer:    otel.Tracer(tracerName),
		txOptions: &sql.TxOptions{ReadOnly: true},
		maxLimit:  DefaultMaxLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxLimit is the enforced page size bound.
func (r *Reader) MaxLimit() int { return r.maxLimit }

// DefaultLimit is the page size used when a caller gives none. It never
// exceeds MaxLimit.
func (r *Reader) DefaultLimit() int { return min(DefaultLimit, r.maxLimit) }

// Page validates offset and limit against the Reader's bound.
func (r *Reader) Page(offset, limit int) (Page, error) {
	return NewPage(offset, limit, r.maxLimit)
}

// Snapshot runs fn inside one read-only transaction. The Querier handed to
// fn is only valid until fn returns.
func (r *Reader) Snapshot(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.BeginTx(ctx, r.txOptions)
	if err != nil {
		return &QueryError{Op: "begin snapshot", Err: err}
	}
	defer tx.Rollback() // Safety net

	if err := fn(Traced(tx, r.tracer)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &QueryError{Op: "commit snapshot", Err: err}
	}
	return nil
}

func (r *Reader) span(ctx context.Context, name string, s Strategy, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, name, trace.WithAttributes(
		append(attrs, attribute.String("orders.strategy", string(s)))...,
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Order fetches one order with strategy s. The result is a views.OrderDetail,
// or a views.OrderSummary for the strategies that do not load line items.
func (r *Reader) Order(ctx context.Context, s Strategy, id int64) (result any, err error) {
	ctx, span := r.span(ctx, "orders.get", s, attribute.Int64("orders.id", id))
	defer func() { endSpan(span, err) }()

	err = r.Snapshot(ctx, func(q Querier) error {
		var ferr error
		switch s {
		case Plain:
			result, ferr = FetchPlain(ctx, q, id)
		case JoinToOne:
			result, ferr = FetchJoinToOne(ctx, q, id)
		case JoinFetch, JoinFetchDistinct:
			result, ferr = FetchJoinFetch(ctx, q, id)
		case Projection:
			result, ferr = FetchProjection(ctx, q, id)
		case Paged:
			result, ferr = FetchPaged(ctx, q, id)
		case ProjectionBatched:
			result, ferr = FetchProjectionBatched(ctx, q, id)
		default:
			ferr = fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidArgument, s)
		}
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Orders fetches a page of orders with strategy s. The result is a
// views.OrderList of details or summaries, newest first.
func (r *Reader) Orders(ctx context.Context, s Strategy, page Page) (result any, err error) {
	ctx, span := r.span(ctx, "orders.list", s,
		attribute.Int("orders.offset", page.Offset),
		attribute.Int("orders.limit", page.Limit),
	)
	defer func() { endSpan(span, err) }()

	if err := page.Validate(r.maxLimit); err != nil {
		return nil, err
	}

	err = r.Snapshot(ctx, func(q Querier) error {
		var (
			details   []views.OrderDetail
			summaries []views.OrderSummary
			ferr      error
		)
		switch s {
		case Plain:
			details, ferr = FetchPlainList(ctx, q, page)
		case JoinToOne:
			summaries, ferr = FetchJoinToOneList(ctx, q, page)
		case JoinFetch:
			details, ferr = FetchJoinFetchList(ctx, q, page)
		case JoinFetchDistinct:
			details, ferr = FetchJoinFetchDistinctList(ctx, q, page)
		case Projection:
			summaries, ferr = FetchProjectionList(ctx, q, page)
		case Paged:
			details, ferr = FetchPagedList(ctx, q, page)
		case ProjectionBatched:
			details, ferr = FetchProjectionBatchedList(ctx, q, page)
		default:
			return fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidArgument, s)
		}
		if ferr != nil {
			return ferr
		}
		if returnsSummaries(s) {
			result = views.NewOrderList(summaries)
		} else {
			result = views.NewOrderList(details)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// returnsSummaries reports whether s leaves line items unresolved.
func returnsSummaries(s Strategy) bool {
	return s == JoinToOne || s == Projection
}
