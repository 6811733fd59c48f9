package query

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Querier is the one capability the strategies need from the persistence
// engine. *sql.DB, *sql.Tx and *sql.Conn all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QuerySpanName names the span recorded around every round trip.
const QuerySpanName = "orders.query"

type tracedQuerier struct {
	next   Querier
	tracer trace.Tracer
}

// Traced wraps q so each round trip is recorded as a client span.
func Traced(q Querier, tracer trace.Tracer) Querier {
	return tracedQuerier{next: q, tracer: tracer}
}

func (t tracedQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, span := t.tracer.Start(ctx, QuerySpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.statement", query),
			attribute.Int("db.args", len(args)),
		),
	)
	defer span.End()

	rows, err := t.next.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return rows, err
}

// run executes p and hands every row to scan.
func run(ctx context.Context, q Querier, op string, p Plan, scan func(*sql.Rows) error) error {
	stmt, args := p.SQL()
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return &QueryError{Op: op, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &QueryError{Op: op, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &QueryError{Op: op, Err: err}
	}
	return nil
}
