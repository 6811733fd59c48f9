package query

import "strings"

// Plan describes one query independently of the engine that runs it:
// projection list, source, joins, predicate, order-by and an optional page.
type Plan struct {
	Columns []string
	From    string
	Joins   []string
	Where   string
	Args    []any
	OrderBy []string
	Limit   int // 0 means unbounded
	Offset  int
}

// SQL renders the plan with '?' placeholders, which both MySQL and SQLite accept.
func (p Plan) SQL() (string, []any) {
	var b strings.Builder
	args := append([]any(nil), p.Args...)

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(p.From)
	for _, j := range p.Joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if p.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(p.Where)
	}
	if len(p.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(p.OrderBy, ", "))
	}
	if p.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, p.Limit, p.Offset)
	}
	return b.String(), args
}

// Paged returns a copy of p bounded by page.
func (p Plan) Paged(page Page) Plan {
	p.Limit = page.Limit
	p.Offset = page.Offset
	return p
}

// In builds "col IN (?, ?, ...)" and its args for ids.
func In(col string, ids []int64) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(ids))
	b.WriteString(col)
	b.WriteString(" IN (")
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
		args = append(args, id)
	}
	b.WriteString(")")
	return b.String(), args
}
