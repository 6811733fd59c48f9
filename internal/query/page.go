package query

import (
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
)

const (
	// DefaultLimit is used when a caller does not ask for a page size.
	DefaultLimit = 100
	// DefaultMaxLimit bounds a page when the Reader is not configured otherwise.
	DefaultMaxLimit = 100
)

// Page is an offset/limit window over parent orders.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPage validates offset and limit against maxLimit.
func NewPage(offset, limit, maxLimit int) (Page, error) {
	p := Page{Offset: offset, Limit: limit}
	if err := p.Validate(maxLimit); err != nil {
		return Page{}, err
	}
	return p, nil
}

// Validate requires 0 <= offset and 1 <= limit <= maxLimit.
func (p Page) Validate(maxLimit int) error {
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", models.ErrInvalidArgument, p.Offset)
	}
	if p.Limit <= 0 || p.Limit > maxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", models.ErrInvalidArgument, maxLimit, p.Limit)
	}
	return nil
}

// window applies p to an in-memory sequence.
func window[T any](s []T, p Page) []T {
	if p.Offset >= len(s) {
		return nil
	}
	end := min(p.Offset+p.Limit, len(s))
	return s[p.Offset:end]
}
