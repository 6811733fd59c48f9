package query

import (
	"errors"
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
)

// ErrQueryFailed classifies every persistence engine failure.
var ErrQueryFailed = errors.New("query execution failed")

// QueryError wraps an engine error with the step that failed.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrQueryFailed) match any QueryError.
func (e *QueryError) Is(target error) bool { return target == ErrQueryFailed }

func notFound(id int64) error {
	return fmt.Errorf("%w: order %d", models.ErrNotFound, id)
}
