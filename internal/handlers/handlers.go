package handlers

import (
	"database/sql"

	"github.com/01moynul/orderquery/internal/ordering"
	"github.com/01moynul/orderquery/internal/query"
	"github.com/01moynul/orderquery/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB              *sql.DB           // Primary Read/Write connection
	DBReadOnly      *sql.DB           // Read-Only connection
	Reader          *query.Reader     // Order retrieval over DBReadOnly
	PrimaryReader   *query.Reader     // Read-after-write over DB
	Orders          *ordering.Service // Order writes over DB
	Validate        *validatorv10.Validate
	DefaultStrategy query.Strategy // Used when ?strategy= is absent
}

// New wires the read and write sides over their pools. opts apply to both
// readers.
func New(db, dbReadOnly *sql.DB, orders *ordering.Service, defaultStrategy query.Strategy, opts ...query.Option) *Handlers {
	return &Handlers{
		DB:              db,
		DBReadOnly:      dbReadOnly,
		Reader:          query.NewReader(dbReadOnly, opts...),
		PrimaryReader:   query.NewReader(db, opts...),
		Orders:          orders,
		Validate:        validation.New(),
		DefaultStrategy: defaultStrategy,
	}
}
