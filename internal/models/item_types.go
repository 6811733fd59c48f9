package models

import "github.com/shopspring/decimal"

// Item defines the struct for the 'items' table (the product being ordered).
type Item struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Slug  string          `json:"slug" db:"slug"`
	Price decimal.Decimal `json:"price" db:"price"` // Current price; orders keep their own snapshot
}
