// Package store provides an interface for sale storage operations.
package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a completed transaction. Product title, author and unit
// price are copied at sale time so later catalog edits or deletions never
// alter history.
type Sale struct {
	ID             int
	Customer       string
	ProductID      int
	Title          string
	Author         string
	Quantity       int
	UnitPrice      decimal.Decimal
	DiscountPct    decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
}

// SaleStore is an append-only log of sales.
type SaleStore interface {
	// Append assigns the next sale ID (1-based), stores the sale and
	// returns the stored copy. Sales are never updated or deleted.
	Append(sale Sale) *Sale

	// FindAll returns all sales in append (chronological) order.
	FindAll() []Sale
}
