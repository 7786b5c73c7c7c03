// Package store provides an interface for product storage operations.
package store

import "github.com/shopspring/decimal"

// Product represents a catalog entry.
type Product struct {
	ID       int
	Title    string
	Author   string
	Category string
	Price    decimal.Decimal
	Stock    int
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id int) (*Product, error)

	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll() []Product

	// Create assigns the next sequential ID, inserts the product and returns it.
	Create(title, author, category string, price decimal.Decimal, stock int) (*Product, error)

	// Update overwrites an existing product's fields.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(id int, title, author, category string, price decimal.Decimal, stock int) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(id int) error

	// DecrementStock subtracts quantity from a product's stock as a single
	// check-and-subtract step. Returns ErrProductNotFound if the ID is absent
	// and ErrInsufficientStock if quantity exceeds the current stock.
	DecrementStock(id, quantity int) (*Product, error)
}
