// Package service provides the implementation of sale-related business logic.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	catalogservice "github.com/abgdnv/bookstore/internal/catalog/service"
	ledgererrors "github.com/abgdnv/bookstore/internal/ledger/errors"
	"github.com/abgdnv/bookstore/internal/ledger/store"
	"github.com/abgdnv/bookstore/internal/validation"
)

// TimestampLayout is the wall-clock format recorded on every sale.
const TimestampLayout = "2006-01-02 15:04:05"

var oneHundred = decimal.NewFromInt(100)

// LedgerService defines the methods for recording and listing sales.
type LedgerService interface {
	// RecordSale validates the request, decrements catalog stock and appends
	// a sale in one logical unit: if the stock check fails, nothing is
	// recorded. Returns ErrInvalidDiscount, ErrProductNotFound or
	// ErrInsufficientStock.
	RecordSale(sale SaleCreateDto) (*SaleDto, error)

	// FindAll returns all sales in chronological order.
	FindAll() []SaleDto
}

// Service implements LedgerService and provides methods to manage sales.
type Service struct {
	sales    store.SaleStore
	catalog  catalogservice.CatalogService
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a new instance of LedgerService backed by the provided
// sale store and catalog.
func NewService(sales store.SaleStore, catalog catalogservice.CatalogService) *Service {
	return &Service{
		sales:    sales,
		catalog:  catalog,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock overrides the wall clock used to stamp sales. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SaleCreateDto represents the data transfer object for recording a sale.
type SaleCreateDto struct {
	Customer    string `validate:"required"`
	ProductID   int    `validate:"required,gt=0"`
	Quantity    int    `validate:"required,gt=0"`
	DiscountPct decimal.Decimal
}

// SaleDto represents the data transfer object for a recorded sale.
type SaleDto struct {
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
	CreatedAt      string
}

// RecordSale records a sale against the catalog.
//
// The stock decrement and the ledger append form a single logical unit:
// the append happens only after the decrement succeeded, and the append
// itself cannot fail, so no intermediate state is observable.
func (s *Service) RecordSale(sale SaleCreateDto) (*SaleDto, error) {
	if err := s.validate.Struct(sale); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
			}
			return nil, fmt.Errorf("%s: %w", strings.Join(fields, "; "), validation.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%v: %w", err, validation.ErrInvalidInput)
	}
	if sale.DiscountPct.IsNegative() || sale.DiscountPct.GreaterThan(oneHundred) {
		return nil, fmt.Errorf("discount %s%%: %w", sale.DiscountPct, ledgererrors.ErrInvalidDiscount)
	}

	// Resolves the product and subtracts stock in one store operation, so a
	// failed stock check leaves both catalog and ledger untouched.
	product, err := s.catalog.DecrementStock(sale.ProductID, sale.Quantity)
	if err != nil {
		return nil, err
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(sale.Quantity))).Round(2)
	discountAmount := subtotal.Mul(sale.DiscountPct).Div(oneHundred).Round(2)
	total := subtotal.Sub(discountAmount)

	created := s.sales.Append(store.Sale{
		Customer:       sale.Customer,
		ProductID:      product.ID,
		Title:          product.Title,
		Author:         product.Author,
		Quantity:       sale.Quantity,
		UnitPrice:      product.Price,
		DiscountPct:    sale.DiscountPct,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		CreatedAt:      s.now(),
	})

	return toDto(created), nil
}

// FindAll retrieves all sales and returns them as SaleDtos.
func (s *Service) FindAll() []SaleDto {
	sales := s.sales.FindAll()
	saleDtos := make([]SaleDto, len(sales))

	for i, item := range sales {
		saleDtos[i] = *toDto(&item)
	}

	return saleDtos
}

// toDto converts a store.Sale to a SaleDto.
func toDto(sale *store.Sale) *SaleDto {
	return &SaleDto{
		ID:             sale.ID,
		Customer:       sale.Customer,
		ProductID:      sale.ProductID,
		Title:          sale.Title,
		Author:         sale.Author,
		Quantity:       sale.Quantity,
		UnitPrice:      sale.UnitPrice,
		DiscountPct:    sale.DiscountPct,
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		Total:          sale.Total,
		CreatedAt:      sale.CreatedAt.Format(TimestampLayout),
	}
}
