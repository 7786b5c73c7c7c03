// Package service provides the implementation of catalog business logic.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/abgdnv/bookstore/internal/catalog/store"
	"github.com/abgdnv/bookstore/internal/validation"
)

// CatalogService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id int) (*ProductDto, error)

	// FindAll returns all products in insertion order.
	FindAll() []ProductDto

	// Create validates and adds a new product, assigning the next sequential ID.
	Create(product ProductCreateDto) (*ProductDto, error)

	// Update overwrites the fields supplied in the DTO; nil fields keep
	// their current value. Supplied fields are re-validated with the same
	// constraints as Create.
	Update(id int, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product unconditionally. Operator confirmation
	// is the caller's responsibility.
	DeleteByID(id int) error

	// DecrementStock subtracts quantity from a product's stock.
	// Returns ErrProductNotFound or ErrInsufficientStock.
	DecrementStock(id, quantity int) (*ProductDto, error)
}

// Service implements CatalogService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	validate   *validator.Validate
}

// NewService creates a new instance of CatalogService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
		validate:   validator.New(),
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int
	Title    string
	Author   string
	Category string
	Price    decimal.Decimal
	Stock    int
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Price carries its own constraint (>= 0), checked explicitly because the
// validator's numeric rules do not apply to decimal.Decimal.
type ProductCreateDto struct {
	Title    string `validate:"required"`
	Author   string `validate:"required"`
	Category string `validate:"required"`
	Price    decimal.Decimal
	Stock    int `validate:"required,gt=0"`
}

// ProductUpdateDto represents a partial update; nil means "keep current value".
type ProductUpdateDto struct {
	Title    *string
	Author   *string
	Category *string
	Price    *decimal.Decimal
	Stock    *int
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(id int) (*ProductDto, error) {
	product, err := s.repository.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves all products in insertion order and returns them as ProductDtos.
func (s *Service) FindAll() []ProductDto {
	products := s.repository.FindAll()
	productDtos := make([]ProductDto, len(products))

	for i, item := range products {
		productDtos[i] = *toDto(&item)
	}

	return productDtos
}

// Create validates and creates a new product and returns it as a ProductDto.
func (s *Service) Create(product ProductCreateDto) (*ProductDto, error) {
	if err := s.checkCreateDto(product); err != nil {
		return nil, err
	}

	p, err := s.repository.Create(product.Title, product.Author, product.Category, product.Price, product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update merges the supplied fields over the current product state,
// re-validates the result and persists it.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(id int, update ProductUpdateDto) (*ProductDto, error) {
	current, err := s.repository.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	// Only supplied fields are re-validated: a product resting at zero
	// stock after sales must remain updatable without touching its stock.
	if err := checkUpdateDto(update); err != nil {
		return nil, err
	}

	merged := *current
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Author != nil {
		merged.Author = *update.Author
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Stock != nil {
		merged.Stock = *update.Stock
	}

	updated, err := s.repository.Update(id, merged.Title, merged.Author, merged.Category, merged.Price, merged.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(id int) error {
	return s.repository.DeleteByID(id)
}

// DecrementStock subtracts quantity from a product's stock and returns the
// updated product as a ProductDto.
// Returns ErrProductNotFound or ErrInsufficientStock.
func (s *Service) DecrementStock(id, quantity int) (*ProductDto, error) {
	product, err := s.repository.DecrementStock(id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock for product with ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// checkCreateDto applies the create constraints: non-empty text fields,
// stock > 0, price >= 0. Failures wrap ErrInvalidInput.
func (s *Service) checkCreateDto(product ProductCreateDto) error {
	if err := s.validate.Struct(product); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
			}
			return fmt.Errorf("%s: %w", strings.Join(fields, "; "), validation.ErrInvalidInput)
		}
		return fmt.Errorf("%v: %w", err, validation.ErrInvalidInput)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", validation.ErrInvalidInput)
	}
	return nil
}

// checkUpdateDto applies the create constraints to the supplied fields only.
func checkUpdateDto(update ProductUpdateDto) error {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return fmt.Errorf("title must not be empty: %w", validation.ErrInvalidInput)
	}
	if update.Author != nil && strings.TrimSpace(*update.Author) == "" {
		return fmt.Errorf("author must not be empty: %w", validation.ErrInvalidInput)
	}
	if update.Category != nil && strings.TrimSpace(*update.Category) == "" {
		return fmt.Errorf("category must not be empty: %w", validation.ErrInvalidInput)
	}
	if update.Price != nil && update.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", validation.ErrInvalidInput)
	}
	if update.Stock != nil && *update.Stock <= 0 {
		return fmt.Errorf("stock must be positive: %w", validation.ErrInvalidInput)
	}
	return nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Title:    product.Title,
		Author:   product.Author,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
	}
}
