package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogerrors "github.com/abgdnv/bookstore/internal/catalog/errors"
	"github.com/abgdnv/bookstore/internal/catalog/store"
	"github.com/abgdnv/bookstore/internal/validation"
)

// mockProductStore is a mock implementation of the ProductStore interface.
type mockProductStore struct {
	product  store.Product
	products []store.Product
	error    error

	updateArgs *store.Product
}

func (m *mockProductStore) FindByID(_ int) (*store.Product, error) {
	return &m.product, m.error
}

func (m *mockProductStore) FindAll() []store.Product {
	return m.products
}

func (m *mockProductStore) Create(_, _, _ string, _ decimal.Decimal, _ int) (*store.Product, error) {
	return &m.product, m.error
}

func (m *mockProductStore) Update(id int, title, author, category string, price decimal.Decimal, stock int) (*store.Product, error) {
	m.updateArgs = &store.Product{ID: id, Title: title, Author: author, Category: category, Price: price, Stock: stock}
	return m.updateArgs, m.error
}

func (m *mockProductStore) DeleteByID(_ int) error {
	return m.error
}

func (m *mockProductStore) DecrementStock(_, _ int) (*store.Product, error) {
	return &m.product, m.error
}

func Test_CatalogService_Create(t *testing.T) {
	price := decimal.RequireFromString("25.99")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		product     ProductCreateDto
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product created",
			mockStore: &mockProductStore{
				product: store.Product{ID: 6, Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Price: price, Stock: 4},
			},
			product:  ProductCreateDto{Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Price: price, Stock: 4},
			expected: &ProductDto{ID: 6, Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Price: price, Stock: 4},
		},
		{
			name:        "Error - empty title",
			mockStore:   &mockProductStore{},
			product:     ProductCreateDto{Author: "Frank Herbert", Category: "Fiction", Price: price, Stock: 4},
			expectError: validation.ErrInvalidInput,
		},
		{
			name:        "Error - zero stock rejected on create",
			mockStore:   &mockProductStore{},
			product:     ProductCreateDto{Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Price: price, Stock: 0},
			expectError: validation.ErrInvalidInput,
		},
		{
			name:        "Error - negative price",
			mockStore:   &mockProductStore{},
			product:     ProductCreateDto{Title: "Dune", Author: "Frank Herbert", Category: "Fiction", Price: decimal.RequireFromString("-1"), Stock: 4},
			expectError: validation.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			created, err := service.Create(tc.product)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
		})
	}
}

func Test_CatalogService_FindByID(t *testing.T) {
	price := decimal.RequireFromString("18.50")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: 2, Title: "The Alchemist", Author: "Paulo Coelho", Category: "Fiction", Price: price, Stock: 20},
			},
			expected: &ProductDto{ID: 2, Title: "The Alchemist", Author: "Paulo Coelho", Category: "Fiction", Price: price, Stock: 20},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: catalogerrors.ErrProductNotFound},
			expectError: catalogerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(2)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_CatalogService_Update_MergesSuppliedFields(t *testing.T) {
	// given
	current := store.Product{
		ID:       3,
		Title:    "Sapiens",
		Author:   "Yuval Noah Harari",
		Category: "Non-Fiction",
		Price:    decimal.RequireFromString("22.00"),
		Stock:    12,
	}
	mock := &mockProductStore{product: current}
	service := NewService(mock)

	newPrice := decimal.RequireFromString("20.00")
	newStock := 15
	// when only price and stock are supplied
	updated, err := service.Update(3, ProductUpdateDto{Price: &newPrice, Stock: &newStock})
	// then the remaining fields keep their current values
	require.NoError(t, err)
	require.NotNil(t, mock.updateArgs)
	assert.Equal(t, "Sapiens", mock.updateArgs.Title)
	assert.Equal(t, "Yuval Noah Harari", mock.updateArgs.Author)
	assert.Equal(t, "Non-Fiction", mock.updateArgs.Category)
	assert.True(t, mock.updateArgs.Price.Equal(newPrice))
	assert.Equal(t, 15, mock.updateArgs.Stock)
	assert.Equal(t, 15, updated.Stock)
}

func Test_CatalogService_Update_Validation(t *testing.T) {
	empty := "   "
	negative := decimal.RequireFromString("-5")
	zero := 0
	testCases := []struct {
		name   string
		update ProductUpdateDto
	}{
		{name: "Error - blank title", update: ProductUpdateDto{Title: &empty}},
		{name: "Error - negative price", update: ProductUpdateDto{Price: &negative}},
		{name: "Error - zero stock", update: ProductUpdateDto{Stock: &zero}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mock := &mockProductStore{product: store.Product{ID: 1, Title: "A", Author: "B", Category: "C", Stock: 5}}
			service := NewService(mock)
			// when
			updated, err := service.Update(1, tc.update)
			// then
			assert.ErrorIs(t, err, validation.ErrInvalidInput)
			assert.Nil(t, updated)
			assert.Nil(t, mock.updateArgs)
		})
	}
}

func Test_CatalogService_Update_NotFound(t *testing.T) {
	// given
	service := NewService(&mockProductStore{error: catalogerrors.ErrProductNotFound})
	// when
	updated, err := service.Update(42, ProductUpdateDto{})
	// then
	assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	assert.Nil(t, updated)
}

func Test_CatalogService_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{name: "Success - product deleted", mockStore: &mockProductStore{}},
		{name: "Error - product not found", mockStore: &mockProductStore{error: catalogerrors.ErrProductNotFound}, expectError: catalogerrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			err := service.DeleteByID(1)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func Test_CatalogService_DecrementStock_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("boom")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{name: "Error - not found", mockStore: &mockProductStore{error: catalogerrors.ErrProductNotFound}, expectError: catalogerrors.ErrProductNotFound},
		{name: "Error - insufficient stock", mockStore: &mockProductStore{error: catalogerrors.ErrInsufficientStock}, expectError: catalogerrors.ErrInsufficientStock},
		{name: "Error - store error", mockStore: &mockProductStore{error: storeErr}, expectError: storeErr},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.DecrementStock(1, 3)
			// then
			assert.ErrorIs(t, err, tc.expectError)
			assert.Nil(t, updated)
		})
	}
}
