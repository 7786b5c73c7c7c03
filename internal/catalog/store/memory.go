package store

import (
	"sync"

	"github.com/shopspring/decimal"

	catalogerrors "github.com/abgdnv/bookstore/internal/catalog/errors"
)

// MemoryStore implements ProductStore using an in-memory map.
// Map iteration order is not stable, so insertion order is tracked separately.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int]Product
	order    []int
	nextID   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int]Product),
		nextID:   1,
	}
}

func (s *MemoryStore) FindByID(id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) FindAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list
}

func (s *MemoryStore) Create(title, author, category string, price decimal.Decimal, stock int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:       s.nextID,
		Title:    title,
		Author:   author,
		Category: category,
		Price:    price,
		Stock:    stock,
	}
	s.nextID++
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return &product, nil
}

func (s *MemoryStore) Update(id int, title, author, category string, price decimal.Decimal, stock int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	p.Title = title
	p.Author = author
	p.Category = category
	p.Price = price
	p.Stock = stock
	s.products[id] = p

	return &p, nil
}

func (s *MemoryStore) DeleteByID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return catalogerrors.ErrProductNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) DecrementStock(id, quantity int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	if quantity > p.Stock {
		return nil, catalogerrors.ErrInsufficientStock
	}
	p.Stock -= quantity
	s.products[id] = p

	return &p, nil
}
