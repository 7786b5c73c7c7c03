package store

import "sync"

// MemoryStore implements SaleStore using an in-memory slice.
type MemoryStore struct {
	mu     sync.RWMutex
	sales  []Sale
	nextID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
	}
}

func (s *MemoryStore) Append(sale Sale) *Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale.ID = s.nextID
	s.nextID++
	s.sales = append(s.sales, sale)

	return &sale
}

func (s *MemoryStore) FindAll() []Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Sale, len(s.sales))
	copy(list, s.sales)
	return list
}
