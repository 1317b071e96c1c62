package record

import (
	"fmt"
	"sync"
)

// MemStore keeps assessments in memory. It is safe for concurrent use.
type MemStore struct {
	mu   sync.RWMutex
	data map[int]map[string]*Assessment
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[int]map[string]*Assessment)}
}

func (m *MemStore) Create(a *Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.data[a.UserID]
	if !ok {
		byID = make(map[string]*Assessment)
		m.data[a.UserID] = byID
	}
	if _, exists := byID[a.ID]; exists {
		return fmt.Errorf("record.MemStore.Create: %s: %w", a.ID, ErrExists)
	}
	byID[a.ID] = a.clone()
	return nil
}

func (m *MemStore) Get(userID int, id string) (*Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.data[userID][id]
	if !ok {
		return nil, fmt.Errorf("record.MemStore.Get: %s: %w", id, ErrNotFound)
	}
	return a.clone(), nil
}

func (m *MemStore) ListByUser(userID int) ([]*Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Assessment, 0, len(m.data[userID]))
	for _, a := range m.data[userID] {
		list = append(list, a.clone())
	}
	sortNewestFirst(list)
	return list, nil
}
