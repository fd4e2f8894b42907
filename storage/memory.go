package storage

import (
	"sync"

	"storefront/models"
)

// MemoryStore keeps serialized records in process memory. Contents are lost
// on restart, so it serves tests and sessions that run without a database.
type MemoryStore struct {
	failures
	records map[string][]byte
	key     string
	mu      sync.RWMutex
}

func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultKey
	}
	return &MemoryStore{
		records: make(map[string][]byte),
		key:     key,
	}
}

func (m *MemoryStore) Load() []models.LineItem {
	m.mu.RLock()
	data, exists := m.records[m.key]
	m.mu.RUnlock()

	if !exists {
		return []models.LineItem{}
	}
	items, err := Decode(data)
	if err != nil {
		m.report("load", m.key, err)
		return []models.LineItem{}
	}
	return items
}

func (m *MemoryStore) Save(items []models.LineItem) {
	data, err := Encode(items)
	if err != nil {
		m.report("save", m.key, err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.key] = data
}

func (m *MemoryStore) Erase() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, m.key)
}
