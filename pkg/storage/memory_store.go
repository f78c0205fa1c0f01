package storage

import (
	"sync"

	"github.com/Sriram-PR/md-toc/pkg/models"
)

// MemoryStore implements DocumentStore in memory for one process lifetime
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.DocumentEntry
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]models.DocumentEntry)}
}

// GetDocumentEntry implements DocumentStore
func (m *MemoryStore) GetDocumentEntry(path string) (models.FileStatus, *models.DocumentEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[path]
	if !ok {
		return models.FileStatusNotFound, nil, nil
	}
	return entry.Status, &entry, nil
}

// UpdateDocumentEntry implements DocumentStore
func (m *MemoryStore) UpdateDocumentEntry(path string, entry *models.DocumentEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[path] = *entry
	return nil
}

// Count implements DocumentStore
func (m *MemoryStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close implements DocumentStore
func (m *MemoryStore) Close() error { return nil }
