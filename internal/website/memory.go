package website

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory website store for scaffolding and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	websites map[uuid.UUID]*Website
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		websites: make(map[uuid.UUID]*Website),
	}
}

// Create inserts the supplied website.
func (m *MemoryRepository) Create(_ context.Context, record *Website) (*Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := record.Clone()
	m.websites[copied.ID] = copied
	return copied.Clone(), nil
}

// GetByID retrieves a website by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.websites[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return record.Clone(), nil
}

// ListByUser returns every website owned by the user.
func (m *MemoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Website, 0, len(m.websites))
	for _, record := range m.websites {
		if record.UserID == userID {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

// Update replaces the stored aggregate.
func (m *MemoryRepository) Update(_ context.Context, record *Website) (*Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.websites[record.ID]; !ok {
		return nil, &NotFoundError{Key: record.ID.String()}
	}
	copied := record.Clone()
	m.websites[copied.ID] = copied
	return copied.Clone(), nil
}

// Delete removes the aggregate.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.websites[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.websites, id)
	return nil
}
