package mocks

import (
	"context"
	"sync"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// MockDocumentStore is an in-memory DocumentStore for testing. Documents
// are kept in insertion order like the SQL stores.
type MockDocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]*domain.Document
	order []string
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.ID]; !ok {
		m.order = append(m.order, doc.ID)
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockDocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if offset >= len(m.order) {
		return []*domain.Document{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(m.order) {
		end = len(m.order)
	}

	out := make([]*domain.Document, 0, end-offset)
	for _, id := range m.order[offset:end] {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *MockDocumentStore) All(ctx context.Context) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Document, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockDocumentStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}
