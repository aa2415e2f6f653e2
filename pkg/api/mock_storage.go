package api

import (
	"fmt"
	"sync"

	"github.com/docbolt/docbolt/pkg/domain"
)

// MockEngine provides a mock implementation of domain.DatabaseEngine for
// handler tests.
type MockEngine struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.Document
	indexes     map[string][]string

	insertCalls  int
	findCalls    int
	compactCalls int
}

// NewMockEngine creates a new mock engine
func NewMockEngine() *MockEngine {
	return &MockEngine{
		collections: make(map[string]map[string]domain.Document),
		indexes:     make(map[string][]string),
	}
}

func (m *MockEngine) Insert(collName string, doc domain.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.collections[collName] == nil {
		m.collections[collName] = make(map[string]domain.Document)
	}

	id := doc.ID()
	if id == "" {
		id = fmt.Sprintf("%d", len(m.collections[collName])+1)
		doc = doc.Clone()
		doc[domain.IDField] = id
	}
	m.collections[collName][id] = doc
	return id, nil
}

func (m *MockEngine) FindAll(collName string, filter map[string]interface{}) ([]domain.Document, error) {
	// Write lock: the call counter makes this a mutation.
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findCalls++
	docs := []domain.Document{}
	for _, doc := range m.collections[collName] {
		matches := true
		for field, want := range filter {
			if doc[field] != want {
				matches = false
				break
			}
		}
		if matches {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockEngine) GetById(collName, docId string) (domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, exists := m.collections[collName][docId]
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s", docId, collName)
	}
	return doc, nil
}

func (m *MockEngine) UpdateById(collName, docId string, updates domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.collections[collName][docId]
	if !exists {
		return fmt.Errorf("document with id %s not found in collection %s", docId, collName)
	}
	for key, value := range updates {
		if key != domain.IDField {
			doc[key] = value
		}
	}
	return nil
}

func (m *MockEngine) DeleteById(collName, docId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.collections[collName][docId]; !exists {
		return fmt.Errorf("document with id %s not found in collection %s", docId, collName)
	}
	delete(m.collections[collName], docId)
	return nil
}

func (m *MockEngine) CreateCollection(collName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collections[collName] == nil {
		m.collections[collName] = make(map[string]domain.Document)
	}
	return nil
}

func (m *MockEngine) GetCollection(collName string) (*domain.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs, exists := m.collections[collName]
	if !exists {
		return nil, fmt.Errorf("collection %s does not exist", collName)
	}
	collection := domain.NewCollection(collName)
	for id, doc := range docs {
		collection.Documents[id] = doc
	}
	return collection, nil
}

func (m *MockEngine) Compact(collName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compactCalls++
	return nil
}

func (m *MockEngine) GetMemoryStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{"collections": len(m.collections)}
}

func (m *MockEngine) CreateIndex(collName, fieldName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fieldName == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	m.indexes[collName] = append(m.indexes[collName], fieldName)
	return nil
}

func (m *MockEngine) DropIndex(collName, fieldName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, field := range m.indexes[collName] {
		if field == fieldName {
			m.indexes[collName] = append(m.indexes[collName][:i], m.indexes[collName][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("index on field %s does not exist in collection %s", fieldName, collName)
}

func (m *MockEngine) FindByIndex(collName, fieldName string, value interface{}) ([]domain.Document, error) {
	return m.FindAll(collName, map[string]interface{}{fieldName: value})
}

func (m *MockEngine) GetIndexes(collName string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexes[collName], nil
}
