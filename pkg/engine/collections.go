package engine

import (
	"github.com/docbolt/docbolt/pkg/domain"
)

// CreateCollection creates (and loads) a collection. Collections also
// spring into existence on first insert; this just makes the bootstrap
// explicit.
func (e *Engine) CreateCollection(collName string) error {
	_, err := e.collection(collName)
	return err
}

// GetCollection returns a snapshot view of a collection's documents.
func (e *Engine) GetCollection(collName string) (*domain.Collection, error) {
	h, err := e.collection(collName)
	if err != nil {
		return nil, err
	}

	collection := domain.NewCollection(collName)
	for _, doc := range h.indexes.GetAllData() {
		collection.Documents[doc.ID()] = doc
	}
	return collection, nil
}

// Collections lists the names of the loaded collections.
func (e *Engine) Collections() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.collections))
	for name := range e.collections {
		names = append(names, name)
	}
	return names
}
