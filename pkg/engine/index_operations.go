package engine

import (
	"github.com/docbolt/docbolt/pkg/domain"
)

// CreateIndex creates an index on a field. The index-created marker flows
// through the delta path like any other mutation; the durability layer
// skips it, so it has no durable effect in the data store.
func (e *Engine) CreateIndex(collName, fieldName string) error {
	h, err := e.collection(collName)
	if err != nil {
		return err
	}

	return h.executor.Submit(func() error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if err := e.indexEngine.CreateIndex(collName, fieldName); err != nil {
			return err
		}
		marker := domain.Document{
			domain.IndexCreatedField: map[string]interface{}{"fieldName": fieldName},
		}
		return h.persist.PersistNewState([]domain.Document{marker})
	})
}

// DropIndex removes an index from a collection.
func (e *Engine) DropIndex(collName, fieldName string) error {
	h, err := e.collection(collName)
	if err != nil {
		return err
	}

	return h.executor.Submit(func() error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if err := e.indexEngine.DropIndex(collName, fieldName); err != nil {
			return err
		}
		marker := domain.Document{domain.IndexRemovedField: fieldName}
		return h.persist.PersistNewState([]domain.Document{marker})
	})
}

// FindByIndex finds documents using an indexed field.
func (e *Engine) FindByIndex(collName, fieldName string, value interface{}) ([]domain.Document, error) {
	if _, err := e.collection(collName); err != nil {
		return nil, err
	}
	return e.indexEngine.FindByIndex(collName, fieldName, value)
}

// GetIndexes returns all index names for a collection.
func (e *Engine) GetIndexes(collName string) ([]string, error) {
	if _, err := e.collection(collName); err != nil {
		return nil, err
	}
	return e.indexEngine.GetIndexes(collName)
}
