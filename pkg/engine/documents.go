package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/docbolt/docbolt/pkg/domain"
)

// Insert inserts a document into a collection, assigning an identifier
// when the document has none, and persists the delta. Returns the
// document's identifier.
func (e *Engine) Insert(collName string, doc domain.Document) (string, error) {
	if doc.IsTombstone() || doc.IsIndexMarker() {
		return "", fmt.Errorf("document may not carry reserved marker fields")
	}

	h, err := e.collection(collName)
	if err != nil {
		return "", err
	}

	stored := doc.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored[domain.IDField] = id
	}

	err = h.executor.Submit(func() error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, exists := h.indexes.Get(id); exists {
			return fmt.Errorf("document with id %s already exists in collection %s", id, collName)
		}
		h.indexes.Insert(stored)
		return h.persist.PersistNewState([]domain.Document{stored})
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetById retrieves a specific document by its ID
func (e *Engine) GetById(collName, docId string) (domain.Document, error) {
	h, err := e.collection(collName)
	if err != nil {
		return nil, err
	}

	doc, exists := h.indexes.Get(docId)
	if !exists {
		return nil, fmt.Errorf("document with id %s not found in collection %s", docId, collName)
	}
	return doc, nil
}

// UpdateById merges updates into a document. The identifier field is
// immutable and silently skipped, matching insert-time semantics.
func (e *Engine) UpdateById(collName, docId string, updates domain.Document) error {
	h, err := e.collection(collName)
	if err != nil {
		return err
	}

	return h.executor.Submit(func() error {
		h.mu.Lock()
		defer h.mu.Unlock()

		oldDoc, exists := h.indexes.Get(docId)
		if !exists {
			return fmt.Errorf("document with id %s not found in collection %s", docId, collName)
		}

		newDoc := oldDoc.Clone()
		for key, value := range updates {
			if key != domain.IDField {
				newDoc[key] = value
			}
		}

		h.indexes.Update(oldDoc, newDoc)
		return h.persist.PersistNewState([]domain.Document{newDoc})
	})
}

// DeleteById removes a document and persists a tombstone for its key.
func (e *Engine) DeleteById(collName, docId string) error {
	h, err := e.collection(collName)
	if err != nil {
		return err
	}

	return h.executor.Submit(func() error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, exists := h.indexes.Get(docId); !exists {
			return fmt.Errorf("document with id %s not found in collection %s", docId, collName)
		}

		h.indexes.Remove(docId)
		return h.persist.PersistNewState([]domain.Document{domain.Tombstone(docId)})
	})
}

// FindAll returns documents that match the given filter criteria.
// If filter is nil or empty, returns all documents.
func (e *Engine) FindAll(collName string, filter map[string]interface{}) ([]domain.Document, error) {
	h, err := e.collection(collName)
	if err != nil {
		return nil, err
	}

	results := []domain.Document{}
	for _, doc := range h.indexes.GetAllData() {
		if MatchesFilter(doc, filter) {
			results = append(results, doc)
		}
	}
	return results, nil
}
