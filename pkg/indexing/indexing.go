package indexing

import (
	"fmt"
	"sync"

	"github.com/docbolt/docbolt/pkg/domain"
)

// Index stores a mapping from a field's value to document IDs.
type Index struct {
	Field    string
	Inverted map[interface{}][]string
}

// NewIndex creates an index on a specific field.
func NewIndex(field string) *Index {
	return &Index{
		Field:    field,
		Inverted: make(map[interface{}][]string),
	}
}

// Query returns document IDs that match a given value in the indexed field.
func (idx *Index) Query(value interface{}) []string {
	if docIDs, ok := idx.Inverted[value]; ok {
		return docIDs
	}
	return nil
}

// UpdateIndex updates the index after an insert/update/delete operation.
func (idx *Index) UpdateIndex(docID string, oldDoc, newDoc domain.Document) {
	// Remove old entry
	if oldVal, ok := oldDoc[idx.Field]; ok {
		docList := idx.Inverted[oldVal]
		for i, id := range docList {
			if id == docID {
				idx.Inverted[oldVal] = append(docList[:i], docList[i+1:]...)
				break
			}
		}
	}
	// Add new entry
	if newVal, ok := newDoc[idx.Field]; ok {
		idx.Inverted[newVal] = append(idx.Inverted[newVal], docID)
	}
}

// CollectionIndexes holds one collection's indexed document set: the
// documents themselves in insertion order plus the inverted field
// indexes. It is the concrete implementation of domain.CollectionIndex
// that the durability layer resets on load and snapshots on compaction.
type CollectionIndexes struct {
	mu     sync.RWMutex
	order  []string
	docs   map[string]domain.Document
	fields map[string]*Index
}

// NewCollectionIndexes creates an empty index set for one collection.
func NewCollectionIndexes() *CollectionIndexes {
	return &CollectionIndexes{
		docs:   make(map[string]domain.Document),
		fields: make(map[string]*Index),
	}
}

// ResetIndexes rebuilds the index set from scratch. A nil slice empties
// it. Records are applied in order the way the durability layer wrote
// them: tombstones remove their document, index markers recreate or drop
// field indexes, everything else is (re)inserted.
func (ci *CollectionIndexes) ResetIndexes(docs []domain.Document) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.order = nil
	ci.docs = make(map[string]domain.Document)
	ci.fields = make(map[string]*Index)

	for _, doc := range docs {
		switch {
		case doc.IsTombstone():
			ci.removeLocked(doc.ID())
		case doc.IsIndexMarker():
			ci.applyMarkerLocked(doc)
		default:
			ci.insertLocked(doc)
		}
	}
}

// GetAllData returns the indexed documents in insertion order.
func (ci *CollectionIndexes) GetAllData() []domain.Document {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	all := make([]domain.Document, 0, len(ci.order))
	for _, id := range ci.order {
		if doc, ok := ci.docs[id]; ok {
			all = append(all, doc)
		}
	}
	return all
}

// Get returns the document with the given identifier.
func (ci *CollectionIndexes) Get(id string) (domain.Document, bool) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	doc, ok := ci.docs[id]
	return doc, ok
}

// Insert adds a document to the set and every field index.
func (ci *CollectionIndexes) Insert(doc domain.Document) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.insertLocked(doc)
}

// Update replaces a document, keeping field indexes consistent.
func (ci *CollectionIndexes) Update(oldDoc, newDoc domain.Document) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	id := newDoc.ID()
	for _, idx := range ci.fields {
		idx.UpdateIndex(id, oldDoc, newDoc)
	}
	ci.docs[id] = newDoc
}

// Remove drops a document from the set and every field index.
func (ci *CollectionIndexes) Remove(id string) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.removeLocked(id)
}

// EnsureField creates an inverted index on the field, building it over
// the current document set. Idempotent.
func (ci *CollectionIndexes) EnsureField(field string) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.ensureFieldLocked(field)
}

// DropField removes the inverted index on the field.
func (ci *CollectionIndexes) DropField(field string) error {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	if _, exists := ci.fields[field]; !exists {
		return fmt.Errorf("index on field %s does not exist", field)
	}
	delete(ci.fields, field)
	return nil
}

// Fields returns the indexed field names.
func (ci *CollectionIndexes) Fields() []string {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	names := make([]string, 0, len(ci.fields))
	for field := range ci.fields {
		names = append(names, field)
	}
	return names
}

// FindByField returns the documents matching value on an indexed field.
func (ci *CollectionIndexes) FindByField(field string, value interface{}) ([]domain.Document, error) {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	idx, exists := ci.fields[field]
	if !exists {
		return nil, fmt.Errorf("index on field %s does not exist", field)
	}

	var results []domain.Document
	for _, id := range idx.Query(value) {
		if doc, ok := ci.docs[id]; ok {
			results = append(results, doc)
		}
	}
	return results, nil
}

func (ci *CollectionIndexes) insertLocked(doc domain.Document) {
	id := doc.ID()
	if id == "" {
		return
	}
	if _, exists := ci.docs[id]; !exists {
		ci.order = append(ci.order, id)
	} else {
		for _, idx := range ci.fields {
			idx.UpdateIndex(id, ci.docs[id], nil)
		}
	}
	ci.docs[id] = doc
	for _, idx := range ci.fields {
		idx.UpdateIndex(id, nil, doc)
	}
}

func (ci *CollectionIndexes) removeLocked(id string) {
	doc, exists := ci.docs[id]
	if !exists {
		return
	}
	for _, idx := range ci.fields {
		idx.UpdateIndex(id, doc, nil)
	}
	delete(ci.docs, id)
	for i, existing := range ci.order {
		if existing == id {
			ci.order = append(ci.order[:i], ci.order[i+1:]...)
			break
		}
	}
}

func (ci *CollectionIndexes) ensureFieldLocked(field string) {
	if _, exists := ci.fields[field]; exists {
		return
	}
	idx := NewIndex(field)
	for _, id := range ci.order {
		idx.UpdateIndex(id, nil, ci.docs[id])
	}
	ci.fields[field] = idx
}

func (ci *CollectionIndexes) applyMarkerLocked(doc domain.Document) {
	if created, ok := doc[domain.IndexCreatedField].(map[string]interface{}); ok {
		if field, ok := created["fieldName"].(string); ok {
			ci.ensureFieldLocked(field)
		}
	}
	if field, ok := doc[domain.IndexRemovedField].(string); ok {
		delete(ci.fields, field)
	}
}

// IndexEngine implements domain.IndexEngine across collections.
type IndexEngine struct {
	mu          sync.RWMutex
	collections map[string]*CollectionIndexes
}

// NewIndexEngine creates a new index engine
func NewIndexEngine() *IndexEngine {
	return &IndexEngine{
		collections: make(map[string]*CollectionIndexes),
	}
}

// Collection returns the index set for a collection, creating it on
// first use.
func (ie *IndexEngine) Collection(name string) *CollectionIndexes {
	ie.mu.RLock()
	ci, exists := ie.collections[name]
	ie.mu.RUnlock()
	if exists {
		return ci
	}

	ie.mu.Lock()
	defer ie.mu.Unlock()
	if ci, exists := ie.collections[name]; exists {
		return ci
	}
	ci = NewCollectionIndexes()
	ie.collections[name] = ci
	return ci
}

// CreateIndex creates an index on a specific field in a collection
func (ie *IndexEngine) CreateIndex(collectionName, fieldName string) error {
	if fieldName == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	ie.Collection(collectionName).EnsureField(fieldName)
	return nil
}

// DropIndex removes an index from a collection
func (ie *IndexEngine) DropIndex(collectionName, fieldName string) error {
	ie.mu.RLock()
	ci, exists := ie.collections[collectionName]
	ie.mu.RUnlock()
	if !exists {
		return fmt.Errorf("no indexes exist for collection %s", collectionName)
	}
	return ci.DropField(fieldName)
}

// FindByIndex finds documents using an index
func (ie *IndexEngine) FindByIndex(collectionName, fieldName string, value interface{}) ([]domain.Document, error) {
	ie.mu.RLock()
	ci, exists := ie.collections[collectionName]
	ie.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("no indexes exist for collection %s", collectionName)
	}
	return ci.FindByField(fieldName, value)
}

// GetIndexes returns all index names for a collection
func (ie *IndexEngine) GetIndexes(collectionName string) ([]string, error) {
	ie.mu.RLock()
	ci, exists := ie.collections[collectionName]
	ie.mu.RUnlock()
	if !exists {
		return []string{}, nil
	}
	return ci.Fields(), nil
}
