package domain

// IndexEngine defines the interface for indexing operations
type IndexEngine interface {
	CreateIndex(collectionName, fieldName string) error
	DropIndex(collectionName, fieldName string) error
	FindByIndex(collectionName, fieldName string, value interface{}) ([]Document, error)
	GetIndexes(collectionName string) ([]string, error)
}

// CollectionIndex is the per-collection surface the durability layer talks
// to. ResetIndexes with a nil slice empties the indexes; with documents it
// rebuilds them from scratch. GetAllData snapshots the indexed documents.
type CollectionIndex interface {
	ResetIndexes(docs []Document)
	GetAllData() []Document
}

// Executor releases operations that were buffered while a collection load
// was pending.
type Executor interface {
	ProcessBuffer()
}

// Index represents an index on a collection field
type Index struct {
	CollectionName string                 `json:"collection_name"`
	FieldName      string                 `json:"field_name"`
	Values         map[interface{}]string `json:"values"` // value -> document ID
}
