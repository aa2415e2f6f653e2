package domain

// IDField is the identifier field every document carries. It is assigned
// on insert, immutable for the document's lifetime, and doubles as the
// key under which the document is stored durably.
const IDField = "_id"

// Marker fields understood by the durability layer. A tombstone tells the
// persister to delete the key instead of writing it; the index markers
// describe index lifecycle events and are never written to the data store.
const (
	DeletedField      = "$$deleted"
	IndexCreatedField = "$$indexCreated"
	IndexRemovedField = "$$indexRemoved"
)

// Document represents a schemaless document in the database
type Document map[string]interface{}

// ID returns the document's identifier, or "" if it has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// IsTombstone reports whether the document is a deletion marker.
func (d Document) IsTombstone() bool {
	deleted, _ := d[DeletedField].(bool)
	return deleted
}

// IsIndexMarker reports whether the document is an index lifecycle record
// rather than user data.
func (d Document) IsIndexMarker() bool {
	_, created := d[IndexCreatedField]
	_, removed := d[IndexRemovedField]
	return created || removed
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	cp := make(Document, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return cp
}

// Tombstone builds a deletion marker for the given document ID.
func Tombstone(id string) Document {
	return Document{IDField: id, DeletedField: true}
}

// Collection represents a collection of documents
type Collection struct {
	Name      string              `json:"name"`
	Documents map[string]Document `json:"documents"`
}

// NewCollection creates a new collection
func NewCollection(name string) *Collection {
	return &Collection{
		Name:      name,
		Documents: make(map[string]Document),
	}
}
