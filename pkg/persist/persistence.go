// Package persist is the durability layer of the document store: it
// reconciles an in-memory collection of documents with a transactional
// key-value backing store (bbolt).
//
// The owning collection calls LoadDatabase once at startup, then
// PersistNewState after each mutating operation, and PersistCachedDatabase
// (compaction) periodically or on demand.
package persist

import (
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/domain"
	"github.com/docbolt/docbolt/pkg/metrics"
)

// RecordErrorPolicy controls what PersistNewState does when a single
// record fails inside a batch.
type RecordErrorPolicy int

const (
	// RecordErrorContinue logs the failed record and keeps going; the
	// rest of the batch still commits.
	RecordErrorContinue RecordErrorPolicy = iota
	// RecordErrorAbort rolls the batch back on the first failed record.
	RecordErrorAbort
)

// Persistence binds one (database, store) pair to its in-memory
// collection. All methods are synchronous; callers that need write
// serialization across goroutines provide it themselves (the engine layer
// holds a per-collection lock).
type Persistence struct {
	database string
	store    string

	conn   *Connector
	runner *TxnRunner
	codec  *Codec

	indexes  domain.CollectionIndex
	executor domain.Executor

	inMemoryOnly  bool
	onRecordError RecordErrorPolicy

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// New creates the persistence for one store. indexes is the collection's
// index engine; it is reset and queried during loads and snapshotted
// during compaction.
func New(conn *Connector, database, store string, indexes domain.CollectionIndex, opts ...Option) *Persistence {
	p := &Persistence{
		database:      database,
		store:         store,
		conn:          conn,
		codec:         NewCodec(false),
		indexes:       indexes,
		onRecordError: RecordErrorContinue,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.runner = NewTxnRunner(conn, database, store)
	return p
}

// InMemoryOnly reports whether this persistence skips all durable I/O.
func (p *Persistence) InMemoryOnly() bool {
	return p.inMemoryOnly
}
