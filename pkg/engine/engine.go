// Package engine is the owning-collection layer: it holds the canonical
// in-memory document sets, drives the durability layer (load once at
// startup, a delta persist after every mutation, compaction on demand or
// on a timer), and exposes the storage interface the API serves.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/indexing"
	"github.com/docbolt/docbolt/pkg/metrics"
	"github.com/docbolt/docbolt/pkg/persist"
)

// collectionHandle binds one collection's index set, its persistence, and
// the executor that buffers operations while its load is pending.
type collectionHandle struct {
	name     string
	mu       sync.Mutex // serializes mutations, one write at a time
	indexes  *indexing.CollectionIndexes
	persist  *persist.Persistence
	executor *Executor
}

// Engine manages collections and their durability.
type Engine struct {
	mu          sync.RWMutex
	collections map[string]*collectionHandle

	conn        *persist.Connector
	indexEngine *indexing.IndexEngine
	metrics     *metrics.Metrics
	logger      zerolog.Logger

	// Configuration
	dataDir         string
	database        string
	inMemoryOnly    bool
	compression     bool
	recordErrors    persist.RecordErrorPolicy
	compactInterval time.Duration

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewEngine creates a new engine
func NewEngine(options ...EngineOption) *Engine {
	engine := &Engine{
		collections:  make(map[string]*collectionHandle),
		indexEngine:  indexing.NewIndexEngine(),
		logger:       zerolog.Nop(),
		dataDir:      ".",
		database:     "docbolt",
		recordErrors: persist.RecordErrorContinue,
		stopChan:     make(chan struct{}),
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	if engine.metrics == nil {
		engine.metrics = metrics.New(prometheus.NewRegistry())
	}
	engine.conn = persist.NewConnector(engine.dataDir, engine.logger)

	return engine
}

// collection returns the handle for a collection, creating and loading it
// on first access. The load resets the indexes, reads every durable
// record back, and releases any operations buffered meanwhile.
func (e *Engine) collection(collName string) (*collectionHandle, error) {
	if collName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	e.mu.RLock()
	h, exists := e.collections[collName]
	e.mu.RUnlock()
	if exists {
		return h, nil
	}

	e.mu.Lock()
	if h, exists := e.collections[collName]; exists {
		e.mu.Unlock()
		return h, nil
	}

	h = &collectionHandle{
		name:     collName,
		indexes:  e.indexEngine.Collection(collName),
		executor: NewExecutor(),
	}

	opts := []persist.Option{
		persist.WithCompression(e.compression),
		persist.WithRecordErrorPolicy(e.recordErrors),
		persist.WithExecutor(h.executor),
		persist.WithLogger(e.logger),
		persist.WithMetrics(e.metrics),
	}
	if e.inMemoryOnly {
		opts = append(opts, persist.WithInMemoryOnly())
	}
	h.persist = persist.New(e.conn, e.database, collName, h.indexes, opts...)

	e.collections[collName] = h
	e.mu.Unlock()

	if err := h.persist.LoadDatabase(); err != nil {
		loadErr := fmt.Errorf("failed to load collection %s: %w", collName, err)
		// A failed load leaves the collection unusable: fail anything
		// queued against it, then drop the handle so the next access
		// retries.
		h.executor.Fail(loadErr)
		e.mu.Lock()
		delete(e.collections, collName)
		e.mu.Unlock()
		return nil, loadErr
	}

	e.logger.Info().Str("collection", collName).Msg("collection loaded")
	return h, nil
}

// Compact rewrites a collection's durable store to exactly match its
// in-memory snapshot, dropping superseded record versions.
func (e *Engine) Compact(collName string) error {
	h, err := e.collection(collName)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.persist.PersistCachedDatabase()
}

// CompactAll compacts every known collection.
func (e *Engine) CompactAll() error {
	e.mu.RLock()
	names := make([]string, 0, len(e.collections))
	for name := range e.collections {
		names = append(names, name)
	}
	e.mu.RUnlock()

	var firstErr error
	for _, name := range names {
		if err := e.Compact(name); err != nil {
			e.logger.Error().Err(err).Str("collection", name).Msg("compaction failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close stops background workers and closes the database handles.
func (e *Engine) Close() error {
	e.StopBackgroundWorkers()
	return e.conn.Close()
}
