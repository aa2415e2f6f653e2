package persist

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

const (
	// metaBucket tracks database-level bookkeeping, most importantly the
	// schema version, which increments each time a missing store is created.
	metaBucket       = "__meta__"
	schemaVersionKey = "schema_version"

	// ensureStoreAttempts bounds the create-and-recheck loop so a
	// misbehaving engine cannot send us into unbounded retries.
	ensureStoreAttempts = 3
)

// Connector owns the process-wide database handles. A handle is opened
// lazily on first access, identified by database name, and reused for
// every store inside that database until Close.
type Connector struct {
	dataDir string
	logger  zerolog.Logger

	mu      sync.Mutex
	handles map[string]*bolt.DB
}

// NewConnector creates a connector that places one bbolt file per
// database name under dataDir.
func NewConnector(dataDir string, logger zerolog.Logger) *Connector {
	return &Connector{
		dataDir: dataDir,
		logger:  logger,
		handles: make(map[string]*bolt.DB),
	}
}

// DatabasePath returns the file backing the named database.
func (c *Connector) DatabasePath(database string) string {
	return filepath.Join(c.dataDir, database+".db")
}

// open returns the handle for the named database, opening it on first use.
func (c *Connector) open(database string) (*bolt.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.handles[database]; ok {
		return db, nil
	}

	if err := os.MkdirAll(c.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bolt.Open(c.DatabasePath(database), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating meta bucket: %w", err)
	}

	c.handles[database] = db
	c.logger.Debug().Str("database", database).Str("path", c.DatabasePath(database)).Msg("opened database")
	return db, nil
}

// EnsureStore guarantees the named store exists inside the database and
// hands back the open handle. When the store is missing it runs a single
// schema-upgrade transaction that creates the bucket and bumps the schema
// version, then rechecks. Idempotent; safe to call repeatedly.
func (c *Connector) EnsureStore(database, store string) (*bolt.DB, error) {
	db, err := c.open(database)
	if err != nil {
		return nil, &ConnectionError{Database: database, Store: store, Err: err}
	}

	for attempt := 0; attempt < ensureStoreAttempts; attempt++ {
		var exists bool
		if err := db.View(func(tx *bolt.Tx) error {
			exists = tx.Bucket([]byte(store)) != nil
			return nil
		}); err != nil {
			return nil, &ConnectionError{Database: database, Store: store, Err: err}
		}
		if exists {
			return db, nil
		}

		err := db.Update(func(tx *bolt.Tx) error {
			if tx.Bucket([]byte(store)) != nil {
				return nil
			}
			if _, err := tx.CreateBucket([]byte(store)); err != nil {
				return err
			}
			version, err := bumpSchemaVersion(tx)
			if err != nil {
				return err
			}
			c.logger.Info().Str("database", database).Str("store", store).
				Uint64("schema_version", version).Msg("created store, upgraded schema")
			return nil
		})
		if err != nil {
			return nil, &ConnectionError{Database: database, Store: store, Err: err}
		}
	}

	return nil, &ConnectionError{
		Database: database,
		Store:    store,
		Err:      fmt.Errorf("store still missing after %d upgrade attempts", ensureStoreAttempts),
	}
}

// SchemaVersion reports the database's current schema version. A fresh
// database starts at 0 and gains 1 per store created.
func (c *Connector) SchemaVersion(database string) (uint64, error) {
	db, err := c.open(database)
	if err != nil {
		return 0, &ConnectionError{Database: database, Err: err}
	}

	var version uint64
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(metaBucket))
		if meta == nil {
			return nil
		}
		if raw := meta.Get([]byte(schemaVersionKey)); len(raw) == 8 {
			version = binary.BigEndian.Uint64(raw)
		}
		return nil
	})
	if err != nil {
		return 0, &ConnectionError{Database: database, Err: err}
	}
	return version, nil
}

// Close closes every open database handle.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for name, db := range c.handles {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing database %s: %w", name, err)
		}
		delete(c.handles, name)
	}
	return firstErr
}

func bumpSchemaVersion(tx *bolt.Tx) (uint64, error) {
	meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
	if err != nil {
		return 0, err
	}
	var version uint64
	if raw := meta.Get([]byte(schemaVersionKey)); len(raw) == 8 {
		version = binary.BigEndian.Uint64(raw)
	}
	version++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, version)
	return version, meta.Put([]byte(schemaVersionKey), buf)
}
