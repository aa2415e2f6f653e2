package persist

import (
	"fmt"

	"github.com/docbolt/docbolt/pkg/domain"
)

// PersistCachedDatabase rewrites the durable store so it exactly matches
// the current in-memory snapshot. The durable mirror accumulates
// superseded record versions over time; after a successful run the
// durable key set equals the in-memory identifier set, no extra and no
// missing keys, which also makes back-to-back runs idempotent.
func (p *Persistence) PersistCachedDatabase() error {
	if p.inMemoryOnly {
		return nil
	}

	// Snapshot before opening the transaction so a slow compaction never
	// observes documents mutated mid-run.
	snapshot := p.indexes.GetAllData()

	txn, err := p.runner.Begin(true)
	if err != nil {
		p.countCompaction("error")
		return err
	}

	bucket := txn.Bucket()

	// Full forward scan first: every key currently durable is a deletion
	// candidate until the upsert pass writes it.
	keysToDelete := make(map[string]struct{})
	cursor := bucket.Cursor()
	for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
		keysToDelete[string(k)] = struct{}{}
	}

	// Sequential upserts: one in-flight operation, preserving write order
	// within the transaction.
	for _, doc := range snapshot {
		if doc.IsIndexMarker() {
			continue
		}
		id := doc.ID()
		if id == "" {
			txn.Rollback()
			p.countCompaction("error")
			return &WriteError{Key: id, Err: fmt.Errorf("document has no %s field", domain.IDField)}
		}

		record, err := p.codec.Encode(doc)
		if err != nil {
			txn.Rollback()
			p.countCompaction("error")
			return &WriteError{Key: id, Err: err}
		}
		if err := bucket.Put([]byte(id), record); err != nil {
			txn.Rollback()
			p.countCompaction("error")
			return &WriteError{Key: id, Err: err}
		}
		delete(keysToDelete, id)
	}

	// Whatever survived the upsert pass exists durably but not in the
	// snapshot: stale keys, removed sequentially.
	for key := range keysToDelete {
		if err := bucket.Delete([]byte(key)); err != nil {
			txn.Rollback()
			p.countCompaction("error")
			return &DeleteError{Key: key, Err: err}
		}
	}

	if err := txn.Commit(); err != nil {
		p.countCompaction("error")
		return err
	}

	p.countCompaction("ok")
	if p.metrics != nil {
		p.metrics.CompactionDeletedKeys.Add(float64(len(keysToDelete)))
	}
	p.logger.Debug().Str("store", p.store).Int("documents", len(snapshot)).
		Int("stale_keys_removed", len(keysToDelete)).Msg("compaction complete")
	return nil
}

func (p *Persistence) countCompaction(status string) {
	if p.metrics != nil {
		p.metrics.CompactionRunsTotal.WithLabelValues(status).Inc()
	}
}
