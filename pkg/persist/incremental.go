package persist

import (
	"fmt"

	"github.com/docbolt/docbolt/pkg/domain"
)

// PersistNewState applies a delta of inserted, updated, and deleted
// documents to the durable store inside one transaction, leaving
// unrelated keys untouched. Documents are processed in their original
// order: tombstones delete their key, index markers are skipped (they
// have no durable effect), everything else is upserted.
//
// Per-record failures follow the configured RecordErrorPolicy; the
// default logs the record and keeps going, so the rest of the batch
// still commits.
func (p *Persistence) PersistNewState(docs []domain.Document) error {
	if p.inMemoryOnly {
		return nil
	}

	txn, err := p.runner.Begin(true)
	if err != nil {
		return err
	}

	bucket := txn.Bucket()

	for _, doc := range docs {
		if doc.IsIndexMarker() {
			continue
		}

		id := doc.ID()
		if id == "" {
			recErr := &WriteError{Key: id, Err: fmt.Errorf("document has no %s field", domain.IDField)}
			if abort := p.handleRecordError(txn, "put", recErr); abort {
				return recErr
			}
			continue
		}

		if doc.IsTombstone() {
			if err := bucket.Delete([]byte(id)); err != nil {
				recErr := &DeleteError{Key: id, Err: err}
				if abort := p.handleRecordError(txn, "delete", recErr); abort {
					return recErr
				}
				continue
			}
			p.countOp("delete", "ok")
			continue
		}

		record, err := p.codec.Encode(doc)
		if err == nil {
			err = bucket.Put([]byte(id), record)
		}
		if err != nil {
			recErr := &WriteError{Key: id, Err: err}
			if abort := p.handleRecordError(txn, "put", recErr); abort {
				return recErr
			}
			continue
		}
		p.countOp("put", "ok")
	}

	if err := txn.Commit(); err != nil {
		return err
	}

	if p.metrics != nil {
		p.metrics.PersistBatches.Inc()
	}
	return nil
}

// handleRecordError applies the record error policy. It reports whether
// the batch must abort; in that case the transaction has been rolled back.
func (p *Persistence) handleRecordError(txn *Txn, op string, err error) bool {
	p.countOp(op, "error")
	if p.onRecordError == RecordErrorAbort {
		txn.Rollback()
		return true
	}
	p.logger.Warn().Err(err).Str("store", p.store).Msg("record persist failed, continuing batch")
	return false
}

func (p *Persistence) countOp(op, status string) {
	if p.metrics != nil {
		p.metrics.PersistOpsTotal.WithLabelValues(op, status).Inc()
	}
}
