package persist

import (
	"time"

	"github.com/docbolt/docbolt/pkg/domain"
)

// LoadDatabase rebuilds the in-memory collection from durable storage at
// startup. The in-memory indexes are reset to empty synchronously before
// anything else, so operations queued while the load is pending observe a
// known state; if the load fails, the indexes stay empty and the caller
// must treat the collection as unusable.
//
// On success the index engine's ResetIndexes is called exactly once with
// every durable record, and then the executor's buffered operations are
// released.
func (p *Persistence) LoadDatabase() error {
	p.indexes.ResetIndexes(nil)

	if p.inMemoryOnly {
		p.releaseBuffer()
		return nil
	}

	start := time.Now()

	// A write transaction even though this is a read pass, to leave room
	// for bookkeeping writes during load.
	txn, err := p.runner.Begin(true)
	if err != nil {
		return err
	}

	var records []domain.Document
	corrupt := 0
	cursor := txn.Bucket().Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		doc, err := p.codec.Decode(v)
		if err != nil {
			corrupt++
			p.logger.Warn().Err(err).Str("store", p.store).Str("key", string(k)).
				Msg("skipping undecodable record")
			continue
		}
		records = append(records, doc)
	}

	if err := txn.Commit(); err != nil {
		return err
	}

	p.indexes.ResetIndexes(records)
	p.releaseBuffer()

	if p.metrics != nil {
		p.metrics.LoadDurationSeconds.Observe(time.Since(start).Seconds())
		p.metrics.DocumentsLoadedTotal.Add(float64(len(records)))
	}
	p.logger.Info().Str("store", p.store).Int("documents", len(records)).
		Int("corrupt_skipped", corrupt).Dur("elapsed", time.Since(start)).Msg("database loaded")
	return nil
}

func (p *Persistence) releaseBuffer() {
	if p.executor != nil {
		p.executor.ProcessBuffer()
	}
}
