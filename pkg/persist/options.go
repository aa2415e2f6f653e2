package persist

import (
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/domain"
	"github.com/docbolt/docbolt/pkg/metrics"
)

type Option func(*Persistence)

// WithInMemoryOnly disables all durable I/O; every operation succeeds
// immediately without touching the store.
func WithInMemoryOnly() Option {
	return func(p *Persistence) {
		p.inMemoryOnly = true
	}
}

// WithCompression stores record values lz4-compressed above the size
// threshold.
func WithCompression(enabled bool) Option {
	return func(p *Persistence) {
		p.codec = NewCodec(enabled)
	}
}

// WithRecordErrorPolicy sets how PersistNewState reacts to a failed
// record (default: log and continue).
func WithRecordErrorPolicy(policy RecordErrorPolicy) Option {
	return func(p *Persistence) {
		p.onRecordError = policy
	}
}

// WithExecutor sets the executor whose buffered operations are released
// after a load completes.
func WithExecutor(executor domain.Executor) Option {
	return func(p *Persistence) {
		p.executor = executor
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Persistence) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Persistence) {
		p.metrics = m
	}
}
