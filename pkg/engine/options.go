package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/docbolt/docbolt/pkg/metrics"
	"github.com/docbolt/docbolt/pkg/persist"
)

type EngineOption func(*Engine)

func WithDataDir(dir string) EngineOption {
	return func(engine *Engine) {
		engine.dataDir = dir
	}
}

// WithDatabase sets the database name; all collections live as stores
// inside one database file.
func WithDatabase(name string) EngineOption {
	return func(engine *Engine) {
		engine.database = name
	}
}

// WithInMemoryOnly disables durability entirely; data lives and dies with
// the process.
func WithInMemoryOnly() EngineOption {
	return func(engine *Engine) {
		engine.inMemoryOnly = true
	}
}

// WithCompression stores record values lz4-compressed.
func WithCompression(enabled bool) EngineOption {
	return func(engine *Engine) {
		engine.compression = enabled
	}
}

// WithBackgroundCompaction compacts every collection on the given
// interval once background workers are started.
func WithBackgroundCompaction(interval time.Duration) EngineOption {
	return func(engine *Engine) {
		engine.compactInterval = interval
	}
}

// WithRecordErrorPolicy sets how delta persistence reacts to a failed
// record (default: log and continue).
func WithRecordErrorPolicy(policy persist.RecordErrorPolicy) EngineOption {
	return func(engine *Engine) {
		engine.recordErrors = policy
	}
}

func WithLogger(logger zerolog.Logger) EngineOption {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

// WithMetricsRegistry registers the engine's metrics against the given
// registerer instead of a private one.
func WithMetricsRegistry(reg prometheus.Registerer) EngineOption {
	return func(engine *Engine) {
		engine.metrics = metrics.New(reg)
	}
}
