// Package metrics provides Prometheus metrics for the docbolt durability layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics exported by docbolt.
type Metrics struct {
	// Delta persistence metrics
	PersistOpsTotal *prometheus.CounterVec // labels: op (put|delete), status (ok|error)
	PersistBatches  prometheus.Counter

	// Compaction metrics
	CompactionRunsTotal   *prometheus.CounterVec // label: status (ok|error)
	CompactionDeletedKeys prometheus.Counter

	// Load metrics
	LoadDurationSeconds  prometheus.Histogram
	DocumentsLoadedTotal prometheus.Counter
}

// New creates all metrics registered against the given registerer. Passing
// a fresh prometheus.NewRegistry() keeps tests independent.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PersistOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docbolt_persist_operations_total",
				Help: "Total number of per-record durable operations",
			},
			[]string{"op", "status"},
		),
		PersistBatches: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docbolt_persist_batches_total",
				Help: "Total number of delta batches persisted",
			},
		),
		CompactionRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docbolt_compaction_runs_total",
				Help: "Total number of compaction runs",
			},
			[]string{"status"},
		),
		CompactionDeletedKeys: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docbolt_compaction_deleted_keys_total",
				Help: "Total number of stale keys removed by compaction",
			},
		),
		LoadDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docbolt_load_duration_seconds",
				Help:    "Duration of database loads in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		DocumentsLoadedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docbolt_documents_loaded_total",
				Help: "Total number of documents read back during loads",
			},
		),
	}
}
