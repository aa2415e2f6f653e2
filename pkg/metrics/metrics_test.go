package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.PersistOpsTotal.WithLabelValues("put", "ok").Inc()
	m.PersistBatches.Inc()
	m.CompactionRunsTotal.WithLabelValues("ok").Inc()
	m.CompactionDeletedKeys.Add(3)
	m.DocumentsLoadedTotal.Add(2)
	m.LoadDurationSeconds.Observe(0.01)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistOpsTotal.WithLabelValues("put", "ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.CompactionDeletedKeys))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide, so every engine (and test) can own
	// its metrics.
	m1 := New(prometheus.NewRegistry())
	m2 := New(prometheus.NewRegistry())
	m1.PersistBatches.Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.PersistBatches))
}
