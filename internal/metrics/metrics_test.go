package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"epi-ca/internal/sims/epidemic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	require.NotNil(t, c)
	assert.NotNil(t, c.ticks)
	assert.NotNil(t, c.cells)
	assert.NotNil(t, c.transitions)
	assert.NotNil(t, c.stepDuration)
}

func TestCollectorsDoNotShareRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector()
		NewCollector()
	}, "each collector owns its registry")
}

func TestObserveInitialState(t *testing.T) {
	c := NewCollector()
	c.Observe(0, nil, epidemic.Statistics{Healthy: 8, Sick: 1}, 0)

	assert.Equal(t, 8.0, testutil.ToFloat64(c.cells.WithLabelValues("healthy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cells.WithLabelValues("sick")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.ticks), "tick 0 is not a step")
}

func TestObserveTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectorWith(reg)

	changes := epidemic.ChangeSet{
		{Row: 0, Col: 0, State: epidemic.Sick},
		{Row: 0, Col: 1, State: epidemic.Sick},
		{Row: 1, Col: 1, State: epidemic.Immune},
	}
	c.Observe(1, changes, epidemic.Statistics{Healthy: 6, Sick: 2, Immune: 1}, 3*time.Millisecond)
	c.Observe(2, epidemic.ChangeSet{{Row: 2, Col: 2, State: epidemic.Dead}}, epidemic.Statistics{Healthy: 6, Sick: 1, Immune: 1, Dead: 1}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticks))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.transitions.WithLabelValues("sick")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("immune")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("dead")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.transitions.WithLabelValues("healthy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cells.WithLabelValues("dead")))

	count, err := testutil.GatherAndCount(reg, "epica_step_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.Observe(1, nil, epidemic.Statistics{Healthy: 4}, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "epica_ticks_total 1")
	assert.Contains(t, string(body), `epica_cells{state="healthy"} 4`)
	assert.Contains(t, string(body), "epica_step_duration_seconds_bucket")
}
