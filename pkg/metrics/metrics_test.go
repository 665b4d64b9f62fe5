package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("hotel", reg)

	m.ObserveRequest("GET", "/api/v1/folios/{folioId}/bill", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/folios/{folioId}/bill", 200, 30*time.Millisecond)
	m.IncCheckout("completed")
	m.IncBackupRun("daily", "triggered")
	m.IncCache("miss")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/folios/{folioId}/bill", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Checkouts.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BackupRuns.WithLabelValues("daily", "triggered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheOperations.WithLabelValues("miss")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
		m.IncCheckout("failed")
		m.IncBackupRun("weekly", "failed")
		m.IncCache("hit")
	})
}
