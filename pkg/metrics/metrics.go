package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exported by the service
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	Checkouts       *prometheus.CounterVec
	BackupRuns      *prometheus.CounterVec
	CacheOperations *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result.",
		}, []string{"result"}),
		BackupRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backup_runs_total",
			Help:      "Backup schedule runs by frequency and status.",
		}, []string{"frequency", "status"}),
		CacheOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_cache_operations_total",
			Help:      "Bill totals cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Checkouts, m.BackupRuns, m.CacheOperations)
	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncCheckout counts a checkout with result "completed", "outstanding" or "failed"
func (m *Metrics) IncCheckout(result string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
}

// IncBackupRun counts a triggered or failed backup run
func (m *Metrics) IncBackupRun(frequency, status string) {
	if m == nil {
		return
	}
	m.BackupRuns.WithLabelValues(frequency, status).Inc()
}

// IncCache counts a cache "hit", "miss" or "error"
func (m *Metrics) IncCache(result string) {
	if m == nil {
		return
	}
	m.CacheOperations.WithLabelValues(result).Inc()
}
