// Package metrics holds the classification domain's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts classification outcomes and cache effectiveness. All
// methods are nil-safe so tests can run without a registry.
type Metrics struct {
	ClassificationsTotal *prometheus.CounterVec
	BatchSize            prometheus.Histogram
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
}

// New creates and registers all classification metrics.
func New() *Metrics {
	return &Metrics{
		ClassificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pidkit_classifications_total",
			Help: "Total classifications performed, by detected scheme",
		}, []string{"scheme"}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pidkit_classify_batch_size",
			Help:    "Number of values per batch classification request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pidkit_classify_cache_hits_total",
			Help: "Classification results served from the cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pidkit_classify_cache_misses_total",
			Help: "Classification requests not found in the cache",
		}),
	}
}

func (m *Metrics) ObserveClassification(scheme string) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(scheme).Inc()
}

func (m *Metrics) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}

func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
