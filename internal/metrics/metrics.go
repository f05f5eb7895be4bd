package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	poisImported       prometheus.Counter
	poisSkipped        prometheus.Counter
	importAttempts     *prometheus.CounterVec
	wingsGenerated     *prometheus.CounterVec
	tipCapFailures     prometheus.Counter
	generationDuration prometheus.Histogram
	downloadLatency    prometheus.Histogram
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
}

// NewMetrics creates and registers all service metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		poisImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pois_imported_total",
			Help: "Total number of points of interest imported",
		}),
		poisSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pois_skipped_total",
			Help: "Total number of malformed CSV rows skipped during import",
		}),
		importAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poi_import_attempts_total",
				Help: "CSV fetch attempts by outcome",
			},
			[]string{"outcome"},
		),
		wingsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wings_generated_total",
				Help: "Total number of wing solids generated by export format",
			},
			[]string{"format"},
		),
		tipCapFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wing_tip_cap_failures_total",
			Help: "Tip cap fusions that failed and were skipped",
		}),
		generationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wing_generation_duration_ms",
			Help:    "Wing generation and export duration in milliseconds",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		downloadLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "artifact_download_latency_ms",
			Help:    "Latency of artifact downloads in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "artifact_cache_hits_total",
			Help: "Artifact downloads served from the in-memory cache",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "artifact_cache_misses_total",
			Help: "Artifact downloads that fell through to object storage",
		}),
	}
}

// AddImported adds to the imported POI counter.
func (m *Metrics) AddImported(n int) {
	m.poisImported.Add(float64(n))
}

// AddSkipped adds to the skipped-row counter.
func (m *Metrics) AddSkipped(n int) {
	m.poisSkipped.Add(float64(n))
}

// RecordImportAttempt counts one CSV fetch attempt by outcome.
func (m *Metrics) RecordImportAttempt(outcome string) {
	m.importAttempts.WithLabelValues(outcome).Inc()
}

// RecordGeneration counts one generated wing and its build duration.
func (m *Metrics) RecordGeneration(format string, milliseconds int64) {
	m.wingsGenerated.WithLabelValues(format).Inc()
	m.generationDuration.Observe(float64(milliseconds))
}

// RecordTipCapFailure counts a skipped tip cap fusion.
func (m *Metrics) RecordTipCapFailure() {
	m.tipCapFailures.Inc()
}

// RecordDownloadLatency records the latency of an artifact download.
func (m *Metrics) RecordDownloadLatency(milliseconds int64) {
	m.downloadLatency.Observe(float64(milliseconds))
}

// RecordCacheHit counts a download served from cache.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Inc()
}

// RecordCacheMiss counts a download that went to object storage.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Inc()
}
