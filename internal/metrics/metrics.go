// Package metrics exposes Prometheus collectors for the cache and edit lifecycle.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Recorder owns a private registry and the collectors registered on it.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	cacheLookups  *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	commits       *prometheus.CounterVec
	activeEdits   prometheus.Gauge
}

// New creates a recorder with all collectors registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fridge_cache_lookups_total",
			Help: "Cache lookups by resource and result",
		},
		[]string{"resource", "result"},
	)

	invalidations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fridge_cache_invalidations_total",
			Help: "Resources marked stale",
		},
		[]string{"resource"},
	)

	fetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fridge_fetch_duration_seconds",
			Help:    "Time taken to fetch or recompute a resource",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"resource"},
	)

	commits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fridge_edit_commits_total",
			Help: "Quantity edit commits by outcome",
		},
		[]string{"outcome"},
	)

	activeEdits := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fridge_edit_session_active",
			Help: "1 while an inline quantity edit is open",
		},
	)

	registry.MustRegister(cacheLookups, invalidations, fetchDuration, commits, activeEdits)

	return &Recorder{
		registry:      registry,
		cacheLookups:  cacheLookups,
		invalidations: invalidations,
		fetchDuration: fetchDuration,
		commits:       commits,
		activeEdits:   activeEdits,
	}
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the current values in the Prometheus text format to
// path, for node_exporter's textfile collector or a plain look. A nil
// recorder writes nothing.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// CacheLookup counts a cache hit or miss for a resource.
func (r *Recorder) CacheLookup(resource string, hit bool) {
	if r == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	r.cacheLookups.WithLabelValues(resource, result).Inc()
}

// Invalidated counts a resource being marked stale.
func (r *Recorder) Invalidated(resource string) {
	if r == nil {
		return
	}
	r.invalidations.WithLabelValues(resource).Inc()
}

// ObserveFetch records how long a fetch or recomputation took.
func (r *Recorder) ObserveFetch(resource string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// Commit counts a finished commit by outcome.
func (r *Recorder) Commit(outcome string) {
	if r == nil {
		return
	}
	r.commits.WithLabelValues(outcome).Inc()
}

// SetEditActive flips the active edit gauge.
func (r *Recorder) SetEditActive(active bool) {
	if r == nil {
		return
	}
	if active {
		r.activeEdits.Set(1)
	} else {
		r.activeEdits.Set(0)
	}
}
