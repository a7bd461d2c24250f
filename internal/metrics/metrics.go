// Package metrics exposes Prometheus collectors for the sync service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	syncCyclesTotal     prometheus.Counter
	syncCycleDuration   prometheus.Histogram
	snapshotItems       prometheus.Gauge
	candidatesTotal     *prometheus.CounterVec
	summariesTotal      *prometheus.CounterVec
	fetchFailuresTotal  *prometheus.CounterVec
	archiveExportsTotal prometheus.Counter
	archiveSkippedTotal prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus collectors. Safe to call multiple times.
func Init() {
	once.Do(func() {
		syncCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "intelgrid_sync_cycles_total",
			Help: "Total number of completed sync cycles.",
		})
		syncCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "intelgrid_sync_cycle_duration_seconds",
			Help:    "Wall-clock duration of a full sync cycle.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		})
		snapshotItems = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "intelgrid_snapshot_items",
			Help: "Item count of the currently published snapshot.",
		})
		candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intelgrid_candidates_total",
			Help: "Headline candidates discovered, labeled by outlet and path.",
		}, []string{"outlet", "path"})
		summariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intelgrid_summaries_total",
			Help: "Summarization attempts, labeled by outcome.",
		}, []string{"outcome"})
		fetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intelgrid_fetch_failures_total",
			Help: "Outbound fetch failures, labeled by kind.",
		}, []string{"kind"})
		archiveExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "intelgrid_archive_exports_total",
			Help: "Dossier files written by the archive scheduler.",
		})
		archiveSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "intelgrid_archive_skipped_total",
			Help: "Archive ticks skipped because the snapshot was empty.",
		})
	})
}

// ObserveCycle records one completed sync cycle.
func ObserveCycle(d time.Duration, items int) {
	if syncCyclesTotal == nil {
		return
	}
	syncCyclesTotal.Inc()
	syncCycleDuration.Observe(d.Seconds())
	snapshotItems.Set(float64(items))
}

// AddCandidates counts discovered candidates for one outlet section.
func AddCandidates(outlet, path string, n int) {
	if candidatesTotal == nil || n == 0 {
		return
	}
	candidatesTotal.WithLabelValues(outlet, path).Add(float64(n))
}

// CountSummary records one summarization attempt outcome
// ("ok", "unready", "thin", "interrupted").
func CountSummary(outcome string) {
	if summariesTotal == nil {
		return
	}
	summariesTotal.WithLabelValues(outcome).Inc()
}

// CountFetchFailure records an outbound fetch failure by kind
// ("section", "article", "api", "feed").
func CountFetchFailure(kind string) {
	if fetchFailuresTotal == nil {
		return
	}
	fetchFailuresTotal.WithLabelValues(kind).Inc()
}

// CountArchive records an archive tick: exported when a file was written,
// skipped when the snapshot was empty.
func CountArchive(exported bool) {
	if archiveExportsTotal == nil {
		return
	}
	if exported {
		archiveExportsTotal.Inc()
	} else {
		archiveSkippedTotal.Inc()
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
