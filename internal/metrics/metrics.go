package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog store metrics
var (
	CatalogQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_catalog_queries_total",
			Help: "Total number of catalog store queries",
		},
		[]string{"operation", "status"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_catalog_query_duration_seconds",
			Help:    "Catalog store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

// Ingestion pipeline metrics
var (
	ScanRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_catalog_scan_runs_total",
			Help: "Total number of ingestion scans started",
		},
	)

	ScanFilesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_catalog_scan_files_processed_total",
			Help: "Total number of files processed by the ingestion pipeline",
		},
	)

	ScanWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_catalog_scan_write_errors_total",
			Help: "Total number of per-record persistence failures during scans",
		},
	)

	ScanLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_catalog_scan_last_run_duration_seconds",
			Help: "Duration of the last completed scan in seconds",
		},
	)
)

// Thumbnail cache metrics
var (
	ThumbnailsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_catalog_thumbnails_generated_total",
			Help: "Total number of thumbnails generated",
		},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_catalog_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail requests served from cache",
		},
	)

	ThumbnailsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_catalog_thumbnails_in_flight",
			Help: "Number of thumbnail generations currently running",
		},
	)
)
