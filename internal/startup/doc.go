// Package startup handles application initialization, configuration loading,
// and startup logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - DATABASE_DIR: Path to the catalog database directory (default: ./data)
//   - CACHE_DIR: Path to the cache directory for thumbnails (default: ./cache)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: false)
//   - BATCH_SIZE: Photos committed per scan batch (0 = library default)
//   - SCAN_WORKERS: Parallel metadata extraction workers (0 = per-CPU default)
//   - THUMB_CONCURRENCY: Concurrent thumbnail generations (0 = library default)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// # Directory Setup
//
// The package validates and creates required directories:
//   - Database directory: Required, must be writable
//   - Thumbnail cache directory: Optional, enables thumbnails if writable
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	// Initialize components...
//	startup.LogCatalogInit(config.DatabasePath, time.Since(openStart))
//	startup.LogPipelineInit(config.BatchSize, config.ScanWorkers)
package startup
