package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"photo-catalog/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	DatabaseDir string
	CacheDir    string
	MetricsPort string

	BatchSize        int
	ScanWorkers      int
	ThumbConcurrency int

	MetricsEnabled bool

	// Derived paths
	DatabasePath string
	ThumbnailDir string

	// Feature flag based on directory availability
	ThumbnailsEnabled bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	databaseDir := getEnv("DATABASE_DIR", "./data")
	cacheDir := getEnv("CACHE_DIR", "./cache")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", false)
	batchSize := getEnvInt("BATCH_SIZE", 0)
	scanWorkers := getEnvInt("SCAN_WORKERS", 0)
	thumbConcurrency := getEnvInt("THUMB_CONCURRENCY", 0)

	logging.Info("  DATABASE_DIR:      %s", databaseDir)
	logging.Info("  CACHE_DIR:         %s", cacheDir)
	logging.Info("  METRICS_PORT:      %s", metricsPort)
	logging.Info("  METRICS_ENABLED:   %v", metricsEnabled)
	logging.Info("  BATCH_SIZE:        %s", defaultString(batchSize))
	logging.Info("  SCAN_WORKERS:      %s", defaultString(scanWorkers))
	logging.Info("  THUMB_CONCURRENCY: %s", defaultString(thumbConcurrency))
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())

	// Resolve paths
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	databaseDir, err := filepath.Abs(databaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	logging.Info("  Database directory (absolute): %s", databaseDir)

	cacheDir, err = filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Cache directory (absolute): %s", cacheDir)

	config := &Config{
		DatabaseDir:      databaseDir,
		CacheDir:         cacheDir,
		MetricsPort:      metricsPort,
		MetricsEnabled:   metricsEnabled,
		BatchSize:        batchSize,
		ScanWorkers:      scanWorkers,
		ThumbConcurrency: thumbConcurrency,
		DatabasePath:     filepath.Join(databaseDir, "catalog.db"),
		ThumbnailDir:     filepath.Join(cacheDir, "thumbnails"),
	}

	// Ensure base database directory exists (required for the catalog)
	if err := ensureDirectory(databaseDir, "database"); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}

	// Test write access for the catalog (required)
	logging.Debug("  Testing database directory write access...")
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable (required for catalog): %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	// Setup thumbnail directory (optional)
	config.ThumbnailsEnabled = setupOptionalDir(config.ThumbnailDir, "thumbnails")

	// Summary
	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Catalog:     ENABLED (required)")
	logging.Info("    Thumbnails:  %s", enabledString(config.ThumbnailsEnabled))
	logging.Info("    Metrics:     %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func setupOptionalDir(path, name string) bool {
	logging.Debug("  Setting up %s directory: %s", name, path)

	if err := os.MkdirAll(path, 0o755); err != nil {
		logging.Warn("    Failed to create %s directory: %v", name, err)
		logging.Warn("    %s will be disabled", name)
		return false
	}

	testFile := filepath.Join(path, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		logging.Warn("    %s directory is not writable: %v", name, err)
		logging.Warn("    %s will be disabled", name)
		return false
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("    failed to remove test file %s: %v", testFile, err)
		// Still return true since write succeeded
	}

	logging.Debug("    [OK] %s directory ready", name)
	return true
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

func defaultString(value int) string {
	if value <= 0 {
		return "(default)"
	}
	return strconv.Itoa(value)
}

// LogCatalogInit logs catalog initialization
func LogCatalogInit(path string, duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("CATALOG INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Catalog %s opened in %v", path, duration)
}

// LogPipelineInit logs scan pipeline initialization
func LogPipelineInit(batchSize, workers int) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("PIPELINE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Batch size:   %s", defaultString(batchSize))
	logging.Info("  Scan workers: %s", defaultString(workers))
}

// LogMetricsStarted logs the metrics endpoint address
func LogMetricsStarted(port string) {
	logging.Info("  Metrics:      http://localhost:%s/metrics", port)
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____  __          __           ______      __        __
   / __ \/ /_  ____  / /_____     / ____/___ _/ /_____ _/ /___  ____ _
  / /_/ / __ \/ __ \/ __/ __ \   / /   / __ '/ __/ __ '/ / __ \/ __ '/
 / ____/ / / / /_/ / /_/ /_/ /  / /___/ /_/ / /_/ /_/ / / /_/ / /_/ /
/_/   /_/ /_/\____/\__/\____/   \____/\__,_/\__/\__,_/_/\____/\__, /
                                                             /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Don't return error since write access was confirmed
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
