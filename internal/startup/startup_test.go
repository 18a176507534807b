package startup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("DATABASE_DIR", filepath.Join(base, "data"))
	t.Setenv("CACHE_DIR", filepath.Join(base, "cache"))
	t.Setenv("METRICS_PORT", "9191")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("BATCH_SIZE", "50")
	t.Setenv("SCAN_WORKERS", "3")
	t.Setenv("THUMB_CONCURRENCY", "2")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.DatabasePath != filepath.Join(base, "data", "catalog.db") {
		t.Errorf("DatabasePath = %s", config.DatabasePath)
	}
	if config.ThumbnailDir != filepath.Join(base, "cache", "thumbnails") {
		t.Errorf("ThumbnailDir = %s", config.ThumbnailDir)
	}
	if config.MetricsPort != "9191" || !config.MetricsEnabled {
		t.Errorf("metrics config = %s / %v", config.MetricsPort, config.MetricsEnabled)
	}
	if config.BatchSize != 50 || config.ScanWorkers != 3 || config.ThumbConcurrency != 2 {
		t.Errorf("tuning config = %d / %d / %d", config.BatchSize, config.ScanWorkers, config.ThumbConcurrency)
	}

	// The required database directory must exist afterwards.
	info, err := os.Stat(config.DatabaseDir)
	if err != nil || !info.IsDir() {
		t.Errorf("database directory not created: %v", err)
	}
	if !config.ThumbnailsEnabled {
		t.Error("thumbnails should be enabled with a writable cache dir")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	base := t.TempDir()
	// Point the defaults somewhere writable instead of the working dir.
	t.Setenv("DATABASE_DIR", filepath.Join(base, "data"))
	t.Setenv("CACHE_DIR", filepath.Join(base, "cache"))
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("BATCH_SIZE", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.MetricsEnabled {
		t.Error("metrics default to disabled for a CLI run")
	}
	if config.MetricsPort != "9090" {
		t.Errorf("MetricsPort default = %s, want 9090", config.MetricsPort)
	}
	if config.BatchSize != 0 || config.ScanWorkers != 0 {
		t.Errorf("tuning defaults = %d / %d, want zero (library defaults)", config.BatchSize, config.ScanWorkers)
	}
}

func TestEnsureDirectory(t *testing.T) {
	base := t.TempDir()

	created := filepath.Join(base, "fresh")
	if err := ensureDirectory(created, "test"); err != nil {
		t.Errorf("ensureDirectory on missing path: %v", err)
	}
	info, err := os.Stat(created)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}

	// Existing directory is fine.
	if err := ensureDirectory(created, "test"); err != nil {
		t.Errorf("ensureDirectory on existing path: %v", err)
	}

	// A plain file in the way is an error.
	file := filepath.Join(base, "occupied")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ensureDirectory(file, "test"); err == nil {
		t.Error("ensureDirectory on a file: want error")
	}
}

func TestTestWriteAccess(t *testing.T) {
	dir := t.TempDir()
	if err := testWriteAccess(dir); err != nil {
		t.Errorf("testWriteAccess on temp dir: %v", err)
	}

	// The probe file must not be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("write probe left %d entries behind", len(entries))
	}
}

func TestSetupOptionalDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "thumbs")
	if !setupOptionalDir(dir, "thumbnails") {
		t.Error("setupOptionalDir on creatable path: want true")
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("optional directory not created: %v", err)
	}
}
