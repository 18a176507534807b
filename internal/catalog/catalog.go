package catalog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"photo-catalog/internal/logging"
	"photo-catalog/internal/metrics"
)

// timeLayout is the ISO-8601 UTC second-precision format stored in all
// timestamp columns.
const timeLayout = "2006-01-02T15:04:05Z"

// Store owns the persistent photo catalog: libraries, photos, tags, and
// albums. All reads and writes are serialized behind a single connection
// handle; the workload is write-batch-then-read-heavy, so the lost
// parallelism is an acceptable trade for simplicity.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// Open opens (creating if necessary) the catalog database at path and
// applies the schema and any pending additive migrations. Migrations only
// ever add columns; existing data is never rebuilt or dropped.
func Open(path string) (*Store, error) {
	// foreign_keys=on makes the declared ON DELETE CASCADE rules remove
	// photo_tags/album_photos rows with their owning photo, tag, or album.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	// Single serialized handle.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close catalog after init failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	logging.Info("Catalog opened at %s", path)
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS library (
		id INTEGER PRIMARY KEY,
		root_path TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		library_id INTEGER NOT NULL,
		path TEXT NOT NULL,
		filename TEXT NOT NULL,
		folder_rel TEXT NOT NULL,
		taken_at TEXT,
		modified_at TEXT NOT NULL,
		media_type TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		width INTEGER,
		height INTEGER,
		is_favorite INTEGER NOT NULL DEFAULT 0,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		deleted_at TEXT,
		camera_make TEXT,
		camera_model TEXT,
		lens TEXT,
		iso INTEGER,
		shutter_speed TEXT,
		aperture TEXT,
		focal_length TEXT,
		gps_lat REAL,
		gps_lon REAL,
		UNIQUE(library_id, path),
		FOREIGN KEY (library_id) REFERENCES library(id)
	);

	CREATE INDEX IF NOT EXISTS idx_photos_library_taken ON photos(library_id, taken_at);
	CREATE INDEX IF NOT EXISTS idx_photos_library_folder ON photos(library_id, folder_rel);
	CREATE INDEX IF NOT EXISTS idx_photos_library_type ON photos(library_id, media_type);
	CREATE INDEX IF NOT EXISTS idx_photos_path_search ON photos(path, filename);

	CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL DEFAULT '#0071e3'
	);

	CREATE TABLE IF NOT EXISTS photo_tags (
		photo_id INTEGER NOT NULL,
		tag_id INTEGER NOT NULL,
		PRIMARY KEY (photo_id, tag_id),
		FOREIGN KEY (photo_id) REFERENCES photos(id) ON DELETE CASCADE,
		FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS albums (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS album_photos (
		album_id INTEGER NOT NULL,
		photo_id INTEGER NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (album_id, photo_id),
		FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE CASCADE,
		FOREIGN KEY (photo_id) REFERENCES photos(id) ON DELETE CASCADE
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return s.runMigrations()
}

// runMigrations adds columns introduced after the first schema version.
// Each migration is a pure "add column if missing"; re-running on every
// open is idempotent and never destructive.
func (s *Store) runMigrations() error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('photos')`)
	if err != nil {
		return fmt.Errorf("failed to read photos columns: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	migrations := []struct {
		column string
		stmt   string
	}{
		{"is_favorite", "ALTER TABLE photos ADD COLUMN is_favorite INTEGER NOT NULL DEFAULT 0"},
		{"is_deleted", "ALTER TABLE photos ADD COLUMN is_deleted INTEGER NOT NULL DEFAULT 0"},
		{"deleted_at", "ALTER TABLE photos ADD COLUMN deleted_at TEXT"},
		{"camera_make", "ALTER TABLE photos ADD COLUMN camera_make TEXT"},
		{"camera_model", "ALTER TABLE photos ADD COLUMN camera_model TEXT"},
		{"lens", "ALTER TABLE photos ADD COLUMN lens TEXT"},
		{"iso", "ALTER TABLE photos ADD COLUMN iso INTEGER"},
		{"shutter_speed", "ALTER TABLE photos ADD COLUMN shutter_speed TEXT"},
		{"aperture", "ALTER TABLE photos ADD COLUMN aperture TEXT"},
		{"focal_length", "ALTER TABLE photos ADD COLUMN focal_length TEXT"},
		{"gps_lat", "ALTER TABLE photos ADD COLUMN gps_lat REAL"},
		{"gps_lon", "ALTER TABLE photos ADD COLUMN gps_lon REAL"},
	}

	for _, m := range migrations {
		if existing[m.column] {
			continue
		}
		if _, err := s.db.Exec(m.stmt); err != nil {
			return fmt.Errorf("failed to add column %s: %w", m.column, err)
		}
		logging.Info("Catalog migration: added column %s", m.column)
	}

	return nil
}

// nowUTC returns the current time in the catalog's timestamp format.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

// recordQuery records catalog query metrics.
func recordQuery(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.CatalogQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.CatalogQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
