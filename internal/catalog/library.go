package catalog

import (
	"fmt"
	"time"

	"photo-catalog/internal/logging"
)

// GetOrCreateLibrary returns the id of the library rooted at rootPath,
// creating it on first use. Re-registering an existing root refreshes its
// created_at stamp and keeps the same id.
func (s *Store) GetOrCreateLibrary(rootPath string) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_or_create_library", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO library (root_path, created_at) VALUES (?, ?)
		ON CONFLICT(root_path) DO UPDATE SET created_at = excluded.created_at`,
		rootPath, nowUTC())
	if err != nil {
		return 0, fmt.Errorf("failed to register library %s: %w", rootPath, err)
	}

	var id int64
	err = s.db.QueryRow("SELECT id FROM library WHERE root_path = ?", rootPath).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up library %s: %w", rootPath, err)
	}
	return id, nil
}

// Libraries returns all registered libraries with display names derived
// from their root leaf directory and counts of non-deleted photos.
func (s *Store) Libraries() ([]Library, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("libraries", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT l.id, l.root_path,
		       (SELECT COUNT(*) FROM photos p WHERE p.library_id = l.id AND p.is_deleted = 0)
		FROM library l ORDER BY l.id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Error("error closing rows: %v", closeErr)
		}
	}()

	var libs []Library
	for rows.Next() {
		var lib Library
		if err = rows.Scan(&lib.ID, &lib.RootPath, &lib.PhotoCount); err != nil {
			return nil, err
		}
		lib.Name = sourceLabel(lib.RootPath)
		libs = append(libs, lib)
	}
	err = rows.Err()
	return libs, err
}

// CountPhotos returns the number of photo rows for a library, deleted or
// not.
func (s *Store) CountPhotos(libraryID int64) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err = s.db.QueryRow("SELECT COUNT(*) FROM photos WHERE library_id = ?", libraryID).Scan(&n)
	return n, err
}

// ClearLibraryPhotos removes every photo row for a library, ahead of a
// full re-index. Tag and album links go with them via cascade.
func (s *Store) ClearLibraryPhotos(libraryID int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("clear_library_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("DELETE FROM photos WHERE library_id = ?", libraryID)
	return err
}

// RemoveLibrary deletes a library and all of its photos. Only catalog rows
// are touched; files on disk are left alone.
func (s *Store) RemoveLibrary(libraryID int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("remove_library", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM photos WHERE library_id = ?", libraryID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err = tx.Exec("DELETE FROM library WHERE id = ?", libraryID); err != nil {
		tx.Rollback()
		return err
	}
	err = tx.Commit()
	return err
}
