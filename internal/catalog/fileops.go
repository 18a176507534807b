package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ToggleFavorite flips a photo's favorite flag and returns the new state.
func (s *Store) ToggleFavorite(photoID int64) (bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("toggle_favorite", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var current int
	err = s.db.QueryRow("SELECT is_favorite FROM photos WHERE id = ?", photoID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return false, err
	}
	if err != nil {
		return false, err
	}

	next := 0
	if current == 0 {
		next = 1
	}
	_, err = s.db.Exec("UPDATE photos SET is_favorite = ? WHERE id = ?", next, photoID)
	if err != nil {
		return false, err
	}
	return next != 0, nil
}

// FavoriteCount returns the number of non-deleted favorites in a library.
func (s *Store) FavoriteCount(libraryID int64) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("favorite_count", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM photos WHERE library_id = ? AND is_favorite = 1 AND is_deleted = 0",
		libraryID).Scan(&n)
	return n, err
}

// Favorites returns a library's non-deleted favorites under the standard
// photo ordering.
func (s *Store) Favorites(libraryID int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("favorites", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf(
		"SELECT %s FROM photos WHERE library_id = ? AND is_favorite = 1 AND is_deleted = 0 "+
			"ORDER BY COALESCE(taken_at, modified_at) DESC, path ASC", photoColumns)

	var photos []Photo
	photos, err = s.queryPhotosLocked(query, libraryID)
	return photos, err
}

// SoftDelete moves photos to the trash. Trashed photos disappear from
// listings, search, and albums but remain retrievable by id.
func (s *Store) SoftDelete(photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("soft_delete", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateDeletedLocked(photoIDs, 1, nowUTC())
	return err
}

// Restore brings trashed photos back, clearing both the flag and the
// deletion stamp.
func (s *Store) Restore(photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("restore", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateDeletedLocked(photoIDs, 0, nil)
	return err
}

func (s *Store) updateDeletedLocked(photoIDs []int64, flag int, stamp interface{}) error {
	if len(photoIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(photoIDs)), ", ")
	args := make([]interface{}, 0, len(photoIDs)+2)
	args = append(args, flag, stamp)
	for _, id := range photoIDs {
		args = append(args, id)
	}
	_, err := s.db.Exec(fmt.Sprintf(
		"UPDATE photos SET is_deleted = ?, deleted_at = ? WHERE id IN (%s)", placeholders),
		args...)
	return err
}

// Trash returns a library's trashed photos, most recently deleted first.
func (s *Store) Trash(libraryID int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("trash", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf(
		"SELECT %s FROM photos WHERE library_id = ? AND is_deleted = 1 "+
			"ORDER BY deleted_at DESC", photoColumns)

	var photos []Photo
	photos, err = s.queryPhotosLocked(query, libraryID)
	return photos, err
}

// TrashCount returns the number of trashed photos in a library.
func (s *Store) TrashCount(libraryID int64) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("trash_count", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM photos WHERE library_id = ? AND is_deleted = 1",
		libraryID).Scan(&n)
	return n, err
}

// HardDelete permanently removes photos and their tag and album links in
// one transaction, and returns the source file paths of the removed rows
// so the caller can dispose of the files. Files on disk are not touched
// here.
func (s *Store) HardDelete(photoIDs []int64) ([]string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("hard_delete", start, err) }()

	if len(photoIDs) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(photoIDs)), ", ")
	args := make([]interface{}, 0, len(photoIDs))
	for _, id := range photoIDs {
		args = append(args, id)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(fmt.Sprintf("SELECT path FROM photos WHERE id IN (%s)", placeholders), args...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	var paths []string
	for rows.Next() {
		var p string
		if err = rows.Scan(&p); err != nil {
			rows.Close()
			tx.Rollback()
			return nil, err
		}
		paths = append(paths, p)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return nil, err
	}
	rows.Close()

	for _, stmt := range []string{
		"DELETE FROM photo_tags WHERE photo_id IN (%s)",
		"DELETE FROM album_photos WHERE photo_id IN (%s)",
		"DELETE FROM photos WHERE id IN (%s)",
	} {
		if _, err = tx.Exec(fmt.Sprintf(stmt, placeholders), args...); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return paths, nil
}

// RenamePhoto updates a photo's filename and recomputes its path within
// the same directory. The new absolute path is returned; moving the file
// on disk is the caller's job.
func (s *Store) RenamePhoto(photoID int64, newFilename string) (string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("rename_photo", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var oldPath string
	err = s.db.QueryRow("SELECT path FROM photos WHERE id = ?", photoID).Scan(&oldPath)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return "", err
	}
	if err != nil {
		return "", err
	}

	newPath := filepath.Join(filepath.Dir(oldPath), newFilename)
	_, err = s.db.Exec("UPDATE photos SET path = ?, filename = ? WHERE id = ?",
		newPath, newFilename, photoID)
	if err != nil {
		return "", err
	}
	return newPath, nil
}
