package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"photo-catalog/internal/logging"
)

// CreateAlbum creates a new, empty album.
func (s *Store) CreateAlbum(name string) (*Album, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_album", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := nowUTC()
	res, err := s.db.Exec("INSERT INTO albums (name, created_at) VALUES (?, ?)", name, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create album %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Album{ID: id, Name: name, CreatedAt: createdAt}, nil
}

// RenameAlbum changes an album's display name.
func (s *Store) RenameAlbum(albumID int64, name string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("rename_album", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("UPDATE albums SET name = ? WHERE id = ?", name, albumID)
	return err
}

// DeleteAlbum removes an album and its membership rows. Photos themselves
// are untouched.
func (s *Store) DeleteAlbum(albumID int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_album", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("DELETE FROM albums WHERE id = ?", albumID)
	return err
}

// Albums returns all albums, newest first, each with its photo count and
// the path of its first photo for cover display.
func (s *Store) Albums() ([]Album, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("albums", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT a.id, a.name, a.created_at,
		       (SELECT COUNT(*) FROM album_photos ap
		        JOIN photos p ON p.id = ap.photo_id
		        WHERE ap.album_id = a.id AND p.is_deleted = 0),
		       (SELECT p.path FROM album_photos ap
		        JOIN photos p ON p.id = ap.photo_id
		        WHERE ap.album_id = a.id AND p.is_deleted = 0
		        ORDER BY ap.position LIMIT 1)
		FROM albums a ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Error("error closing rows: %v", closeErr)
		}
	}()

	var albums []Album
	for rows.Next() {
		var (
			a     Album
			cover sql.NullString
		)
		if err = rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.PhotoCount, &cover); err != nil {
			return nil, err
		}
		a.CoverPath = nullString(cover)
		albums = append(albums, a)
	}
	err = rows.Err()
	return albums, err
}

// AddToAlbum appends photos to an album in the given order. Photos already
// in the album keep their existing position.
func (s *Store) AddToAlbum(albumID int64, photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("add_to_album", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var next int64
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM album_photos WHERE album_id = ?",
		albumID).Scan(&next)
	if err != nil {
		tx.Rollback()
		return err
	}

	for i, photoID := range photoIDs {
		if _, err = tx.Exec(
			"INSERT OR IGNORE INTO album_photos (album_id, photo_id, position) VALUES (?, ?, ?)",
			albumID, photoID, next+int64(i)); err != nil {
			tx.Rollback()
			return err
		}
	}
	err = tx.Commit()
	return err
}

// RemoveFromAlbum drops photos from an album. Remaining positions are left
// with gaps; ordering is still well defined.
func (s *Store) RemoveFromAlbum(albumID int64, photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("remove_from_album", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, photoID := range photoIDs {
		if _, err = tx.Exec(
			"DELETE FROM album_photos WHERE album_id = ? AND photo_id = ?",
			albumID, photoID); err != nil {
			tx.Rollback()
			return err
		}
	}
	err = tx.Commit()
	return err
}

// AlbumPhotos returns an album's non-deleted photos in curated order.
func (s *Store) AlbumPhotos(albumID int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("album_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf(`
		SELECT %s FROM photos p
		JOIN album_photos ap ON ap.photo_id = p.id
		WHERE ap.album_id = ? AND p.is_deleted = 0
		ORDER BY ap.position ASC`, prefixedPhotoColumns("p"))

	var photos []Photo
	photos, err = s.queryPhotosLocked(query, albumID)
	return photos, err
}
