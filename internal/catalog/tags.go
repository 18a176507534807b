package catalog

import (
	"fmt"
	"time"

	"photo-catalog/internal/logging"
)

const defaultTagColor = "#0071e3"

// CreateTag creates a tag or returns the existing one of the same name.
// An empty color falls back to the default accent color.
func (s *Store) CreateTag(name, color string) (*Tag, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_tag", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = defaultTagColor
	}

	_, err = s.db.Exec("INSERT OR IGNORE INTO tags (name, color) VALUES (?, ?)", name, color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag %s: %w", name, err)
	}

	var tag Tag
	err = s.db.QueryRow("SELECT id, name, color FROM tags WHERE name = ?", name).
		Scan(&tag.ID, &tag.Name, &tag.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tag %s: %w", name, err)
	}
	return &tag, nil
}

// DeleteTag removes a tag and, via cascade, all photo associations.
func (s *Store) DeleteTag(tagID int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_tag", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("DELETE FROM tags WHERE id = ?", tagID)
	return err
}

// Tags returns all tags ordered by name.
func (s *Store) Tags() ([]Tag, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("tags", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queryTagsLocked("SELECT id, name, color FROM tags ORDER BY name")
}

// PhotoTags returns the tags attached to one photo, ordered by name.
func (s *Store) PhotoTags(photoID int64) ([]Tag, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("photo_tags", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queryTagsLocked(`
		SELECT t.id, t.name, t.color FROM tags t
		JOIN photo_tags pt ON pt.tag_id = t.id
		WHERE pt.photo_id = ? ORDER BY t.name`, photoID)
}

func (s *Store) queryTagsLocked(query string, args ...interface{}) ([]Tag, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Error("error closing rows: %v", closeErr)
		}
	}()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TagPhotos attaches a tag to each of the given photos. Already-tagged
// photos are left as-is.
func (s *Store) TagPhotos(tagID int64, photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("tag_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, photoID := range photoIDs {
		if _, err = tx.Exec(
			"INSERT OR IGNORE INTO photo_tags (photo_id, tag_id) VALUES (?, ?)",
			photoID, tagID); err != nil {
			tx.Rollback()
			return err
		}
	}
	err = tx.Commit()
	return err
}

// UntagPhotos detaches a tag from each of the given photos.
func (s *Store) UntagPhotos(tagID int64, photoIDs []int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("untag_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, photoID := range photoIDs {
		if _, err = tx.Exec(
			"DELETE FROM photo_tags WHERE photo_id = ? AND tag_id = ?",
			photoID, tagID); err != nil {
			tx.Rollback()
			return err
		}
	}
	err = tx.Commit()
	return err
}
