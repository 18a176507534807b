package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"photo-catalog/internal/extract"
	"photo-catalog/internal/logging"
	"photo-catalog/internal/mediatypes"
)

// ErrNotFound is returned when a photo id does not exist in the catalog.
var ErrNotFound = errors.New("photo not found")

const (
	// maxPhotoPageSize is the server-side hard cap on a single photo page,
	// regardless of the requested limit.
	maxPhotoPageSize = 10000
	// maxUnionPageSize is the hard cap for cross-library aggregation.
	maxUnionPageSize = 20000
	// maxSearchResults is the hard cap on search results.
	maxSearchResults = 1000

	defaultPageSize = 100
)

const photoColumns = "id, library_id, path, filename, folder_rel, taken_at, modified_at, " +
	"media_type, size_bytes, width, height, is_favorite, is_deleted, deleted_at, " +
	"camera_make, camera_model, lens, iso, shutter_speed, aperture, focal_length, gps_lat, gps_lon"

// prefixedPhotoColumns qualifies every photo column with a table alias.
func prefixedPhotoColumns(alias string) string {
	cols := strings.Split(photoColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPhoto reads one row in photoColumns order. Extra destinations are
// scanned after the photo columns, for queries that select trailing
// columns alongside them.
func scanPhoto(row rowScanner, extra ...interface{}) (*Photo, error) {
	var (
		p          Photo
		kind       string
		takenAt    sql.NullString
		deletedAt  sql.NullString
		width      sql.NullInt64
		height     sql.NullInt64
		cameraMake sql.NullString
		model      sql.NullString
		lens       sql.NullString
		iso        sql.NullInt64
		shutter    sql.NullString
		aperture   sql.NullString
		focal      sql.NullString
		gpsLat     sql.NullFloat64
		gpsLon     sql.NullFloat64
		isFavorite int
		isDeleted  int
	)

	dest := []interface{}{
		&p.ID, &p.LibraryID, &p.Path, &p.Filename, &p.Folder, &takenAt, &p.ModifiedAt,
		&kind, &p.SizeBytes, &width, &height, &isFavorite, &isDeleted, &deletedAt,
		&cameraMake, &model, &lens, &iso, &shutter, &aperture, &focal, &gpsLat, &gpsLon,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	p.Kind = mediatypes.Kind(kind)
	p.TakenAt = nullString(takenAt)
	p.DeletedAt = nullString(deletedAt)
	p.Width = nullInt(width)
	p.Height = nullInt(height)
	p.IsFavorite = isFavorite != 0
	p.IsDeleted = isDeleted != 0
	p.CameraMake = nullString(cameraMake)
	p.CameraModel = nullString(model)
	p.Lens = nullString(lens)
	p.ISO = nullInt(iso)
	p.ShutterSpeed = nullString(shutter)
	p.Aperture = nullString(aperture)
	p.FocalLength = nullString(focal)
	p.GPSLat = nullFloat(gpsLat)
	p.GPSLon = nullFloat(gpsLon)

	return &p, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// queryPhotosLocked runs a photo query and scans all rows. The caller must
// hold s.mu.
func (s *Store) queryPhotosLocked(query string, args ...interface{}) ([]Photo, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Error("error closing rows: %v", closeErr)
		}
	}()

	var photos []Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// UpsertPhoto inserts or overwrites the photo at (libraryID, rec.Path).
// (library_id, path) is unique, so re-indexing the same file replaces the
// prior row instead of duplicating it. The persisted row is returned.
func (s *Store) UpsertPhoto(libraryID int64, rec *extract.Record) (*Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("upsert_photo", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO photos (
			library_id, path, filename, folder_rel, taken_at, modified_at, media_type,
			size_bytes, width, height,
			camera_make, camera_model, lens, iso, shutter_speed, aperture, focal_length, gps_lat, gps_lon
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		libraryID, rec.Path, rec.Filename, rec.Folder, rec.TakenAt, rec.ModifiedAt, string(rec.Kind),
		rec.SizeBytes, rec.Width, rec.Height,
		rec.CameraMake, rec.CameraModel, rec.Lens, rec.ISO, rec.ShutterSpeed, rec.Aperture,
		rec.FocalLength, rec.GPSLat, rec.GPSLon,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert photo %s: %w", rec.Path, err)
	}

	query := fmt.Sprintf("SELECT %s FROM photos WHERE library_id = ? AND path = ?", photoColumns)
	var photo *Photo
	photo, err = scanPhoto(s.db.QueryRow(query, libraryID, rec.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to read back photo %s: %w", rec.Path, err)
	}
	return photo, nil
}

// GetPhotos returns non-deleted photos for one library, filtered, ordered
// by effective timestamp descending with path ascending as the
// deterministic tiebreak. The limit is capped server-side.
func (s *Store) GetPhotos(libraryID int64, filter PhotoFilter, limit, offset int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPhotoPageSize {
		limit = maxPhotoPageSize
	}
	if offset < 0 {
		offset = 0
	}

	where, filterArgs := filter.clauses()
	query := fmt.Sprintf(
		"SELECT %s FROM photos WHERE library_id = ? AND is_deleted = 0%s "+
			"ORDER BY COALESCE(taken_at, modified_at) DESC, path ASC LIMIT ? OFFSET ?",
		photoColumns, where,
	)

	args := append([]interface{}{libraryID}, filterArgs...)
	args = append(args, limit, offset)

	var photos []Photo
	photos, err = s.queryPhotosLocked(query, args...)
	return photos, err
}

// GetPhotosAcrossLibraries returns non-deleted photos from the given
// libraries under the same ordering contract as GetPhotos. Each row is
// annotated with a transient source label derived from its library's leaf
// directory name.
func (s *Store) GetPhotosAcrossLibraries(libraryIDs []int64, limit, offset int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_photos_across_libraries", start, err) }()

	if len(libraryIDs) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The aggregate view feeds the all-photos grid, which loads whole
	// collections at once; its default page is the single-library cap
	// rather than the single-library default.
	if limit <= 0 {
		limit = maxPhotoPageSize
	}
	if limit > maxUnionPageSize {
		limit = maxUnionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(libraryIDs)), ", ")
	query := fmt.Sprintf(
		"SELECT %s, l.root_path FROM photos p JOIN library l ON l.id = p.library_id "+
			"WHERE p.library_id IN (%s) AND p.is_deleted = 0 "+
			"ORDER BY COALESCE(p.taken_at, p.modified_at) DESC, p.path ASC LIMIT ? OFFSET ?",
		prefixedPhotoColumns("p"), placeholders,
	)

	args := make([]interface{}, 0, len(libraryIDs)+2)
	for _, id := range libraryIDs {
		args = append(args, id)
	}
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var rootPath string
		p, scanErr := scanPhoto(rows, &rootPath)
		if scanErr != nil {
			err = scanErr
			return nil, err
		}
		p.Source = sourceLabel(rootPath)
		photos = append(photos, *p)
	}
	err = rows.Err()
	return photos, err
}

// sourceLabel derives the human-readable source name from a library root.
func sourceLabel(rootPath string) string {
	name := filepath.Base(rootPath)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "Library"
	}
	return name
}

// SearchPhotos does a case-insensitive substring match across path,
// filename, folder, capture date, camera make/model, and tag names.
// Wildcard characters in the query are escaped so a literal % or _ matches
// itself. Results are ordered by capture date descending; the limit is
// capped server-side.
func (s *Store) SearchPhotos(libraryID int64, query string, limit int64) ([]Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("search_photos", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	pattern := "%" + escapeLike(query) + "%"
	sqlQuery := fmt.Sprintf(
		`SELECT %s FROM photos
		 WHERE library_id = ? AND is_deleted = 0 AND (
			path LIKE ? ESCAPE '\' OR filename LIKE ? ESCAPE '\' OR folder_rel LIKE ? ESCAPE '\'
			OR taken_at LIKE ? ESCAPE '\' OR camera_make LIKE ? ESCAPE '\' OR camera_model LIKE ? ESCAPE '\'
			OR id IN (
				SELECT pt.photo_id FROM photo_tags pt
				JOIN tags t ON t.id = pt.tag_id
				WHERE t.name LIKE ? ESCAPE '\'
			)
		 )
		 ORDER BY taken_at DESC LIMIT ?`,
		photoColumns,
	)

	var photos []Photo
	photos, err = s.queryPhotosLocked(sqlQuery,
		libraryID, pattern, pattern, pattern, pattern, pattern, pattern, pattern, limit)
	return photos, err
}

// GetPhotoByID returns a single photo, including soft-deleted ones, or
// ErrNotFound.
func (s *Store) GetPhotoByID(id int64) (*Photo, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_photo_by_id", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf("SELECT %s FROM photos WHERE id = ?", photoColumns)
	var photo *Photo
	photo, err = scanPhoto(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// Years returns the distinct capture years with photo counts for a
// library, newest first. Photos with no capture date are not counted.
func (s *Store) Years(libraryID int64) ([]YearCount, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("years", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT CAST(strftime('%Y', taken_at) AS INTEGER) AS y, COUNT(*)
		FROM photos
		WHERE library_id = ? AND taken_at IS NOT NULL
		GROUP BY y ORDER BY y DESC`, libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []YearCount
	for rows.Next() {
		var yc YearCount
		if err = rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		out = append(out, yc)
	}
	err = rows.Err()
	return out, err
}

// Months returns the distinct (year, month) pairs with photo counts for a
// given year.
func (s *Store) Months(libraryID int64, year int) ([]MonthCount, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("months", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT CAST(strftime('%Y', taken_at) AS INTEGER),
		       CAST(strftime('%m', taken_at) AS INTEGER),
		       COUNT(*)
		FROM photos
		WHERE library_id = ? AND strftime('%Y', taken_at) = ?
		GROUP BY strftime('%Y-%m', taken_at) ORDER BY 2 DESC`,
		libraryID, fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err = rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	err = rows.Err()
	return out, err
}

// FolderCounts returns flat per-folder photo counts for a library.
func (s *Store) FolderCounts(libraryID int64) ([]FolderCount, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("folder_counts", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT folder_rel, COUNT(*) FROM photos
		WHERE library_id = ? GROUP BY folder_rel ORDER BY folder_rel`, libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FolderCount
	for rows.Next() {
		var fc FolderCount
		if err = rows.Scan(&fc.Folder, &fc.Count); err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	err = rows.Err()
	return out, err
}

// KindCounts returns per-media-kind photo counts for a library.
func (s *Store) KindCounts(libraryID int64) ([]KindCount, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("kind_counts", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT media_type, COUNT(*) FROM photos
		WHERE library_id = ? GROUP BY media_type`, libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KindCount
	for rows.Next() {
		var kc KindCount
		var kind string
		if err = rows.Scan(&kind, &kc.Count); err != nil {
			return nil, err
		}
		kc.Kind = mediatypes.Kind(kind)
		out = append(out, kc)
	}
	err = rows.Err()
	return out, err
}
