package extract

import (
	"image"
	"os"
	"path/filepath"

	"photo-catalog/internal/logging"
	"photo-catalog/internal/mediatypes"

	// Header decoders for the dimension probe.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// epochTime is the fallback timestamp when the filesystem cannot provide one.
const epochTime = "1970-01-01T00:00:00Z"

// timeLayout is the ISO-8601 UTC second-precision format used throughout
// the catalog.
const timeLayout = "2006-01-02T15:04:05Z"

// Record is the metadata extracted from a single media file. Optional
// fields are nil when the source carries no usable value; extraction never
// fails a file over a missing field.
type Record struct {
	Path       string
	Filename   string
	Folder     string
	TakenAt    *string
	ModifiedAt string
	Kind       mediatypes.Kind
	SizeBytes  int64

	Width  *int
	Height *int

	CameraMake   *string
	CameraModel  *string
	Lens         *string
	ISO          *int
	ShutterSpeed *string
	Aperture     *string
	FocalLength  *string
	GPSLat       *float64
	GPSLon       *float64
}

// CanonicalRoot resolves a library root to an absolute, symlink-free path.
// Resolution is best-effort; on failure the input is returned unchanged so
// extraction can still proceed with relative folder derivation.
func CanonicalRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root
}

// File extracts metadata for a single media file beneath the given
// canonicalized library root. It returns (nil, false) only when the file
// cannot be stat'd at all; every other failure mode degrades to absent
// fields on the returned record.
func File(path, root string) (*Record, bool) {
	info, err := os.Stat(path)
	if err != nil {
		logging.Debug("extract: cannot stat %s: %v", path, err)
		return nil, false
	}

	rec := &Record{
		Path:       path,
		Filename:   filepath.Base(path),
		Folder:     folderRel(path, root),
		Kind:       mediatypes.FromPath(path),
		SizeBytes:  info.Size(),
		ModifiedAt: modifiedTime(info),
	}

	// EXIF and dimension probing are photo-only; videos and unknown types
	// skip both to keep the scan cheap.
	if rec.Kind == mediatypes.KindPhoto {
		readExif(path, rec)
		rec.Width, rec.Height = probeDimensions(path)
	}

	// Every record carries an effective taken timestamp, even when EXIF
	// yielded nothing.
	if rec.TakenAt == nil {
		modified := rec.ModifiedAt
		rec.TakenAt = &modified
	}

	return rec, true
}

// folderRel computes the parent directory of path relative to root. Files
// directly under the root map to the empty string.
func folderRel(path, root string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return ""
	}
	return rel
}

// modifiedTime formats the filesystem modification time as an ISO-8601 UTC
// string with second precision, falling back to the Unix epoch on a zero
// value.
func modifiedTime(info os.FileInfo) string {
	mod := info.ModTime()
	if mod.IsZero() {
		return epochTime
	}
	return mod.UTC().Format(timeLayout)
}

// probeDimensions reads the pixel dimensions from the image header without
// decoding the full image. Any failure yields absent dimensions.
func probeDimensions(path string) (*int, *int) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		logging.Debug("extract: no dimensions for %s: %v", path, err)
		return nil, nil
	}

	w, h := config.Width, config.Height
	return &w, &h
}
