package mediatypes

import (
	"path/filepath"
	"strings"
)

// Kind classifies a media file by its extension.
type Kind string

const (
	// KindPhoto represents a still image file.
	KindPhoto Kind = "photo"
	// KindVideo represents a video file.
	KindVideo Kind = "video"
	// KindOther represents any unrecognized file type.
	KindOther Kind = "other"
)

// PhotoExtensions maps file extensions to whether they are supported photo formats.
var PhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
	".raw":  true,
	".arw":  true,
	".cr2":  true,
	".nef":  true,
	".dng":  true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".m4v":  true,
	".wmv":  true,
	".3gp":  true,
}

// FromPath returns the media kind for a file path based on its extension.
// The comparison is case-insensitive.
func FromPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case PhotoExtensions[ext]:
		return KindPhoto
	case VideoExtensions[ext]:
		return KindVideo
	default:
		return KindOther
	}
}

// IsMedia reports whether the path has a supported photo or video extension.
func IsMedia(path string) bool {
	return FromPath(path) != KindOther
}
