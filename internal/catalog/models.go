package catalog

import "photo-catalog/internal/mediatypes"

// Photo is one indexed media file. Optional columns surface as nil
// pointers. Source is a transient display label attached by cross-library
// queries and is never persisted.
type Photo struct {
	ID         int64           `json:"id"`
	LibraryID  int64           `json:"libraryId"`
	Path       string          `json:"path"`
	Filename   string          `json:"filename"`
	Folder     string          `json:"folderRel"`
	TakenAt    *string         `json:"takenAt,omitempty"`
	ModifiedAt string          `json:"modifiedAt"`
	Kind       mediatypes.Kind `json:"mediaType"`
	SizeBytes  int64           `json:"sizeBytes"`
	Width      *int            `json:"width,omitempty"`
	Height     *int            `json:"height,omitempty"`
	Source     string          `json:"source,omitempty"`
	IsFavorite bool            `json:"isFavorite"`
	IsDeleted  bool            `json:"isDeleted"`
	DeletedAt  *string         `json:"deletedAt,omitempty"`

	CameraMake   *string  `json:"cameraMake,omitempty"`
	CameraModel  *string  `json:"cameraModel,omitempty"`
	Lens         *string  `json:"lens,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	ShutterSpeed *string  `json:"shutterSpeed,omitempty"`
	Aperture     *string  `json:"aperture,omitempty"`
	FocalLength  *string  `json:"focalLength,omitempty"`
	GPSLat       *float64 `json:"gpsLat,omitempty"`
	GPSLon       *float64 `json:"gpsLon,omitempty"`
}

// Library summarizes one indexed root directory. Name is the root's leaf
// directory name, used as the display label for source aggregation.
type Library struct {
	ID         int64  `json:"id"`
	RootPath   string `json:"rootPath"`
	Name       string `json:"name"`
	PhotoCount int64  `json:"photoCount"`
}

// Tag is a user label with a display color.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Album is a user-defined ordered photo collection.
type Album struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CreatedAt  string  `json:"createdAt"`
	PhotoCount int64   `json:"photoCount"`
	CoverPath  *string `json:"coverPath,omitempty"`
}

// YearCount is one row of the year facet.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// MonthCount is one row of the month facet for a given year.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// FolderCount is a flat per-folder photo count.
type FolderCount struct {
	Folder string `json:"folder"`
	Count  int64  `json:"count"`
}

// KindCount is a per-media-kind photo count.
type KindCount struct {
	Kind  mediatypes.Kind `json:"mediaType"`
	Count int64           `json:"count"`
}
