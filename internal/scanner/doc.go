// Package scanner enumerates candidate media files beneath a library root.
//
// The scan phase is intentionally metadata-free: it only matches extensions
// against the photo and video allow-lists so a total file count is available
// before per-file extraction begins.
package scanner
