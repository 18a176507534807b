// Package pipeline turns a directory of media files into catalog rows.
// A scan walks the root, extracts metadata with a bounded worker pool,
// and commits photos in chunks, streaming progress and freshly stored
// batches over a channel so a UI can show results before the scan ends.
package pipeline
