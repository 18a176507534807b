// Package main provides the entry point for the photo-catalog command.
//
// photo-catalog indexes folders of photos and videos into a local SQLite
// catalog and serves queries over it: timeline listings, search, tags,
// albums, favorites, and a trash with soft delete. A content-addressed
// thumbnail cache renders previews on demand.
//
// # Application Lifecycle
//
// Every command follows the same initialization sequence:
//
//  1. Configuration Loading: Reads environment variables and validates directories
//  2. Catalog Initialization: Opens the SQLite catalog and applies migrations
//  3. Metrics Server: Optionally exposes Prometheus metrics during the run
//  4. Command Dispatch: Runs the requested subcommand against the catalog
//
// # Scanning
//
// The scan commands walk a directory tree, extract EXIF metadata and
// pixel dimensions with a bounded worker pool, and commit photos in
// batches. Progress streams to the terminal as the scan runs, so large
// libraries show results long before the walk completes. Re-scanning is
// idempotent: a file is keyed by its library and path, and re-indexing
// replaces the prior row.
//
// # Configuration
//
// See the internal/startup package for the full list of environment
// variables. The defaults put the catalog under ./data and the thumbnail
// cache under ./cache.
package main
