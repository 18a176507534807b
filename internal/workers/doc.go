// Package workers computes worker pool sizes for parallel metadata
// extraction, respecting container CPU limits and the EXTRACT_WORKERS
// environment override.
package workers
