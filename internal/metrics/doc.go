// Package metrics defines Prometheus collectors for the catalog store,
// the ingestion pipeline, and the thumbnail cache. All collectors are
// registered with the default registry via promauto.
package metrics
