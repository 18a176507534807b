package pipeline

import "photo-catalog/internal/catalog"

// Progress reports where a scan currently stands. Total is nil while the
// walk is still counting files.
type Progress struct {
	Phase   string  `json:"phase"`
	Current uint64  `json:"current"`
	Total   *uint64 `json:"total,omitempty"`
}

// Event is one message on a scan's event stream. Exactly one of the two
// fields is set: a progress update, or a batch of photos that just became
// queryable.
type Event struct {
	Progress *Progress       `json:"progress,omitempty"`
	Added    []catalog.Photo `json:"added,omitempty"`
}

// Phase names emitted during a single-root scan.
const (
	PhaseScanning = "scanning"
	PhaseIndexing = "indexing"
	PhaseDone     = "done"
)
