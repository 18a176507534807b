package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photo-catalog/internal/catalog"
	"photo-catalog/internal/extract"
	"photo-catalog/internal/logging"
	"photo-catalog/internal/metrics"
	"photo-catalog/internal/scanner"
	"photo-catalog/internal/workers"
)

// Store is the catalog surface the pipeline writes through.
type Store interface {
	GetOrCreateLibrary(rootPath string) (int64, error)
	UpsertPhoto(libraryID int64, rec *extract.Record) (*catalog.Photo, error)
	CountPhotos(libraryID int64) (int64, error)
}

const (
	defaultBatchSize = 20
	// defaultsBatchSize is the larger chunk used for the background sweep
	// of standard user folders, where per-batch UI latency matters less.
	defaultsBatchSize = 50
)

// Options tune a Pipeline. Zero values pick sensible defaults.
type Options struct {
	// BatchSize is the number of files committed and announced per batch.
	BatchSize int
	// Workers bounds parallel metadata extraction within a batch.
	Workers int
}

// Pipeline walks library roots, extracts metadata in parallel, and commits
// photos to the store in small batches so consumers see results while the
// scan is still running.
type Pipeline struct {
	store     Store
	batchSize int
	workers   int
}

func New(store Store, opts Options) *Pipeline {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	w := opts.Workers
	if w <= 0 {
		w = workers.ForCPU(0)
	}
	return &Pipeline{store: store, batchSize: batch, workers: w}
}

// Source describes one root handled by a scan.
type Source struct {
	Root      string
	LibraryID int64
	Indexed   uint64
	// Skipped is set when a root was left alone because it already had
	// indexed photos.
	Skipped bool
}

// Job is a running scan. Events delivers progress and photo batches in
// order; the channel is closed when the scan is finished. Sources is valid
// once Events has been closed.
type Job struct {
	events  chan Event
	sources []Source
}

// Events returns the job's ordered event stream. The consumer must drain
// it; the producer blocks on an unread event.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Sources reports the roots the scan covered. Call it only after Events
// has been closed.
func (j *Job) Sources() []Source {
	return j.sources
}

// Scan indexes a single library root. It fails fast if the root is not a
// readable directory; all later failures degrade to logged skips.
func (p *Pipeline) Scan(root string) (*Job, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	job := &Job{events: make(chan Event)}
	go p.runScan(job, root)
	return job, nil
}

func (p *Pipeline) runScan(job *Job, root string) {
	defer close(job.events)
	start := time.Now()
	metrics.ScanRunsTotal.Inc()

	job.events <- Event{Progress: &Progress{Phase: PhaseScanning}}

	canonical := extract.CanonicalRoot(root)
	paths := scanner.CollectMediaPaths(canonical)

	libID, err := p.store.GetOrCreateLibrary(canonical)
	if err != nil {
		logging.Error("scan %s: cannot register library: %v", canonical, err)
		job.events <- Event{Progress: &Progress{Phase: PhaseDone}}
		return
	}

	indexed := p.indexPaths(job, libID, canonical, paths, PhaseIndexing, true)

	total := uint64(len(paths))
	job.events <- Event{Progress: &Progress{Phase: PhaseDone, Current: total, Total: &total}}
	job.sources = []Source{{Root: canonical, LibraryID: libID, Indexed: indexed}}

	metrics.ScanLastRunDuration.Set(time.Since(start).Seconds())
	logging.Info("scan %s: indexed %d of %d files in %v", canonical, indexed, total, time.Since(start))
}

// indexPaths runs the extract-and-commit loop over one root's files,
// emitting a progress event per batch and, when emitAdded is set, the
// batch of stored photos ahead of it. It returns the number of photos
// committed.
func (p *Pipeline) indexPaths(job *Job, libID int64, root string, paths []string, phase string, emitAdded bool) uint64 {
	total := uint64(len(paths))
	var processed uint64
	var indexed uint64

	for begin := 0; begin < len(paths); begin += p.batchSize {
		end := begin + p.batchSize
		if end > len(paths) {
			end = len(paths)
		}
		chunk := paths[begin:end]

		recs := p.extractBatch(chunk, root)

		var added []catalog.Photo
		for _, rec := range recs {
			if rec == nil {
				continue
			}
			photo, err := p.store.UpsertPhoto(libID, rec)
			if err != nil {
				logging.Warn("scan %s: cannot store %s: %v", root, rec.Path, err)
				metrics.ScanWriteErrors.Inc()
				continue
			}
			added = append(added, *photo)
		}
		indexed += uint64(len(added))

		processed += uint64(len(chunk))
		metrics.ScanFilesProcessed.Add(float64(len(chunk)))

		if emitAdded && len(added) > 0 {
			job.events <- Event{Added: added}
		}
		job.events <- Event{Progress: &Progress{Phase: phase, Current: processed, Total: &total}}
	}
	return indexed
}

// extractBatch extracts a chunk of files in parallel, preserving input
// order in the result. Unreadable files come back as nil entries.
func (p *Pipeline) extractBatch(paths []string, root string) []*extract.Record {
	recs := make([]*extract.Record, len(paths))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			if rec, ok := extract.File(path, root); ok {
				recs[i] = rec
			}
		}(i, path)
	}
	wg.Wait()
	return recs
}

// defaultFolders are the standard user folders swept by ScanDefaults.
var defaultFolders = []string{"Pictures", "Downloads", "Documents"}

// ScanDefaults sweeps the standard media folders under home. Folders that
// do not exist are skipped, and a folder whose library already holds
// photos is left alone rather than re-indexed. Only progress events are
// emitted; the per-folder phases are suffixed with the lowercased folder
// name, e.g. "scanning-pictures".
func (p *Pipeline) ScanDefaults(home string) *Job {
	job := &Job{events: make(chan Event)}
	go p.runScanDefaults(job, home)
	return job
}

func (p *Pipeline) runScanDefaults(job *Job, home string) {
	defer close(job.events)
	start := time.Now()
	metrics.ScanRunsTotal.Inc()

	// The default sweep favors throughput over per-batch latency.
	sweep := &Pipeline{store: p.store, batchSize: defaultsBatchSize, workers: p.workers}

	var sources []Source
	for _, folder := range defaultFolders {
		root := filepath.Join(home, folder)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			logging.Debug("default sweep: skipping %s: %v", root, err)
			continue
		}

		suffix := strings.ToLower(folder)
		job.events <- Event{Progress: &Progress{Phase: PhaseScanning + "-" + suffix}}

		canonical := extract.CanonicalRoot(root)
		libID, err := p.store.GetOrCreateLibrary(canonical)
		if err != nil {
			logging.Error("default sweep %s: cannot register library: %v", canonical, err)
			continue
		}

		count, err := p.store.CountPhotos(libID)
		if err != nil {
			logging.Error("default sweep %s: cannot count photos: %v", canonical, err)
			continue
		}
		if count > 0 {
			logging.Debug("default sweep %s: already indexed (%d photos)", canonical, count)
			sources = append(sources, Source{Root: canonical, LibraryID: libID, Skipped: true})
			continue
		}

		paths := scanner.CollectMediaPaths(canonical)
		indexed := sweep.indexPaths(job, libID, canonical, paths, PhaseIndexing+"-"+suffix, false)
		sources = append(sources, Source{Root: canonical, LibraryID: libID, Indexed: indexed})
	}

	job.events <- Event{Progress: &Progress{Phase: PhaseDone}}
	job.sources = sources

	metrics.ScanLastRunDuration.Set(time.Since(start).Seconds())
	logging.Info("default sweep: covered %d folders in %v", len(sources), time.Since(start))
}
