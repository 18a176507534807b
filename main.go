package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"photo-catalog/internal/catalog"
	"photo-catalog/internal/logging"
	"photo-catalog/internal/pipeline"
	"photo-catalog/internal/startup"
	"photo-catalog/internal/thumbs"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	if command == "version" {
		info := startup.GetBuildInfo()
		fmt.Printf("photo-catalog %s (%s, %s, %s/%s)\n",
			info.Version, info.Commit, info.GoVersion, info.OS, info.Arch)
		return
	}

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Open the catalog
	openStart := time.Now()
	store, err := catalog.Open(config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to open catalog: %v", err)
	}
	defer store.Close()
	startup.LogCatalogInit(config.DatabasePath, time.Since(openStart))

	// Expose metrics while long commands run
	if config.MetricsEnabled {
		go serveMetrics(config.MetricsPort)
		startup.LogMetricsStarted(config.MetricsPort)
	}

	p := pipeline.New(store, pipeline.Options{
		BatchSize: config.BatchSize,
		Workers:   config.ScanWorkers,
	})

	switch command {
	case "scan":
		if len(args) != 1 {
			startup.LogFatal("usage: photo-catalog scan <directory>")
		}
		startup.LogPipelineInit(config.BatchSize, config.ScanWorkers)
		runScan(p, args[0])
	case "scan-defaults":
		home, err := os.UserHomeDir()
		if err != nil {
			startup.LogFatal("Cannot determine home directory: %v", err)
		}
		startup.LogPipelineInit(config.BatchSize, config.ScanWorkers)
		runScanDefaults(p, home)
	case "libraries":
		listLibraries(store)
	case "list":
		if len(args) != 1 {
			startup.LogFatal("usage: photo-catalog list <library-id>")
		}
		listPhotos(store, parseID(args[0]))
	case "search":
		if len(args) != 2 {
			startup.LogFatal("usage: photo-catalog search <library-id> <query>")
		}
		searchPhotos(store, parseID(args[0]), args[1])
	case "stats":
		if len(args) != 1 {
			startup.LogFatal("usage: photo-catalog stats <library-id>")
		}
		showStats(store, parseID(args[0]))
	case "thumb":
		if len(args) != 1 {
			startup.LogFatal("usage: photo-catalog thumb <photo-path>")
		}
		if !config.ThumbnailsEnabled {
			startup.LogFatal("Thumbnail cache directory is not writable")
		}
		makeThumbnail(config, args[0])
	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: photo-catalog <command> [arguments]

Commands:
  scan <directory>              index a media folder
  scan-defaults                 index the standard user folders once
  libraries                     list registered libraries
  list <library-id>             list a library's photos
  search <library-id> <query>   search a library
  stats <library-id>            show per-year and per-kind counts
  thumb <photo-path>            generate and print a thumbnail path
  version                       print build information`)
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logging.Warn("metrics server error: %v", err)
	}
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		startup.LogFatal("Invalid library id %q", arg)
	}
	return id
}

// runScan drives a single-root scan, rendering batch progress as it
// streams in.
func runScan(p *pipeline.Pipeline, root string) {
	job, err := p.Scan(root)
	if err != nil {
		startup.LogFatal("Scan error: %v", err)
	}

	added := consumeEvents(job)

	fmt.Println()
	for _, src := range job.Sources() {
		fmt.Printf("%s: %d photos indexed\n", src.Root, src.Indexed)
	}
	logging.Debug("scan announced %d photos in batches", added)
}

func runScanDefaults(p *pipeline.Pipeline, home string) {
	job := p.ScanDefaults(home)
	consumeEvents(job)

	fmt.Println()
	for _, src := range job.Sources() {
		if src.Skipped {
			fmt.Printf("%s: already indexed, skipped\n", src.Root)
			continue
		}
		fmt.Printf("%s: %d photos indexed\n", src.Root, src.Indexed)
	}
}

// consumeEvents drains a job's event stream, keeping a progress bar in
// sync with the indexing phase. It returns the total number of photos
// announced in batches.
func consumeEvents(job *pipeline.Job) int {
	renderer := newProgressRenderer(os.Stderr)
	var added int

	for ev := range job.Events() {
		if ev.Added != nil {
			added += len(ev.Added)
			continue
		}
		renderer.observe(ev.Progress)
	}
	renderer.finish()
	return added
}

// progressRenderer keeps one bar per indexing phase. A default-folders
// sweep reports a separate total for every folder, so each phase change
// retires the current bar and starts a fresh one against the new total.
type progressRenderer struct {
	out   io.Writer
	bar   *progressbar.ProgressBar
	phase string
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{out: out}
}

func (r *progressRenderer) observe(prog *pipeline.Progress) {
	if prog.Total == nil {
		// Counting phases have no bar; just note the phase change.
		logging.Debug("scan phase: %s", prog.Phase)
		return
	}
	if prog.Phase == pipeline.PhaseDone {
		r.finish()
		return
	}
	if r.bar == nil || prog.Phase != r.phase {
		r.finish()
		r.bar = newBar(r.out, int64(*prog.Total), prog.Phase)
		r.phase = prog.Phase
	}
	if err := r.bar.Set64(int64(prog.Current)); err != nil {
		logging.Debug("progress bar error: %v", err)
	}
}

func (r *progressRenderer) finish() {
	if r.bar == nil {
		return
	}
	if err := r.bar.Finish(); err != nil {
		logging.Debug("progress bar error: %v", err)
	}
	r.bar = nil
}

func newBar(out io.Writer, max int64, phase string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(max,
		progressbar.OptionSetDescription(phase),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(10),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
	)
}

func listLibraries(store *catalog.Store) {
	libs, err := store.Libraries()
	if err != nil {
		startup.LogFatal("Cannot list libraries: %v", err)
	}
	if len(libs) == 0 {
		fmt.Println("No libraries registered; run a scan first.")
		return
	}
	for _, lib := range libs {
		fmt.Printf("%4d  %-20s %6d photos  %s\n", lib.ID, lib.Name, lib.PhotoCount, lib.RootPath)
	}
}

func listPhotos(store *catalog.Store, libraryID int64) {
	photos, err := store.GetPhotos(libraryID, catalog.PhotoFilter{}, 0, 0)
	if err != nil {
		startup.LogFatal("Cannot list photos: %v", err)
	}
	printPhotos(photos)
}

func searchPhotos(store *catalog.Store, libraryID int64, query string) {
	photos, err := store.SearchPhotos(libraryID, query, 0)
	if err != nil {
		startup.LogFatal("Search error: %v", err)
	}
	printPhotos(photos)
}

func printPhotos(photos []catalog.Photo) {
	if len(photos) == 0 {
		fmt.Println("No photos.")
		return
	}
	for _, p := range photos {
		taken := ""
		if p.TakenAt != nil {
			taken = *p.TakenAt
		}
		dims := ""
		if p.Width != nil && p.Height != nil {
			dims = fmt.Sprintf("%dx%d", *p.Width, *p.Height)
		}
		fmt.Printf("%6d  %-20s %-9s %s  %s\n", p.ID, taken, dims, p.Kind, p.Path)
	}
}

func showStats(store *catalog.Store, libraryID int64) {
	years, err := store.Years(libraryID)
	if err != nil {
		startup.LogFatal("Cannot read year counts: %v", err)
	}
	kinds, err := store.KindCounts(libraryID)
	if err != nil {
		startup.LogFatal("Cannot read kind counts: %v", err)
	}
	favorites, err := store.FavoriteCount(libraryID)
	if err != nil {
		startup.LogFatal("Cannot read favorite count: %v", err)
	}
	trashed, err := store.TrashCount(libraryID)
	if err != nil {
		startup.LogFatal("Cannot read trash count: %v", err)
	}

	fmt.Println("By year:")
	for _, yc := range years {
		fmt.Printf("  %d  %6d\n", yc.Year, yc.Count)
	}
	fmt.Println("By kind:")
	for _, kc := range kinds {
		fmt.Printf("  %-6s %6d\n", kc.Kind, kc.Count)
	}
	fmt.Printf("Favorites: %d\n", favorites)
	fmt.Printf("Trashed:   %d\n", trashed)
}

func makeThumbnail(config *startup.Config, source string) {
	gen, err := thumbs.New(config.ThumbnailDir, thumbs.NewGate(config.ThumbConcurrency))
	if err != nil {
		startup.LogFatal("Thumbnail cache error: %v", err)
	}
	path, err := gen.Get(source)
	if err != nil {
		startup.LogFatal("Thumbnail error: %v", err)
	}
	fmt.Println(path)
}
