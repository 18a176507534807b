package thumbs

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"photo-catalog/internal/logging"
	"photo-catalog/internal/mediatypes"
	"photo-catalog/internal/metrics"
)

// ThumbSize is the bounding box a thumbnail fits within, preserving the
// source aspect ratio.
const ThumbSize = 320

const jpegQuality = 80

// ErrUnsupported is returned for sources that are not still photos.
var ErrUnsupported = errors.New("thumbnails are only generated for photos")

// Gate is a counting semaphore bounding concurrent thumbnail decodes.
// A single Gate can be shared across generators to cap the process-wide
// decode load.
type Gate chan struct{}

// NewGate returns a gate admitting up to n concurrent generations, with a
// default of 4 when n is not positive.
func NewGate(n int) Gate {
	if n <= 0 {
		n = 4
	}
	return make(Gate, n)
}

func (g Gate) acquire() { g <- struct{}{} }
func (g Gate) release() { <-g }

// Generator produces and caches thumbnails under a single cache
// directory, keyed by source path.
type Generator struct {
	cacheDir string
	gate     Gate
}

// New creates the cache directory if needed and returns a generator
// gated by the given semaphore.
func New(cacheDir string, gate Gate) (*Generator, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create thumbnail cache %s: %w", cacheDir, err)
	}
	return &Generator{cacheDir: cacheDir, gate: gate}, nil
}

// Path returns the cache file a source maps to, whether or not it exists
// yet. The key is a digest of the source path, so distinct sources never
// collide and the same source always lands on the same file.
func (g *Generator) Path(source string) string {
	sum := md5.Sum([]byte(source))
	return filepath.Join(g.cacheDir, hex.EncodeToString(sum[:])+".jpg")
}

// Get returns the cached thumbnail for source, generating it on a miss.
// Generation decodes the source, fits it inside ThumbSize squared, and
// writes a JPEG; concurrent decodes are bounded by the gate.
func (g *Generator) Get(source string) (string, error) {
	dest := g.Path(source)
	if _, err := os.Stat(dest); err == nil {
		metrics.ThumbnailCacheHits.Inc()
		return dest, nil
	}

	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("thumbnail source missing: %w", err)
	}
	if mediatypes.FromPath(source) != mediatypes.KindPhoto {
		return "", ErrUnsupported
	}

	g.gate.acquire()
	defer g.gate.release()
	metrics.ThumbnailsInFlight.Inc()
	defer metrics.ThumbnailsInFlight.Dec()

	// Another generation may have finished while this one waited.
	if _, err := os.Stat(dest); err == nil {
		metrics.ThumbnailCacheHits.Inc()
		return dest, nil
	}

	img, err := imaging.Open(source, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("cannot decode %s: %w", source, err)
	}
	thumb := imaging.Fit(img, ThumbSize, ThumbSize, imaging.Lanczos)

	// Write to a temp file and rename so a concurrent reader never sees a
	// half-written thumbnail.
	tmp, err := os.CreateTemp(g.cacheDir, "thumb-*.jpg")
	if err != nil {
		return "", err
	}
	if err := imaging.Encode(tmp, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cannot encode thumbnail for %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	metrics.ThumbnailsGenerated.Inc()
	logging.Debug("thumbs: generated %s for %s", filepath.Base(dest), source)
	return dest, nil
}
