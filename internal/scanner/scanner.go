package scanner

import (
	"io/fs"
	"path/filepath"

	"photo-catalog/internal/logging"
	"photo-catalog/internal/mediatypes"
)

// CollectMediaPaths walks the tree rooted at root and returns the paths of
// all files whose extension matches the photo or video allow-list. The walk
// does a single pass, does not follow symbolic links, and silently skips
// entries that cannot be read (permission errors, races with deletion).
//
// The result is in traversal order; callers must not rely on any particular
// ordering. No per-file metadata is read here, so the caller can report a
// total candidate count before expensive per-file work starts.
func CollectMediaPaths(root string) []string {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug("scanner: skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// WalkDir reports symlinks as non-directories and never descends
		// into them, so a link to a directory is filtered out here too.
		if !d.Type().IsRegular() {
			return nil
		}
		if mediatypes.IsMedia(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		// The walk callback never returns an error, but keep the guard in
		// case WalkDir itself fails on the root entry.
		logging.Warn("scanner: walk of %s ended early: %v", root, err)
	}

	return paths
}
