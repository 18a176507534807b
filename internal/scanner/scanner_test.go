package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCollectMediaPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	included := []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "B.JPG"),
		filepath.Join(root, "sub", "c.png"),
		filepath.Join(root, "sub", "deep", "d.Mp4"),
		filepath.Join(root, "e.heic"),
	}
	excluded := []string{
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "sub", "doc.pdf"),
		filepath.Join(root, "noext"),
	}

	for _, p := range append(append([]string{}, included...), excluded...) {
		writeFile(t, p)
	}

	got := CollectMediaPaths(root)
	sort.Strings(got)
	want := append([]string{}, included...)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("CollectMediaPaths returned %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectMediaPathsSkipsSymlinkedDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "hidden.jpg"))
	writeFile(t, filepath.Join(root, "real.jpg"))

	link := filepath.Join(root, "linked")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := CollectMediaPaths(root)
	if len(got) != 1 {
		t.Fatalf("CollectMediaPaths = %v, want only the real file", got)
	}
	if got[0] != filepath.Join(root, "real.jpg") {
		t.Errorf("CollectMediaPaths[0] = %q, want real.jpg", got[0])
	}
}

func TestCollectMediaPathsMissingRoot(t *testing.T) {
	t.Parallel()

	got := CollectMediaPaths(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(got) != 0 {
		t.Errorf("CollectMediaPaths on missing root = %v, want empty", got)
	}
}

func TestCollectMediaPathsEmptyDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := CollectMediaPaths(root); len(got) != 0 {
		t.Errorf("CollectMediaPaths on empty tree = %v, want empty", got)
	}
}
