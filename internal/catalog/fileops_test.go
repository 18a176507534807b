package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))

	on, err := s.ToggleFavorite(p.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !on {
		t.Error("first toggle: got false, want true")
	}

	n, err := s.FavoriteCount(libID)
	if err != nil {
		t.Fatalf("FavoriteCount: %v", err)
	}
	if n != 1 {
		t.Errorf("FavoriteCount = %d, want 1", n)
	}

	// Toggling twice is a no-op overall.
	on, err = s.ToggleFavorite(p.ID)
	if err != nil {
		t.Fatalf("second ToggleFavorite: %v", err)
	}
	if on {
		t.Error("second toggle: got true, want false")
	}

	if _, err := s.ToggleFavorite(99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleFavorite on missing photo: err = %v, want ErrNotFound", err)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))
	mustUpsert(t, s, libID, testRecord("/photos/b.jpg", ""))

	if err := s.SoftDelete([]int64{p.ID}); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	photos, err := s.GetPhotos(libID, PhotoFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("GetPhotos: %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("listing after soft delete has %d photos, want 1", len(photos))
	}

	results, err := s.SearchPhotos(libID, "a.jpg", 0)
	if err != nil {
		t.Fatalf("SearchPhotos: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("search found %d trashed photos, want 0", len(results))
	}

	// Trashed photos stay addressable by id.
	got, err := s.GetPhotoByID(p.ID)
	if err != nil {
		t.Fatalf("GetPhotoByID: %v", err)
	}
	if !got.IsDeleted || got.DeletedAt == nil {
		t.Errorf("trashed photo: IsDeleted=%v DeletedAt=%v", got.IsDeleted, got.DeletedAt)
	}

	n, err := s.TrashCount(libID)
	if err != nil {
		t.Fatalf("TrashCount: %v", err)
	}
	if n != 1 {
		t.Errorf("TrashCount = %d, want 1", n)
	}

	trash, err := s.Trash(libID)
	if err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if len(trash) != 1 || trash[0].ID != p.ID {
		t.Errorf("Trash = %+v", trash)
	}

	if err := s.Restore([]int64{p.ID}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err = s.GetPhotoByID(p.ID)
	if err != nil {
		t.Fatalf("GetPhotoByID after restore: %v", err)
	}
	if got.IsDeleted || got.DeletedAt != nil {
		t.Errorf("restored photo: IsDeleted=%v DeletedAt=%v", got.IsDeleted, got.DeletedAt)
	}
}

func TestHardDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p1 := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))
	p2 := mustUpsert(t, s, libID, testRecord("/photos/b.jpg", ""))

	tag, err := s.CreateTag("keep", "")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := s.TagPhotos(tag.ID, []int64{p1.ID}); err != nil {
		t.Fatalf("TagPhotos: %v", err)
	}
	album, err := s.CreateAlbum("trip")
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if err := s.AddToAlbum(album.ID, []int64{p1.ID}); err != nil {
		t.Fatalf("AddToAlbum: %v", err)
	}

	paths, err := s.HardDelete([]int64{p1.ID})
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/photos/a.jpg" {
		t.Errorf("HardDelete paths = %v", paths)
	}

	if _, err := s.GetPhotoByID(p1.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted photo still retrievable: err = %v", err)
	}
	if _, err := s.GetPhotoByID(p2.ID); err != nil {
		t.Errorf("untouched photo gone: %v", err)
	}

	// Association rows go with the photo; the tag and album survive.
	tags, err := s.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("tag count after hard delete = %d, want 1", len(tags))
	}
	albumPhotos, err := s.AlbumPhotos(album.ID)
	if err != nil {
		t.Fatalf("AlbumPhotos: %v", err)
	}
	if len(albumPhotos) != 0 {
		t.Errorf("album still lists %d deleted photos", len(albumPhotos))
	}

	paths, err = s.HardDelete(nil)
	if err != nil {
		t.Fatalf("HardDelete(nil): %v", err)
	}
	if paths != nil {
		t.Errorf("HardDelete(nil) = %v, want nil", paths)
	}
}

func TestRenamePhoto(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p := mustUpsert(t, s, libID, testRecord(filepath.Join("/photos/trips", "old.jpg"), ""))

	newPath, err := s.RenamePhoto(p.ID, "new.jpg")
	if err != nil {
		t.Fatalf("RenamePhoto: %v", err)
	}
	want := filepath.Join("/photos/trips", "new.jpg")
	if newPath != want {
		t.Errorf("newPath = %s, want %s", newPath, want)
	}

	got, err := s.GetPhotoByID(p.ID)
	if err != nil {
		t.Fatalf("GetPhotoByID: %v", err)
	}
	if got.Path != want || got.Filename != "new.jpg" {
		t.Errorf("after rename: path=%s filename=%s", got.Path, got.Filename)
	}

	if _, err := s.RenamePhoto(99999, "x.jpg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenamePhoto on missing photo: err = %v, want ErrNotFound", err)
	}
}

func TestFavoritesListing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p1 := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", "2024-01-01T00:00:00Z"))
	mustUpsert(t, s, libID, testRecord("/photos/b.jpg", "2024-02-01T00:00:00Z"))

	if _, err := s.ToggleFavorite(p1.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	favs, err := s.Favorites(libID)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != p1.ID {
		t.Errorf("Favorites = %+v", favs)
	}

	// A trashed favorite drops out of both the listing and the count.
	if err := s.SoftDelete([]int64{p1.ID}); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	n, err := s.FavoriteCount(libID)
	if err != nil {
		t.Fatalf("FavoriteCount: %v", err)
	}
	if n != 0 {
		t.Errorf("FavoriteCount after trash = %d, want 0", n)
	}
}
