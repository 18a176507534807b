package catalog

import "testing"

func TestAlbumLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p1 := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))
	p2 := mustUpsert(t, s, libID, testRecord("/photos/b.jpg", ""))
	p3 := mustUpsert(t, s, libID, testRecord("/photos/c.jpg", ""))

	album, err := s.CreateAlbum("summer")
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	// Insertion order, not timestamp order, defines album order.
	if err := s.AddToAlbum(album.ID, []int64{p3.ID, p1.ID}); err != nil {
		t.Fatalf("AddToAlbum: %v", err)
	}
	if err := s.AddToAlbum(album.ID, []int64{p2.ID}); err != nil {
		t.Fatalf("AddToAlbum second batch: %v", err)
	}

	photos, err := s.AlbumPhotos(album.ID)
	if err != nil {
		t.Fatalf("AlbumPhotos: %v", err)
	}
	wantOrder := []int64{p3.ID, p1.ID, p2.ID}
	if len(photos) != len(wantOrder) {
		t.Fatalf("got %d album photos, want %d", len(photos), len(wantOrder))
	}
	for i, p := range photos {
		if p.ID != wantOrder[i] {
			t.Errorf("album position %d: photo %d, want %d", i, p.ID, wantOrder[i])
		}
	}

	// Re-adding an existing member must not duplicate it or move it.
	if err := s.AddToAlbum(album.ID, []int64{p3.ID}); err != nil {
		t.Fatalf("AddToAlbum duplicate: %v", err)
	}
	photos, err = s.AlbumPhotos(album.ID)
	if err != nil {
		t.Fatalf("AlbumPhotos after duplicate add: %v", err)
	}
	if len(photos) != 3 || photos[0].ID != p3.ID {
		t.Errorf("duplicate add changed membership: %+v", photos)
	}

	if err := s.RemoveFromAlbum(album.ID, []int64{p1.ID}); err != nil {
		t.Fatalf("RemoveFromAlbum: %v", err)
	}
	photos, err = s.AlbumPhotos(album.ID)
	if err != nil {
		t.Fatalf("AlbumPhotos after remove: %v", err)
	}
	if len(photos) != 2 || photos[0].ID != p3.ID || photos[1].ID != p2.ID {
		t.Errorf("after remove: %+v", photos)
	}
}

func TestAlbumsListing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p1 := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))
	p2 := mustUpsert(t, s, libID, testRecord("/photos/b.jpg", ""))

	album, err := s.CreateAlbum("summer")
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if _, err := s.CreateAlbum("empty"); err != nil {
		t.Fatalf("CreateAlbum empty: %v", err)
	}
	if err := s.AddToAlbum(album.ID, []int64{p1.ID, p2.ID}); err != nil {
		t.Fatalf("AddToAlbum: %v", err)
	}

	albums, err := s.Albums()
	if err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("got %d albums, want 2", len(albums))
	}

	byName := map[string]Album{}
	for _, a := range albums {
		byName[a.Name] = a
	}
	summer := byName["summer"]
	if summer.PhotoCount != 2 {
		t.Errorf("summer PhotoCount = %d, want 2", summer.PhotoCount)
	}
	if summer.CoverPath == nil || *summer.CoverPath != "/photos/a.jpg" {
		t.Errorf("summer CoverPath = %v, want /photos/a.jpg", summer.CoverPath)
	}
	empty := byName["empty"]
	if empty.PhotoCount != 0 || empty.CoverPath != nil {
		t.Errorf("empty album: count=%d cover=%v", empty.PhotoCount, empty.CoverPath)
	}

	// Trashing the cover photo shifts the cover to the next member.
	if err := s.SoftDelete([]int64{p1.ID}); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	albums, err = s.Albums()
	if err != nil {
		t.Fatalf("Albums after trash: %v", err)
	}
	for _, a := range albums {
		if a.Name != "summer" {
			continue
		}
		if a.PhotoCount != 1 {
			t.Errorf("summer PhotoCount after trash = %d, want 1", a.PhotoCount)
		}
		if a.CoverPath == nil || *a.CoverPath != "/photos/b.jpg" {
			t.Errorf("summer CoverPath after trash = %v", a.CoverPath)
		}
	}
}

func TestRenameAndDeleteAlbum(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))

	album, err := s.CreateAlbum("draft")
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if err := s.AddToAlbum(album.ID, []int64{p.ID}); err != nil {
		t.Fatalf("AddToAlbum: %v", err)
	}

	if err := s.RenameAlbum(album.ID, "final"); err != nil {
		t.Fatalf("RenameAlbum: %v", err)
	}
	albums, err := s.Albums()
	if err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if len(albums) != 1 || albums[0].Name != "final" {
		t.Errorf("Albums after rename = %+v", albums)
	}

	if err := s.DeleteAlbum(album.ID); err != nil {
		t.Fatalf("DeleteAlbum: %v", err)
	}
	albums, err = s.Albums()
	if err != nil {
		t.Fatalf("Albums after delete: %v", err)
	}
	if len(albums) != 0 {
		t.Errorf("got %d albums after delete, want 0", len(albums))
	}

	// The member photo is untouched by album deletion.
	if _, err := s.GetPhotoByID(p.ID); err != nil {
		t.Errorf("photo lost with album: %v", err)
	}
}
