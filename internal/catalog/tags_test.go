package catalog

import "testing"

func TestCreateTag(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	tag, err := s.CreateTag("family", "")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tag.Color != defaultTagColor {
		t.Errorf("default color = %s, want %s", tag.Color, defaultTagColor)
	}

	// Creating the same name again returns the existing tag unchanged.
	again, err := s.CreateTag("family", "#ff0000")
	if err != nil {
		t.Fatalf("second CreateTag: %v", err)
	}
	if again.ID != tag.ID || again.Color != defaultTagColor {
		t.Errorf("re-create changed tag: %+v", again)
	}

	colored, err := s.CreateTag("work", "#00ff00")
	if err != nil {
		t.Fatalf("CreateTag with color: %v", err)
	}
	if colored.Color != "#00ff00" {
		t.Errorf("explicit color = %s", colored.Color)
	}

	tags, err := s.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "family" || tags[1].Name != "work" {
		t.Errorf("Tags = %+v", tags)
	}
}

func TestTagAndUntagPhotos(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p1 := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))
	p2 := mustUpsert(t, s, libID, testRecord("/photos/b.jpg", ""))

	tag, err := s.CreateTag("trip", "")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if err := s.TagPhotos(tag.ID, []int64{p1.ID, p2.ID}); err != nil {
		t.Fatalf("TagPhotos: %v", err)
	}
	// Tagging twice is harmless.
	if err := s.TagPhotos(tag.ID, []int64{p1.ID}); err != nil {
		t.Fatalf("repeat TagPhotos: %v", err)
	}

	got, err := s.PhotoTags(p1.ID)
	if err != nil {
		t.Fatalf("PhotoTags: %v", err)
	}
	if len(got) != 1 || got[0].Name != "trip" {
		t.Errorf("PhotoTags = %+v", got)
	}

	if err := s.UntagPhotos(tag.ID, []int64{p1.ID}); err != nil {
		t.Fatalf("UntagPhotos: %v", err)
	}
	got, err = s.PhotoTags(p1.ID)
	if err != nil {
		t.Fatalf("PhotoTags after untag: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("tags remain after untag: %+v", got)
	}

	// p2 keeps its tag.
	got, err = s.PhotoTags(p2.ID)
	if err != nil {
		t.Fatalf("PhotoTags p2: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("p2 tags = %+v", got)
	}
}

func TestDeleteTagCascades(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	libID := mustLibrary(t, s, "/photos")
	p := mustUpsert(t, s, libID, testRecord("/photos/a.jpg", ""))

	tag, err := s.CreateTag("temp", "")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := s.TagPhotos(tag.ID, []int64{p.ID}); err != nil {
		t.Fatalf("TagPhotos: %v", err)
	}

	if err := s.DeleteTag(tag.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	got, err := s.PhotoTags(p.ID)
	if err != nil {
		t.Fatalf("PhotoTags: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("associations survive tag deletion: %+v", got)
	}
}
