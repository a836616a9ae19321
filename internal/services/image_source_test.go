package services

import (
	"mime/multipart"
	"testing"
)

func TestNormalizeRejectsMixedSources(t *testing.T) {
	in := &ImageInput{
		Files: []*multipart.FileHeader{{Filename: "a.jpg"}},
		URLs:  []string{"https://cdn.example.com/a.jpg"},
	}

	verr := in.Normalize()
	if verr == nil {
		t.Fatal("expected error for mixed files and urls")
	}
	got := verr.Fields["image_urls"]
	if len(got) != 1 || got[0] != "The image_urls field cannot be used when uploading images files." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestNormalizeThumbnailCountMismatch(t *testing.T) {
	in := &ImageInput{
		URLs:          []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		ThumbnailURLs: []string{"https://cdn.example.com/a_t.jpg"},
	}

	verr := in.Normalize()
	if verr == nil {
		t.Fatal("expected count mismatch error")
	}
	got := verr.Fields["image_thumbnail_urls"]
	if len(got) != 1 || got[0] != "The image_thumbnail_urls count must match image_urls count." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestNormalizeClampsPrimaryIndex(t *testing.T) {
	in := &ImageInput{
		URLs:         []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		PrimaryIndex: 7,
	}

	if verr := in.Normalize(); verr != nil {
		t.Fatalf("unexpected error: %v", verr.Fields)
	}
	if in.PrimaryIndex != 0 {
		t.Fatalf("primary index = %d, want 0", in.PrimaryIndex)
	}

	refs := in.URLRefs()
	if !refs[0].IsPrimary || refs[1].IsPrimary {
		t.Fatal("expected first ref to be primary after clamping")
	}
}

func TestNormalizeTooManyURLs(t *testing.T) {
	urls := make([]string, 7)
	for i := range urls {
		urls[i] = "https://cdn.example.com/a.jpg"
	}

	verr := (&ImageInput{URLs: urls}).Normalize()
	if verr == nil {
		t.Fatal("expected error for 7 urls")
	}
	got := verr.Fields["image_urls"]
	if len(got) != 1 || got[0] != "The image_urls may not have more than 6 items." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestNormalizeRequiredEmpty(t *testing.T) {
	verr := (&ImageInput{Required: true}).Normalize()
	if verr == nil {
		t.Fatal("expected required error")
	}
	got := verr.Fields["images"]
	if len(got) != 1 || got[0] != "The images field is required." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestNormalizeOptionalEmpty(t *testing.T) {
	if verr := (&ImageInput{}).Normalize(); verr != nil {
		t.Fatalf("unexpected error: %v", verr.Fields)
	}
}

func TestNormalizeRejectsBadExtension(t *testing.T) {
	in := &ImageInput{Files: []*multipart.FileHeader{{Filename: "malware.exe"}}}

	verr := in.Normalize()
	if verr == nil {
		t.Fatal("expected extension error")
	}
	got := verr.Fields["images"]
	if len(got) != 1 || got[0] != "The images must be a file of type: jpg, jpeg, png, webp." {
		t.Fatalf("unexpected message: %v", got)
	}
}
