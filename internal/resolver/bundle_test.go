package resolver

import (
	"context"
	"strings"
	"testing"

	"media-repurposer-go/internal/media"
)

func TestBuildFromCandidates(t *testing.T) {
	raw := Raw{
		CleanURL: "https://www.tiktok.com/@jane/video/123",
		Candidates: []media.Candidate{
			{URL: "https://cdn.example.com/hd.mp4", Type: media.TypeVideo, Extension: "mp4", Quality: "1080p"},
			{URL: "https://cdn.example.com/sd.mp4", Type: media.TypeVideo, Extension: "mp4", Quality: "360p"},
			{URL: "https://cdn.example.com/p.jpg", Type: media.TypeImage, Extension: "jpg"},
		},
		Metadata: &Metadata{
			Title:          "Hello #fun world",
			Author:         "Jane Doe @jane",
			Thumbnail:      "https://cdn.example.com/t.jpg",
			EmbedProductID: "123",
			Music:          "original sound - jane",
		},
	}

	b := Build("https://vt.tiktok.com/ZSabc/", "tiktok", raw)

	if b.PrimarySource != "https://cdn.example.com/hd.mp4" {
		t.Errorf("primary = %q, want highest-quality mp4", b.PrimarySource)
	}
	if b.CleanURL != "https://www.tiktok.com/@jane/video/123" {
		t.Errorf("clean url = %q", b.CleanURL)
	}
	if b.MediaCount != 3 {
		t.Errorf("media count = %d, want 3", b.MediaCount)
	}
	if !b.HasImages {
		t.Error("hasImages should be true")
	}
	if b.Shape != media.ShapeMixedCarousel {
		t.Errorf("shape = %q, want mixed_carousel", b.Shape)
	}
	if b.Author.Username != "jane" {
		t.Errorf("username = %q, want jane (derived from author handle)", b.Author.Username)
	}
	if b.Author.ProfileURL != "https://www.tiktok.com/@jane" {
		t.Errorf("profile url = %q", b.Author.ProfileURL)
	}
	if b.Video.ID != "123" {
		t.Errorf("video id = %q, want embed product id", b.Video.ID)
	}
	if b.Video.Music != "original sound - jane" {
		t.Errorf("music = %q", b.Video.Music)
	}
	if b.Publish.Title != "Hello world" {
		t.Errorf("publish title = %q", b.Publish.Title)
	}
	if !strings.Contains(b.Publish.Tags, "fun") {
		t.Errorf("publish tags = %q, want hashtag included", b.Publish.Tags)
	}
}

func TestBuildFallsBackToSources(t *testing.T) {
	raw := Raw{
		Sources: []string{"https://cdn.example.com/v.mp4"},
	}
	b := Build("https://www.tiktok.com/@jane/video/9?x=1", "tiktok", raw)

	if b.PrimarySource != "https://cdn.example.com/v.mp4" {
		t.Errorf("primary = %q", b.PrimarySource)
	}
	if b.CleanURL != "https://www.tiktok.com/@jane/video/9" {
		t.Errorf("clean url = %q, want derived from input", b.CleanURL)
	}
	if b.MediaCount != 1 {
		t.Errorf("media count = %d, want source count", b.MediaCount)
	}
}

func TestBuildVideoIDFromQueryParameter(t *testing.T) {
	raw := Raw{
		Sources: []string{"https://cdn.example.com/v.mp4"},
	}
	b := Build("https://www.youtube.com/watch?v=abc123", "youtube", raw)

	// Cleaning strips the query string, so the id must come from the
	// original input URL.
	if b.Video.ID != "abc123" {
		t.Fatalf("video id = %q, want abc123", b.Video.ID)
	}
	if b.CleanURL != "https://www.youtube.com/watch" {
		t.Fatalf("clean url = %q", b.CleanURL)
	}
}

func TestBuildNilMetadataDegrades(t *testing.T) {
	raw := Raw{
		CleanURL: "https://www.tiktok.com/@jane/video/55",
		Sources:  []string{"https://cdn.example.com/v.mp4"},
	}
	b := Build("https://www.tiktok.com/@jane/video/55", "tiktok", raw)

	if b.Author.Name != "" {
		t.Errorf("author name = %q, want empty", b.Author.Name)
	}
	if b.Video.ID != "55" {
		t.Errorf("video id = %q, want URL-derived", b.Video.ID)
	}
	if !strings.Contains(b.Publish.Tags, "trending") {
		t.Errorf("publish tags = %q, want defaults present", b.Publish.Tags)
	}
}

func TestBuildEmptyRaw(t *testing.T) {
	b := Build("https://www.tiktok.com/@jane/video/1", "tiktok", Raw{})
	if b.PrimarySource != "" || b.MediaCount != 0 {
		t.Fatalf("empty raw should produce empty bundle, got %+v", b)
	}
	if b.AllSources == nil || b.Videos == nil || b.Images == nil {
		t.Fatal("slice fields must be non-nil empty slices")
	}
	if b.Shape != media.ShapeEmpty {
		t.Fatalf("shape = %q, want empty", b.Shape)
	}
}

func TestKindOfFoldsContextErrors(t *testing.T) {
	if KindOf(context.Canceled) != ErrorKindCanceled {
		t.Error("context.Canceled should fold to canceled")
	}
	if KindOf(context.DeadlineExceeded) != ErrorKindTimeout {
		t.Error("context.DeadlineExceeded should fold to timeout")
	}
	wrapped := NewUpstreamUnavailableError("tiktok", "u", context.DeadlineExceeded)
	if KindOf(wrapped) != ErrorKindUpstreamUnavailable {
		t.Error("explicit kind wins over wrapped context error")
	}
	if KindOf(nil) != "" {
		t.Error("nil error has no kind")
	}
}

func TestErrorString(t *testing.T) {
	err := NewUpstreamProviderError("instagram", "https://www.instagram.com/p/x/", "Video is private")
	got := err.Error()
	if !strings.Contains(got, "instagram") || !strings.Contains(got, "Video is private") {
		t.Fatalf("error string = %q", got)
	}
}
