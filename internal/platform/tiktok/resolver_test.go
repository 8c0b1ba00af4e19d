package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/resolver"
)

func TestIsShortLink(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://vt.tiktok.com/ZSabc/", true},
		{"https://vm.tiktok.com/ZMxyz/", true},
		{"https://VT.TikTok.com/ZSabc/", true},
		{"https://www.tiktok.com/@jane/video/123", false},
		{"https://example.com/vt.tiktok", false},
	}
	for _, c := range cases {
		if got := IsShortLink(c.url); got != c.want {
			t.Errorf("IsShortLink(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestExpandShortLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/short" {
			http.Redirect(w, r, "/@jane/video/123?lang=en&share_id=42", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	got, err := expandShortLink(context.Background(), newHTTPClient(), srv.URL+"/short")
	if err != nil {
		t.Fatalf("expandShortLink err: %v", err)
	}
	want := srv.URL + "/@jane/video/123"
	if got != want {
		t.Fatalf("expanded = %q, want %q (query must be stripped)", got, want)
	}
}

func TestExpandShortLinkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := expandShortLink(context.Background(), newHTTPClient(), srv.URL+"/short")
	if resolver.KindOf(err) != resolver.ErrorKindRedirect {
		t.Fatalf("error kind = %v, want redirect", resolver.KindOf(err))
	}
}

func TestOembedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oembed" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"author_name": "Jane Doe",
			"author_unique_id": "jane",
			"author_url": "https://www.tiktok.com/@jane",
			"title": "My video #fun",
			"thumbnail_url": "https://cdn.example.com/t.jpg",
			"thumbnail_width": 720,
			"thumbnail_height": 1280,
			"embed_product_id": "7123",
			"html": "<blockquote><a href=\"x\">♬ original sound - jane</a></blockquote>"
		}`)
	}))
	defer srv.Close()

	config.AppConfig.OembedBaseURL = srv.URL
	t.Cleanup(func() { config.AppConfig.OembedBaseURL = "" })

	md, err := NewOembedClient().Fetch(context.Background(), "https://www.tiktok.com/@jane/video/7123")
	if err != nil {
		t.Fatalf("Fetch err: %v", err)
	}
	if md.Author != "Jane Doe" || md.AuthorUsername != "jane" {
		t.Fatalf("author = %q / %q", md.Author, md.AuthorUsername)
	}
	if md.EmbedProductID != "7123" {
		t.Fatalf("embed product id = %q", md.EmbedProductID)
	}
	if md.Music != "original sound - jane" {
		t.Fatalf("music = %q", md.Music)
	}
	if md.ThumbnailWidth != 720 || md.ThumbnailHeight != 1280 {
		t.Fatalf("thumbnail dims = %dx%d", md.ThumbnailWidth, md.ThumbnailHeight)
	}
}

func setupResolveBackends(t *testing.T, snaptikBody string, oembedStatus int) {
	t.Helper()
	snaptik := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, tokenPage)
			return
		}
		fmt.Fprint(w, snaptikBody)
	}))
	t.Cleanup(snaptik.Close)

	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if oembedStatus != http.StatusOK {
			w.WriteHeader(oembedStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"author_name":"Jane","author_unique_id":"jane","title":"hi"}`)
	}))
	t.Cleanup(oembed.Close)

	config.AppConfig.SnaptikBaseURL = snaptik.URL
	config.AppConfig.OembedBaseURL = oembed.URL
	t.Cleanup(func() {
		config.AppConfig.SnaptikBaseURL = ""
		config.AppConfig.OembedBaseURL = ""
		config.AppConfig.FallbackVideoURL = ""
	})
}

func TestResolveFullPath(t *testing.T) {
	setupResolveBackends(t, `<div><a href="https://cdn.example.com/v.mp4">Download</a></div>`, http.StatusOK)

	raw, err := NewResolver().Resolve(context.Background(), "https://www.tiktok.com/@jane/video/123?is_copy_url=1", resolver.Options{})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if raw.CleanURL != "https://www.tiktok.com/@jane/video/123" {
		t.Fatalf("clean url = %q", raw.CleanURL)
	}
	if len(raw.Sources) != 1 || raw.Sources[0] != "https://cdn.example.com/v.mp4" {
		t.Fatalf("sources = %v", raw.Sources)
	}
	if len(raw.Candidates) != 1 || raw.Candidates[0].Extension != "mp4" {
		t.Fatalf("candidates = %v", raw.Candidates)
	}
	if raw.Metadata == nil || raw.Metadata.Author != "Jane" {
		t.Fatalf("metadata = %+v", raw.Metadata)
	}
}

func TestResolveMetadataFailureIsNotFatal(t *testing.T) {
	setupResolveBackends(t, `<div><a href="https://cdn.example.com/v.mp4">Download</a></div>`, http.StatusInternalServerError)

	raw, err := NewResolver().Resolve(context.Background(), "https://www.tiktok.com/@jane/video/123", resolver.Options{})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if raw.Metadata != nil {
		t.Fatalf("metadata should be nil on oembed failure, got %+v", raw.Metadata)
	}
	if len(raw.Sources) != 1 {
		t.Fatalf("sources = %v", raw.Sources)
	}
}

func TestResolveFallbackVideo(t *testing.T) {
	setupResolveBackends(t, `<div>no links here</div>`, http.StatusOK)
	config.AppConfig.FallbackVideoURL = "https://static.example.com/fallback.mp4"

	raw, err := NewResolver().Resolve(context.Background(), "https://www.tiktok.com/@jane/video/123", resolver.Options{})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if len(raw.Sources) != 1 || raw.Sources[0] != "https://static.example.com/fallback.mp4" {
		t.Fatalf("sources = %v, want fallback", raw.Sources)
	}
}

func TestResolveNoMedia(t *testing.T) {
	setupResolveBackends(t, `<div>no links here</div>`, http.StatusOK)
	config.AppConfig.FallbackVideoURL = ""

	_, err := NewResolver().Resolve(context.Background(), "https://www.tiktok.com/@jane/video/123", resolver.Options{})
	if resolver.KindOf(err) != resolver.ErrorKindNoMedia {
		t.Fatalf("error kind = %v, want no_media", resolver.KindOf(err))
	}
}

func TestResolveEmptyURL(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), "", resolver.Options{})
	if resolver.KindOf(err) != resolver.ErrorKindValidation {
		t.Fatalf("error kind = %v, want validation", resolver.KindOf(err))
	}
}
