package generic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/media"
	"media-repurposer-go/internal/resolver"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantMsg string
		wantErr bool
	}{
		{"success false literal", `false`, "", false},
		{"absent", ``, "", false},
		{"null", `null`, "", false},
		{"string message", `"This post is private"`, "This post is private", true},
		{"empty string", `""`, "", false},
		{"true literal", `true`, "upstream reported an unspecified error", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := aggregatorResponse{Error: json.RawMessage(c.raw)}
			msg, failed := r.errorMessage()
			if failed != c.wantErr || msg != c.wantMsg {
				t.Fatalf("errorMessage() = (%q, %v), want (%q, %v)", msg, failed, c.wantMsg, c.wantErr)
			}
		})
	}
}

func newAggregator(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config.AppConfig.AggregatorBaseURL = srv.URL
	config.AppConfig.AggregatorAPIKey = "test-key"
	config.AppConfig.AggregatorAPIHost = "test-host"
	t.Cleanup(func() {
		config.AppConfig.AggregatorBaseURL = ""
		config.AppConfig.AggregatorAPIKey = ""
		config.AppConfig.AggregatorAPIHost = ""
	})
	return NewResolver()
}

func TestResolveCarousel(t *testing.T) {
	var gotKey, gotHost, gotPath string
	var gotBody map[string]string
	r := newAggregator(t, func(w http.ResponseWriter, req *http.Request) {
		gotKey = req.Header.Get("X-RapidAPI-Key")
		gotHost = req.Header.Get("X-RapidAPI-Host")
		gotPath = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(b, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"url": "https://www.instagram.com/p/abc/",
			"title": "A carousel",
			"author": "jane",
			"thumbnail": "https://cdn.example.com/t.jpg",
			"duration": "12",
			"error": false,
			"medias": [
				{"id": "111", "url": "https://cdn.example.com/v.mp4", "quality": "720p", "type": "video", "extension": "mp4"},
				{"id": "222", "url": "https://cdn.example.com/p.jpg", "type": "image", "extension": "jpg"},
				{"id": "333", "url": "", "type": "image", "extension": "jpg"}
			]
		}`)
	})

	raw, err := r.Resolve(context.Background(), "https://www.instagram.com/p/abc/?igsh=xyz", resolver.Options{Cookie: "sessionid=abc"})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}

	if gotPath != "/v1/social/autolink" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" || gotHost != "test-host" {
		t.Errorf("rapidapi headers = %q / %q", gotKey, gotHost)
	}
	if gotBody["url"] != "https://www.instagram.com/p/abc/?igsh=xyz" {
		t.Errorf("posted url = %q", gotBody["url"])
	}
	if gotBody["cookie"] != "sessionid=abc" {
		t.Errorf("posted cookie = %q", gotBody["cookie"])
	}

	if raw.CleanURL != "https://www.instagram.com/p/abc/" {
		t.Errorf("clean url = %q", raw.CleanURL)
	}
	if len(raw.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2 (empty URL dropped)", len(raw.Candidates))
	}
	if raw.Candidates[0].Type != media.TypeVideo || raw.Candidates[0].Quality != "720p" {
		t.Errorf("candidate[0] = %+v", raw.Candidates[0])
	}
	if raw.Metadata == nil || raw.Metadata.Title != "A carousel" || raw.Metadata.Author != "jane" {
		t.Errorf("metadata = %+v", raw.Metadata)
	}
}

func TestResolveSingleSourceFallback(t *testing.T) {
	r := newAggregator(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"source": "https://cdn.example.com/only.mp4", "title": "t", "error": false}`)
	})

	raw, err := r.Resolve(context.Background(), "https://www.facebook.com/watch?v=1", resolver.Options{})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if len(raw.Sources) != 1 || raw.Sources[0] != "https://cdn.example.com/only.mp4" {
		t.Fatalf("sources = %v", raw.Sources)
	}
}

func TestResolveProviderError(t *testing.T) {
	r := newAggregator(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error": "Video is private", "title": "should never surface"}`)
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/p/priv/", resolver.Options{})
	var re resolver.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected resolver.Error, got %v", err)
	}
	if re.Kind != resolver.ErrorKindUpstreamProvider {
		t.Fatalf("kind = %v, want upstream_provider", re.Kind)
	}
	if re.Msg != "Video is private" {
		t.Fatalf("msg = %q, want provider message verbatim", re.Msg)
	}
}

func TestResolveUpstreamDown(t *testing.T) {
	r := newAggregator(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/p/abc/", resolver.Options{})
	if resolver.KindOf(err) != resolver.ErrorKindUpstreamUnavailable {
		t.Fatalf("error kind = %v, want upstream_unavailable", resolver.KindOf(err))
	}
}

func TestResolveEmptyURL(t *testing.T) {
	r := newAggregator(t, func(w http.ResponseWriter, req *http.Request) {})
	_, err := r.Resolve(context.Background(), "", resolver.Options{})
	if resolver.KindOf(err) != resolver.ErrorKindValidation {
		t.Fatalf("error kind = %v, want validation", resolver.KindOf(err))
	}
}
