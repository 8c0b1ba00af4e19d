package tiktok

import (
	"context"

	"github.com/go-resty/resty/v2"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/logger"
	"media-repurposer-go/internal/media"
	"media-repurposer-go/internal/normalize"
	"media-repurposer-go/internal/resolver"
)

// Resolver implements the TikTok ingestion path: optional short-link
// expansion, then oEmbed metadata and the download service in parallel.
// Only the download leg is fatal; metadata failures degrade to nil.
type Resolver struct {
	rc      *resty.Client
	oembed  *OembedClient
	snaptik *SnaptikClient
}

func NewResolver() *Resolver {
	return &Resolver{
		rc:      newHTTPClient(),
		oembed:  NewOembedClient(),
		snaptik: NewSnaptikClient(),
	}
}

func (r *Resolver) Resolve(ctx context.Context, url string, opts resolver.Options) (resolver.Raw, error) {
	if url == "" {
		return resolver.Raw{}, resolver.NewValidationError("URL is required")
	}

	cleanURL := normalize.CleanURL(url)
	if IsShortLink(url) {
		expanded, err := expandShortLink(ctx, r.rc, url)
		if err != nil {
			return resolver.Raw{}, err
		}
		cleanURL = expanded
	}

	type metaResult struct {
		md  *resolver.Metadata
		err error
	}
	metaCh := make(chan metaResult, 1)
	go func() {
		md, err := r.oembed.Fetch(ctx, cleanURL)
		metaCh <- metaResult{md: md, err: err}
	}()

	sources, err := r.snaptik.Process(ctx, cleanURL)
	if err != nil {
		return resolver.Raw{}, err
	}
	if len(sources) == 0 {
		if fb := config.AppConfig.FallbackVideoURL; fb != "" {
			logger.Warn("download service returned no sources, using fallback", "url", cleanURL)
			sources = []string{fb}
		}
	}
	if len(sources) == 0 {
		return resolver.Raw{}, resolver.NewNoMediaError("tiktok", cleanURL)
	}

	meta := <-metaCh
	if meta.err != nil {
		logger.Warn("oembed metadata unavailable", "url", cleanURL, "err", meta.err)
		meta.md = nil
	}

	candidates := make([]media.Candidate, 0, len(sources))
	for _, s := range sources {
		candidates = append(candidates, media.Candidate{URL: s, Type: media.TypeVideo, Extension: "mp4"})
	}

	return resolver.Raw{
		CleanURL:   cleanURL,
		Candidates: candidates,
		Sources:    sources,
		Metadata:   meta.md,
	}, nil
}
