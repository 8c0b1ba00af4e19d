package generic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/media"
	"media-repurposer-go/internal/normalize"
	"media-repurposer-go/internal/resolver"
)

// Resolver covers every platform the aggregator API can scrape. One
// POST per resolution; the response is validated and coerced into
// typed candidates right here so no untyped blob crosses the boundary.
type Resolver struct {
	rc      *resty.Client
	base    string
	apiKey  string
	apiHost string
}

func NewResolver() *Resolver {
	base := config.AppConfig.AggregatorBaseURL
	if base == "" {
		base = "https://auto-download-all-in-one.p.rapidapi.com"
	}

	timeoutSec := config.AppConfig.HttpTimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 15
	}
	rc := resty.New()
	rc.SetTimeout(time.Duration(timeoutSec) * time.Second)

	retryCount := config.AppConfig.HttpRetryCount
	if retryCount > 0 {
		baseMs := config.AppConfig.HttpRetryBaseDelayMs
		if baseMs <= 0 {
			baseMs = 500
		}
		maxMs := config.AppConfig.HttpRetryMaxDelayMs
		if maxMs <= 0 {
			maxMs = 4000
		}
		rc.SetRetryCount(retryCount)
		rc.SetRetryWaitTime(time.Duration(baseMs) * time.Millisecond)
		rc.SetRetryMaxWaitTime(time.Duration(maxMs) * time.Millisecond)
		rc.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			if r == nil {
				return false
			}
			code := r.StatusCode()
			return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
		})
	}

	return &Resolver{
		rc:      rc,
		base:    base,
		apiKey:  config.AppConfig.AggregatorAPIKey,
		apiHost: config.AppConfig.AggregatorAPIHost,
	}
}

func (r *Resolver) Resolve(ctx context.Context, url string, opts resolver.Options) (resolver.Raw, error) {
	if url == "" {
		return resolver.Raw{}, resolver.NewValidationError("URL is required")
	}
	tag := "generic"

	payload := map[string]string{"url": url}
	if opts.Cookie != "" {
		payload["cookie"] = opts.Cookie
	}

	var body aggregatorResponse
	resp, err := r.rc.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetHeader("X-RapidAPI-Key", r.apiKey).
		SetHeader("X-RapidAPI-Host", r.apiHost).
		SetBody(payload).
		SetResult(&body).
		Post(r.base + "/v1/social/autolink")
	if err != nil {
		return resolver.Raw{}, resolver.NewUpstreamUnavailableError(tag, url, err)
	}
	if resp.IsError() {
		return resolver.Raw{}, resolver.NewUpstreamUnavailableError(tag, url,
			fmt.Errorf("aggregator status=%d", resp.StatusCode()))
	}
	if msg, failed := body.errorMessage(); failed {
		return resolver.Raw{}, resolver.NewUpstreamProviderError(tag, url, msg)
	}

	candidates := make([]media.Candidate, 0, len(body.Medias))
	for _, m := range body.Medias {
		if m.URL == "" {
			continue
		}
		candidates = append(candidates, media.Candidate{
			ID:        m.ID.String(),
			URL:       m.URL,
			Type:      media.Type(m.Type),
			Extension: m.Extension,
			Quality:   m.Quality,
			Thumbnail: m.Thumbnail,
		})
	}

	sources := body.Sources
	if len(sources) == 0 && body.Source != "" {
		sources = []string{body.Source}
	}

	return resolver.Raw{
		CleanURL:   normalize.CleanURL(url),
		Candidates: candidates,
		Sources:    sources,
		Metadata: &resolver.Metadata{
			Title:     body.Title,
			Author:    body.Author,
			Thumbnail: body.Thumbnail,
			Duration:  body.Duration,
		},
	}, nil
}
