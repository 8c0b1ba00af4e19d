package imageproxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"media-repurposer-go/internal/config"
)

// Result is a fetched remote image ready to stream back to the caller.
type Result struct {
	Bytes       []byte
	ContentType string
}

// refererFor picks a plausible referer for the platform hosting the
// image; CDNs with hotlink protection reject requests without one.
func refererFor(imageURL string) string {
	u := strings.ToLower(imageURL)
	switch {
	case strings.Contains(u, "instagram") || strings.Contains(u, "cdninstagram") || strings.Contains(u, "fbcdn"):
		return "https://www.instagram.com/"
	case strings.Contains(u, "tiktok"):
		return "https://www.tiktok.com/"
	case strings.Contains(u, "pinimg") || strings.Contains(u, "pinterest"):
		return "https://www.pinterest.com/"
	default:
		return ""
	}
}

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher() *Fetcher {
	timeoutSec := config.AppConfig.HttpTimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 15
	}
	ua := config.AppConfig.ProxyUserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	}
	return &Fetcher{
		client:    &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		userAgent: ua,
	}
}

// Fetch retrieves the remote image once, browser-like headers attached.
// Any failure is a single generic error; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("fetch image: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if ref := refererFor(imageURL); ref != "" {
		req.Header.Set("Referer", ref)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("fetch image: status %s", resp.Status)
	}

	const maxImageBytes = 16 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return Result{}, fmt.Errorf("fetch image: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return Result{Bytes: body, ContentType: ct}, nil
}
