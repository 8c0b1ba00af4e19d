package tiktok

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"media-repurposer-go/internal/normalize"
	"media-repurposer-go/internal/resolver"
)

// IsShortLink reports whether the URL is a vm/vt share link that needs
// redirect expansion before the canonical post URL is known.
func IsShortLink(url string) bool {
	u := strings.ToLower(url)
	return strings.Contains(u, "vm.tiktok.com/") || strings.Contains(u, "vt.tiktok.com/")
}

// expandShortLink follows the share-link redirect chain and returns the
// final location with its query string stripped. Failure here is fatal
// to the whole resolution.
func expandShortLink(ctx context.Context, rc *resty.Client, shortURL string) (string, error) {
	resp, err := rc.R().SetContext(ctx).Head(shortURL)
	if err != nil {
		return "", resolver.NewRedirectError("tiktok", shortURL, err)
	}
	raw := resp.RawResponse
	if raw == nil || raw.Request == nil || raw.Request.URL == nil {
		return "", resolver.NewRedirectError("tiktok", shortURL, nil)
	}
	return normalize.CleanURL(raw.Request.URL.String()), nil
}
