package resolver

import (
	"context"

	"media-repurposer-go/internal/media"
)

// Options carries per-request knobs a resolver may need. Cookie is an
// opaque session string for platforms that only serve media to
// authenticated scrapers.
type Options struct {
	Cookie string
}

// Metadata is the best-effort descriptive layer of a post. A nil
// *Metadata means the metadata fetch failed; that is never fatal.
type Metadata struct {
	Title           string
	Author          string
	AuthorUsername  string
	AuthorURL       string
	Thumbnail       string
	ThumbnailWidth  int
	ThumbnailHeight int
	Duration        string
	Music           string
	EmbedProductID  string
}

// Raw is a resolver's output before selection and normalization:
// the cleaned canonical URL, the structured candidate list (may be
// empty for simple posts), the flat source list, and metadata if any.
type Raw struct {
	CleanURL   string
	Candidates []media.Candidate
	Sources    []string
	Metadata   *Metadata
}

// Resolver turns a public post URL into raw downloadable media plus
// metadata. Implementations must honor ctx cancellation and return
// errors from the Error taxonomy in this package.
type Resolver interface {
	Resolve(ctx context.Context, url string, opts Options) (Raw, error)
}
