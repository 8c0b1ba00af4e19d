package tiktok

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/resolver"
)

// oembedResponse mirrors TikTok's oEmbed payload; only the fields the
// normalizer consumes are mapped.
type oembedResponse struct {
	AuthorName      string `json:"author_name"`
	AuthorUniqueID  string `json:"author_unique_id"`
	AuthorURL       string `json:"author_url"`
	Title           string `json:"title"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
	EmbedProductID  string `json:"embed_product_id"`
	HTML            string `json:"html"`
}

type OembedClient struct {
	rc   *resty.Client
	base string
}

func NewOembedClient() *OembedClient {
	base := config.AppConfig.OembedBaseURL
	if base == "" {
		base = "https://www.tiktok.com"
	}
	return &OembedClient{rc: newHTTPClient(), base: base}
}

// Fetch retrieves post metadata. Callers treat any error as
// metadata-absent; it never fails the resolution.
func (c *OembedClient) Fetch(ctx context.Context, postURL string) (*resolver.Metadata, error) {
	var body oembedResponse
	r, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("url", postURL).
		SetResult(&body).
		Get(c.base + "/oembed")
	if err != nil {
		return nil, err
	}
	if r.IsError() {
		return nil, fmt.Errorf("oembed status=%d", r.StatusCode())
	}

	return &resolver.Metadata{
		Title:           body.Title,
		Author:          body.AuthorName,
		AuthorUsername:  body.AuthorUniqueID,
		AuthorURL:       body.AuthorURL,
		Thumbnail:       body.ThumbnailURL,
		ThumbnailWidth:  body.ThumbnailWidth,
		ThumbnailHeight: body.ThumbnailHeight,
		EmbedProductID:  body.EmbedProductID,
		Music:           ExtractMusic(body.HTML),
	}, nil
}
