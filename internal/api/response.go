package api

import (
	"net/url"

	"media-repurposer-go/internal/resolver"
)

// tiktokResponse is the flat contract the publish UI consumes for
// TikTok posts.
type tiktokResponse struct {
	Source             string   `json:"source"`
	Sources            []string `json:"sources"`
	CleanURL           string   `json:"cleanUrl"`
	AuthorName         string   `json:"authorName"`
	AuthorUsername     string   `json:"authorUsername"`
	AuthorURL          string   `json:"authorUrl"`
	VideoID            string   `json:"videoId"`
	VideoTitle         string   `json:"videoTitle"`
	VideoThumbnail     string   `json:"videoThumbnail"`
	PublishTitle       string   `json:"publishTitle"`
	PublishDescription string   `json:"publishDescription"`
	PublishTags        string   `json:"publishTags"`
	PublishThumbnail   string   `json:"publishThumbnail"`
}

func tiktokResponseFromBundle(b resolver.Bundle) tiktokResponse {
	return tiktokResponse{
		Source:             b.PrimarySource,
		Sources:            b.AllSources,
		CleanURL:           b.CleanURL,
		AuthorName:         b.Author.Name,
		AuthorUsername:     b.Author.Username,
		AuthorURL:          b.Author.ProfileURL,
		VideoID:            b.Video.ID,
		VideoTitle:         b.Video.Title,
		VideoThumbnail:     b.Video.Thumbnail,
		PublishTitle:       b.Publish.Title,
		PublishDescription: b.Publish.Description,
		PublishTags:        b.Publish.Tags,
		PublishThumbnail:   b.Publish.Thumbnail,
	}
}

type genericAuthor struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

type genericVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}

// genericResponse mixes a nested author/video block with flat publish
// fields.
type genericResponse struct {
	Source             string        `json:"source"`
	Sources            []string      `json:"sources"`
	CleanURL           string        `json:"cleanUrl"`
	Platform           string        `json:"platform"`
	MediaCount         int           `json:"mediaCount"`
	HasAudio           bool          `json:"hasAudio"`
	HasImages          bool          `json:"hasImages"`
	Author             genericAuthor `json:"author"`
	Video              genericVideo  `json:"video"`
	PublishTitle       string        `json:"publishTitle"`
	PublishDescription string        `json:"publishDescription"`
	PublishTags        string        `json:"publishTags"`
	PublishThumbnail   string        `json:"publishThumbnail"`
}

func genericResponseFromBundle(b resolver.Bundle) genericResponse {
	thumb := proxiedImageURL(b.Platform, b.Video.Thumbnail)
	return genericResponse{
		Source:             b.PrimarySource,
		Sources:            b.AllSources,
		CleanURL:           b.CleanURL,
		Platform:           b.Platform,
		MediaCount:         b.MediaCount,
		HasAudio:           b.HasAudio,
		HasImages:          b.HasImages,
		Author: genericAuthor{
			Name:     b.Author.Name,
			Username: b.Author.Username,
			URL:      b.Author.ProfileURL,
		},
		Video: genericVideo{
			ID:        b.Video.ID,
			Title:     b.Video.Title,
			Thumbnail: thumb,
			Duration:  b.Video.Duration,
		},
		PublishTitle:       b.Publish.Title,
		PublishDescription: b.Publish.Description,
		PublishTags:        b.Publish.Tags,
		PublishThumbnail:   proxiedImageURL(b.Platform, b.Publish.Thumbnail),
	}
}

// proxiedImageURL reroutes Instagram-hosted thumbnails through the
// image proxy; their CDN rejects direct browser loads from other
// origins.
func proxiedImageURL(platform, imageURL string) string {
	if imageURL == "" || platform != "instagram" {
		return imageURL
	}
	return "/api/proxy-image?url=" + url.QueryEscape(imageURL)
}
