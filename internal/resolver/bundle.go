package resolver

import (
	"media-repurposer-go/internal/media"
	"media-repurposer-go/internal/normalize"
)

// Author is the heuristically derived creator identity.
type Author struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	ProfileURL string `json:"url"`
}

// Video groups the display-oriented post fields.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
	Music     string `json:"music,omitempty"`
}

// Bundle is the unified, platform-agnostic record handed to the
// publish step. Constructed fresh per resolution; never persisted here.
type Bundle struct {
	PrimarySource string   `json:"source"`
	AllSources    []string `json:"sources"`
	CleanURL      string   `json:"cleanUrl"`
	Platform      string   `json:"platform"`
	MediaCount    int      `json:"mediaCount"`
	HasAudio      bool     `json:"hasAudio"`
	HasImages     bool     `json:"hasImages"`

	Author  Author                    `json:"author"`
	Video   Video                     `json:"video"`
	Publish normalize.PublishMetadata `json:"publish"`

	// Bucketed views feeding the carousel-shape decision.
	Videos []string            `json:"videos"`
	Images []string            `json:"images"`
	Shape  media.CarouselShape `json:"shape"`
}

// Build derives a Bundle from a resolver's raw output. Selection runs
// over the structured candidates, falling back to the flat source list
// when no candidate survives. Every secondary derivation degrades to an
// empty value rather than failing the build.
func Build(inputURL, platform string, raw Raw) Bundle {
	sel := media.Select(raw.Candidates)
	if sel.Primary == "" && len(raw.Sources) > 0 {
		sel = media.SelectFromSources(raw.Sources)
	}

	cleanURL := raw.CleanURL
	if cleanURL == "" {
		cleanURL = normalize.CleanURL(inputURL)
	}

	b := Bundle{
		PrimarySource: sel.Primary,
		AllSources:    sel.All,
		CleanURL:      cleanURL,
		Platform:      platform,
		MediaCount:    len(raw.Candidates),
		HasAudio:      sel.HasAudio,
		HasImages:     len(sel.Images) > 0,
		Videos:        sel.Videos,
		Images:        sel.Images,
		Shape:         media.Shape(sel.Videos, sel.Images),
	}
	if b.MediaCount == 0 {
		b.MediaCount = len(raw.Sources)
	}

	md := raw.Metadata
	if md == nil {
		md = &Metadata{}
	}

	// URL-derived fields prefer the caller's original URL: cleaning
	// strips the query string, and some rules (youtube watch?v=) live
	// entirely in the query.
	username := md.AuthorUsername
	if username == "" {
		username = normalize.Username(md.Author, inputURL, platform)
	}
	if username == "" {
		username = normalize.Username(md.Author, cleanURL, platform)
	}
	profileURL := md.AuthorURL
	if profileURL == "" {
		profileURL = normalize.ProfileURL(platform, username)
	}
	b.Author = Author{Name: md.Author, Username: username, ProfileURL: profileURL}

	videoID := md.EmbedProductID
	if videoID == "" {
		videoID = normalize.VideoID(inputURL, platform)
	}
	if videoID == "" {
		videoID = normalize.VideoID(cleanURL, platform)
	}
	b.Video = Video{
		ID:        videoID,
		Title:     md.Title,
		Thumbnail: md.Thumbnail,
		Duration:  md.Duration,
		Music:     md.Music,
	}

	b.Publish = normalize.Publish(md.Title, md.Author, platform, md.Thumbnail)
	return b
}
