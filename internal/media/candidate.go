package media

import (
	"net/url"
	"path"
	"strings"
)

type Type string

const (
	TypeVideo   Type = "video"
	TypeImage   Type = "image"
	TypeAudio   Type = "audio"
	TypeUnknown Type = ""
)

// Candidate is one downloadable asset extracted from an upstream
// response. URL may carry opaque, expiring authorization tokens in its
// query string; it is used as-is, never rewritten.
type Candidate struct {
	ID        string `json:"id,omitempty"`
	URL       string `json:"url"`
	Type      Type   `json:"type,omitempty"`
	Extension string `json:"extension,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

var videoExts = map[string]struct{}{
	"mp4": {}, "mov": {}, "webm": {}, "m4v": {},
}

var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "heic": {},
}

// manifestMarkers identify streaming-manifest URLs that carry no file
// extension but are still playable video.
var manifestMarkers = []string{".m3u8", "/manifest", "dash_baseline", "_video_dashinit"}

// ExtFromURL returns the lower-cased file extension of the URL path,
// ignoring the query string. Malformed input yields "".
func ExtFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		// Query-strip by hand; upstream URLs are not always RFC-clean.
		raw, _, _ = strings.Cut(raw, "?")
		ext := strings.TrimPrefix(path.Ext(raw), ".")
		return strings.ToLower(ext)
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	return strings.ToLower(ext)
}

// InferType classifies a candidate without an explicit type by its URL
// shape: known video extension or manifest marker first, then static
// image extension, else unknown.
func InferType(rawURL string) Type {
	ext := ExtFromURL(rawURL)
	if _, ok := videoExts[ext]; ok {
		return TypeVideo
	}
	lower := strings.ToLower(rawURL)
	for _, m := range manifestMarkers {
		if strings.Contains(lower, m) {
			return TypeVideo
		}
	}
	if _, ok := imageExts[ext]; ok {
		return TypeImage
	}
	return TypeUnknown
}

// EffectiveType is the candidate's declared type, or the URL-inferred
// one when absent.
func (c Candidate) EffectiveType() Type {
	t := Type(strings.ToLower(strings.TrimSpace(string(c.Type))))
	switch t {
	case TypeVideo, TypeImage, TypeAudio:
		return t
	}
	return InferType(c.URL)
}

// EffectiveExtension is the declared extension, or the one inferred
// from the URL when absent.
func (c Candidate) EffectiveExtension() string {
	ext := strings.ToLower(strings.TrimSpace(c.Extension))
	if ext != "" {
		return ext
	}
	return ExtFromURL(c.URL)
}
