package normalize

import (
	"regexp"
	"strings"
)

var (
	hashtagRe      = regexp.MustCompile(`#[a-zA-Z0-9_]+`)
	hashtagStripRe = regexp.MustCompile(`#[a-zA-Z0-9_]+\s*`)
	spaceRunRe     = regexp.MustCompile(`\s{2,}`)
	nonWordRe      = regexp.MustCompile(`[^\w]`)
	tiktokUserRe   = regexp.MustCompile(`@([^/]+)`)
	tiktokVidRe    = regexp.MustCompile(`video/(\d+)`)
)

// PublishMetadata is the publish-ready slice of a content bundle.
type PublishMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Tags          string `json:"tags"`
	Thumbnail     string `json:"thumbnail"`
	OriginalTitle string `json:"originalTitle"`
}

// CleanTitle strips hashtags together with their trailing whitespace,
// collapses any whitespace run (newlines included) into one space and
// trims. Idempotent: cleaning a cleaned title is a no-op.
func CleanTitle(title string) string {
	out := hashtagStripRe.ReplaceAllString(title, "")
	out = spaceRunRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Description is the cleaned title, with an attribution line appended
// when the author is known.
func Description(title, author string) string {
	clean := CleanTitle(title)
	if strings.TrimSpace(author) == "" {
		return clean
	}
	return clean + "\n\nOriginal content by " + author
}

// Hashtags returns the hashtag bodies of a raw title in order of
// appearance, leading '#' stripped.
func Hashtags(title string) []string {
	matches := hashtagRe.FindAllString(title, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimPrefix(m, "#"))
	}
	return out
}

// Tags builds the ordered, deduplicated tag list and joins it with
// ", ". Dedupe is by exact string, not case-folded: "Fun" and "fun"
// are distinct on purpose, matching how the publish targets treat tags.
func Tags(title, author, platform string) string {
	var tags []string
	has := func(v string) bool {
		for _, t := range tags {
			if t == v {
				return true
			}
		}
		return false
	}

	for _, h := range Hashtags(title) {
		if !has(h) {
			tags = append(tags, h)
		}
	}

	// Only the first '@' is a handle marker; later ones stay put.
	cleanAuthor := strings.TrimSpace(strings.Replace(author, "@", "", 1))
	if cleanAuthor != "" && !has(cleanAuthor) {
		tags = append(tags, cleanAuthor)
	}

	// Display names carry no handle; split them into word pieces so a
	// multi-word or emoji-laden name still yields searchable tags.
	if author != "" && !strings.Contains(author, "@") {
		for _, part := range strings.Fields(author) {
			if len(part) <= 1 {
				continue
			}
			part = nonWordRe.ReplaceAllString(part, "")
			if part == "" || has(part) {
				continue
			}
			tags = append(tags, part)
		}
	}

	if platform != "" && platform != "unknown" && !has(platform) {
		tags = append(tags, platform)
	}

	for _, t := range []string{"shorts", "viral", "trending"} {
		if !has(t) {
			tags = append(tags, t)
		}
	}

	return strings.Join(tags, ", ")
}

// Publish derives the full publish metadata for a post.
func Publish(rawTitle, rawAuthor, platform, thumbnail string) PublishMetadata {
	return PublishMetadata{
		Title:         CleanTitle(rawTitle),
		Description:   Description(rawTitle, rawAuthor),
		Tags:          Tags(rawTitle, rawAuthor, platform),
		Thumbnail:     thumbnail,
		OriginalTitle: rawTitle,
	}
}

// Username extracts the author handle, preferring the part after '@' in
// the author string, then platform-specific URL path rules. Returns ""
// when nothing usable is found; never panics on malformed input.
func Username(author, sourceURL, platform string) string {
	if strings.Contains(author, "@") {
		parts := strings.SplitN(author, "@", 3)
		return strings.TrimSpace(parts[1])
	}
	switch platform {
	case "tiktok", "douyin":
		if m := tiktokUserRe.FindStringSubmatch(sourceURL); m != nil {
			return m[1]
		}
	case "instagram", "twitter":
		return firstPathSegment(sourceURL)
	}
	return ""
}

// ProfileURL builds the author's profile link from a fixed per-platform
// template. Platforms without a template yield "".
func ProfileURL(platform, username string) string {
	if username == "" {
		return ""
	}
	switch platform {
	case "tiktok":
		return "https://www.tiktok.com/@" + username
	case "instagram":
		return "https://www.instagram.com/" + username
	case "twitter":
		return "https://twitter.com/" + username
	case "youtube":
		return "https://www.youtube.com/@" + username
	default:
		return ""
	}
}

// VideoID pulls a best-effort post identifier out of the source URL.
// Display/logging only; malformed URLs degrade to "".
func VideoID(sourceURL, platform string) string {
	switch platform {
	case "youtube":
		if v := queryParam(sourceURL, "v"); v != "" {
			return v
		}
		if _, after, ok := strings.Cut(sourceURL, "youtu.be/"); ok {
			id, _, _ := strings.Cut(after, "?")
			return strings.Trim(id, "/")
		}
		return ""
	case "tiktok", "douyin":
		if m := tiktokVidRe.FindStringSubmatch(sourceURL); m != nil {
			return m[1]
		}
		return ""
	case "instagram":
		for _, marker := range []string{"/p/", "/reel/"} {
			if _, after, ok := strings.Cut(sourceURL, marker); ok {
				id, _, _ := strings.Cut(after, "/")
				id, _, _ = strings.Cut(id, "?")
				return id
			}
		}
		return ""
	default:
		trimmed := strings.TrimRight(sourceURL, "/")
		trimmed, _, _ = strings.Cut(trimmed, "?")
		if i := strings.LastIndex(trimmed, "/"); i >= 0 {
			return trimmed[i+1:]
		}
		// No path at all: nothing that resembles an id.
		return ""
	}
}

// CleanURL strips the query string and fragment from the input URL.
func CleanURL(raw string) string {
	out, _, _ := strings.Cut(raw, "?")
	out, _, _ = strings.Cut(out, "#")
	return out
}

func firstPathSegment(rawURL string) string {
	rest := rawURL
	if _, after, ok := strings.Cut(rest, "://"); ok {
		rest = after
	}
	_, after, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	seg, _, _ := strings.Cut(after, "/")
	seg, _, _ = strings.Cut(seg, "?")
	return seg
}

func queryParam(rawURL, key string) string {
	_, qs, ok := strings.Cut(rawURL, "?")
	if !ok {
		return ""
	}
	for _, pair := range strings.Split(qs, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == key {
			return v
		}
	}
	return ""
}
