package platform

import "strings"

type Tag string

const (
	TagTikTok      Tag = "tiktok"
	TagDouyin      Tag = "douyin"
	TagInstagram   Tag = "instagram"
	TagYouTube     Tag = "youtube"
	TagFacebook    Tag = "facebook"
	TagTwitter     Tag = "twitter"
	TagPinterest   Tag = "pinterest"
	TagReddit      Tag = "reddit"
	TagVimeo       Tag = "vimeo"
	TagSnapchat    Tag = "snapchat"
	TagLinkedIn    Tag = "linkedin"
	TagXiaohongshu Tag = "xiaohongshu"
	TagUnknown     Tag = "unknown"
)

// classifyOrder is checked first to last; the first domain hit wins.
// Order matters: short-link domains could overlap broader patterns.
var classifyOrder = []struct {
	tag     Tag
	domains []string
}{
	{TagTikTok, []string{"tiktok.com", "vm.tiktok", "vt.tiktok"}},
	{TagDouyin, []string{"douyin.com"}},
	{TagInstagram, []string{"instagram.com"}},
	{TagYouTube, []string{"youtube.com", "youtu.be"}},
	{TagFacebook, []string{"facebook.com", "fb.com", "fb.watch"}},
	{TagTwitter, []string{"twitter.com", "x.com"}},
	{TagPinterest, []string{"pinterest.com", "pin.it"}},
	{TagReddit, []string{"reddit.com"}},
	{TagVimeo, []string{"vimeo.com"}},
	{TagSnapchat, []string{"snapchat.com"}},
	{TagLinkedIn, []string{"linkedin.com"}},
	{TagXiaohongshu, []string{"xiaohongshu.com", "xhslink.com"}},
}

// Classify maps any URL string, malformed ones included, to a platform
// tag. Empty input and unmatched domains yield TagUnknown. Pure, never
// panics.
func Classify(url string) Tag {
	u := strings.ToLower(strings.TrimSpace(url))
	if u == "" {
		return TagUnknown
	}
	for _, entry := range classifyOrder {
		for _, d := range entry.domains {
			if strings.Contains(u, d) {
				return entry.tag
			}
		}
	}
	return TagUnknown
}

// Tags lists every known platform tag in classifier priority order,
// TagUnknown excluded.
func Tags() []Tag {
	out := make([]Tag, 0, len(classifyOrder))
	for _, entry := range classifyOrder {
		out = append(out, entry.tag)
	}
	return out
}
