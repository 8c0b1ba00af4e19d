package tiktok

import "regexp"

// The oEmbed html fragment carries the music attribution between a
// music-note character and the closing tag of its span.
var musicRe = regexp.MustCompile(`♬\s*(.*?)\s*<`)

// ExtractMusic pulls the music attribution out of an oEmbed html
// fragment. Missing or drifted markup yields "".
func ExtractMusic(htmlFragment string) string {
	m := musicRe.FindStringSubmatch(htmlFragment)
	if m == nil {
		return ""
	}
	return m[1]
}
