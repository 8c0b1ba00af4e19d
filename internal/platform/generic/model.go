package generic

import "encoding/json"

// aggregatorMedia is one entry of the aggregator's medias[] array for
// multi-media (carousel) posts.
type aggregatorMedia struct {
	ID        json.Number `json:"id"`
	URL       string      `json:"url"`
	Thumbnail string      `json:"thumbnail"`
	Quality   string      `json:"quality"`
	Type      string      `json:"type"`
	Extension string      `json:"extension"`
}

// aggregatorResponse is the raw autolink payload. The shape varies per
// platform: simple posts carry source/sources, carousels carry medias.
// The error field is a string message on failure and the JSON literal
// false on success, hence json.RawMessage.
type aggregatorResponse struct {
	URL       string            `json:"url"`
	Source    string            `json:"source"`
	Sources   []string          `json:"sources"`
	Title     string            `json:"title"`
	Author    string            `json:"author"`
	Shortcode string            `json:"shortcode"`
	Thumbnail string            `json:"thumbnail"`
	Duration  string            `json:"duration"`
	Medias    []aggregatorMedia `json:"medias"`
	Type      string            `json:"type"`
	Error     json.RawMessage   `json:"error"`
}

// errorMessage extracts the provider's failure message, if the payload
// reported one. The aggregator encodes success as error:false.
func (r aggregatorResponse) errorMessage() (string, bool) {
	raw := string(r.Error)
	switch raw {
	case "", "false", "null":
		return "", false
	case "true":
		return "upstream reported an unspecified error", true
	}
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err == nil {
		if msg == "" {
			return "", false
		}
		return msg, true
	}
	return raw, true
}
