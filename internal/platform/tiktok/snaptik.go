package tiktok

import (
	"context"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/resolver"
)

// SnaptikClient talks to a snaptik-style download service: scrape a
// one-shot form token from the landing page, post the video URL, then
// decode the eval-packed script in the response to get direct media
// links.
type SnaptikClient struct {
	rc   *resty.Client
	base string
}

func NewSnaptikClient() *SnaptikClient {
	base := config.AppConfig.SnaptikBaseURL
	if base == "" {
		base = "https://snaptik.app"
	}
	return &SnaptikClient{rc: newHTTPClient(), base: base}
}

// Process resolves a canonical TikTok post URL into direct media URLs.
func (c *SnaptikClient) Process(ctx context.Context, postURL string) ([]string, error) {
	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, resolver.NewUpstreamUnavailableError("tiktok", postURL, err)
	}

	r, err := c.rc.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"url":   postURL,
			"lang":  "en",
			"token": token,
		}).
		Post(c.base + "/abc2.php")
	if err != nil {
		return nil, resolver.NewUpstreamUnavailableError("tiktok", postURL, err)
	}
	if r.IsError() {
		return nil, resolver.NewUpstreamUnavailableError("tiktok", postURL,
			fmt.Errorf("download service status=%d", r.StatusCode()))
	}

	markup, err := decodePayload(r.String())
	if err != nil {
		return nil, resolver.Error{
			Kind:     resolver.ErrorKindUpstreamProvider,
			Platform: "tiktok",
			URL:      postURL,
			Msg:      "undecodable download service payload",
			Err:      err,
		}
	}

	sources := collectDownloadLinks(markup, c.base)
	return sources, nil
}

// fetchToken loads the service landing page and reads the hidden token
// input its download form carries.
func (c *SnaptikClient) fetchToken(ctx context.Context) (string, error) {
	r, err := c.rc.R().SetContext(ctx).Get(c.base + "/")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("token page status=%d", r.StatusCode())
	}
	token := findTokenInput(r.String())
	if token == "" {
		return "", fmt.Errorf("token input not found")
	}
	return token, nil
}

func findTokenInput(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}
	var token string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if token != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "input" {
			var name, value string
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "value":
					value = a.Val
				}
			}
			if name == "token" {
				token = value
				return
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return token
}

// decodePayload evaluates the service's eval-packed response. The
// packer wraps an IIFE whose return value is the script eval would run;
// capturing it instead of eval-ing exposes the embedded markup. Plain
// HTML responses pass through untouched.
func decodePayload(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "eval(") {
		return trimmed, nil
	}

	rt := goja.New()
	script := "var __decoded = " + strings.TrimPrefix(trimmed, "eval(")
	// Drop the trailing ')' that matched the eval opener.
	if i := strings.LastIndex(script, ")"); i >= 0 {
		script = script[:i] + script[i+1:]
	}
	if _, err := rt.RunString(script); err != nil {
		return "", fmt.Errorf("run packed payload: %w", err)
	}
	val := rt.Get("__decoded")
	if val == nil {
		return "", fmt.Errorf("packed payload produced no output")
	}
	out, ok := val.Export().(string)
	if !ok {
		return "", fmt.Errorf("packed payload returned non-string")
	}
	return unescapeInline(out), nil
}

// unescapeInline undoes the JS string escaping the decoded markup
// arrives with when it was destined for innerHTML assignment.
func unescapeInline(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\/`, `/`)
	s = strings.ReplaceAll(s, `\'`, `'`)
	return s
}

// collectDownloadLinks walks the decoded markup and keeps every
// absolute link that does not point back at the service itself.
func collectDownloadLinks(markup, selfBase string) []string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	selfBase = strings.TrimPrefix(strings.TrimPrefix(selfBase, "https://"), "http://")

	var out []string
	seen := map[string]struct{}{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				href := strings.TrimSpace(a.Val)
				if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
					continue
				}
				if selfBase != "" && strings.Contains(href, selfBase) {
					continue
				}
				if _, ok := seen[href]; ok {
					continue
				}
				seen[href] = struct{}{}
				out = append(out, href)
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return out
}
