// Package extract pulls best-effort article text out of a web page. It is a
// soft collaborator: every failure mode (network, status, parse) returns an
// empty string and the caller falls back to the search snippet.
package extract

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/observability"
)

// maxBodyBytes caps how much of a page is read before parsing.
const maxBodyBytes = 2 << 20

var whitespaceRun = regexp.MustCompile(`\s+`)

// skipElements are containers whose text is boilerplate, not article body.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"footer":   true,
	"header":   true,
}

type Client struct {
	client  *http.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Extract fetches the URL and returns its visible text with whitespace runs
// collapsed to single spaces, or "" on any failure.
func (c *Client) Extract(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	log := observability.LoggerFromContext(ctx).With("url", rawURL)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Debug("extract: build request", "error", err)
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SearchOBar/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("extract: request failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug("extract: unexpected status", "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Debug("extract: read body", "error", err)
		return ""
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/plain") {
		return cleanText(string(body))
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		log.Debug("extract: parse html", "error", err)
		return ""
	}

	var sb strings.Builder
	collectText(doc, &sb, 0)
	return cleanText(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 50 {
		return
	}

	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb, depth+1)
	}
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
