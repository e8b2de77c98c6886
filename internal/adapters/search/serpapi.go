// Package search shims the external search provider behind the
// domain.SearchProvider port. It queries SerpAPI's Google engine; without an
// API key it serves fixed mock results so the rest of the pipeline can run
// locally.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/observability"
)

const defaultEndpoint = "https://serpapi.com/search.json"

type SerpAPI struct {
	apiKey   string
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

func NewSerpAPI(apiKey string, timeout time.Duration) *SerpAPI {
	return &SerpAPI{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{},
		timeout:  timeout,
	}
}

// serpResponse covers the slice of the SerpAPI payload we consume. Results
// sometimes carry the URL under "link" and sometimes under "url".
type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search returns up to count ranked results. Provider failures are logged
// and produce an empty slice, never an error: a failed search is a routing
// branch (fall back to general reasoning), not a request failure.
func (s *SerpAPI) Search(ctx context.Context, query string, count int) []domain.SearchResult {
	if s.apiKey == "" {
		return mockResults()
	}

	log := observability.LoggerFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", fmt.Sprint(count))
	params.Set("gl", "us")
	params.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Error("search: build request", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("search: request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("search: unexpected status", "status", resp.StatusCode)
		return nil
	}

	var payload serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("search: decode response", "error", err)
		return nil
	}
	if payload.Error != "" {
		log.Error("search: provider error", "detail", payload.Error)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(payload.OrganicResults))
	for _, item := range payload.OrganicResults {
		u := item.Link
		if u == "" {
			u = item.URL
		}
		results = append(results, domain.SearchResult{
			Title:   item.Title,
			URL:     u,
			Snippet: item.Snippet,
		})
	}
	return results
}

func mockResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Title:   "Mock Result 1",
			URL:     "https://example.com/1",
			Snippet: "Mock snippet from mock search results.",
		},
		{
			Title:   "Mock Result 2",
			URL:     "https://example.com/2",
			Snippet: "Another mock snippet from mock search results.",
		},
	}
}
