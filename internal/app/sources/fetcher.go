// Package sources turns raw search results into the enriched source set a
// session stores for grounding and follow-up references.
package sources

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/observability"
)

type Fetcher struct {
	extractor   domain.ArticleExtractor
	concurrency int
}

func NewFetcher(extractor domain.ArticleExtractor, concurrency int) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// Build enriches each search result with extracted article text, preserving
// the provider's ordering. Extraction failures yield empty content rather
// than failing the batch. Fetches run concurrently with a bounded limit;
// each goroutine writes only its own slot, so the output is identical to a
// sequential pass.
func (f *Fetcher) Build(ctx context.Context, results []domain.SearchResult) []domain.Source {
	out := make([]domain.Source, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, r := range results {
		i, r := i, r
		out[i] = domain.Source{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
		}
		if r.URL == "" {
			continue
		}
		g.Go(func() error {
			out[i].Content = f.Refetch(gctx, r.URL)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	if len(results) > 0 {
		observability.LoggerFromContext(ctx).Debug("built source set", "count", len(out))
	}
	return out
}

// Refetch extracts a single article, applying the same hard content cap as
// Build. Used by the follow-up path to lazily repair a fetch that failed at
// session creation time.
func (f *Fetcher) Refetch(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}
	return truncate(f.extractor.Extract(ctx, url), domain.MaxSourceContentChars)
}

// truncate caps the text to max characters. Enforced here regardless of any
// limit the extractor applies on its own.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
