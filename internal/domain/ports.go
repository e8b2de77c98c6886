package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a follow-up references an unknown or
// evicted session token.
var ErrSessionNotFound = errors.New("session not found")

// SearchProvider returns ranked results for a query. Implementations never
// fail: any provider error yields an empty slice so the caller can fall back
// to general reasoning.
type SearchProvider interface {
	Search(ctx context.Context, query string, count int) []SearchResult
}

// ArticleExtractor fetches a URL and returns best-effort extracted plain
// text, or "" on any failure. It never fails the caller.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) string
}

// Generator defines how the application talks to the language model.
type Generator interface {
	// Grounded answers using only the supplied sources. The Insufficient
	// variant is returned when the model judges them inadequate. A non-nil
	// error means a hard failure (transport, timeout), not a policy branch.
	Grounded(ctx context.Context, query string, sources []Source) (Answer, error)

	// General answers from the model's own reasoning, without sources.
	General(ctx context.Context, query string) (string, error)

	// Chat continues a multi-turn conversation over the full transcript.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// SessionStore keeps per-session conversational state. Implementations must
// be safe for concurrent use and must serialize appends on the same session.
type SessionStore interface {
	Create(query, answer string, sources []Source) SessionID
	Get(id SessionID) (Session, bool)
	AppendTurn(id SessionID, user, assistant Message) error
	History(id SessionID) ([]Message, bool)
}
