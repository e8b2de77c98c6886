package domain

// Message is a single entry in a session transcript. Transcripts are
// append-only: messages are never edited or removed once stored.
type Message struct {
	Role    Role
	Content string
}

// SearchResult is the raw title/url/snippet triple returned by the search
// provider, before any article extraction.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// Source is a search result enriched with the extracted article body.
// Content may be empty when extraction failed; Snippet is the fallback body.
// Sources are ordered and referenced 1-indexed by follow-up messages
// ("first link", "compare 1 and 3"), so their order must match the search
// provider's ranking exactly.
type Source struct {
	Title   string
	URL     string
	Snippet string
	Content string
}

// Body returns the text used to ground the model on this source.
func (s Source) Body() string {
	if s.Content != "" {
		return s.Content
	}
	return s.Snippet
}

// Session owns one transcript and one source list. The source list is fixed
// at creation; only the transcript grows, by appended user/assistant pairs.
type Session struct {
	ID        SessionID
	Messages  []Message
	Sources   []Source
	CreatedAt Timestamp
	UpdatedAt Timestamp
}
