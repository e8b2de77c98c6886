// Package answer holds the top-level routing logic: fresh queries go through
// classification, retrieval and grounded generation with general-reasoning
// fallbacks; follow-ups try source fast-paths before full-history chat.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/classify"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/refs"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/sources"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/observability"
)

// errorPrefix tags answers produced by a failed generator call. Tagged
// answers are still shown to the caller but never seed a session.
const errorPrefix = "[ERROR]"

type Service struct {
	search      domain.SearchProvider
	fetcher     *sources.Fetcher
	gen         domain.Generator
	store       domain.SessionStore
	searchCount int
}

func NewService(
	search domain.SearchProvider,
	fetcher *sources.Fetcher,
	gen domain.Generator,
	store domain.SessionStore,
	searchCount int,
) *Service {
	return &Service{
		search:      search,
		fetcher:     fetcher,
		gen:         gen,
		store:       store,
		searchCount: searchCount,
	}
}

type AskResult struct {
	Answer string

	// Results are the raw search triples for UI display. The session keeps
	// the enriched source list internally; the two payloads differ on
	// purpose.
	Results []domain.SearchResult

	// SessionID is empty when the answer was empty or error-tagged.
	SessionID domain.SessionID
}

// Ask answers a fresh query. Collaborator soft failures (empty search,
// insufficient grounding context) are routing branches, not errors: every
// path ends in some answer text, which is why Ask itself does not fail.
func (s *Service) Ask(ctx context.Context, query string) AskResult {
	log := observability.LoggerFromContext(ctx).With("query", query)

	var (
		answer  string
		results []domain.SearchResult
		full    []domain.Source
	)

	switch {
	case classify.IsSimpleLogical(query):
		log.Info("answer path: general reasoning (simple logic bypass)")
		answer = s.general(ctx, query)

	default:
		results = s.search.Search(ctx, query, s.searchCount)
		if len(results) == 0 {
			log.Info("answer path: general reasoning (empty search results)")
			answer = s.general(ctx, query)
			break
		}

		full = s.fetcher.Build(ctx, results)
		log.Info("answer path: grounded generation", "result_count", len(results))

		ans, err := s.gen.Grounded(ctx, query, full)
		switch {
		case err != nil:
			log.Error("grounded generation failed", "error", err)
			answer = errorPrefix + " " + err.Error()
		case ans.Insufficient():
			log.Info("grounded context insufficient, falling back to general reasoning")
			answer = s.general(ctx, query)
			results, full = nil, nil
		default:
			answer = ans.Text()
		}
	}

	res := AskResult{Answer: answer, Results: results}
	if answer != "" && !strings.HasPrefix(answer, errorPrefix) {
		res.SessionID = s.store.Create(query, answer, full)
		log.Info("session created", "session_id", res.SessionID, "source_count", len(full))
	}
	return res
}

// FollowUp continues an existing session. Pair detection runs strictly
// before single-index detection, so a message matching both is always
// treated as a comparison. An index outside the source list silently falls
// through to the full-history path.
func (s *Service) FollowUp(ctx context.Context, id domain.SessionID, text string) (string, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return "", domain.ErrSessionNotFound
	}

	log := observability.LoggerFromContext(ctx).With("session_id", id)
	n := len(session.Sources)

	if i, j, ok := refs.DetectPair(text); ok && inBounds(i, n) && inBounds(j, n) {
		log.Info("follow-up fast-path: compare", "first", i, "second", j)
		question := fmt.Sprintf(
			"Compare ONLY these two sources (# %d and # %d). "+
				"Highlight similarities, differences, main arguments, tone, and key insights. "+
				"User request: %s", i, j, text)
		pair := []domain.Source{session.Sources[i-1], session.Sources[j-1]}
		return s.groundedReply(ctx, id, text, question, pair)
	}

	if i, ok := refs.DetectIndex(text); ok && inBounds(i, n) {
		log.Info("follow-up fast-path: summarize", "index", i)
		target := session.Sources[i-1]
		if target.Content == "" && target.Snippet == "" {
			// the original fetch failed; repair it just in time
			target.Content = s.fetcher.Refetch(ctx, target.URL)
		}
		question := fmt.Sprintf("Summarize ONLY the selected source (#%d). %s", i, text)
		return s.groundedReply(ctx, id, text, question, []domain.Source{target})
	}

	log.Info("follow-up default path: full-history chat")
	messages := append(session.Messages, domain.Message{Role: domain.RoleUser, Content: text})
	reply, err := s.gen.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return reply, s.appendTurn(id, text, reply)
}

// History returns the session transcript in storage order.
func (s *Service) History(id domain.SessionID) ([]domain.Message, bool) {
	return s.store.History(id)
}

// groundedReply runs a fast-path generation with its insufficient-context
// fallback, then records the turn. The transcript stores the user's literal
// text, not the synthesized instruction.
func (s *Service) groundedReply(ctx context.Context, id domain.SessionID, userText, question string, srcs []domain.Source) (string, error) {
	ans, err := s.gen.Grounded(ctx, question, srcs)
	if err != nil {
		return "", err
	}

	reply := ans.Text()
	if ans.Insufficient() {
		reply, err = s.gen.General(ctx, userText)
		if err != nil {
			return "", err
		}
	}
	return reply, s.appendTurn(id, userText, reply)
}

// appendTurn records a completed exchange. Called only after a successful
// reply so a failed generation never partially mutates the transcript.
func (s *Service) appendTurn(id domain.SessionID, userText, reply string) error {
	return s.store.AppendTurn(id,
		domain.Message{Role: domain.RoleUser, Content: userText},
		domain.Message{Role: domain.RoleAssistant, Content: reply},
	)
}

func (s *Service) general(ctx context.Context, query string) string {
	text, err := s.gen.General(ctx, query)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("general generation failed", "error", err)
		return errorPrefix + " " + err.Error()
	}
	return text
}

func inBounds(i, n int) bool {
	return i >= 1 && i <= n
}
