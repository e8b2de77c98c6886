package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/http"
	memstore "github.com/Lakshya-Patwari/Search-O-Bar/internal/adapters/storage/memory"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/answer"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/sources"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

type stubSearch struct {
	results []domain.SearchResult
}

func (s *stubSearch) Search(ctx context.Context, query string, count int) []domain.SearchResult {
	return s.results
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, url string) string { return "" }

type stubGenerator struct {
	groundedAnswer domain.Answer
	generalAnswer  string
	chatAnswer     string
	chatErr        error

	groundedCalls [][]domain.Source
}

func (g *stubGenerator) Grounded(ctx context.Context, query string, srcs []domain.Source) (domain.Answer, error) {
	g.groundedCalls = append(g.groundedCalls, srcs)
	return g.groundedAnswer, nil
}

func (g *stubGenerator) General(ctx context.Context, query string) (string, error) {
	return g.generalAnswer, nil
}

func (g *stubGenerator) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	return g.chatAnswer, g.chatErr
}

func newTestServer(t *testing.T, srch *stubSearch, gen *stubGenerator) http.Handler {
	t.Helper()

	store := memstore.NewSessionStore(0)
	t.Cleanup(store.Close)

	fetcher := sources.NewFetcher(stubExtractor{}, 2)
	svc := answer.NewService(srch, fetcher, gen, store, 6)
	return httpadapter.NewServer(svc)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubSearch{}, &stubGenerator{})

	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAskEmptyQuery(t *testing.T) {
	srv := newTestServer(t, &stubSearch{}, &stubGenerator{})

	w := doJSON(t, srv, http.MethodPost, "/api/ask", map[string]string{"query": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskAndHistoryEndToEnd(t *testing.T) {
	srch := &stubSearch{results: []domain.SearchResult{
		{Title: "R1", URL: "https://example.com/1", Snippet: "s1"},
		{Title: "R2", URL: "https://example.com/2", Snippet: "s2"},
	}}
	gen := &stubGenerator{groundedAnswer: domain.GroundedAnswer("line one\nline two [1]")}
	srv := newTestServer(t, srch, gen)

	w := doJSON(t, srv, http.MethodPost, "/api/ask", map[string]string{"query": "latest news on chip exports"})
	require.Equal(t, http.StatusOK, w.Code)

	var askResp struct {
		Answer    string `json:"answer"`
		SessionID *string `json:"session_id"`
		Sources   []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &askResp))

	assert.Equal(t, "line one<br>line two [1]", askResp.Answer, "newlines become <br> at the boundary")
	require.NotNil(t, askResp.SessionID)
	require.Len(t, askResp.Sources, 2)
	assert.Equal(t, "R1", askResp.Sources[0].Title)

	// history comes back in UI sender format, 4 transcript entries
	w = doJSON(t, srv, http.MethodGet, "/api/chat/history?session_id="+*askResp.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var histResp struct {
		History []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &histResp))
	require.Len(t, histResp.History, 4)
	assert.Equal(t, "bot", histResp.History[0].Sender)
	assert.Equal(t, "user", histResp.History[2].Sender)
	assert.Equal(t, "latest news on chip exports", histResp.History[2].Text)
	assert.Equal(t, "line one<br>line two [1]", histResp.History[3].Text, "stored raw, rendered with <br>")
}

func TestAskFallbackReturnsEmptySources(t *testing.T) {
	srch := &stubSearch{results: []domain.SearchResult{
		{Title: "R1", URL: "https://example.com/1", Snippet: "s1"},
	}}
	gen := &stubGenerator{
		groundedAnswer: domain.InsufficientAnswer(),
		generalAnswer:  "fallback answer",
	}
	srv := newTestServer(t, srch, gen)

	w := doJSON(t, srv, http.MethodPost, "/api/ask", map[string]string{"query": "something obscure"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Answer  string            `json:"answer"`
		Sources []json.RawMessage `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fallback answer", resp.Answer)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources, "sources must be an empty list, not null")
}

func TestHistoryValidation(t *testing.T) {
	srv := newTestServer(t, &stubSearch{}, &stubGenerator{})

	w := doJSON(t, srv, http.MethodGet, "/api/chat/history", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/chat/history?session_id=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatValidation(t *testing.T) {
	srv := newTestServer(t, &stubSearch{}, &stubGenerator{})

	w := doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{"session_id": "", "query": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{"session_id": "unknown", "query": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatCompareFastPath(t *testing.T) {
	srch := &stubSearch{results: []domain.SearchResult{
		{Title: "R1", URL: "https://example.com/1", Snippet: "s1"},
		{Title: "R2", URL: "https://example.com/2", Snippet: "s2"},
		{Title: "R3", URL: "https://example.com/3", Snippet: "s3"},
	}}
	gen := &stubGenerator{groundedAnswer: domain.GroundedAnswer("grounded answer")}
	srv := newTestServer(t, srch, gen)

	w := doJSON(t, srv, http.MethodPost, "/api/ask", map[string]string{"query": "some researchable topic"})
	require.Equal(t, http.StatusOK, w.Code)

	var askResp struct {
		SessionID *string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &askResp))
	require.NotNil(t, askResp.SessionID)
	initialCalls := len(gen.groundedCalls)

	w = doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{
		"session_id": *askResp.SessionID,
		"query":      "compare 1 and 2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var chatResp struct {
		SessionID string `json:"session_id"`
		Answer    string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chatResp))
	assert.Equal(t, *askResp.SessionID, chatResp.SessionID)
	assert.Equal(t, "grounded answer", chatResp.Answer)

	// exactly the two referenced sources were sent to the model
	require.Len(t, gen.groundedCalls, initialCalls+1)
	compared := gen.groundedCalls[len(gen.groundedCalls)-1]
	require.Len(t, compared, 2)
	assert.Equal(t, "R1", compared[0].Title)
	assert.Equal(t, "R2", compared[1].Title)

	// exactly one user+assistant pair was appended
	w = doJSON(t, srv, http.MethodGet, "/api/chat/history?session_id="+*askResp.SessionID, nil)
	var histResp struct {
		History []json.RawMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &histResp))
	assert.Len(t, histResp.History, 6)
}

func TestChatModelErrorIs500(t *testing.T) {
	gen := &stubGenerator{
		generalAnswer: "seed answer",
		chatErr:       errors.New("connection refused"),
	}
	srv := newTestServer(t, &stubSearch{}, gen)

	// seed a session through the general path (empty search results)
	w := doJSON(t, srv, http.MethodPost, "/api/ask", map[string]string{"query": "seed question"})
	require.Equal(t, http.StatusOK, w.Code)

	var askResp struct {
		SessionID *string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &askResp))
	require.NotNil(t, askResp.SessionID)

	w = doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{
		"session_id": *askResp.SessionID,
		"query":      "and then what happened",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	// the failed turn left the transcript untouched
	w = doJSON(t, srv, http.MethodGet, "/api/chat/history?session_id="+*askResp.SessionID, nil)
	var histResp struct {
		History []json.RawMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &histResp))
	assert.Len(t, histResp.History, 4)
}
