package httpadapter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/answer"
	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

type Server struct {
	svc *answer.Service
}

func NewServer(svc *answer.Service) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), withRequestID(), withLogging(), withCORS())

	s := &Server{svc: svc}

	r.GET("/healthz", s.handleHealthz)
	r.POST("/api/ask", s.handleAsk)
	r.GET("/api/chat/history", s.handleHistory)
	r.POST("/api/chat", s.handleChat)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type askRequest struct {
	Query string `json:"query"`
}

type sourceResponse struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type askResponse struct {
	Answer    string           `json:"answer"`
	Sources   []sourceResponse `json:"sources"`
	SessionID *string          `json:"session_id"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

type historyEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type historyResponse struct {
	History []historyEntry `json:"history"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		badRequest(c, "Query parameter is required.")
		return
	}

	res := s.svc.Ask(c.Request.Context(), query)

	var sessionID *string
	if res.SessionID != "" {
		id := string(res.SessionID)
		sessionID = &id
	}

	c.JSON(http.StatusOK, askResponse{
		Answer:    toHTML(res.Answer),
		Sources:   toSourcesResponse(res.Results),
		SessionID: sessionID,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		badRequest(c, "session_id is required")
		return
	}

	msgs, ok := s.svc.History(domain.SessionID(sessionID))
	if !ok {
		badRequest(c, "Invalid or missing chat session ID.")
		return
	}

	history := make([]historyEntry, 0, len(msgs))
	for _, m := range msgs {
		sender := "bot"
		if m.Role == domain.RoleUser {
			sender = "user"
		}
		history = append(history, historyEntry{
			Sender: sender,
			Text:   toHTML(m.Content),
		})
	}

	c.JSON(http.StatusOK, historyResponse{History: history})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	query := strings.TrimSpace(req.Query)
	if sessionID == "" || query == "" {
		badRequest(c, "session_id and query are required")
		return
	}

	reply, err := s.svc.FollowUp(c.Request.Context(), domain.SessionID(sessionID), query)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired chat session ID."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "An error occurred while communicating with the model. Details: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		SessionID: sessionID,
		Answer:    toHTML(reply),
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toSourcesResponse(results []domain.SearchResult) []sourceResponse {
	out := make([]sourceResponse, 0, len(results))
	for _, r := range results {
		out = append(out, sourceResponse{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
		})
	}
	return out
}

// toHTML rewrites newlines for direct display in the web UI. Presentation
// only: stored transcripts keep raw newlines.
func toHTML(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
