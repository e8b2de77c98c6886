package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

// maxExcerptChars bounds the per-source excerpt embedded in the session's
// system message. The full content stays on the Source for fast-paths.
const maxExcerptChars = 500

const sourcesInstruction = "You are allowed to use the following RAG sources in all future responses. " +
	"When the user says 'first link' or 'second link', refer to the numbered list below."

// SessionStore keeps all sessions in process memory. The outer lock guards
// the map; each entry carries its own mutex so concurrent follow-ups on the
// same session serialize their transcript appends without blocking other
// sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*entry

	ttl  time.Duration
	done chan struct{}
	now  func() time.Time
}

type entry struct {
	mu      sync.Mutex
	session domain.Session
}

// NewSessionStore creates a store. A positive ttl starts a janitor that
// evicts sessions idle for longer than ttl; zero means sessions live until
// process exit.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[domain.SessionID]*entry),
		ttl:      ttl,
		done:     make(chan struct{}),
		now:      time.Now,
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

// Close stops the eviction janitor, if running.
func (s *SessionStore) Close() {
	close(s.done)
}

// Create materializes a new session: two system messages (instruction plus
// the numbered source block), the originating query, and the initial answer.
func (s *SessionStore) Create(query, answer string, sources []domain.Source) domain.SessionID {
	id := domain.SessionID(uuid.NewString())
	now := s.now()

	session := domain.Session{
		ID: id,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: sourcesInstruction},
			{Role: domain.RoleSystem, Content: "RAG_SOURCES:\n" + sourcesAsSystemBlock(sources)},
			{Role: domain.RoleUser, Content: query},
			{Role: domain.RoleAssistant, Content: answer},
		},
		Sources:   append([]domain.Source(nil), sources...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[id] = &entry{session: session}
	s.mu.Unlock()

	return id
}

// Get returns a snapshot of the session. The transcript and source list are
// copied so callers never observe a concurrent append mid-read.
func (s *SessionStore) Get(id domain.SessionID) (domain.Session, bool) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.Session{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.session
	snap.Messages = append([]domain.Message(nil), e.session.Messages...)
	snap.Sources = append([]domain.Source(nil), e.session.Sources...)
	return snap, true
}

// AppendTurn appends a user/assistant pair atomically. Prior entries are
// never modified.
func (s *SessionStore) AppendTurn(id domain.SessionID, user, assistant domain.Message) error {
	e, ok := s.lookup(id)
	if !ok {
		return domain.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Messages = append(e.session.Messages, user, assistant)
	e.session.UpdatedAt = s.now()
	return nil
}

// History returns a copy of the session transcript.
func (s *SessionStore) History(id domain.SessionID) ([]domain.Message, bool) {
	session, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return session.Messages, true
}

func (s *SessionStore) lookup(id domain.SessionID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	return e, ok
}

func (s *SessionStore) janitor() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired(s.now())
		}
	}
}

func (s *SessionStore) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		e.mu.Lock()
		idle := now.Sub(e.session.UpdatedAt) > s.ttl
		e.mu.Unlock()
		if idle {
			delete(s.sessions, id)
		}
	}
}

// sourcesAsSystemBlock renders the numbered source list the way follow-up
// messages will reference it: "[i] title / URL / short excerpt".
func sourcesAsSystemBlock(sources []domain.Source) string {
	lines := make([]string, 0, len(sources))
	for i, src := range sources {
		body := src.Body()
		if runes := []rune(body); len(runes) > maxExcerptChars {
			body = string(runes[:maxExcerptChars]) + "…"
		}
		lines = append(lines, fmt.Sprintf("[%d] %s\nURL: %s\n%s", i+1, src.Title, src.URL, body))
	}
	return strings.Join(lines, "\n\n")
}
