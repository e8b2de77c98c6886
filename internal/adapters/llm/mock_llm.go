package llm

import (
	"context"
	"fmt"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

// Mock is a deterministic Generator for local dev and tests, so the full
// request pipeline runs without a model backend.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Grounded(ctx context.Context, query string, sources []domain.Source) (domain.Answer, error) {
	usable := 0
	for _, s := range sources {
		if s.Body() != "" {
			usable++
		}
	}
	if usable == 0 {
		return domain.InsufficientAnswer(), nil
	}
	return domain.GroundedAnswer(fmt.Sprintf(
		"Based on %d of the provided sources, here is a short answer to %q [1].", usable, query)), nil
}

func (m *Mock) General(ctx context.Context, query string) (string, error) {
	return fmt.Sprintf("Here is a quick answer to %q from general knowledge.", query), nil
}

func (m *Mock) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			last = messages[i].Content
			break
		}
	}
	return fmt.Sprintf("You said %q. Tell me more and I'll dig into the sources with you.", last), nil
}
