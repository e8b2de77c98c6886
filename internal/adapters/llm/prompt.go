package llm

import (
	"fmt"
	"strings"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

// insufficientSentinel is the literal phrase the model emits when the
// supplied sources cannot answer the question. It exists only at this wire
// boundary: decodeGrounded folds it into the typed Answer variant before
// anything downstream sees it.
const insufficientSentinel = "RAG_CONTEXT_INSUFFICIENT"

const groundedSystemPrompt = "You are a helpful research assistant. Use ONLY the provided sources to answer. " +
	"Cite like [1], [2] in the text when using a source. If sources are insufficient, " +
	"reply exactly: " + insufficientSentinel + "."

const generalSystemPrompt = "You are a concise, friendly assistant."

const chatSystemPrompt = "You are a helpful assistant."

// buildGroundedPrompt renders the numbered source blocks and the question.
// Sources with neither content nor snippet are skipped; ok is false when
// nothing usable remains, in which case no model call is worth making.
func buildGroundedPrompt(query string, srcs []domain.Source) (user string, ok bool) {
	blocks := make([]string, 0, len(srcs))
	for i, s := range srcs {
		body := s.Body()
		if body == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[%d] %s\nURL: %s\n%s", i+1, s.Title, s.URL, body))
	}
	if len(blocks) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\n\nSources:\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\nWrite a concise answer with citations.")
	return b.String(), true
}

// decodeGrounded maps the raw completion onto the Answer variant. An empty
// reply or one containing the sentinel anywhere counts as insufficient.
func decodeGrounded(out string) domain.Answer {
	out = strings.TrimSpace(out)
	if out == "" || strings.Contains(out, insufficientSentinel) {
		return domain.InsufficientAnswer()
	}
	return domain.GroundedAnswer(out)
}
