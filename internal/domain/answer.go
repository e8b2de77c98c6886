package domain

// Answer is the result of a grounded generation. The wire protocol signals
// "I cannot answer from these sources" with a literal sentinel phrase; the
// LLM adapter decodes that phrase into the Insufficient variant so callers
// branch on a typed value instead of matching strings.
type Answer struct {
	text         string
	insufficient bool
}

// GroundedAnswer wraps a prose answer with inline citations.
func GroundedAnswer(text string) Answer {
	return Answer{text: text}
}

// InsufficientAnswer reports that the provided sources were inadequate.
func InsufficientAnswer() Answer {
	return Answer{insufficient: true}
}

func (a Answer) Insufficient() bool { return a.insufficient }

func (a Answer) Text() string { return a.text }
