package refs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/refs"
)

func TestDetectIndex(t *testing.T) {
	tests := []struct {
		text  string
		want  int
		found bool
	}{
		{"summarize link 3", 3, true},
		{"summarize 2", 2, true},
		{"summary #4", 4, true},
		{"more details about link 1", 1, true},
		{"explain 5", 5, true},
		{"tell me about the second link", 2, true},
		{"summarize the 2nd link", 2, true},
		{"explain the tenth one", 10, true},
		{"link 2", 2, true},
		{"#7", 7, true},
		{"the first link", 1, true},
		{"what does the fourth one say", 4, true},
		{"hello", 0, false},
		{"just one link", 0, false},
		{"summarize link 0", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := refs.DetectIndex(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Pair detection must win over single-index detection at the orchestrator,
// but within this package each contract stands alone: a compare phrase still
// yields a single index if asked.
func TestDetectPair(t *testing.T) {
	tests := []struct {
		text   string
		first  int
		second int
		found  bool
	}{
		{"compare 1 and 3", 1, 3, true},
		{"compare 2 vs 4", 2, 4, true},
		{"compare links 1 and 3", 1, 3, true},
		{"first vs third", 1, 3, true},
		{"difference between 1 and 2", 1, 2, true},
		{"second versus fifth", 2, 5, true},
		{"compare 2, 6", 2, 6, true},
		{"3 & 4", 3, 4, true},
		{"just one link", 0, 0, false},
		{"compare them", 0, 0, false},
		// the connector must sit directly between two integers; a "#" or a
		// word in between breaks the pair
		{"compare #1 vs #3", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			i, j, ok := refs.DetectPair(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.first, i)
			assert.Equal(t, tt.second, j)
		})
	}
}

// The ordinal substitution in DetectPair is unanchored on purpose: rank
// words inside longer words are rewritten too. Pin the behavior so a future
// "fix" shows up as a deliberate change.
func TestDetectPairUnanchoredSubstitution(t *testing.T) {
	// "twenty-first" is rewritten to "twenty-1", producing a pair the user
	// never meant.
	i, j, ok := refs.DetectPair("twenty-first and 3")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 3, j)

	// ordinal words outside any link phrase still trigger the pair path
	i, j, ok = refs.DetectPair("the first and third paragraphs differ")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 3, j)
}

func TestMatcherPriorityOrder(t *testing.T) {
	// "summarize link 2" also matches the bare "link N" fallback; the
	// verb-anchored pattern must win without changing the result, and a
	// phrase matching only the fallback still resolves.
	got, ok := refs.DetectIndex("open link 6 please")
	assert.True(t, ok)
	assert.Equal(t, 6, got)

	// Verb pattern with ordinal beats the trailing "\w+ link" fallback,
	// which would capture "second" as well.
	got, ok = refs.DetectIndex("give me details about the second link")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}
