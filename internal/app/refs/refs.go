// Package refs resolves natural-language references to numbered sources,
// e.g. "summarize the second link" or "compare 1 and 3". It is an ordered
// cascade of lightweight pattern rules, not a parser: some false positives
// and negatives are accepted in exchange for zero NLP machinery. Bounds
// checking against an actual source list is the caller's job.
package refs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ordinals maps rank words and their abbreviations to 1-based indices.
// Order matters: DetectPair substitutes these into the text front to back.
var ordinals = []struct {
	word  string
	index int
}{
	{"first", 1}, {"1st", 1},
	{"second", 2}, {"2nd", 2},
	{"third", 3}, {"3rd", 3},
	{"fourth", 4}, {"4th", 4},
	{"fifth", 5}, {"5th", 5},
	{"sixth", 6}, {"6th", 6},
	{"seventh", 7}, {"7th", 7},
	{"eighth", 8}, {"8th", 8},
	{"ninth", 9}, {"9th", 9},
	{"tenth", 10}, {"10th", 10},
}

var ordinalIndex = func() map[string]int {
	m := make(map[string]int, len(ordinals))
	for _, o := range ordinals {
		m[o.word] = o.index
	}
	return m
}()

// Matcher inspects lower-cased text and yields a 1-based source index.
type Matcher func(text string) (int, bool)

// linkPatterns are tried first-match-wins. Verb-anchored patterns come
// before bare "link N" fallbacks to keep precision up.
var linkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:summarize|summary|details|more\s+details|explain|about)\s+(?:link\s*)?#?(\d+)`),
	regexp.MustCompile(`(?:summarize|summary|details|more\s+details|explain|about)\s+the\s+(\w+)\s+(?:link|one)`),
	regexp.MustCompile(`(?:link|#)\s*(\d+)`),
	regexp.MustCompile(`\b(\w+)\s+link\b`),
}

// ordinalScans back up the pattern cascade: any ordinal word directly
// followed by "link" or "one", anywhere in the text.
var ordinalScans = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(ordinals))
	for _, o := range ordinals {
		res = append(res, regexp.MustCompile(fmt.Sprintf(`\b%s\s+(?:link|one)\b`, o.word)))
	}
	return res
}()

// Matchers is the cascade evaluated by DetectIndex, in priority order. Each
// entry is pure and independently testable.
var Matchers = buildMatchers()

func buildMatchers() []Matcher {
	ms := make([]Matcher, 0, len(linkPatterns)+1)
	for _, pat := range linkPatterns {
		pat := pat
		ms = append(ms, func(text string) (int, bool) {
			m := pat.FindStringSubmatch(text)
			if m == nil {
				return 0, false
			}
			return resolveGroup(m[1])
		})
	}
	ms = append(ms, func(text string) (int, bool) {
		for i, pat := range ordinalScans {
			if pat.MatchString(text) {
				return ordinals[i].index, true
			}
		}
		return 0, false
	})
	return ms
}

// resolveGroup turns a captured group into an index: literal digits parse
// directly, ordinal words go through the table, anything else misses.
func resolveGroup(g string) (int, bool) {
	if g == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(g); err == nil {
		if n < 1 {
			return 0, false
		}
		return n, true
	}
	if n, ok := ordinalIndex[g]; ok {
		return n, true
	}
	return 0, false
}

// DetectIndex returns the 1-based source index a message refers to, if any.
func DetectIndex(text string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, false
	}
	for _, m := range Matchers {
		if idx, ok := m(t); ok {
			return idx, ok
		}
	}
	return 0, false
}

var pairPattern = regexp.MustCompile(`(\d+)\s*(?:and|&|,|vs|versus)\s*(\d+)`)

// DetectPair returns two source indices joined by a comparison connector
// ("compare 1 and 3", "first vs third", "link 2, link 4").
//
// The ordinal substitution below is deliberately unanchored: ordinal words
// embedded inside longer words are rewritten too. Callers rely on that
// matching scope, quirks included.
func DetectPair(text string) (int, int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, 0, false
	}
	for _, o := range ordinals {
		t = strings.ReplaceAll(t, o.word, strconv.Itoa(o.index))
	}

	m := pairPattern.FindStringSubmatch(t)
	if m == nil {
		return 0, 0, false
	}
	i, _ := strconv.Atoi(m[1])
	j, _ := strconv.Atoi(m[2])
	if i < 1 || j < 1 {
		return 0, 0, false
	}
	return i, j, true
}
