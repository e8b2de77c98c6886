// Package classify decides whether a query can skip retrieval entirely.
package classify

import "strings"

// markers that suggest an arithmetic or logic question.
var arithmeticMarkers = []string{"+", "-", "*", "/", "x", "what is", "calculate", "solve"}

// IsSimpleLogical reports whether a query is a short arithmetic/logic
// question that web search would only slow down. The heuristic is tuned for
// precision over recall: a query qualifies only when it contains an operator
// marker, at least one digit, and fewer than 7 tokens. Misses fall through
// to retrieval, which is safe, just slower.
func IsSimpleLogical(query string) bool {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return false
	}

	hasOp := false
	for _, op := range arithmeticMarkers {
		if strings.Contains(normalized, op) {
			hasOp = true
			break
		}
	}
	if !hasOp {
		return false
	}

	hasNum := strings.ContainsAny(normalized, "0123456789")
	return hasNum && len(strings.Fields(normalized)) < 7
}
