package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/app/classify"
)

func TestIsSimpleLogical(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"2+2", true},
		{"what is 15% of 80", true},
		{"calculate 144 / 12", true},
		{"solve 3x = 9", true},
		{"what is the capital of France", false}, // no digit
		{"calculate the odds", false},            // no digit
		{"what is 12 times 12 divided by 4 exactly", false}, // too many tokens
		{"latest news on chip exports", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.IsSimpleLogical(tt.query))
		})
	}
}
