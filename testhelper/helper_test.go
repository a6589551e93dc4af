package testhelper

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "drops surrounding lines",
			src: `
		hello
		world
	`,
			expected: "hello\nworld",
		},
		{
			name: "keeps relative indent",
			src: `
		{%
			name
		%}
	`,
			expected: "{%\n    name\n%}",
		},
		{
			name:     "single line untouched",
			src:      "plain",
			expected: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimIndent(t, tt.src))
		})
	}
}
