package combinator

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPositionAdvance(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want Position
	}{
		{name: "plain", text: "abc", n: 2, want: Position{Offset: 2, Line: 1, Column: 3}},
		{name: "newline resets column", text: "ab\ncd", n: 4, want: Position{Offset: 4, Line: 2, Column: 2}},
		{name: "multibyte counts one column", text: "日本語", n: 2, want: Position{Offset: 6, Line: 1, Column: 3}},
		{name: "stops at end", text: "ab", n: 5, want: Position{Offset: 2, Line: 1, Column: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartPosition().Advance(tt.n, tt.text))
		})
	}
}

func TestPositionAdvanceIsImmutable(t *testing.T) {
	start := StartPosition()
	_ = start.Advance(3, "abc")
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, start)
}

func TestStreamTake(t *testing.T) {
	s := NewStream("hello\nworld")

	res := s.Take(6)
	assert.True(t, res.Ok())
	assert.Equal(t, "hello\n", res.Value)
	assert.Equal(t, Position{Offset: 6, Line: 2, Column: 1}, res.Stream.Position())
	assert.Equal(t, "world", res.Stream.Remaining())

	res = res.Stream.Take(6)
	assert.False(t, res.Ok())
	assert.IsError(t, res.Err, ErrUnexpectedEOF)
	assert.Equal(t, 6, res.Stream.Position().Offset)

	perr, ok := AsParseError(res.Err)
	assert.True(t, ok)
	assert.Equal(t, 1, perr.Need)
}

func TestStreamAheadOf(t *testing.T) {
	s := NewStream("abc")
	next := s.Advance(1)

	assert.True(t, next.AheadOf(s))
	assert.False(t, s.AheadOf(next))
	assert.False(t, s.AheadOf(s))
}

func TestStreamString(t *testing.T) {
	long := NewStream(string(make([]byte, 80)))
	assert.Equal(t, 53, len(long.String()))
	assert.Equal(t, "abc", NewStream("abc").String())
}
