package combinator

import (
	"strings"
	"unicode/utf8"
)

const previewLength = 50

// Stream is the remaining input starting at a position of an immutable source text.
type Stream struct {
	text string
	pos  Position
}

// NewStream returns a stream at the start of text.
func NewStream(text string) Stream {
	return Stream{text: text, pos: StartPosition()}
}

// Position returns the current position.
func (s Stream) Position() Position {
	return s.pos
}

// Text returns the whole source text.
func (s Stream) Text() string {
	return s.text
}

// Remaining returns the unconsumed input.
func (s Stream) Remaining() string {
	return s.text[s.pos.Offset:]
}

// HasPrefix reports whether the remaining input starts with prefix.
func (s Stream) HasPrefix(prefix string) bool {
	return strings.HasPrefix(s.Remaining(), prefix)
}

// AtEnd reports whether all input is consumed.
func (s Stream) AtEnd() bool {
	return s.pos.Offset >= len(s.text)
}

// AheadOf reports whether s has consumed more of the same source than other.
func (s Stream) AheadOf(other Stream) bool {
	return s.pos.Beyond(other.pos)
}

// Advance returns the stream after n characters.
func (s Stream) Advance(n int) Stream {
	return Stream{text: s.text, pos: s.pos.Advance(n, s.text)}
}

// Take consumes exactly n characters. When fewer remain it fails without
// consuming anything.
func (s Stream) Take(n int) Result[string] {
	next, scanned := s.pos.advance(n, s.text)
	if scanned < n {
		return Failure[string](&ParseError{Need: n - scanned, Pos: s.pos, Err: ErrUnexpectedEOF}, s)
	}

	return Success(s.text[s.pos.Offset:next.Offset], Stream{text: s.text, pos: next})
}

// String returns a short preview of the remaining input for diagnostics.
func (s Stream) String() string {
	rest := s.Remaining()
	if utf8.RuneCountInString(rest) <= previewLength {
		return rest
	}

	return string([]rune(rest)[:previewLength]) + "..."
}
