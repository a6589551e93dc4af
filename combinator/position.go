package combinator

import (
	"fmt"
	"unicode/utf8"
)

// Position represents a location in the source text.
// Offset is a byte offset (0-based), Line/Column are 1-based and count runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// StartPosition returns the position of the first character.
func StartPosition() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// Advance scans n characters of text starting at p.Offset and returns the
// position after them. Scanning stops early at the end of text.
func (p Position) Advance(n int, text string) Position {
	next, _ := p.advance(n, text)
	return next
}

// advance is Advance that also reports how many characters were scanned.
func (p Position) advance(n int, text string) (Position, int) {
	next := p

	scanned := 0
	for scanned < n && next.Offset < len(text) {
		r, size := utf8.DecodeRuneInString(text[next.Offset:])
		next.Offset += size

		if r == '\n' {
			next.Line++
			next.Column = 1
		} else {
			next.Column++
		}

		scanned++
	}

	return next, scanned
}

// Beyond reports whether p is strictly after other.
func (p Position) Beyond(other Position) bool {
	return p.Offset > other.Offset
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
