// Package combinator provides generic parser combinators over a character
// stream with committed (PEG style) choice and explicit backtracking.
package combinator

import (
	"sync"
	"unicode/utf8"
)

// Parser is a pure function from a stream to a result.
// Parsers are composed, never mutated.
type Parser[V any] func(Stream) Result[V]

// Parse runs the parser from the start of text.
func (p Parser[V]) Parse(text string) Result[V] {
	return p(NewStream(text))
}

// Succeed always matches, consumes nothing and yields value.
func Succeed[V any](value V) Parser[V] {
	return func(s Stream) Result[V] {
		return Success(value, s)
	}
}

// Fail always fails with err and consumes nothing.
func Fail[V any](err error) Parser[V] {
	return func(s Stream) Result[V] {
		return Failure[V](err, s)
	}
}

// Literal matches exactly str. It never consumes input on failure.
func Literal(str string) Parser[string] {
	n := utf8.RuneCountInString(str)

	return func(s Stream) Result[string] {
		if s.HasPrefix(str) {
			return Success(str, s.Advance(n))
		}

		if _, scanned := s.pos.advance(n, s.text); scanned < n {
			return Failure[string](&ParseError{Expected: str, Need: n - scanned, Pos: s.pos, Err: ErrUnexpectedEOF}, s)
		}

		return Failure[string](&ParseError{Expected: str, Pos: s.pos, Err: ErrNotMatch}, s)
	}
}

// AnyChar consumes exactly one character.
func AnyChar() Parser[string] {
	return func(s Stream) Result[string] {
		return s.Take(1)
	}
}

// EOF succeeds only when all input is consumed.
func EOF() Parser[bool] {
	return func(s Stream) Result[bool] {
		if s.AtEnd() {
			return Success(true, s)
		}

		return Failure[bool](&ParseError{Pos: s.pos, Err: ErrTrailingInput}, s)
	}
}

// GetPosition yields the current position without consuming input.
func GetPosition() Parser[Position] {
	return func(s Stream) Result[Position] {
		return Success(s.pos, s)
	}
}

// Guard succeeds with true when cond holds, otherwise fails.
func Guard(cond bool) Parser[bool] {
	return func(s Stream) Result[bool] {
		if cond {
			return Success(true, s)
		}

		return Failure[bool](&ParseError{Pos: s.pos, Err: ErrGuard}, s)
	}
}

// Lazy defers calling thunk until the parser is first run and then reuses
// the produced parser. The thunk runs exactly once even under concurrent first use.
func Lazy[V any](thunk func() Parser[V]) Parser[V] {
	var (
		once sync.Once
		cell Parser[V]
	)

	return func(s Stream) Result[V] {
		once.Do(func() {
			cell = thunk()
		})

		return cell(s)
	}
}
