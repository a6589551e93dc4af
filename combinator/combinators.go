package combinator

import (
	"fmt"
	"strings"
)

// Then runs p and feeds its value to f, running the returned parser on the
// remaining input. A failure of p is returned unchanged.
func Then[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(s Stream) Result[B] {
		res := p(s)
		if !res.Ok() {
			return Failure[B](res.Err, res.Stream)
		}

		return f(res.Value)(res.Stream)
	}
}

// Map transforms a successful value.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return Then(p, func(a A) Parser[B] {
		return Succeed(f(a))
	})
}

// Left runs p then other and keeps the value of p.
func Left[A, B any](p Parser[A], other Parser[B]) Parser[A] {
	return Then(p, func(a A) Parser[A] {
		return Map(other, func(B) A { return a })
	})
}

// Right runs p then other and keeps the value of other.
func Right[A, B any](p Parser[A], other Parser[B]) Parser[B] {
	return Then(p, func(A) Parser[B] {
		return other
	})
}

// ButNot runs p only if other does not match at the current position.
func ButNot[A, B any](p Parser[A], other Parser[B]) Parser[A] {
	return Right(other.Not(), p)
}

// Or is committed choice: other is tried only when p failed without
// consuming input. Use Try to re-enable backtracking.
func (p Parser[V]) Or(other Parser[V]) Parser[V] {
	return func(s Stream) Result[V] {
		res := p(s)
		if res.Ok() || res.Stream.AheadOf(s) {
			return res
		}

		return other(s)
	}
}

// Try resets the stream of a failure to the starting stream.
func (p Parser[V]) Try() Parser[V] {
	return func(s Stream) Result[V] {
		res := p(s)
		if !res.Ok() {
			res.Stream = s
		}

		return res
	}
}

// Not is negative lookahead. It never consumes input.
func (p Parser[V]) Not() Parser[bool] {
	return func(s Stream) Result[bool] {
		if res := p(s); res.Ok() {
			return Failure[bool](&ParseError{Pos: s.pos, Err: ErrNotMatch}, s)
		}

		return Success(true, s)
	}
}

// Many applies p until it fails and collects the values.
// It panics with ErrNonProductive if p succeeds without consuming input.
func Many[V any](p Parser[V]) Parser[[]V] {
	return func(s Stream) Result[[]V] {
		acc := make([]V, 0)

		for {
			res := p(s)
			if !res.Ok() {
				return Success(acc, s)
			}

			if !res.Stream.AheadOf(s) {
				panic(fmt.Errorf("%w at %s (near %q)", ErrNonProductive, s.pos, s.String()))
			}

			acc = append(acc, res.Value)
			s = res.Stream
		}
	}
}

// Mark wraps the value as a single-entry map {label: value}.
func Mark[V any](p Parser[V], label string) Parser[map[string]V] {
	return Map(p, func(v V) map[string]V {
		return map[string]V{label: v}
	})
}

// Join concatenates a sequence of strings with sep.
func Join(p Parser[[]string], sep string) Parser[string] {
	return Map(p, func(parts []string) string {
		return strings.Join(parts, sep)
	})
}

// SepBy matches p, then zero or more (sep, p) pairs. The separators are kept:
// [first, sep1, elem1, sep2, elem2, ...].
func SepBy[V any](p Parser[V], sep Parser[V]) Parser[[]V] {
	pair := Then(sep, func(x V) Parser[[2]V] {
		return Map(p, func(y V) [2]V { return [2]V{x, y} })
	})

	return Then(p, func(first V) Parser[[]V] {
		return Map(Many(pair), func(pairs [][2]V) []V {
			out := make([]V, 0, 1+2*len(pairs))

			out = append(out, first)
			for _, pr := range pairs {
				out = append(out, pr[0], pr[1])
			}

			return out
		})
	})
}

// SepByDrop is SepBy without the separators: [first, elem1, elem2, ...].
func SepByDrop[V, S any](p Parser[V], sep Parser[S]) Parser[[]V] {
	return Then(p, func(first V) Parser[[]V] {
		return Map(Many(Right(sep, p)), func(rest []V) []V {
			return append([]V{first}, rest...)
		})
	})
}
