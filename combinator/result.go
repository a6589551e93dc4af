package combinator

// Result is the outcome of running a parser: either a Value or an Err,
// together with the stream to continue from.
//
// On failure Stream is the input stream, unless the parser committed to
// partial consumption before failing.
type Result[V any] struct {
	Value  V
	Err    error
	Stream Stream
}

// Ok reports whether the parser succeeded.
func (r Result[V]) Ok() bool {
	return r.Err == nil
}

// Success builds a successful result.
func Success[V any](value V, stream Stream) Result[V] {
	return Result[V]{Value: value, Stream: stream}
}

// Failure builds a failed result.
func Failure[V any](err error, stream Stream) Result[V] {
	return Result[V]{Err: err, Stream: stream}
}
