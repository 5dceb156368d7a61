// Package streams provides generic, zero-overhead, pull-based stream iterators.
//
// A Stream is evaluated lazily and synchronously within the consumer's
// goroutine. Items are "pulled" through a pipeline on demand by calling Next,
// with no intermediate goroutines or channels. This makes streams a good fit
// for walking large, addressable sequences (like a range of report indices)
// where only one item needs to be alive at a time.
//
//	// A stream of squares below 10.
//	i := 0
//	squares := streams.Generate(func() (int, bool) {
//		i++
//		return i * i, i*i < 10
//	})
package streams

// Stream represents a lazy, pull-based iterator over a sequence of items of type T.
//
// A Stream is a lightweight object that wraps a function closure. This closure,
// when called, produces the next item in the sequence. Streams are typically
// created from a generator (via Generate or Range) and then chained together
// using transformation functions like Map.
//
// The zero value of a Stream is not useful and will panic if Next() is called.
type Stream[T any] struct {
	// next is the core of the stream. It's a function that, when called,
	// returns the next item and a boolean indicating if the item is valid.
	next func() (T, bool)
}

// Generate creates a new Stream from a generator function.
//
// The stream is exhausted the first time the generator returns ok=false. The
// generator is never called again after that.
func Generate[T any](gen func() (T, bool)) Stream[T] {
	done := false
	return Stream[T]{
		next: func() (T, bool) {
			if done {
				var zero T
				return zero, false
			}
			val, ok := gen()
			if !ok {
				done = true
				var zero T
				return zero, false
			}
			return val, true
		},
	}
}

// Range creates a Stream over the half-open interval [start, end) in ascending
// order. An empty or inverted interval produces an exhausted stream.
func Range(start, end uint64) Stream[uint64] {
	cursor := start
	return Generate(func() (uint64, bool) {
		if cursor >= end {
			return 0, false
		}
		cursor++
		return cursor - 1, true
	})
}

// Map returns a new Stream that applies the conversion function `conv` to each
// item from a source Stream.
//
// This is a lazy operation. The conversion function is not called until the
// Next() method of the returned Stream is invoked.
func Map[T, U any](sourceStream Stream[T], conv func(T) U) Stream[U] {
	return Stream[U]{
		next: func() (U, bool) {
			// Pull the next item from the upstream source stream.
			val, ok := sourceStream.Next()
			if !ok {
				// The source is exhausted, so this new stream is also exhausted.
				var zeroU U
				return zeroU, false
			}
			return conv(val), true
		},
	}
}

// Next produces the next item from the stream.
//
// It returns the item and a boolean `ok`. The `ok` flag is true if an item was
// successfully produced, and false if the stream is exhausted. The consumer
// MUST check the `ok` flag to correctly terminate iteration.
func (s *Stream[T]) Next() (T, bool) {
	return s.next()
}

// All is a more convenient way of looping over the Stream for Go 1.23+
//
//	for item := range stream.All { ... }
func (s *Stream[T]) All(yield func(T) bool) {
	for {
		item, ok := s.next()
		if !ok {
			return
		}

		if !yield(item) {
			return
		}
	}
}

// Collect drains the stream into a slice.
func (s *Stream[T]) Collect() []T {
	var items []T
	for item := range s.All {
		items = append(items, item)
	}
	return items
}
