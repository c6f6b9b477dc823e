package seq

import "iter"

// Sequence wraps a single forward-only cursor in a fluent, lazy API.
// Lazy operators never copy or drain the cursor; they move it into the
// derived Sequence they return. Using a Sequence after one of its lazy
// operators has been called is a programming error and panics, rather than
// silently double-consuming the shared producer.
//
// Draining a Sequence (Iter, Collect, Count, ...) leaves it attached but
// exhausted: operators applied afterwards see an empty input.
type Sequence[T any] struct {
	cur   *cursor[T]
	moved bool
}

func newSequence[T any](c *cursor[T]) *Sequence[T] {
	return &Sequence[T]{cur: c}
}

// detach hands ownership of the cursor to a derived sequence.
func (s *Sequence[T]) detach() *cursor[T] {
	c := s.use()
	s.moved = true
	return c
}

// use returns the cursor for in-place access without transferring ownership.
func (s *Sequence[T]) use() *cursor[T] {
	if s.moved {
		panic("seq: sequence already consumed by a derived sequence")
	}
	return s.cur
}

// FromSlice creates a Sequence over the elements of items. A nil or empty
// slice yields an empty sequence.
func FromSlice[T any](items []T) *Sequence[T] {
	i := 0
	return newSequence(&cursor[T]{next: func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	}})
}

// FromSeq normalizes an iter.Seq into a Sequence. The source is not touched
// until the first element is requested. A nil source yields an empty
// sequence.
func FromSeq[T any](src iter.Seq[T]) *Sequence[T] {
	if src == nil {
		return Empty[T]()
	}
	var (
		pull func() (T, bool)
		stop func()
	)
	return newSequence(&cursor[T]{
		next: func() (T, bool) {
			if pull == nil {
				pull, stop = iter.Pull(src)
			}
			return pull()
		},
		stop: func() {
			if stop != nil {
				stop()
			}
		},
	})
}

// FromFunc creates a Sequence pulling elements from next until it reports
// false. A nil next yields an empty sequence.
func FromFunc[T any](next func() (T, bool)) *Sequence[T] {
	return newSequence(&cursor[T]{next: next})
}

// Empty returns a sequence with no elements.
func Empty[T any]() *Sequence[T] {
	return newSequence(&cursor[T]{})
}

// Iter exposes the raw element stream for use in a for-range loop. The
// Sequence and the returned iterator share one cursor: elements consumed by
// the loop are gone from the Sequence. Breaking out of the loop leaves the
// remaining elements intact; iterating again resumes where the loop stopped.
func (s *Sequence[T]) Iter() iter.Seq[T] {
	c := s.use()
	return func(yield func(T) bool) {
		for {
			v, ok := c.pull()
			if !ok {
				c.close()
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Close releases the resources of a pipeline that will not be drained:
// parallel stages are cancelled and file-backed sources closed. Draining a
// sequence to exhaustion releases them as well, so Close is only needed for
// abandoned pipelines.
func (s *Sequence[T]) Close() {
	if s.moved {
		return
	}
	s.cur.close()
}

// Peek returns the first element without consuming it from the logical
// stream. Repeated calls return the same element until a real pull occurs.
// The second return is false on an empty sequence.
func (s *Sequence[T]) Peek() (T, bool) {
	c := s.use()
	v, ok := c.pull()
	if !ok {
		return v, false
	}
	c.prepend([]T{v})
	return v, true
}

// PeekN returns up to n elements from the front of the sequence and pushes
// them back, so subsequent pulls replay them in order.
func (s *Sequence[T]) PeekN(n int) []T {
	c := s.use()
	var out []T
	for len(out) < n {
		v, ok := c.pull()
		if !ok {
			break
		}
		out = append(out, v)
	}
	c.prepend(out)
	return out
}
