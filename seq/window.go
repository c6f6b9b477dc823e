package seq

import (
	"fmt"

	"github.com/huyng/datapad/ring"
)

// Window lazily slides a view of length size over the sequence. The first
// window is emitted as soon as size elements have been pulled; after that a
// window is emitted every stride elements, showing the last size elements
// seen at that point. A trailing remainder shorter than size is dropped.
//
// With stride greater than size the windows skip over elements in between:
//
//	FromSlice(r10).Window(2, 4)  =>  [0 1] [4 5] [8 9]
//
// Window panics if size or stride is less than 1; the misconfiguration is
// rejected when the operator is built, not on first pull.
func (s *Sequence[T]) Window(size, stride int) *Sequence[[]T] {
	if size < 1 {
		panic(fmt.Sprintf("seq: window size must be at least 1, got %d", size))
	}
	if stride < 1 {
		panic(fmt.Sprintf("seq: window stride must be at least 1, got %d", stride))
	}
	src := s.detach()
	buf := ring.New[T](size)
	primed := false
	since := 0
	return newSequence(derive(src, func() ([]T, bool) {
		for {
			v, ok := src.pull()
			if !ok {
				return nil, false
			}
			if !primed {
				buf.Push(v)
				if buf.Len() < size {
					continue
				}
				primed = true
				return buf.Snapshot(), true
			}
			buf.Pop()
			buf.Push(v)
			since++
			if since%stride == 0 {
				return buf.Snapshot(), true
			}
		}
	}))
}

// Batch lazily groups elements into non-overlapping chunks of length size,
// dropping any trailing remainder shorter than size. Equivalent to
// Window(size, size).
func (s *Sequence[T]) Batch(size int) *Sequence[[]T] {
	return s.Window(size, size)
}
