package seq

import "github.com/huyng/datapad/ring"

// cursor is the single forward-only producer behind a Sequence. Elements
// pushed back by Peek/PeekN are replayed, in order, before the underlying
// next function is consulted again.
type cursor[T any] struct {
	next    func() (T, bool)
	stop    func() // releases upstream resources; may be nil
	ahead   *ring.Buffer[T]
	stopped bool
}

func (c *cursor[T]) pull() (T, bool) {
	if c.ahead != nil && c.ahead.Len() > 0 {
		v, _ := c.ahead.Pop()
		return v, true
	}
	if c.next == nil || c.stopped {
		var zero T
		return zero, false
	}
	return c.next()
}

// prepend pushes items back onto the front of the cursor so the following
// pulls replay them before anything already buffered.
func (c *cursor[T]) prepend(items []T) {
	if len(items) == 0 {
		return
	}
	buf := ring.New[T](len(items))
	for _, v := range items {
		buf.Push(v)
	}
	if c.ahead != nil {
		for {
			v, ok := c.ahead.Pop()
			if !ok {
				break
			}
			buf.Push(v)
		}
	}
	c.ahead = buf
}

// close stops the cursor and releases upstream resources. Idempotent.
// Elements already pushed back stay replayable.
func (c *cursor[T]) close() {
	if c.stopped {
		return
	}
	c.stopped = true
	if c.stop != nil {
		c.stop()
	}
}

// derive wraps a source cursor in a new one, chaining teardown so that
// closing the derived cursor closes the source.
func derive[T, R any](src *cursor[T], next func() (R, bool)) *cursor[R] {
	return &cursor[R]{next: next, stop: src.close}
}

// tee splits the cursor into two independent forward-only views over the
// same upstream elements. Whatever one view pulls is buffered for the other,
// so each element reaches both views exactly once. The source is closed when
// both views have been closed.
func (c *cursor[T]) tee() (*cursor[T], *cursor[T]) {
	pending := [2]*ring.Buffer[T]{ring.New[T](16), ring.New[T](16)}
	var closed [2]bool

	view := func(i int) *cursor[T] {
		return &cursor[T]{
			next: func() (T, bool) {
				if v, ok := pending[i].Pop(); ok {
					return v, true
				}
				v, ok := c.pull()
				if !ok {
					var zero T
					return zero, false
				}
				if !closed[1-i] {
					pending[1-i].Push(v)
				}
				return v, true
			},
			stop: func() {
				closed[i] = true
				if closed[0] && closed[1] {
					c.close()
				}
			},
		}
	}
	return view(0), view(1)
}
