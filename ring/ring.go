// Package ring provides a growable circular buffer used by the seq package
// to hold pending elements for sliding windows and teed cursors.
package ring

import "math/bits"

// Buffer is a FIFO ring buffer backed by a power-of-two sized array,
// so positions wrap with a mask instead of a modulo.
type Buffer[T any] struct {
	buf  []T // backing array, length is a power of two
	head int // index of the oldest element
	size int // number of buffered elements
	mask int // len(buf) - 1
}

// New creates a Buffer with at least the given initial capacity.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 16
	}
	capacity = 1 << uint(bits.Len(uint(capacity-1)))
	return &Buffer[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

// Push appends a value at the tail, growing the backing array if full.
func (b *Buffer[T]) Push(v T) {
	if b.size == len(b.buf) {
		b.grow()
	}
	b.buf[(b.head+b.size)&b.mask] = v
	b.size++
}

// Pop removes and returns the oldest element.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	v := b.buf[b.head]
	b.buf[b.head] = zero // release the reference
	b.head = (b.head + 1) & b.mask
	b.size--
	return v, true
}

// Peek returns the oldest element without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.buf[b.head], true
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Snapshot copies the buffered elements, oldest first, into a new slice.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, b.size)
	if b.head+b.size <= len(b.buf) {
		copy(out, b.buf[b.head:b.head+b.size])
	} else {
		n := copy(out, b.buf[b.head:])
		copy(out[n:], b.buf[:(b.head+b.size)&b.mask])
	}
	return out
}

func (b *Buffer[T]) grow() {
	newCap := 1 << uint(bits.Len(uint(b.size)))
	if newCap <= len(b.buf) {
		newCap = len(b.buf) * 2
	}
	newBuf := make([]T, newCap)
	if b.head+b.size <= len(b.buf) {
		copy(newBuf, b.buf[b.head:b.head+b.size])
	} else {
		n := copy(newBuf, b.buf[b.head:])
		copy(newBuf[n:], b.buf[:(b.head+b.size)&b.mask])
	}
	clear(b.buf)
	b.buf = newBuf
	b.head = 0
	b.mask = newCap - 1
}
