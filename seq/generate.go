package seq

import "math/rand/v2"

// Range generates the integers from start towards end (exclusive) in steps
// of step. A zero step yields an empty sequence.
func Range(start, end, step int) *Sequence[int] {
	if step == 0 {
		return Empty[int]()
	}
	i := start
	return FromFunc(func() (int, bool) {
		if step > 0 && i >= end || step < 0 && i <= end {
			return 0, false
		}
		v := i
		i += step
		return v, true
	})
}

// Repeat generates count copies of value.
func Repeat[T any](value T, count int) *Sequence[T] {
	i := 0
	return FromFunc(func() (T, bool) {
		if i >= count {
			var zero T
			return zero, false
		}
		i++
		return value, true
	})
}

// RandomInts generates size random integers from the process-wide source.
func RandomInts(size int) *Sequence[int] {
	i := 0
	return FromFunc(func() (int, bool) {
		if i >= size {
			return 0, false
		}
		i++
		return rand.Int(), true
	})
}
