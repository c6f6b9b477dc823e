package seq

import "iter"

// Map lazily applies transform to every element. The transform runs at the
// moment its element is pulled, never at call time.
func Map[T, R any](s *Sequence[T], transform func(T) R) *Sequence[R] {
	src := s.detach()
	return newSequence(derive(src, func() (R, bool) {
		v, ok := src.pull()
		if !ok {
			var zero R
			return zero, false
		}
		return transform(v), true
	}))
}

// FlatMap lazily applies transform to every element and flattens the
// returned sub-sequences one level, preserving order within and across them.
func FlatMap[T, R any](s *Sequence[T], transform func(T) iter.Seq[R]) *Sequence[R] {
	src := s.detach()
	var (
		inner     func() (R, bool)
		innerStop func()
	)
	return newSequence(&cursor[R]{
		next: func() (R, bool) {
			for {
				if inner != nil {
					if v, ok := inner(); ok {
						return v, true
					}
					innerStop()
					inner, innerStop = nil, nil
				}
				v, ok := src.pull()
				if !ok {
					var zero R
					return zero, false
				}
				if sub := transform(v); sub != nil {
					inner, innerStop = iter.Pull(sub)
				}
			}
		},
		stop: func() {
			if innerStop != nil {
				innerStop()
			}
			src.close()
		},
	})
}

// Result carries a per-element outcome through a sequence, pairing a value
// with the error that produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// TryMap is the error-carrying variant of Map: transform may fail, and the
// failure travels with the element that caused it instead of aborting the
// stream.
func TryMap[T, R any](s *Sequence[T], transform func(T) (R, error)) *Sequence[Result[R]] {
	src := s.detach()
	return newSequence(derive(src, func() (Result[R], bool) {
		v, ok := src.pull()
		if !ok {
			return Result[R]{}, false
		}
		res, err := transform(v)
		return Result[R]{Value: res, Err: err}, true
	}))
}

// Pair holds two values of possibly different types.
type Pair[T1, T2 any] struct {
	V1 T1
	V2 T2
}

// ZipWithIndex pairs each element with its zero-based ordinal.
func (s *Sequence[T]) ZipWithIndex() *Sequence[Pair[int, T]] {
	src := s.detach()
	index := 0
	return newSequence(derive(src, func() (Pair[int, T], bool) {
		v, ok := src.pull()
		if !ok {
			return Pair[int, T]{}, false
		}
		p := Pair[int, T]{V1: index, V2: v}
		index++
		return p, true
	}))
}

// Tap lazily runs action on each element as it passes through, without
// modifying the stream. Useful for logging or counting pulls.
func (s *Sequence[T]) Tap(action func(T)) *Sequence[T] {
	src := s.detach()
	return newSequence(derive(src, func() (T, bool) {
		v, ok := src.pull()
		if ok {
			action(v)
		}
		return v, ok
	}))
}

// Scan is like Fold but yields the accumulator after each element.
func Scan[T, R any](s *Sequence[T], initial R, reducer func(R, T) R) *Sequence[R] {
	src := s.detach()
	acc := initial
	return newSequence(derive(src, func() (R, bool) {
		v, ok := src.pull()
		if !ok {
			var zero R
			return zero, false
		}
		acc = reducer(acc, v)
		return acc, true
	}))
}

// Concat appends other's elements after this sequence's. Concatenating a
// sequence with itself duplicates the cursor into two independent views, so
// every upstream element is delivered exactly twice rather than the two
// halves racing over one producer.
func (s *Sequence[T]) Concat(other *Sequence[T]) *Sequence[T] {
	var a, b *cursor[T]
	if other == s || other.cur == s.cur {
		a, b = s.detach().tee()
	} else {
		a = s.detach()
		b = other.detach()
	}
	inFirst := true
	return newSequence(&cursor[T]{
		next: func() (T, bool) {
			if inFirst {
				if v, ok := a.pull(); ok {
					return v, true
				}
				a.close()
				inFirst = false
			}
			v, ok := b.pull()
			if !ok {
				var zero T
				return zero, false
			}
			return v, ok
		},
		stop: func() {
			a.close()
			b.close()
		},
	})
}
