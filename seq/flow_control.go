package seq

// Filter is an alias for KeepIf.
func (s *Sequence[T]) Filter(pred func(T) bool) *Sequence[T] {
	return s.KeepIf(pred)
}

// KeepIf lazily yields only the elements for which pred returns true.
func (s *Sequence[T]) KeepIf(pred func(T) bool) *Sequence[T] {
	src := s.detach()
	return newSequence(derive(src, func() (T, bool) {
		for {
			v, ok := src.pull()
			if !ok {
				return v, false
			}
			if pred(v) {
				return v, true
			}
		}
	}))
}

// DropIf lazily drops the elements for which pred returns true.
func (s *Sequence[T]) DropIf(pred func(T) bool) *Sequence[T] {
	return s.KeepIf(func(v T) bool { return !pred(v) })
}

// Drop lazily skips the first n elements by position and yields the rest.
func (s *Sequence[T]) Drop(n int) *Sequence[T] {
	src := s.detach()
	skipped := 0
	return newSequence(derive(src, func() (T, bool) {
		for skipped < n {
			if _, ok := src.pull(); !ok {
				var zero T
				return zero, false
			}
			skipped++
		}
		return src.pull()
	}))
}

// Take lazily yields at most the first n elements. Once n elements have been
// delivered the upstream is closed and never pulled again, so side effects
// beyond element n do not occur.
func (s *Sequence[T]) Take(n int) *Sequence[T] {
	src := s.detach()
	remaining := n
	return newSequence(derive(src, func() (T, bool) {
		if remaining <= 0 {
			src.close()
			var zero T
			return zero, false
		}
		v, ok := src.pull()
		if !ok {
			return v, false
		}
		remaining--
		if remaining == 0 {
			src.close()
		}
		return v, true
	}))
}

// TakeWhile yields elements as long as pred returns true, then stops pulling
// upstream.
func (s *Sequence[T]) TakeWhile(pred func(T) bool) *Sequence[T] {
	src := s.detach()
	done := false
	return newSequence(derive(src, func() (T, bool) {
		var zero T
		if done {
			return zero, false
		}
		v, ok := src.pull()
		if !ok {
			return zero, false
		}
		if !pred(v) {
			done = true
			src.close()
			return zero, false
		}
		return v, true
	}))
}

// DropWhile skips elements as long as pred returns true, then yields the
// rest, starting with the first element that failed the predicate.
func (s *Sequence[T]) DropWhile(pred func(T) bool) *Sequence[T] {
	src := s.detach()
	dropping := true
	return newSequence(derive(src, func() (T, bool) {
		for {
			v, ok := src.pull()
			if !ok {
				return v, false
			}
			if dropping {
				if pred(v) {
					continue
				}
				dropping = false
			}
			return v, true
		}
	}))
}
