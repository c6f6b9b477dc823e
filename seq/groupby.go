package seq

// Group is a key together with the materialized elements of one contiguous
// run sharing that key.
type Group[K comparable, V any] struct {
	Key    K
	Values []V
}

// GroupBy lazily performs run-length grouping: consecutive elements with the
// same key form one group, materialized before the pair is yielded. It does
// not sort; identical keys that are not contiguous form separate groups.
// Sorting first is the caller's responsibility.
func GroupBy[T any, K comparable](s *Sequence[T], key func(T) K) *Sequence[Group[K, T]] {
	return GroupByInto(s, key, func(v T) T { return v })
}

// GroupByInto is GroupBy with a getter applied to each element before it is
// added to its group.
func GroupByInto[T any, K comparable, V any](s *Sequence[T], key func(T) K, getter func(T) V) *Sequence[Group[K, V]] {
	src := s.detach()
	var (
		pending    T
		hasPending bool
	)
	return newSequence(derive(src, func() (Group[K, V], bool) {
		if !hasPending {
			v, ok := src.pull()
			if !ok {
				return Group[K, V]{}, false
			}
			pending = v
			hasPending = true
		}
		k := key(pending)
		values := []V{getter(pending)}
		hasPending = false
		for {
			v, ok := src.pull()
			if !ok {
				break
			}
			if key(v) != k {
				pending = v
				hasPending = true
				break
			}
			values = append(values, getter(v))
		}
		return Group[K, V]{Key: k, Values: values}, true
	}))
}

// LazyGroup is a key together with a still-lazy sequence over the group's
// elements. The inner sequence shares the outer cursor: it must be fully
// consumed before the outer sequence advances, otherwise the remainder of
// the group is discarded when the next group is requested.
type LazyGroup[K comparable, T any] struct {
	Key    K
	Values *Sequence[T]
}

// GroupByLazy is run-length grouping with lazy groups. See LazyGroup for the
// consumption contract.
func GroupByLazy[T any, K comparable](s *Sequence[T], key func(T) K) *Sequence[LazyGroup[K, T]] {
	src := s.detach()
	var (
		pending    T
		hasPending bool
		exhausted  bool
	)
	// pullForKey yields the next element of the contiguous run with key k,
	// reporting false once the run (or the upstream) ends.
	pullForKey := func(k K) (T, bool) {
		var zero T
		if !hasPending {
			if exhausted {
				return zero, false
			}
			v, ok := src.pull()
			if !ok {
				exhausted = true
				return zero, false
			}
			pending = v
			hasPending = true
		}
		if key(pending) != k {
			return zero, false
		}
		v := pending
		hasPending = false
		return v, true
	}

	var activeKey K
	var active bool // a group has been handed out and may be undrained
	return newSequence(derive(src, func() (LazyGroup[K, T], bool) {
		if active {
			// Discard whatever the caller left of the previous group.
			for {
				if _, ok := pullForKey(activeKey); !ok {
					break
				}
			}
			active = false
		}
		if !hasPending {
			v, ok := src.pull()
			if !ok {
				return LazyGroup[K, T]{}, false
			}
			pending = v
			hasPending = true
		}
		k := key(pending)
		activeKey = k
		active = true
		inner := newSequence(&cursor[T]{next: func() (T, bool) {
			return pullForKey(k)
		}})
		return LazyGroup[K, T]{Key: k, Values: inner}, true
	}))
}
