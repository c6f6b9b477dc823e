package seq

import (
	"cmp"
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrEmptySequence is returned by Reduce when the sequence holds no elements
// and no initial accumulator was supplied. First deliberately does not share
// this behavior: it reports absence through its boolean instead.
var ErrEmptySequence = errors.New("seq: empty sequence")

// Collect eagerly drains the sequence into a slice.
func (s *Sequence[T]) Collect() []T {
	c := s.use()
	var out []T
	for {
		v, ok := c.pull()
		if !ok {
			break
		}
		out = append(out, v)
	}
	c.close()
	return out
}

// Count eagerly drains the sequence and returns the number of elements.
func (s *Sequence[T]) Count() int {
	c := s.use()
	n := 0
	for {
		if _, ok := c.pull(); !ok {
			break
		}
		n++
	}
	c.close()
	return n
}

// First consumes and returns the first element. It reports false on an empty
// sequence rather than failing; the rest of the sequence stays consumable.
func (s *Sequence[T]) First() (T, bool) {
	return s.use().pull()
}

// Last drains the sequence and returns its final element.
func (s *Sequence[T]) Last() (T, bool) {
	c := s.use()
	var last T
	found := false
	for {
		v, ok := c.pull()
		if !ok {
			break
		}
		last = v
		found = true
	}
	c.close()
	return last, found
}

// Any reports whether pred holds for at least one element. It stops pulling
// as soon as a match is found.
func (s *Sequence[T]) Any(pred func(T) bool) bool {
	c := s.use()
	for {
		v, ok := c.pull()
		if !ok {
			return false
		}
		if pred(v) {
			c.close()
			return true
		}
	}
}

// All reports whether pred holds for every element. It stops pulling at the
// first failure. An empty sequence reports true.
func (s *Sequence[T]) All(pred func(T) bool) bool {
	c := s.use()
	for {
		v, ok := c.pull()
		if !ok {
			return true
		}
		if !pred(v) {
			c.close()
			return false
		}
	}
}

// Reduce folds the sequence left to right with f, seeding the accumulator
// with the first element. Returns ErrEmptySequence when there is nothing to
// seed from; use Fold to supply an explicit initial value.
func (s *Sequence[T]) Reduce(f func(acc, v T) T) (T, error) {
	c := s.use()
	acc, ok := c.pull()
	if !ok {
		return acc, ErrEmptySequence
	}
	for {
		v, ok := c.pull()
		if !ok {
			break
		}
		acc = f(acc, v)
	}
	c.close()
	return acc, nil
}

// Fold folds the sequence left to right starting from initial. Unlike
// Reduce it is total: an empty sequence folds to initial.
func Fold[T, R any](s *Sequence[T], initial R, f func(R, T) R) R {
	acc := initial
	for v := range s.Iter() {
		acc = f(acc, v)
	}
	return acc
}

// Sort drains the sequence and returns a new one over the elements in
// ascending natural order. The sort is stable.
func Sort[T cmp.Ordered](s *Sequence[T]) *Sequence[T] {
	items := s.Collect()
	slices.SortStableFunc(items, cmp.Compare)
	return FromSlice(items)
}

// SortBy drains the sequence and returns a new one sorted by key, stable
// with respect to input order for equal keys.
func SortBy[T any, K cmp.Ordered](s *Sequence[T], key func(T) K) *Sequence[T] {
	items := s.Collect()
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return FromSlice(items)
}

// SortFunc drains the sequence and returns a new one sorted by the given
// comparison function, stable for equal elements.
func (s *Sequence[T]) SortFunc(compare func(a, b T) int) *Sequence[T] {
	items := s.Collect()
	slices.SortStableFunc(items, compare)
	return FromSlice(items)
}

// Shuffle drains the sequence and returns a new one over a randomly permuted
// copy. It draws from the process-wide random source and is not reproducible
// across runs.
func (s *Sequence[T]) Shuffle() *Sequence[T] {
	items := s.Collect()
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return FromSlice(items)
}

// Distinct drains the sequence and returns a new one containing each
// distinct element exactly once, in order of first appearance.
func Distinct[T comparable](s *Sequence[T]) *Sequence[T] {
	seen := make(map[T]struct{})
	var out []T
	for v := range s.Iter() {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return FromSlice(out)
}

// Counted pairs a distinct value with the number of times it occurred.
type Counted[T comparable] struct {
	Value T
	Count int
}

// CountDistinct drains the sequence and returns a new one with an occurrence
// count per distinct value. The counting map is unordered by key, so the
// order of the resulting pairs is unspecified; Distinct, by contrast, keeps
// first-appearance order.
func CountDistinct[T comparable](s *Sequence[T]) *Sequence[Counted[T]] {
	counts := make(map[T]int)
	for v := range s.Iter() {
		counts[v]++
	}
	out := make([]Counted[T], 0, len(counts))
	for v, n := range counts {
		out = append(out, Counted[T]{Value: v, Count: n})
	}
	return FromSlice(out)
}
