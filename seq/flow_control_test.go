package seq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huyng/datapad/seq"
)

func TestKeepIf(t *testing.T) {
	got := seq.Range(0, 5, 1).
		KeepIf(func(v int) bool { return v > 1 }).
		Collect()
	require.Equal(t, []int{2, 3, 4}, got)
}

func TestFilterAliasesKeepIf(t *testing.T) {
	got := seq.Range(0, 5, 1).
		Filter(func(v int) bool { return v%2 == 0 }).
		Collect()
	require.Equal(t, []int{0, 2, 4}, got)
}

func TestDropIf(t *testing.T) {
	got := seq.Range(0, 5, 1).
		DropIf(func(v int) bool { return v > 1 }).
		Collect()
	require.Equal(t, []int{0, 1}, got)
}

func TestDrop(t *testing.T) {
	require.Equal(t, []int{2, 3, 4}, seq.Range(0, 5, 1).Drop(2).Collect())
	require.Empty(t, seq.Range(0, 5, 1).Drop(10).Collect())
	require.Equal(t, []int{0, 1}, seq.Range(0, 2, 1).Drop(0).Collect())
}

func TestTake(t *testing.T) {
	require.Equal(t, []int{0, 1}, seq.Range(0, 5, 1).Take(2).Collect())
	require.Empty(t, seq.Range(0, 5, 1).Take(0).Collect())
	require.Equal(t, []int{0, 1, 2}, seq.Range(0, 3, 1).Take(10).Collect())
}

func TestTakeShortCircuitsUpstream(t *testing.T) {
	pulls := 0
	got := seq.Range(0, 100, 1).
		Tap(func(int) { pulls++ }).
		Take(3).
		Collect()

	require.Equal(t, []int{0, 1, 2}, got)
	require.Equal(t, 3, pulls, "take(n) must never pull more than n elements upstream")
}

func TestTakeWhile(t *testing.T) {
	pulls := 0
	got := seq.Range(0, 100, 1).
		Tap(func(int) { pulls++ }).
		TakeWhile(func(v int) bool { return v < 4 }).
		Collect()

	require.Equal(t, []int{0, 1, 2, 3}, got)
	require.Equal(t, 5, pulls, "one look past the failing element, no more")
}

func TestDropWhile(t *testing.T) {
	got := seq.FromSlice([]int{1, 2, 5, 1, 2}).
		DropWhile(func(v int) bool { return v < 3 }).
		Collect()
	require.Equal(t, []int{5, 1, 2}, got)
}

func TestChainComposition(t *testing.T) {
	// Building the chain incrementally and in one expression must agree.
	incremental := seq.Range(0, 20, 1)
	incremental = incremental.Filter(func(v int) bool { return v%2 == 0 })
	incremental = incremental.Drop(1)
	incremental = incremental.Take(3)

	oneShot := seq.Range(0, 20, 1).
		Filter(func(v int) bool { return v%2 == 0 }).
		Drop(1).
		Take(3)

	require.Equal(t, oneShot.Collect(), incremental.Collect())
}
