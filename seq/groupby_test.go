package seq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huyng/datapad/seq"
)

func ident(s string) string { return s }

func TestGroupByUnsortedInputSplitsRuns(t *testing.T) {
	in := seq.FromSlice([]string{"a", "b", "c", "d", "a", "b", "a", "d"})
	got := seq.GroupBy(in, ident).Collect()

	// Non-contiguous repeats form separate groups; grouping never sorts.
	require.Equal(t, []seq.Group[string, string]{
		{Key: "a", Values: []string{"a"}},
		{Key: "b", Values: []string{"b"}},
		{Key: "c", Values: []string{"c"}},
		{Key: "d", Values: []string{"d"}},
		{Key: "a", Values: []string{"a"}},
		{Key: "b", Values: []string{"b"}},
		{Key: "a", Values: []string{"a"}},
		{Key: "d", Values: []string{"d"}},
	}, got)
}

func TestGroupBySortedInput(t *testing.T) {
	in := seq.Sort(seq.FromSlice([]string{"a", "b", "c", "d", "a", "b", "a", "d"}))
	got := seq.GroupBy(in, ident).Collect()

	require.Equal(t, []seq.Group[string, string]{
		{Key: "a", Values: []string{"a", "a", "a"}},
		{Key: "b", Values: []string{"b", "b"}},
		{Key: "c", Values: []string{"c"}},
		{Key: "d", Values: []string{"d", "d"}},
	}, got)
}

func TestGroupByInto(t *testing.T) {
	things := []seq.Pair[string, string]{
		{V1: "animal", V2: "lion"},
		{V1: "animal", V2: "walrus"},
		{V1: "plant", V2: "grass"},
		{V1: "plant", V2: "maple tree"},
	}
	got := seq.GroupByInto(seq.FromSlice(things),
		func(p seq.Pair[string, string]) string { return p.V1 },
		func(p seq.Pair[string, string]) string { return p.V2 },
	).Collect()

	require.Equal(t, []seq.Group[string, string]{
		{Key: "animal", Values: []string{"lion", "walrus"}},
		{Key: "plant", Values: []string{"grass", "maple tree"}},
	}, got)
}

func TestGroupByEmpty(t *testing.T) {
	require.Empty(t, seq.GroupBy(seq.Empty[string](), ident).Collect())
}

func TestGroupByLazyFullDrain(t *testing.T) {
	in := seq.FromSlice([]string{"a", "a", "b", "c", "c", "c"})
	groups := seq.GroupByLazy(in, ident)

	var keys []string
	var sizes []int
	for g := range groups.Iter() {
		keys = append(keys, g.Key)
		sizes = append(sizes, g.Values.Count())
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
	require.Equal(t, []int{2, 1, 3}, sizes)
}

func TestGroupByLazyOuterAdvanceTruncatesGroup(t *testing.T) {
	in := seq.FromSlice([]string{"a", "a", "a", "b", "b"})
	groups := seq.GroupByLazy(in, ident)

	first, ok := groups.First()
	require.True(t, ok)
	require.Equal(t, "a", first.Key)

	// Read a single element of the first group, then advance the outer
	// sequence: the rest of the "a" run is discarded, not misdelivered.
	v, ok := first.Values.First()
	require.True(t, ok)
	require.Equal(t, "a", v)

	second, ok := groups.First()
	require.True(t, ok)
	require.Equal(t, "b", second.Key)
	require.Equal(t, []string{"b", "b"}, second.Values.Collect())

	// The abandoned group's sequence is exhausted.
	require.Empty(t, first.Values.Collect())
}
