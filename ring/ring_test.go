package ring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huyng/datapad/ring"
)

func TestPushPop(t *testing.T) {
	b := ring.New[int](4)
	for i := 0; i < 4; i++ {
		b.Push(i)
	}
	require.Equal(t, 4, b.Len())

	for i := 0; i < 4; i++ {
		v, ok := b.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := b.Pop()
	require.False(t, ok)
}

func TestWrapAround(t *testing.T) {
	b := ring.New[int](4)
	// Advance head so pushes wrap past the end of the backing array.
	for i := 0; i < 3; i++ {
		b.Push(i)
	}
	b.Pop()
	b.Pop()
	for i := 3; i < 6; i++ {
		b.Push(i)
	}

	require.Equal(t, []int{2, 3, 4, 5}, b.Snapshot())
}

func TestGrowth(t *testing.T) {
	b := ring.New[int](2)
	var want []int
	for i := 0; i < 100; i++ {
		b.Push(i)
		want = append(want, i)
	}
	require.Equal(t, 100, b.Len())
	require.Equal(t, want, b.Snapshot())

	v, ok := b.Peek()
	require.True(t, ok)
	require.Equal(t, 0, v)
}

func TestGrowthAfterWrap(t *testing.T) {
	b := ring.New[int](4)
	for i := 0; i < 4; i++ {
		b.Push(i)
	}
	b.Pop()
	b.Pop()
	// The live region now wraps; growing must preserve order.
	for i := 4; i < 10; i++ {
		b.Push(i)
	}
	require.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, b.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	b := ring.New[int](4)
	b.Push(1)
	b.Push(2)
	snap := b.Snapshot()
	snap[0] = 99

	v, ok := b.Peek()
	require.True(t, ok)
	require.Equal(t, 1, v)
}
