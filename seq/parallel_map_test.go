package seq_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/huyng/datapad/seq"
)

func TestPMapOrdered(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := seq.Range(0, 1000, 1).Collect()
	got := seq.PMap(seq.FromSlice(input), func(v int) int {
		// Jitter so completions genuinely arrive out of order.
		if v%97 == 0 {
			time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)
		}
		return v * 2
	}, seq.WithWorkers(4)).Collect()

	require.Len(t, got, len(input))
	for i, v := range got {
		require.Equal(t, input[i]*2, v, "ordered delivery must match submission order at index %d", i)
	}
}

func TestPMapUnordered(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := seq.Range(0, 500, 1).Collect()
	got := seq.PMap(seq.FromSlice(input), func(v int) int {
		return v * 3
	}, seq.WithWorkers(8), seq.WithOrdered(false)).Collect()

	want := make([]int, len(input))
	for i, v := range input {
		want[i] = v * 3
	}
	// Order is not promised, the multiset of results is.
	require.ElementsMatch(t, want, got)
}

func TestPMapSingleWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := seq.PMap(seq.Range(0, 10, 1), func(v int) int {
		return v * 2
	}, seq.WithWorkers(1), seq.WithOrdered(false)).Collect()
	require.Len(t, got, 10)
}

func TestPMapPullsEachElementOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var pulls atomic.Int64
	upstream := seq.Range(0, 200, 1).Tap(func(int) { pulls.Add(1) })
	got := seq.PMap(upstream, func(v int) int { return v }, seq.WithWorkers(4)).Collect()

	require.Len(t, got, 200)
	require.Equal(t, int64(200), pulls.Load())
}

func TestTryPMapDeliversEverySubmittedElement(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	results := seq.TryPMap(seq.Range(0, 100, 1), func(v int) (int, error) {
		if v%10 == 0 {
			return 0, boom
		}
		return v, nil
	}, seq.WithWorkers(4)).Collect()

	// A failing element never drops or duplicates its neighbors.
	require.Len(t, results, 100)
	failed := 0
	for i, r := range results {
		if r.Err != nil {
			require.ErrorIs(t, r.Err, boom)
			require.Zero(t, i%10, "error attributed to the wrong element")
			failed++
		} else {
			require.Equal(t, i, r.Value)
		}
	}
	require.Equal(t, 10, failed)
}

func TestTryPMapCapturesPanics(t *testing.T) {
	defer goleak.VerifyNone(t)

	results := seq.TryPMap(seq.Range(0, 20, 1), func(v int) (int, error) {
		if v == 7 {
			panic("kaboom")
		}
		return v, nil
	}, seq.WithWorkers(3)).Collect()

	require.Len(t, results, 20)
	require.Error(t, results[7].Err)
	require.Contains(t, results[7].Err.Error(), "kaboom")
	require.NoError(t, results[8].Err)
}

func TestPMapEarlyStopReleasesWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	// An endless upstream: only a cancelled stage can ever finish.
	endless := seq.FromFunc(func() (int, bool) { return 1, true })
	got := seq.PMap(endless, func(v int) int {
		return v
	}, seq.WithWorkers(4)).Take(10).Collect()

	require.Len(t, got, 10)
}

func TestPMapCloseWithoutDraining(t *testing.T) {
	defer goleak.VerifyNone(t)

	stage := seq.PMap(seq.Range(0, 1000, 1), func(v int) int {
		time.Sleep(time.Millisecond)
		return v
	}, seq.WithWorkers(4))

	v, ok := stage.First()
	require.True(t, ok)
	require.Equal(t, 0, v)
	stage.Close()
}

func TestPMapContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	endless := seq.FromFunc(func() (int, bool) { return 1, true })
	stage := seq.PMap(endless, func(v int) int { return v },
		seq.WithWorkers(2), seq.WithContext(ctx))

	n := 0
	for range stage.Iter() {
		n++
		if n == 50 {
			cancel()
		}
		if n > 10_000 {
			break
		}
	}
	require.Less(t, n, 10_000, "cancelled stage must stop delivering")
	stage.Close()
}

func TestPMapNoWorkBeforeFirstPull(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran atomic.Bool
	stage := seq.PMap(seq.Range(0, 10, 1), func(v int) int {
		ran.Store(true)
		return v
	}, seq.WithWorkers(2))

	time.Sleep(10 * time.Millisecond)
	require.False(t, ran.Load(), "workers must not start before the first pull")
	stage.Close()

	require.Empty(t, stage.Collect())
}
