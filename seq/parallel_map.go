package seq

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

type parallelConfig struct {
	ctx     context.Context
	workers int
	ordered bool
}

// ParallelOption customizes the parallel map stage.
type ParallelOption func(*parallelConfig)

// WithWorkers sets the number of worker goroutines. Values below 1 are
// clamped to 1.
func WithWorkers(count int) ParallelOption {
	return func(cfg *parallelConfig) {
		if count < 1 {
			count = 1
		}
		cfg.workers = count
	}
}

// WithOrdered controls delivery order. When true (the default) results come
// out in the order their inputs were pulled, even if the transforms complete
// out of order. When false results are delivered in completion order, which
// lets fast work overtake slow work.
func WithOrdered(ordered bool) ParallelOption {
	return func(cfg *parallelConfig) {
		cfg.ordered = ordered
	}
}

// WithContext binds the stage to ctx; cancelling it stops the workers.
func WithContext(ctx context.Context) ParallelOption {
	return func(cfg *parallelConfig) {
		cfg.ctx = ctx
	}
}

// job carries one upstream element and its submission index to a worker.
type job[T any] struct {
	idx int
	val T
}

// outcome carries one transformed element back, tagged with its submission
// index so the ordered collector can reassemble the input order.
type outcome[R any] struct {
	idx int
	val R
	err error
}

// pmapExecutor owns the goroutines of one parallel map stage: a feeder that
// is the sole reader of the upstream cursor, a fixed worker pool, and a
// closer that shuts the results channel once the workers are done.
type pmapExecutor[T, R any] struct {
	src       *cursor[T]
	transform func(T) (R, error)
	jobs      chan job[T]
	results   chan outcome[R]
	cancel    context.CancelFunc
	ctx       context.Context
}

func startExecutor[T, R any](cfg parallelConfig, src *cursor[T], transform func(T) (R, error)) *pmapExecutor[T, R] {
	ctx, cancel := context.WithCancel(cfg.ctx)
	ex := &pmapExecutor[T, R]{
		src:       src,
		transform: transform,
		jobs:      make(chan job[T], cfg.workers*2),
		results:   make(chan outcome[R], cfg.workers*2),
		cancel:    cancel,
		ctx:       ctx,
	}

	// Feeder: the only goroutine touching the upstream cursor, so each
	// element is handed to exactly one worker.
	go func() {
		defer close(ex.jobs)
		for idx := 0; ; idx++ {
			if ctx.Err() != nil {
				return
			}
			v, ok := src.pull()
			if !ok {
				return
			}
			select {
			case ex.jobs <- job[T]{idx: idx, val: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: fixed-size pool draining the jobs channel.
	workers := pool.New().WithMaxGoroutines(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		workers.Go(func() {
			for jb := range ex.jobs {
				res := ex.run(jb)
				select {
				case ex.results <- res:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	// Closer: ends the results stream once every worker has finished.
	go func() {
		workers.Wait()
		close(ex.results)
	}()

	return ex
}

// run applies the transform to one element, converting a panic into an error
// attributed to that element.
func (ex *pmapExecutor[T, R]) run(jb job[T]) (out outcome[R]) {
	out.idx = jb.idx
	defer func() {
		if p := recover(); p != nil {
			out.err = fmt.Errorf("seq: panic in parallel transform: %v", p)
		}
	}()
	out.val, out.err = ex.transform(jb.val)
	return out
}

// shutdown cancels the stage and discards in-flight results until every
// goroutine has exited, then closes the upstream cursor.
func (ex *pmapExecutor[T, R]) shutdown() {
	ex.cancel()
	for range ex.results {
	}
	ex.src.close()
}

// TryPMap lazily applies transform across a fixed pool of workers pulling
// from this sequence. Each upstream element is pulled at most once and
// produces exactly one Result, carrying the transform's error (or captured
// panic) for the element that caused it. The pool starts on the first pull
// and is torn down when the stage is drained or closed.
func TryPMap[T, R any](s *Sequence[T], transform func(T) (R, error), opts ...ParallelOption) *Sequence[Result[R]] {
	src := s.detach()
	cfg := parallelConfig{
		ctx:     context.Background(),
		workers: runtime.GOMAXPROCS(0),
		ordered: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var ex *pmapExecutor[T, R]
	pending := make(map[int]outcome[R])
	nextIdx := 0

	recv := func() (outcome[R], bool) {
		if !cfg.ordered {
			res, ok := <-ex.results
			return res, ok
		}
		for {
			if res, ok := pending[nextIdx]; ok {
				delete(pending, nextIdx)
				nextIdx++
				return res, true
			}
			res, ok := <-ex.results
			if !ok {
				return outcome[R]{}, false
			}
			if res.idx == nextIdx {
				nextIdx++
				return res, true
			}
			// Arrived ahead of an earlier submission; hold it back.
			pending[res.idx] = res
		}
	}

	return newSequence(&cursor[Result[R]]{
		next: func() (Result[R], bool) {
			if ex == nil {
				ex = startExecutor(cfg, src, transform)
			}
			res, ok := recv()
			if !ok {
				ex.shutdown()
				return Result[R]{}, false
			}
			return Result[R]{Value: res.val, Err: res.err}, true
		},
		stop: func() {
			if ex != nil {
				ex.shutdown()
			} else {
				src.close()
			}
		},
	})
}

// PMap is TryPMap for infallible transforms: the resulting sequence carries
// plain values, and a panic in the transform resurfaces at the point the
// affected element is pulled.
func PMap[T, R any](s *Sequence[T], transform func(T) R, opts ...ParallelOption) *Sequence[R] {
	inner := TryPMap(s, func(v T) (R, error) {
		return transform(v), nil
	}, opts...)
	return Map(inner, func(r Result[R]) R {
		if r.Err != nil {
			panic(r.Err)
		}
		return r.Value
	})
}
