/*
Package seq provides a lazy, fluent sequence-transformation pipeline over a
single-pass cursor.

A [Sequence] wraps exactly one forward-only producer. Lazy operators (Map,
Filter, Take, Window, ...) wrap the cursor in a new cursor without pulling
anything; work happens only when a terminal operator (Collect, Count,
Reduce, ...) or iteration demands elements:

	evens := seq.Range(0, 100, 1).
		Filter(func(v int) bool { return v%2 == 0 }).
		Take(10)
	fmt.Println(evens.Collect())

Because operators move the cursor into the sequence they return, a Sequence
may be consumed along only one path; reusing one after deriving from it
panics instead of silently double-reading the producer. Concat detects
self-concatenation and tees the cursor so both halves see every element.

# Changing element types

Go methods cannot introduce type parameters, so operators that change the
element type are package functions taking the sequence as their first
argument: [Map], [FlatMap], [GroupBy], [Distinct], [Sort], [Fold], [PMap].

# Concurrency

Evaluation is single-threaded and pull-based; the one concurrent construct
is the parallel map stage. [PMap] and [TryPMap] fan elements out to a fixed
worker pool and deliver results either in submission order or in completion
order:

	out := seq.PMap(input, process,
		seq.WithWorkers(8), seq.WithOrdered(false))

Workers start on the first pull. Drain the stage or call Close on an
abandoned pipeline to release them.

# Error handling

Fallible transforms use the Try variants ([TryMap], [TryPMap]), which carry
a per-element error through the stream as a [Result] instead of aborting it.
[Sequence.Reduce] reports [ErrEmptySequence] on empty input; First does not,
it reports absence through its second return value.
*/
package seq
