package seqio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/huyng/datapad/seq"
)

// openSink opens the sink target for one write pass. An empty path or "-"
// means stdout, which the caller must not close.
func openSink(path string, appendTo bool) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("seqio: open sink: %w", err)
	}
	return f, f.Close, nil
}

// TextSink writes each element of a string sequence as one line.
type TextSink struct {
	// Path of the target file; empty or "-" writes to stdout.
	Path string
	// Append adds to an existing file instead of truncating it.
	Append bool
	// ProgressEvery logs a progress event every N records; 0 disables.
	ProgressEvery int
	// Logger receives progress events. Nil disables logging.
	Logger *zerolog.Logger
}

// Consume drains the sequence into the target file, owning the handle for
// exactly this pass and releasing it on any exit.
func (k TextSink) Consume(s *seq.Sequence[string]) (err error) {
	log := loggerOf(k.Logger)
	w, closeSink, err := openSink(k.Path, k.Append)
	if err != nil {
		s.Close()
		return err
	}
	defer func() {
		if cerr := closeSink(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(w)
	n := 0
	for line := range s.Iter() {
		if _, werr := bw.WriteString(line + "\n"); werr != nil {
			s.Close()
			return fmt.Errorf("seqio: write record %d: %w", n, werr)
		}
		n++
		logProgress(log, k.ProgressEvery, n)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("seqio: flush sink: %w", err)
	}
	log.Debug().Int("records", n).Str("path", k.Path).Msg("sink drained")
	return nil
}

// JSONSink writes a sequence of values as json-lines, or as one aggregated
// JSON array when Array is set.
type JSONSink struct {
	// Path of the target file; empty or "-" writes to stdout.
	Path string
	// Append adds to an existing file instead of truncating it.
	Append bool
	// Array aggregates the whole sequence into a single JSON array instead
	// of one document per line.
	Array bool
	// IgnoreErrors skips elements that fail to encode instead of aborting.
	IgnoreErrors bool
	// ProgressEvery logs a progress event every N records; 0 disables.
	ProgressEvery int
	// Logger receives progress and skipped-record events. Nil disables
	// logging.
	Logger *zerolog.Logger
}

// Consume drains the sequence into the target file. Encoding failures abort
// the pass unless IgnoreErrors is set, in which case the offending elements
// are logged and skipped.
func (k JSONSink) Consume(s *seq.Sequence[any]) (err error) {
	log := loggerOf(k.Logger)
	w, closeSink, err := openSink(k.Path, k.Append)
	if err != nil {
		s.Close()
		return err
	}
	defer func() {
		if cerr := closeSink(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if k.Array {
		data, err := json.Marshal(s.Collect())
		if err != nil {
			return fmt.Errorf("seqio: encode array: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("seqio: write array: %w", err)
		}
		return nil
	}

	bw := bufio.NewWriter(w)
	n := 0
	for v := range s.Iter() {
		data, merr := json.Marshal(v)
		if merr != nil {
			if k.IgnoreErrors {
				log.Warn().Err(merr).Msg("skipping unencodable record")
				continue
			}
			s.Close()
			return fmt.Errorf("seqio: encode record %d: %w", n, merr)
		}
		data = append(data, '\n')
		if _, werr := bw.Write(data); werr != nil {
			s.Close()
			return fmt.Errorf("seqio: write record %d: %w", n, werr)
		}
		n++
		logProgress(log, k.ProgressEvery, n)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("seqio: flush sink: %w", err)
	}
	log.Debug().Int("records", n).Str("path", k.Path).Msg("sink drained")
	return nil
}

func loggerOf(l *zerolog.Logger) zerolog.Logger {
	if l != nil {
		return *l
	}
	return zerolog.Nop()
}

func logProgress(log zerolog.Logger, every, n int) {
	if every > 0 && n%every == 0 {
		log.Info().Int("records", n).Msg("progress")
	}
}
