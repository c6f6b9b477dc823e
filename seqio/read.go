// Package seqio creates sequences from files and writes sequences back out.
// Sources expand glob patterns lazily, open each file on demand and close it
// when the pass over that file ends, whether the pipeline is drained or
// abandoned. Decoding problems are handled at this layer; the seq core
// never swallows or translates element errors.
package seqio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/huyng/datapad/fields"
	"github.com/huyng/datapad/seq"
)

// maxLineBytes caps the scanner token size for line-oriented sources.
const maxLineBytes = 4 << 20

// Options configures sources. The zero value reads line by line with a
// comma-separated CSV dialect and no logging.
type Options struct {
	// WholeFile reads each file as a single element instead of one element
	// per line.
	WholeFile bool
	// Comma is the CSV field delimiter; ',' when zero.
	Comma rune
	// Logger receives skipped-file and skipped-record events. Nil disables
	// logging.
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

// FromGlobs expands the given glob patterns into a sequence of matching
// paths, in pattern order. Patterns that match nothing contribute nothing.
func FromGlobs(patterns ...string) *seq.Sequence[string] {
	return seq.FromSeq(func(yield func(string) bool) {
		for _, pattern := range patterns {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				continue
			}
			for _, m := range matches {
				if !yield(m) {
					return
				}
			}
		}
	})
}

// ReadText creates a sequence of lines (or whole files, with
// Options.WholeFile) from the files matching the given glob patterns.
// Unreadable files are logged and skipped.
func ReadText(opts Options, patterns ...string) *seq.Sequence[string] {
	log := opts.logger()
	return seq.FromSeq(func(yield func(string) bool) {
		for path := range FromGlobs(patterns...).Iter() {
			if opts.WholeFile {
				data, err := os.ReadFile(path)
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("skipping unreadable file")
					continue
				}
				if !yield(string(data)) {
					return
				}
				continue
			}
			if !yieldLines(path, log, yield) {
				return
			}
		}
	})
}

// yieldLines streams one file line by line, owning the handle for exactly
// this pass. It returns false once the consumer stops.
func yieldLines(path string, log zerolog.Logger, yield func(string) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("skipping unreadable file")
		return true
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if !yield(sc.Text()) {
			return false
		}
	}
	if err := sc.Err(); err != nil {
		log.Error().Err(err).Str("path", path).Msg("read aborted")
	}
	return true
}

// ReadJSON creates a sequence of decoded JSON values from json-lines files
// (or one value per file, with Options.WholeFile). Records that fail to
// decode are logged and skipped; use TryReadJSON when the caller needs to
// see them.
func ReadJSON(opts Options, patterns ...string) *seq.Sequence[any] {
	log := opts.logger()
	kept := TryReadJSON(opts, patterns...).KeepIf(func(r seq.Result[any]) bool {
		if r.Err != nil {
			log.Warn().Err(r.Err).Msg("skipping undecodable record")
			return false
		}
		return true
	})
	return seq.Map(kept, func(r seq.Result[any]) any { return r.Value })
}

// TryReadJSON is ReadJSON with per-record errors carried through the stream
// instead of skipped, so the consumer decides whether to drop or abort.
func TryReadJSON(opts Options, patterns ...string) *seq.Sequence[seq.Result[any]] {
	lines := ReadText(opts, patterns...).DropIf(func(line string) bool {
		return len(line) == 0
	})
	return seq.TryMap(lines, decodeJSON)
}

func decodeJSON(doc string) (any, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("seqio: invalid json: %.80s", doc)
	}
	return gjson.Parse(doc).Value(), nil
}

// ReadCSV creates a sequence of positional records from the CSV files
// matching the given glob patterns. Rows may vary in width; malformed rows
// are logged and skipped.
func ReadCSV(opts Options, patterns ...string) *seq.Sequence[fields.Positional] {
	log := opts.logger()
	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}
	return seq.FromSeq(func(yield func(fields.Positional) bool) {
		for path := range FromGlobs(patterns...).Iter() {
			if !yieldRows(path, comma, log, yield) {
				return
			}
		}
	})
}

func yieldRows(path string, comma rune, log zerolog.Logger, yield func(fields.Positional) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("skipping unreadable file")
		return true
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return true
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping malformed row")
			continue
		}
		rec := make(fields.Positional, len(row))
		for i, field := range row {
			rec[i] = field
		}
		if !yield(rec) {
			return false
		}
	}
}
