// Command datapad pipes record streams from text, json-lines, and csv files
// through sequence transformations.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/huyng/datapad/fields"
	"github.com/huyng/datapad/seq"
	"github.com/huyng/datapad/seqio"
)

var (
	logLevel string
	format   string
	logger   zerolog.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "datapad",
		Short:         "Transform record streams from text, json-lines, and csv files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&format, "format", "jsonl", "input format: text, jsonl, or csv")
	root.AddCommand(catCmd(), countCmd(), headCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "datapad:", err)
		os.Exit(1)
	}
}

func catCmd() *cobra.Command {
	var (
		take      int
		drop      int
		selectKey string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "cat [globs...]",
		Short: "Read records, optionally reshape them, and write them back out",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(args)
			if err != nil {
				return err
			}
			if drop > 0 {
				records = records.Drop(drop)
			}
			if take >= 0 {
				records = records.Take(take)
			}
			if selectKey != "" {
				records = seq.Map(records, shape(parseKeys(selectKey)))
			}
			return writeRecords(records, output)
		},
	}
	cmd.Flags().IntVar(&take, "take", -1, "keep at most N records")
	cmd.Flags().IntVar(&drop, "drop", 0, "skip the first N records")
	cmd.Flags().StringVar(&selectKey, "select", "", "comma-separated field names or indices to keep")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default stdout)")
	return cmd
}

func countCmd() *cobra.Command {
	var distinct bool
	cmd := &cobra.Command{
		Use:   "count [globs...]",
		Short: "Count records, in total or per distinct value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(args)
			if err != nil {
				return err
			}
			if !distinct {
				fmt.Fprintln(cmd.OutOrStdout(), records.Count())
				return nil
			}
			counts := seq.CountDistinct(asLines(records))
			for c := range counts.Iter() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", c.Count, c.Value)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&distinct, "distinct", false, "count occurrences per distinct record")
	return cmd
}

func headCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "head [globs...]",
		Short: "Print the first records without reading the rest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(args)
			if err != nil {
				return err
			}
			return writeRecords(records.Take(n), "")
		},
	}
	cmd.Flags().IntVarP(&n, "num", "n", 10, "number of records to print")
	return cmd
}

func readRecords(patterns []string) (*seq.Sequence[any], error) {
	opts := seqio.Options{Logger: &logger}
	switch format {
	case "text":
		return seq.Map(seqio.ReadText(opts, patterns...), func(line string) any { return line }), nil
	case "jsonl":
		return seqio.ReadJSON(opts, patterns...), nil
	case "csv":
		return seq.Map(seqio.ReadCSV(opts, patterns...), func(row fields.Positional) any { return row }), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text, jsonl, or csv)", format)
	}
}

func writeRecords(records *seq.Sequence[any], output string) error {
	if format == "text" {
		lines := seq.Map(records, func(v any) string {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		})
		return seqio.TextSink{Path: output, Logger: &logger}.Consume(lines)
	}
	return seqio.JSONSink{Path: output, Logger: &logger}.Consume(records)
}

// shape reshapes structured records with a field selection; scalar elements
// pass through untouched.
func shape(keys []fields.Key) func(any) any {
	selector := fields.Select(keys...)
	return func(v any) any {
		rec, ok := fields.FromValue(v)
		if !ok {
			return v
		}
		return selector(rec)
	}
}

func parseKeys(spec string) []fields.Key {
	parts := strings.Split(spec, ",")
	keys := make([]fields.Key, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if i, err := strconv.Atoi(p); err == nil {
			keys = append(keys, fields.Index(i))
			continue
		}
		keys = append(keys, fields.Name(p))
	}
	return keys
}

// asLines renders records as canonical single-line strings so distinct
// counting works across structured values.
func asLines(records *seq.Sequence[any]) *seq.Sequence[string] {
	return seq.Map(records, func(v any) string {
		if s, ok := v.(string); ok {
			return s
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	})
}
