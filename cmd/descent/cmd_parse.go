package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dhamidi/descent/ebnf"
	"github.com/dhamidi/descent/format"
	"github.com/dhamidi/descent/metrics"
	"github.com/dhamidi/descent/parser"
)

type grammarFlags struct {
	grammar    string
	start      string
	whitespace string
	memoLimit  int
}

func (f *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.grammar, "grammar", "g", "", "EBNF grammar file")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "start production")
	cmd.Flags().StringVar(&f.whitespace, "whitespace", "", "regular expression for whitespace skipped between tokens")
	cmd.Flags().IntVar(&f.memoLimit, "memo-limit", 0, "maximum number of memoized results (0 for unbounded)")
}

func (f *grammarFlags) load() (*ebnf.Grammar, error) {
	if f.grammar == "" || f.start == "" {
		return nil, errors.New("--grammar and --start are required")
	}
	source, err := ebnf.LoadGrammar(f.grammar)
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(source, f.start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	var opts []ebnf.Option
	if f.whitespace != "" {
		opts = append(opts, ebnf.WithWhitespace(f.whitespace))
	}
	return ebnf.Compile(source, opts...)
}

func (f *grammarFlags) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMemoLimit(f.memoLimit)}
}

func newParseCmd() *cobra.Command {
	var flags grammarFlags
	var outputFormat string
	var stats bool

	cmd := &cobra.Command{
		Use:           "parse <file>",
		Short:         "Parse a file with an EBNF grammar and dump the syntax tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			grammar, err := flags.load()
			if err != nil {
				return err
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := append(flags.parserOptions(), parser.WithName(filename))
			var collector *metrics.Collector
			if stats {
				collector, err = metrics.NewCollector(prometheus.NewRegistry())
				if err != nil {
					return err
				}
				opts = append(opts, parser.WithObserver(collector))
			}

			node, parseErr := grammar.Parse(string(data), flags.start, opts...)

			if collector != nil {
				snapshot, err := collector.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), snapshot)
			}

			if parseErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), parseErr)
				return parseErr
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", fmt.Sprintf("output format %v", format.Names()))
	cmd.Flags().BoolVar(&stats, "stats", false, "print memoization statistics to stderr")

	return cmd
}
