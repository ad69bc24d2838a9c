package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/descent/ebnf"
)

func newCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <grammar>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if err := ebnf.Verify(grammar, startProduction); err != nil {
				printErrors(cmd, err)
				return err
			}

			compiled, err := ebnf.Compile(grammar)
			if err != nil {
				return err
			}
			if err := compiled.Rules().Check(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions\n", args[0], len(grammar))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

// printErrors prints each error of an error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(cmd.ErrOrStderr(), v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}
