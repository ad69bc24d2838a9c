package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/descent/demo"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:           fmt.Sprintf("demo <%s> <input>", strings.Join(demo.Names(), "|")),
		Short:         "Run a built-in demo grammar against a string",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := demo.Run(args[0], args[1])
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return err
		},
	}
}
