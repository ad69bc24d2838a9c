package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/descent/lsp"
)

func newLSPCmd() *cobra.Command {
	var flags grammarFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a Language Server Protocol server reporting parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := flags.load()
			if err != nil {
				return err
			}
			server := lsp.NewServer(grammar, flags.start, version, flags.parserOptions()...)
			return server.RunStdio()
		},
	}

	flags.register(cmd)

	return cmd
}
