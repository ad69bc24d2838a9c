package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	var verbosity int
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "descent",
		Short: "Recursive-descent parsing from EBNF grammars",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, configFile); err != nil {
				return err
			}
			commonlog.Configure(verbosity, nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "read flag defaults from a YAML, JSON or TOML file")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
