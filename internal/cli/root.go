// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are flags shared by every sub-command.
type GlobalOptions struct {
	ConfigFile string
	LogFile    string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gdpetl",
		Short: "gdpetl - ETL of national GDP figures into CSV and SQL stores",
		Long: `gdpetl scrapes the table of countries by nominal GDP, converts the figures
from millions to billions of US dollars, and loads the result into a CSV file,
an embedded SQLite database and, when configured, a SQL server and MongoDB.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a json5 config file (default gdpetl.json5 if present)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Also write diagnostic logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewRunCmd(opts), NewPreviewCmd(opts), NewQueryCmd(opts))

	return rootCmd
}
