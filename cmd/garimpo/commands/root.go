package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "garimpo",
	Short: "Multi-strategy stock ranking backend",
	Long: `Garimpo ranks Brazilian and US equities with classic value and
income strategies and serves the reports over HTTP.

Usage:
  go run ./cmd/garimpo [command]

Examples:
  go run ./cmd/garimpo api
  go run ./cmd/garimpo rank --source br --sort sector-weighted-yield
  go run ./cmd/garimpo calendar-sync`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
