package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ninelives/traintracks/cmd/bench"
	"github.com/ninelives/traintracks/cmd/generate"
	"github.com/ninelives/traintracks/cmd/solve"
	"github.com/ninelives/traintracks/pkg/tracklog"
)

var (
	verbose bool
	logFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "traintracks",
	Short: "Train Tracks puzzle solver, generator, and benchmark tool",
	Long: `traintracks is a CLI for the Train Tracks logic puzzle.

It provides commands for:
  - Solving a puzzle with the constrained backtracker, path builder, or A* solver
  - Generating new random, solver-validated puzzles
  - Benchmarking the three solver strategies against built-in scenarios`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		tracklog.VerboseEnabled = verbose
		tracklog.LogFile = logFile
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append log output to this file in addition to stdout/stderr")

	rootCmd.AddCommand(solve.GetCommand())
	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(bench.GetCommand())
}
