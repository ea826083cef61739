package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "giro",
	Short: "Turnover analytics engine for the delivery dashboard",
	Long: `Giro analytics CLI.

Computes per-client recurring-order turnover from delivery history,
ranks and groups clients, and produces short-horizon forecasts.

Usage:
  go run ./cmd/giro [command]

Examples:
  go run ./cmd/giro api
  go run ./cmd/giro scheduler
  go run ./cmd/giro overview
  go run ./cmd/giro refresh`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}
