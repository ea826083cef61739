package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// refreshCmd triggers a one-shot consolidated snapshot rebuild.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the consolidated client snapshot",
	Long: `Triggers the upstream rebuild of the consolidated client dataset
and drops the analytics caches, so the next dashboard read sees
fresh reference data.

Example:
  go run ./cmd/giro refresh`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := rt.engine.RefreshSnapshot(ctx); err != nil {
		return err
	}

	fmt.Println("Consolidated snapshot refreshed")
	return nil
}
