package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
)

// overviewCmd prints the portfolio overview to stdout.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print the portfolio turnover overview",
	Long: `Computes and prints the whole-portfolio turnover summary:
client count, average turnover, achievement rate, performance
distribution and projected revenue.

Example:
  go run ./cmd/giro overview
  go run ./cmd/giro overview --route 3`,
	RunE: runOverview,
}

var (
	overviewRepresentative int64
	overviewRoute          int64
	overviewCategory       int64
)

func init() {
	rootCmd.AddCommand(overviewCmd)

	overviewCmd.Flags().Int64Var(&overviewRepresentative, "representative", 0, "filter by representative id")
	overviewCmd.Flags().Int64Var(&overviewRoute, "route", 0, "filter by route id")
	overviewCmd.Flags().Int64Var(&overviewCategory, "category", 0, "filter by category id")
}

func runOverview(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := contracts.Filter{
		RepresentativeID: overviewRepresentative,
		RouteID:          overviewRoute,
		CategoryID:       overviewCategory,
	}

	overview, err := rt.engine.GetOverview(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Println("=== Giro Overview ===")
	fmt.Printf("Clients:            %d\n", overview.TotalClients)
	fmt.Printf("Average turnover:   %.2f units/week\n", overview.OverallAverageTurnover)
	fmt.Printf("Achievement rate:   %.1f%%\n", overview.OverallAchievementRate)
	fmt.Printf("Projected revenue:  %.2f/week\n", overview.TotalProjectedRevenue)
	fmt.Printf("Performance:        green=%d yellow=%d red=%d\n",
		overview.PerformanceDistribution[contracts.PerformanceGreen],
		overview.PerformanceDistribution[contracts.PerformanceYellow],
		overview.PerformanceDistribution[contracts.PerformanceRed])

	return nil
}
