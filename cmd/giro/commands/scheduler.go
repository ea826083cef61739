package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VerticalAgents/mischa-os-sub004/internal/scheduler"
	"github.com/VerticalAgents/mischa-os-sub004/internal/scheduler/jobs"
)

// schedulerCmd runs the background job scheduler.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background job scheduler",
	Long: `Runs the cron scheduler with the periodic maintenance jobs:

  refresh_consolidated_snapshot - hourly rebuild of the consolidated
                                  client dataset, dropping the engine
                                  caches afterwards.

Example:
  go run ./cmd/giro scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	sched := scheduler.New(rt.log)
	if err := sched.AddJob(jobs.NewSnapshotJob(rt.engine, rt.log)); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	rt.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
