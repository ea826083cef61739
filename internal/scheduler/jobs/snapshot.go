package jobs

import (
	"context"

	"github.com/VerticalAgents/mischa-os-sub004/internal/giro"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// SnapshotJob rebuilds the consolidated client snapshot on a fixed cadence
// so the dashboard never leans on a manual refresh.
type SnapshotJob struct {
	engine *giro.Engine
	logger *logger.Logger
}

// NewSnapshotJob creates a new snapshot refresh job.
func NewSnapshotJob(engine *giro.Engine, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		engine: engine,
		logger: log,
	}
}

// Name returns the job name.
func (j *SnapshotJob) Name() string {
	return "refresh_consolidated_snapshot"
}

// Schedule returns the cron schedule: hourly on the hour, matching the
// result cache TTL so a fresh snapshot meets an empty cache.
func (j *SnapshotJob) Schedule() string {
	return "0 0 * * * *"
}

// Run triggers the upstream rebuild and drops the engine caches.
func (j *SnapshotJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled snapshot refresh")
	return j.engine.RefreshSnapshot(ctx)
}
