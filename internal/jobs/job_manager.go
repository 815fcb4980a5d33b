package jobs

import (
	"fmt"
	"log/slog"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tableSweepJob *TableSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseStaleTablesHandler commands.ReleaseStaleTablesCommandHandler,
	sweepActorID kernel.UUID,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		tableSweepJob: NewTableSweepJob(releaseStaleTablesHandler, sweepActorID, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tableSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start table sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.tableSweepJob.Stop()
}
