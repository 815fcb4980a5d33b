package jobs

import (
	"context"
	"log/slog"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// TableSweepJob periodically releases occupied tables whose bound order
// reached a terminal status or disappeared. Closure and cancellation free
// tables themselves; the sweep is the safety net for bindings those flows
// failed to clean up (crashed requests, manual data surgery).
type TableSweepJob struct {
	handler commands.ReleaseStaleTablesCommandHandler
	actorID kernel.UUID
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTableSweepJob creates the occupancy sweep job. Audit entries written by
// the sweep are attributed to the given system actor.
func NewTableSweepJob(
	handler commands.ReleaseStaleTablesCommandHandler,
	actorID kernel.UUID,
	logger *slog.Logger,
) *TableSweepJob {
	return &TableSweepJob{
		handler: handler,
		actorID: actorID,
		cron:    cron.New(),
		logger:  logger.With("component", "table_sweep_job"),
	}
}

// Start begins the sweep, running every minute.
func (j *TableSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReleaseStaleTablesCommand(j.actorID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Table sweep job misconfigured", "error", cmdErr)
			return
		}

		freed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Table sweep job failed", "error", handleErr)
			return
		}
		if freed > 0 {
			j.logger.InfoContext(ctx, "Table sweep released stale tables", "freed", freed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Table sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *TableSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Table sweep job stopped")
}
