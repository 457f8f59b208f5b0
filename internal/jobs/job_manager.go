package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	indexRepairJob *IndexRepairJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	rebuildIndexesHandler commands.RebuildIndexesCommandHandler,
	repairSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		indexRepairJob: NewIndexRepairJob(rebuildIndexesHandler, repairSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.indexRepairJob.Start(); err != nil {
		return fmt.Errorf("failed to start index repair job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.indexRepairJob.Stop()
}
