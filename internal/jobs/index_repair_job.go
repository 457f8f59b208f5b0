package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"parceltrack/internal/core/application/usecases/commands"
)

// IndexRepairJob periodically reconciles the reference and driver indexes
// against the primary parcel records. A crash between a primary write and an
// index write leaves a recoverable gap; this job closes it.
type IndexRepairJob struct {
	handler  commands.RebuildIndexesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIndexRepairJob creates a job that rebuilds the secondary indexes on the
// given cron schedule.
func NewIndexRepairJob(
	handler commands.RebuildIndexesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *IndexRepairJob {
	return &IndexRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "index_repair_job"),
	}
}

// Start registers the reconciliation run on the configured schedule.
func (j *IndexRepairJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		report, err := j.handler.Handle(ctx, commands.NewRebuildIndexesCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Index repair job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Index repair completed",
			"parcels_scanned", report.ParcelsScanned,
			"reference_indexes", report.ReferenceIndexes,
			"driver_lists_built", report.DriverListsBuilt,
			"skipped_non_parcels", report.SkippedNonParcels,
		)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Index repair job started", "schedule", j.schedule)
	return nil
}

// Stop stops the index repair job.
func (j *IndexRepairJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Index repair job stopped")
}
