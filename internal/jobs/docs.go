// Package jobs provides scheduled background tasks for the parcel engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. IndexRepairJob - Periodically rebuilds the reference and driver indexes
// from the primary parcel records.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(rebuildIndexesHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The repair schedule comes from configuration as a standard five-field cron
// expression. Reconciliation is a full scan of the parcel namespace, so
// production schedules should be measured in minutes, not seconds.
package jobs
