// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// CounterPruneJob deletes per-day order number counters that fall outside the
// retention window. It only runs against numbering backends that implement
// ports.CounterPruner; Redis counters expire on their own.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	pruneJob := jobs.NewCounterPruneJob(pruner, calendar, 30, jobs.DefaultPruneSchedule, m, logger)
//	jobManager := jobs.NewJobManager(pruneJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions (with seconds) and are evaluated in
// the business time zone, so "0 30 3 * * *" means 03:30 local business time.
//
// # Error Handling
//
// A failed prune is logged and retried at the next scheduled run. Failed job
// starts stop any already running jobs.
package jobs
