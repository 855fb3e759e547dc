package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultPruneSchedule runs the prune at 03:30:00 business time every day.
const DefaultPruneSchedule = "0 30 3 * * *"

// CounterPruneJob deletes order number counters of business dates older than
// the retention window.
type CounterPruneJob struct {
	pruner        ports.CounterPruner
	calendar      kernel.Calendar
	retentionDays int
	schedule      string
	metrics       *metrics.Metrics
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewCounterPruneJob creates the job. schedule is a six-field cron expression
// evaluated in the business time zone.
func NewCounterPruneJob(
	pruner ports.CounterPruner,
	calendar kernel.Calendar,
	retentionDays int,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CounterPruneJob {
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}
	return &CounterPruneJob{
		pruner:        pruner,
		calendar:      calendar,
		retentionDays: retentionDays,
		schedule:      schedule,
		metrics:       m,
		cron:          cron.New(cron.WithSeconds(), cron.WithLocation(calendar.Location())),
		logger:        logger.With("component", "counter_prune_job"),
	}
}

// Start schedules the job.
func (j *CounterPruneJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Counter prune job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Counter prune job started",
		"schedule", j.schedule,
		"retention_days", j.retentionDays,
	)
	return nil
}

// RunOnce prunes every counter dated before today minus the retention window
// and returns how many were removed.
func (j *CounterPruneJob) RunOnce(ctx context.Context) (int64, error) {
	cutoff := j.calendar.Today().AddDays(-j.retentionDays)

	removed, err := j.pruner.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	j.metrics.Pruned(removed)
	j.logger.InfoContext(ctx, "Order number counters pruned",
		"cutoff", cutoff.String(),
		"removed", removed,
	)
	return removed, nil
}

// Stop stops the scheduler and waits for a running prune to finish.
func (j *CounterPruneJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Counter prune job stopped")
}
