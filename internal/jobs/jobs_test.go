package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	discard  = slog.New(slog.DiscardHandler)
)

type failingPruner struct{}

func (failingPruner) PruneBefore(context.Context, kernel.BusinessDate) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestCounterPruneJob_RunOnce(t *testing.T) {
	ctx := t.Context()
	calendar := kernel.NewCalendar(time.UTC, func() time.Time { return fixedNow })
	m := metrics.New()
	numberer := memory.NewNumberer(nil)

	for _, daysAgo := range []int{30, 8, 7, 1, 0} {
		_, err := numberer.Next(ctx, calendar.Today().AddDays(-daysAgo))
		require.NoError(t, err)
	}

	job := jobs.NewCounterPruneJob(numberer, calendar, 7, "", m, discard)

	removed, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.InDelta(t, 2, testutil.ToFloat64(m.CountersPruned), 0)

	// The retained counters keep counting where they left off.
	next, err := numberer.Next(ctx, calendar.Today().AddDays(-7))
	require.NoError(t, err)
	assert.Equal(t, 2, next.Sequence())

	removed, err = job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCounterPruneJob_RunOnceFailure(t *testing.T) {
	calendar := kernel.NewCalendar(time.UTC, func() time.Time { return fixedNow })
	m := metrics.New()
	job := jobs.NewCounterPruneJob(failingPruner{}, calendar, 7, "", m, discard)

	_, err := job.RunOnce(t.Context())
	require.Error(t, err)
	assert.Zero(t, testutil.ToFloat64(m.CountersPruned))
}

func TestCounterPruneJob_InvalidSchedule(t *testing.T) {
	calendar := kernel.NewCalendar(time.UTC, nil)
	job := jobs.NewCounterPruneJob(failingPruner{}, calendar, 7, "every day at noon", nil, discard)

	err := job.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid prune schedule")
}

type fakeJob struct {
	startErr error
	running  bool
}

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	j.running = true
	return nil
}

func (j *fakeJob) Stop() {
	j.running = false
}

func TestJobManager(t *testing.T) {
	t.Run("starts and stops every job", func(t *testing.T) {
		first, second := &fakeJob{}, &fakeJob{}
		jm := jobs.NewJobManager(first, nil, second)

		require.NoError(t, jm.StartAll())
		assert.True(t, first.running)
		assert.True(t, second.running)

		jm.StopAll()
		assert.False(t, first.running)
		assert.False(t, second.running)
	})

	t.Run("failed start stops already running jobs", func(t *testing.T) {
		first := &fakeJob{}
		broken := &fakeJob{startErr: errors.New("bad schedule")}
		jm := jobs.NewJobManager(first, broken)

		err := jm.StartAll()
		require.Error(t, err)
		assert.False(t, first.running)
	})

	t.Run("real prune job", func(t *testing.T) {
		calendar := kernel.NewCalendar(time.UTC, nil)
		job := jobs.NewCounterPruneJob(memory.NewNumberer(nil), calendar, 30, jobs.DefaultPruneSchedule, nil, discard)
		jm := jobs.NewJobManager(job)

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
