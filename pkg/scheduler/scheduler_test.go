package scheduler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/delaneyj/vnodeparty/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should run a job queued twice in one tick only once
func TestQueueJobDedupes(t *testing.T) {
	s := scheduler.New()
	runs := 0
	job := scheduler.NewJob("update", func() { runs++ })

	s.QueueJob(job)
	s.QueueJob(job)
	assert.Equal(t, 0, runs)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 1, s.Microtasks().Len())

	s.NextTick(nil)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.Pending())

	s.QueueJob(job)
	s.NextTick(nil)
	assert.Equal(t, 2, runs)
}

func TestPreFlushRunsBeforeJobs(t *testing.T) {
	s := scheduler.New()
	var order []string
	s.QueueJob(scheduler.NewJob("job", func() { order = append(order, "job") }))
	s.QueuePreFlush(scheduler.NewJob("pre", func() { order = append(order, "pre") }))

	s.NextTick(nil)
	assert.Equal(t, []string{"pre", "job"}, order)
}

// a pre-flush callback queued by a job runs before the next queued job
func TestPreFlushQueuedByJobRunsBeforeNextJob(t *testing.T) {
	s := scheduler.New()
	var order []string
	pre := scheduler.NewJob("pre", func() { order = append(order, "pre") })
	s.QueueJob(scheduler.NewJob("first", func() {
		order = append(order, "first")
		s.QueuePreFlush(pre)
	}))
	s.QueueJob(scheduler.NewJob("second", func() { order = append(order, "second") }))

	s.NextTick(nil)
	assert.Equal(t, []string{"first", "pre", "second"}, order)
}

// jobs queued by a running job still run before the flush ends
func TestJobsQueuedDuringFlushRunInSamePass(t *testing.T) {
	s := scheduler.New()
	var order []string

	var second *scheduler.Job
	first := scheduler.NewJob("first", func() {
		order = append(order, "first")
		s.QueueJob(second)
	})
	second = scheduler.NewJob("second", func() {
		order = append(order, "second")
	})
	third := scheduler.NewJob("third", func() {
		order = append(order, "third")
	})

	s.QueueJob(first)
	s.QueueJob(third)
	s.Microtasks().Drain()
	assert.Equal(t, []string{"first", "third", "second"}, order)
	assert.Equal(t, 0, s.Microtasks().Len())
}

func TestNextTickRunsAfterFlush(t *testing.T) {
	s := scheduler.New()
	var order []string
	s.QueueJob(scheduler.NewJob("job", func() { order = append(order, "job") }))

	s.NextTick(func() { order = append(order, "tick") })
	assert.Equal(t, []string{"job", "tick"}, order)
}

func TestNextTickInsideJobRunsAfterFlush(t *testing.T) {
	s := scheduler.New()
	var order []string
	s.QueueJob(scheduler.NewJob("a", func() {
		s.NextTick(func() { order = append(order, "tick") })
		order = append(order, "a")
	}))
	s.QueueJob(scheduler.NewJob("b", func() { order = append(order, "b") }))

	s.NextTick(nil)
	assert.Equal(t, []string{"a", "b", "tick"}, order)
}

// should keep flushing after a job panics
func TestJobPanicIsRecovered(t *testing.T) {
	buf := &bytes.Buffer{}
	var gotJob *scheduler.Job
	var gotErr error
	s := scheduler.New(
		scheduler.WithLogger(slog.New(slog.NewTextHandler(buf, nil))),
		scheduler.WithOnError(func(job *scheduler.Job, err error) {
			gotJob, gotErr = job, err
		}),
	)

	boom := errors.New("boom")
	bad := scheduler.NewJob("bad", func() { panic(boom) })
	ran := false
	s.QueueJob(bad)
	s.QueueJob(scheduler.NewJob("good", func() { ran = true }))

	assert.NotPanics(t, func() { s.NextTick(nil) })
	assert.True(t, ran)
	assert.Same(t, bad, gotJob)

	var jobErr *scheduler.JobError
	require.ErrorAs(t, gotErr, &jobErr)
	assert.Equal(t, bad.ID, jobErr.JobID)
	assert.ErrorIs(t, gotErr, boom)
	assert.Contains(t, buf.String(), "job panicked")
}

func TestPanicWithNonErrorValue(t *testing.T) {
	var gotErr error
	s := scheduler.New(
		scheduler.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		scheduler.WithOnError(func(_ *scheduler.Job, err error) { gotErr = err }),
	)
	s.QueuePreFlush(scheduler.NewJob("pre", func() { panic("nope") }))
	s.NextTick(nil)

	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "nope")
	assert.Contains(t, gotErr.Error(), "pre#")
}

func TestInvalidate(t *testing.T) {
	s := scheduler.New()
	runs := 0
	job := scheduler.NewJob("stale", func() { runs++ })
	pre := scheduler.NewJob("stale-pre", func() { runs++ })

	s.QueueJob(job)
	s.QueuePreFlush(pre)
	s.Invalidate(job)
	s.Invalidate(pre)
	assert.Equal(t, 0, s.Pending())

	s.NextTick(nil)
	assert.Equal(t, 0, runs)
}

func TestSharedMicrotasks(t *testing.T) {
	m := scheduler.NewMicrotasks()
	a := scheduler.New(scheduler.WithMicrotasks(m))
	b := scheduler.New(scheduler.WithMicrotasks(m))

	var order []string
	a.QueueJob(scheduler.NewJob("a", func() { order = append(order, "a") }))
	b.QueueJob(scheduler.NewJob("b", func() { order = append(order, "b") }))
	assert.Equal(t, 2, m.Len())

	m.Drain()
	assert.Equal(t, []string{"a", "b"}, order)
}
