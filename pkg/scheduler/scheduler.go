package scheduler

import (
	"fmt"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

// Scheduler collects pre-flush callbacks and update jobs and runs them on the
// next microtask drain. Any number of QueueJob / QueuePreFlush calls within
// one tick schedule a single flush.
type Scheduler struct {
	logger     *slog.Logger
	onError    OnErrorFunc
	microtasks *Microtasks

	preFlush       []*Job
	preFlushQueued mapset.Set[*Job]

	queue  []*Job
	queued mapset.Set[*Job]

	flushPending bool
	flushing     bool
}

type Option func(s *Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithOnError is called with a *JobError after a job panicked. The flush
// carries on with the next job either way.
func WithOnError(onError OnErrorFunc) Option {
	return func(s *Scheduler) {
		s.onError = onError
	}
}

// WithMicrotasks shares a microtask queue between schedulers, or with the
// embedding environment.
func WithMicrotasks(m *Microtasks) Option {
	return func(s *Scheduler) {
		s.microtasks = m
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:         slog.Default(),
		preFlushQueued: mapset.NewThreadUnsafeSet[*Job](),
		queued:         mapset.NewThreadUnsafeSet[*Job](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.microtasks == nil {
		s.microtasks = NewMicrotasks()
	}
	return s
}

func (s *Scheduler) Microtasks() *Microtasks {
	return s.microtasks
}

// QueueJob adds job to the update queue unless it is already waiting.
func (s *Scheduler) QueueJob(job *Job) {
	if s.queued.Add(job) {
		s.queue = append(s.queue, job)
	}
	s.queueFlush()
}

// QueuePreFlush adds job to the bucket that runs before any update job of
// the same flush.
func (s *Scheduler) QueuePreFlush(job *Job) {
	if s.preFlushQueued.Add(job) {
		s.preFlush = append(s.preFlush, job)
	}
	s.queueFlush()
}

// Invalidate drops job from both buckets if it has not run yet.
func (s *Scheduler) Invalidate(job *Job) {
	if s.queued.Contains(job) {
		s.queued.Remove(job)
		s.queue = removeJob(s.queue, job)
	}
	if s.preFlushQueued.Contains(job) {
		s.preFlushQueued.Remove(job)
		s.preFlush = removeJob(s.preFlush, job)
	}
}

// Pending reports how many jobs and pre-flush callbacks are waiting.
func (s *Scheduler) Pending() int {
	return len(s.queue) + len(s.preFlush)
}

// NextTick defers fn behind any flush already scheduled and drains the
// microtask queue, so when it returns the pending flush and fn have run.
// Called from inside a job, fn runs after the current flush finishes.
func (s *Scheduler) NextTick(fn func()) {
	if fn != nil {
		s.microtasks.Defer(fn)
	}
	s.microtasks.Drain()
}

func (s *Scheduler) queueFlush() {
	if s.flushPending || s.flushing {
		return
	}
	s.flushPending = true
	s.microtasks.Defer(s.Flush)
}

// Flush runs pre-flush callbacks and then update jobs in FIFO order until
// both buckets are empty. Jobs queued while flushing run in the same pass.
// The pre-flush bucket is drained again before every update job, so a
// pre-flush callback queued by a job runs ahead of the jobs still waiting.
func (s *Scheduler) Flush() {
	if s.flushing {
		return
	}
	s.flushPending = false
	s.flushing = true
	defer func() {
		s.flushing = false
	}()

	for len(s.preFlush) > 0 || len(s.queue) > 0 {
		for len(s.preFlush) > 0 {
			job := s.preFlush[0]
			s.preFlush = s.preFlush[1:]
			s.preFlushQueued.Remove(job)
			s.run(job)
		}
		if len(s.queue) > 0 {
			job := s.queue[0]
			s.queue = s.queue[1:]
			s.queued.Remove(job)
			s.run(job)
		}
	}
}

func (s *Scheduler) run(job *Job) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		err := &JobError{JobID: job.ID, JobName: job.Name, Cause: cause}
		s.logger.Error("scheduler: job panicked", "job", job.String(), "err", cause)
		if s.onError != nil {
			s.onError(job, err)
		}
	}()
	job.Run()
}

func removeJob(jobs []*Job, job *Job) []*Job {
	for i, j := range jobs {
		if j == job {
			return append(jobs[:i], jobs[i+1:]...)
		}
	}
	return jobs
}
