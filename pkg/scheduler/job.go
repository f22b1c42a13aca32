package scheduler

import (
	"fmt"
	"sync/atomic"
)

var lastJobID atomic.Uint64

// Job is a unit of deferred work. Jobs are deduplicated by pointer, so the
// same *Job queued twice before a flush runs once.
type Job struct {
	ID   uint64
	Name string
	fn   func()
}

func NewJob(name string, fn func()) *Job {
	return &Job{
		ID:   lastJobID.Add(1),
		Name: name,
		fn:   fn,
	}
}

func (j *Job) Run() {
	j.fn()
}

func (j *Job) String() string {
	return fmt.Sprintf("%s#%d", j.Name, j.ID)
}

// JobError wraps a panic recovered while running a job.
type JobError struct {
	JobID   uint64
	JobName string
	Cause   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("scheduler: job %s#%d failed: %v", e.JobName, e.JobID, e.Cause)
}

func (e *JobError) Unwrap() error {
	return e.Cause
}

type OnErrorFunc func(job *Job, err error)
