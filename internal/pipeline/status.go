package pipeline

import (
	"sync/atomic"

	"github.com/animesense/animesense-server/internal/domain"
)

// Tracker holds the refresh status behind an atomically swapped record.
// It is the only shared mutable state in the process: the background run
// writes it twice (begin, finish) and request handlers only ever read
// snapshots. Handing a Tracker to each service instead of a package global
// lets tests observe and reset it deterministically.
type Tracker struct {
	status atomic.Pointer[domain.RefreshStatus]
}

// NewTracker creates a tracker in the idle state.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.status.Store(&domain.RefreshStatus{})
	return t
}

// Begin transitions to the running state for the given job. Returns false
// without touching the status when a run is already in flight, making a
// concurrent second trigger a no-op.
func (t *Tracker) Begin(jobID string) bool {
	for {
		current := t.status.Load()
		if current.Running {
			return false
		}
		next := &domain.RefreshStatus{JobID: jobID, Running: true}
		if t.status.CompareAndSwap(current, next) {
			return true
		}
	}
}

// Finish records the outcome of the current run. A nil error marks a
// clean finish; otherwise the message is preserved for the next status
// read.
func (t *Tracker) Finish(err error) {
	current := t.status.Load()
	next := &domain.RefreshStatus{JobID: current.JobID, Finished: true}
	if err != nil {
		next.Error = err.Error()
	}
	t.status.Store(next)
}

// Status returns a snapshot of the current refresh state.
func (t *Tracker) Status() domain.RefreshStatus {
	return *t.status.Load()
}
