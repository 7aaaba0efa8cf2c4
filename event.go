package jobsystem

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/SkaLe3/jobsystem/internal/sync2"
)

// Event is a handle to the completion of one dispatched task. It is returned
// by Submit and consumed either by waiting on it synchronously or by
// listing it as a prerequisite of another Submit call.
type Event struct {
	completed   atomic.Bool
	lock        sync2.SpinLock
	subsequents []*Task
	clock       clockz.Clock
}

func newEvent(clock clockz.Clock) *Event {
	return &Event{clock: clock}
}

// IsComplete reports whether the task behind this event has finished
// running.
func (e *Event) IsComplete() bool {
	return e.completed.Load()
}

// addSubsequent registers t to run once e completes. If e has already
// completed, t is dispatched immediately instead of being queued, mirroring
// the original's "release the lock before dispatching inline" ordering so a
// task whose own Complete() is running concurrently can never deadlock on
// e's lock.
func (e *Event) addSubsequent(t *Task) {
	e.lock.Lock()
	if e.completed.Load() {
		e.lock.Unlock()
		dispatch(t)
		return
	}
	t.addPrerequisite()
	e.subsequents = append(e.subsequents, t)
	e.lock.Unlock()
}

// Complete marks e as finished and dispatches every subsequent task whose
// last outstanding prerequisite was this event. Safe to call more than
// once; only the first call has any effect, matching a task event firing
// exactly once.
func (e *Event) Complete() {
	if !e.completed.CompareAndSwap(false, true) {
		return
	}

	e.lock.Lock()
	subs := e.subsequents
	e.subsequents = nil
	e.lock.Unlock()

	for _, t := range subs {
		if t.removePrerequisite() == 0 {
			dispatch(t)
		}
	}
}

// Wait blocks the calling goroutine until e completes. It spins briefly
// (cheap for tasks that finish almost immediately), then falls back to
// short sleeps via e's clock so a long-running task doesn't burn a core
// for nothing.
func (e *Event) Wait() {
	const spinCount = 1000

	spins := 0
	for !e.IsComplete() {
		if spins < spinCount {
			spins++
			runtime.Gosched()
			continue
		}
		<-e.clock.After(100 * time.Microsecond)
	}
}
