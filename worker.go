package jobsystem

import (
	"sync/atomic"
	"time"

	"github.com/SkaLe3/jobsystem/internal/goid"
	"github.com/SkaLe3/jobsystem/internal/queue"
)

// idle-spin backoff ladder, matching the original WorkerThread::Run: spin up
// to maxIdleSpins, yield up to maxIdleSpins*2, then block on the global
// queue.
const maxIdleSpins = 256

// WorkerRunner is the Runnable a worker Thread drives: it owns one local
// queue and repeatedly acquires and executes tasks until told to stop.
type WorkerRunner struct {
	id    int
	sched *Scheduler
	local *queue.Local

	stopRequested atomic.Bool
}

func newWorkerRunner(id int, s *Scheduler) *WorkerRunner {
	return &WorkerRunner{id: id, sched: s, local: queue.NewLocal()}
}

func (w *WorkerRunner) localQueue() *queue.Local { return w.local }

// RequestStop asks the worker to exit its run loop at the next opportunity.
// It does not interrupt a task already executing.
func (w *WorkerRunner) RequestStop() { w.stopRequested.Store(true) }

// IsStopRequested reports whether RequestStop has been called.
func (w *WorkerRunner) IsStopRequested() bool { return w.stopRequested.Load() }

// Run is the worker's main loop: register, wait for every other worker to
// be ready, then acquire-and-execute until stopped.
func (w *WorkerRunner) Run() {
	w.sched.registerWorker(goid.Get(), w)
	w.sched.workerReady()

	idleSpins := 0

	for !w.IsStopRequested() {
		task, ok := w.acquireTask()
		if ok {
			w.executeTask(task)
			idleSpins = 0
			continue
		}

		idleSpins++
		switch {
		case idleSpins < maxIdleSpins:
			gosched()
		case idleSpins < maxIdleSpins*2:
			<-w.sched.clock.After(time.Microsecond)
		default:
			if task, ok := w.sched.waitForTask(); ok {
				w.executeTask(task)
				idleSpins = 0
			}
		}
	}
}

// acquireTask implements the local -> global -> steal ladder: local queue
// first for cache locality, then the shared queue, then another worker's
// queue as a last resort before the caller falls back to blocking.
func (w *WorkerRunner) acquireTask() (*Task, bool) {
	if t, ok := w.local.Pop(); ok {
		return t.(*Task), true
	}
	if t, ok := w.sched.popGlobal(); ok {
		return t, true
	}
	if t, ok := w.sched.stealFor(w.id); ok {
		return t, true
	}
	return nil, false
}

func (w *WorkerRunner) executeTask(t *Task) {
	var start time.Time
	if w.sched.onExec != nil {
		start = w.sched.clock.Now()
	}

	t.run()

	if w.sched.onExec != nil {
		w.sched.onExec(w.id, w.sched.clock.Since(start))
	}
}
