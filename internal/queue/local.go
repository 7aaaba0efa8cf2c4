// Package queue implements the two task queues the scheduler is built on: a
// per-worker Local queue (owner LIFO, stealer FIFO) and a Global queue
// (mutex+cond FIFO with blocking wait). Both store the queue.Task interface
// rather than a concrete job type, so jobsystem's Task can be the sole
// implementation while tests can swap in fakes.
package queue

import "github.com/SkaLe3/jobsystem/internal/sync2"

// Task is the minimal shape a queue needs from a job: nothing. The queue never
// inspects the payload, it only moves pointers around, but an interface keeps
// this package decoupled from jobsystem's Task type and its Event.
type Task interface{}

// Local is a worker's private double-ended queue. The owning worker pushes and
// pops at the tail (LIFO — a task's freshly spawned children run before its
// older siblings, maximizing cache reuse on the same worker). Every other
// worker steals from the head (FIFO — the oldest entry, minimizing overlap
// with the owner's LIFO end and spreading steals across the queue's lifetime).
//
// Local is safe for one owner plus any number of concurrent stealers. It is
// protected by a spin lock: push/pop/steal are all O(1) slice operations,
// well under the threshold where a spin lock stops paying for itself.
type Local struct {
	lock  sync2.SpinLock
	tasks []Task
}

// NewLocal returns an empty local queue.
func NewLocal() *Local {
	return &Local{}
}

// Push appends a task at the tail. Owner only.
func (q *Local) Push(t Task) {
	defer sync2.Guard(&q.lock)()
	q.tasks = append(q.tasks, t)
}

// Pop removes and returns the task at the tail, or (nil, false) if empty.
// Owner only.
func (q *Local) Pop() (Task, bool) {
	defer sync2.Guard(&q.lock)()
	n := len(q.tasks)
	if n == 0 {
		return nil, false
	}
	t := q.tasks[n-1]
	q.tasks[n-1] = nil
	q.tasks = q.tasks[:n-1]
	return t, true
}

// Steal removes and returns the task at the head, or (nil, false) if empty.
// Called by any worker other than the owner.
func (q *Local) Steal() (Task, bool) {
	defer sync2.Guard(&q.lock)()
	if len(q.tasks) == 0 {
		return nil, false
	}
	t := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return t, true
}

// Clear drops every queued task. The scheduler calls it once during shutdown,
// after the owning worker has exited; anything still queued at that point is
// discarded per the shutdown contract.
func (q *Local) Clear() {
	defer sync2.Guard(&q.lock)()
	q.tasks = nil
}

// IsEmpty reports whether the queue currently holds no tasks. Best-effort: a
// concurrent push/steal can invalidate the answer before the caller acts on it.
func (q *Local) IsEmpty() bool {
	defer sync2.Guard(&q.lock)()
	return len(q.tasks) == 0
}

// Size returns the current task count. Best-effort, same caveat as IsEmpty.
func (q *Local) Size() int {
	defer sync2.Guard(&q.lock)()
	return len(q.tasks)
}
