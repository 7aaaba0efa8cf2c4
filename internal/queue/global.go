package queue

import "sync"

// Global is the shared FIFO fed by submissions from non-worker threads and by
// any non-AnyThread submission (a placeholder for future named-thread
// routing). It is a plain mutex+condvar queue: unlike Local, contention here
// can include a genuine blocking wait, so a spin lock would waste cycles.
type Global struct {
	mu       sync.Mutex
	cond     *sync.Cond
	tasks    []Task
	shutdown bool
}

// NewGlobal returns an empty global queue.
func NewGlobal() *Global {
	g := &Global{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Push appends a task and wakes exactly one waiter. Every producer signals
// one; NotifyAll (Broadcast) is reserved for shutdown so that a burst of
// pushes doesn't thunder-herd every sleeping worker.
func (g *Global) Push(t Task) {
	g.mu.Lock()
	g.tasks = append(g.tasks, t)
	g.mu.Unlock()
	g.cond.Signal()
}

// Pop removes and returns the head task without blocking, or (nil, false) if
// the queue is empty.
func (g *Global) Pop() (Task, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.tasks) == 0 {
		return nil, false
	}
	return g.popLocked(), true
}

// WaitAndPop blocks until a task is available or shutdown is signalled,
// whichever happens first. The (non-empty OR shutdown) predicate is checked
// under the same mutex the condvar waits on, so a Push or shutdown that lands
// between a failed check and the Wait call is never missed.
func (g *Global) WaitAndPop() (Task, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for len(g.tasks) == 0 && !g.shutdown {
		g.cond.Wait()
	}
	if len(g.tasks) == 0 {
		return nil, false
	}
	return g.popLocked(), true
}

func (g *Global) popLocked() Task {
	t := g.tasks[0]
	g.tasks[0] = nil
	g.tasks = g.tasks[1:]
	return t
}

// Steal always returns nothing: the global queue has one dequeue end (Pop /
// WaitAndPop), not a head/tail split, so it is never a steal victim.
func (g *Global) Steal() (Task, bool) {
	return nil, false
}

// NotifyAll wakes every blocked WaitAndPop caller. Used only by shutdown so
// parked workers re-check the shutdown flag and exit their wait loop.
func (g *Global) NotifyAll() {
	g.mu.Lock()
	g.shutdown = true
	g.mu.Unlock()
	g.cond.Broadcast()
}

// Clear drops every queued task.
func (g *Global) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tasks = nil
}

// IsEmpty reports whether the queue currently holds no tasks.
func (g *Global) IsEmpty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks) == 0
}

// Size returns the current task count.
func (g *Global) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}
