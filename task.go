package jobsystem

import "sync/atomic"

// NamedThread selects which kind of worker a task must run on. Only
// AnyThread tasks can go to a worker's local queue; the others have no
// dedicated queue and go to the shared global queue, where any worker runs
// them. The values exist so an embedding engine can grow dedicated queues
// for them without changing the Submit signature.
type NamedThread int

const (
	AnyThread NamedThread = iota
	GameThread
	RenderThread
	AudioThread
)

func (t NamedThread) String() string {
	switch t {
	case AnyThread:
		return "AnyThread"
	case GameThread:
		return "GameThread"
	case RenderThread:
		return "RenderThread"
	case AudioThread:
		return "AudioThread"
	default:
		return "Unknown"
	}
}

// Task is one unit of work submitted to the scheduler. It is never
// constructed directly by callers; Submit builds one from a plain func().
type Task struct {
	fn            func()
	event         *Event
	desiredThread NamedThread
	prereqPending atomic.Int32
}

func newTask(fn func(), desiredThread NamedThread, event *Event) *Task {
	return &Task{fn: fn, event: event, desiredThread: desiredThread}
}

func (t *Task) addPrerequisite() {
	t.prereqPending.Add(1)
}

func (t *Task) removePrerequisite() int32 {
	return t.prereqPending.Add(-1)
}

// run executes the task's function and fires its completion event exactly
// once. Panics in fn are not recovered: a worker that crashes on a bad task
// should be visible, the same way the original never guards against an
// exception escaping DoTask.
func (t *Task) run() {
	t.fn()
	t.event.Complete()
}

// Submit schedules fn to run once every event in prereqs has completed (or
// immediately if prereqs is empty or all already complete), returning an
// Event that completes when fn returns. desiredThread defaults to
// AnyThread; passing more than one value is a programmer error and only the
// first is honored.
//
// Registration is single-pass: each prerequisite is counted exactly once,
// by biasing the pending count by one before registering and removing the
// bias last, so a prerequisite completing concurrently with Submit can
// never dispatch the task early or more than once. Each prerequisite's
// completion flag is checked under that prerequisite's lock: one already
// complete is skipped, and one not yet complete is counted and appended to
// its subsequents in the same critical section, so it cannot complete
// between the check and the registration. addSubsequent is not used here,
// because its inline dispatch on a completed event would dispatch the task
// a second time once the bias is removed.
func Submit(fn func(), prereqs []*Event, desiredThread ...NamedThread) *Event {
	thread := AnyThread
	if len(desiredThread) > 0 {
		thread = desiredThread[0]
	}

	sched := current()
	event := newEvent(sched.clock)
	task := newTask(fn, thread, event)

	task.prereqPending.Store(1)
	for _, p := range prereqs {
		if p == nil {
			continue
		}
		p.lock.Lock()
		if !p.completed.Load() {
			task.addPrerequisite()
			p.subsequents = append(p.subsequents, task)
		}
		p.lock.Unlock()
	}

	if task.removePrerequisite() == 0 {
		dispatch(task)
	}

	return event
}
