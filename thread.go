package jobsystem

import (
	"runtime"
	"sync/atomic"
)

// Runnable is the work a Thread drives. WorkerRunner is the only
// implementation today; the interface exists so a future named-thread
// (render, audio) can reuse the same start/stop/join machinery.
type Runnable interface {
	Run()
	RequestStop()
	IsStopRequested() bool
}

// Thread owns one goroutine locked to its OS thread for the goroutine's
// entire life, so platform.Platform.SetThreadAffinity pins something that
// stays pinned. requestStop followed by join mirrors the original Thread
// destructor: ask the runnable to stop, then wait for it to actually exit.
type Thread struct {
	name     string
	runnable Runnable
	done     chan struct{}

	tidReady chan struct{}
	tid      atomic.Int64 // Linux thread id, 0 on platforms without Gettid
}

func startThread(name string, r Runnable) *Thread {
	t := &Thread{
		name:     name,
		runnable: r,
		done:     make(chan struct{}),
		tidReady: make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *Thread) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	t.tid.Store(int64(gettid()))
	close(t.tidReady)

	t.runnable.Run()
}

// osThreadID blocks until the thread has actually started and reports its
// Linux thread id (0 on platforms where gettid isn't meaningful). It is
// only ever called once, right after startThread, from Initialize.
func (t *Thread) osThreadID() int {
	<-t.tidReady
	return int(t.tid.Load())
}

func (t *Thread) requestStop() { t.runnable.RequestStop() }

func (t *Thread) join() { <-t.done }
