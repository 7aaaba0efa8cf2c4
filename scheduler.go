package jobsystem

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/SkaLe3/jobsystem/internal/goid"
	"github.com/SkaLe3/jobsystem/internal/jlog"
	"github.com/SkaLe3/jobsystem/internal/queue"
	"github.com/SkaLe3/jobsystem/platform"
)

// Config configures Initialize. The zero value is a usable default: a real
// Platform, a real clock, and info-level logging to stderr.
type Config struct {
	// Platform reports host topology. Defaults to platform.Default{}.
	Platform platform.Platform

	// Clock drives Event.Wait's backoff and the worker idle ladder's sleep
	// step. Defaults to clockz.RealClock; tests substitute
	// clockz.NewFakeClock().
	Clock clockz.Clock

	// Logger receives lifecycle and per-task diagnostics. Defaults to a
	// jlog.Logger at Info level.
	Logger *jlog.Logger

	// OnTaskExecuted, if set, is called after every task finishes running,
	// with the id of the worker that ran it and how long it took. This
	// mirrors the commented-out profiling hook in the original's
	// ExecuteTask; nil disables the timing measurement entirely so a
	// caller that doesn't need it doesn't pay for it.
	OnTaskExecuted func(workerID int, dur time.Duration)
}

var (
	schedMu   sync.Mutex
	scheduler *Scheduler
)

// Scheduler owns the worker pool, the global queue and the worker registry.
// Callers interact with the package-level Initialize/Submit/Shutdown
// functions rather than this type directly. It has no exported fields,
// constructor or methods: the only instance is the package singleton that
// InitializeWithConfig creates.
type Scheduler struct {
	platform platform.Platform
	clock    clockz.Clock
	log      *jlog.Logger
	onExec   func(workerID int, dur time.Duration)

	global *queue.Global

	workers []*WorkerRunner
	threads []*Thread

	// byGoroutine maps a worker's goroutine id (internal/goid) to its
	// WorkerRunner, filling in for the thread-local lookup the original
	// does via its worker map keyed by std::thread::id.
	byGoroutine sync.Map // int64 -> *WorkerRunner

	readyCount atomic.Int32
	numWorkers int32

	shuttingDown atomic.Bool
}

// Initialize starts the scheduler with requestedWorkers workers, or a
// platform-determined default when requestedWorkers <= 0. It blocks until
// every worker has reported ready. Calling it twice without an intervening
// Shutdown returns ErrAlreadyInitialized.
func Initialize(requestedWorkers int) error {
	return InitializeWithConfig(requestedWorkers, Config{})
}

// InitializeWithConfig is Initialize with explicit collaborators; tests use
// it to inject a platform with a fixed core count and a task-executed hook.
func InitializeWithConfig(requestedWorkers int, cfg Config) error {
	schedMu.Lock()
	defer schedMu.Unlock()

	if scheduler != nil {
		return ErrAlreadyInitialized
	}

	if cfg.Platform == nil {
		cfg.Platform = platform.Default{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clockz.RealClock
	}
	if cfg.Logger == nil {
		cfg.Logger = jlog.New(jlog.Info, "jobsystem")
	}

	s := &Scheduler{
		platform: cfg.Platform,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		onExec:   cfg.OnTaskExecuted,
		global:   queue.NewGlobal(),
	}

	n := determineWorkerCount(requestedWorkers, cfg.Platform)
	s.numWorkers = int32(n)
	s.log.Infof("starting with %d worker threads", n)

	logicalCores := cfg.Platform.LogicalCoreCount()
	startCore := logicalCores - n
	if startCore < 0 {
		startCore = 0
	}

	s.workers = make([]*WorkerRunner, n)
	s.threads = make([]*Thread, n)
	for i := 0; i < n; i++ {
		w := newWorkerRunner(i, s)
		s.workers[i] = w
		th := startThread(workerThreadName(i), w)
		s.threads[i] = th
		cfg.Platform.SetThreadAffinity(th.osThreadID(), 1<<uint(startCore+i))
	}

	for s.readyCount.Load() < s.numWorkers {
		gosched()
	}
	s.log.Infof("all workers ready")

	scheduler = s
	return nil
}

// Shutdown stops all workers and discards anything left queued. It is
// idempotent: calling it when no scheduler is running, or more than once,
// is a no-op.
func Shutdown() {
	schedMu.Lock()
	s := scheduler
	schedMu.Unlock()

	if s == nil {
		return
	}

	// Stop and join workers before clearing the singleton: a task still
	// executing when shutdown starts may itself call Submit, and dispatch
	// needs a live Scheduler to route that call until every worker has
	// actually exited.
	s.shutdown()

	schedMu.Lock()
	if scheduler == s {
		scheduler = nil
	}
	schedMu.Unlock()
}

func (s *Scheduler) shutdown() {
	if !s.shuttingDown.CompareAndSwap(false, true) {
		return
	}
	s.log.Infof("shutdown requested")

	s.global.NotifyAll()
	for _, th := range s.threads {
		th.requestStop()
	}
	for _, th := range s.threads {
		th.join()
	}
	for _, w := range s.workers {
		w.localQueue().Clear()
	}
	s.global.Clear()

	s.log.Infof("shutdown complete")
}

// current returns the running scheduler, or panics with ErrNotInitialized
// when there is none: Submit before Initialize is a
// programmer error, not a recoverable runtime condition, the same way
// calling the original's JobSystem::Get() before Startup dereferences a
// null singleton.
func current() *Scheduler {
	schedMu.Lock()
	s := scheduler
	schedMu.Unlock()
	if s == nil {
		panic(ErrNotInitialized)
	}
	return s
}

// dispatch routes task to the right queue: the calling worker's local queue
// if this is an AnyThread task being (re-)submitted from inside a worker,
// otherwise the shared global queue. Named threads beyond AnyThread have no
// dedicated queue yet and fall back to global, matching the original's
// TODO for named-thread queues.
func dispatch(task *Task) {
	s := current()
	if task.desiredThread == AnyThread {
		if w, ok := s.workerFor(goid.Get()); ok {
			w.localQueue().Push(task)
			return
		}
	}
	s.global.Push(task)
}

func (s *Scheduler) workerFor(gid int64) (*WorkerRunner, bool) {
	v, ok := s.byGoroutine.Load(gid)
	if !ok {
		return nil, false
	}
	return v.(*WorkerRunner), true
}

func (s *Scheduler) registerWorker(gid int64, w *WorkerRunner) {
	s.byGoroutine.Store(gid, w)
}

// popGlobal pops one task from the shared queue without blocking.
func (s *Scheduler) popGlobal() (*Task, bool) {
	t, ok := s.global.Pop()
	if !ok {
		return nil, false
	}
	return t.(*Task), true
}

// waitForTask blocks on the shared queue until a task arrives or shutdown
// is requested.
func (s *Scheduler) waitForTask() (*Task, bool) {
	t, ok := s.global.WaitAndPop()
	if !ok {
		return nil, false
	}
	return t.(*Task), true
}

// stealFor tries every other worker's local queue once, starting just after
// thiefID and wrapping around, so repeated steal attempts spread load
// evenly instead of hammering worker 0.
func (s *Scheduler) stealFor(thiefID int) (*Task, bool) {
	n := int(s.numWorkers)
	for i := 1; i < n; i++ {
		victim := (thiefID + i) % n
		if t, ok := s.workers[victim].localQueue().Steal(); ok {
			return t.(*Task), true
		}
	}
	return nil, false
}

func (s *Scheduler) workerReady() {
	s.readyCount.Add(1)
	for s.readyCount.Load() < s.numWorkers {
		gosched()
	}
}

// determineWorkerCount mirrors DetermineWorkerThreadCount: reserve one core
// for the calling (game) thread plus one each for a render and audio thread
// if the platform says it needs them, then clamp the request into
// [1, maxWorkers]. requestedCount <= 0 asks for maxWorkers.
func determineWorkerCount(requestedCount int, p platform.Platform) int {
	logicalCores := p.LogicalCoreCount()

	reserved := 1
	if p.RequiresRenderThread() {
		reserved++
	}
	if p.RequiresAudioThread() {
		reserved++
	}

	maxWorkers := logicalCores - reserved
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	if requestedCount <= 0 {
		return maxWorkers
	}
	if requestedCount > maxWorkers {
		return maxWorkers
	}
	return requestedCount
}

func workerThreadName(i int) string {
	return "Worker_" + strconv.Itoa(i)
}

func gosched() { runtime.Gosched() }
