package jobsystem

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SkaLe3/jobsystem/internal/goid"
)

func TestInitializeTwiceFails(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		if err := Initialize(2); err != ErrAlreadyInitialized {
			t.Fatalf("got %v, want ErrAlreadyInitialized", err)
		}
	})
}

func TestSubmitRunsTask(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		done := make(chan struct{})
		Submit(func() { close(done) }, nil)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task never ran")
		}
	})
}

func TestSubmitWaitsOnEvent(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		var ran atomic.Bool
		ev := Submit(func() { ran.Store(true) }, nil)
		ev.Wait()
		if !ran.Load() {
			t.Fatal("Wait returned before task ran")
		}
		if !ev.IsComplete() {
			t.Fatal("IsComplete false after Wait")
		}
	})
}

func TestSubmitRespectsPrerequisites(t *testing.T) {
	withTestScheduler(t, 4, func(*Scheduler) {
		var order []int
		var mu sync.Mutex
		record := func(i int) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}

		a := Submit(func() { time.Sleep(10 * time.Millisecond); record(1) }, nil)
		b := Submit(func() { record(2) }, []*Event{a})
		b.Wait()

		mu.Lock()
		defer mu.Unlock()
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Fatalf("got order %v, want [1 2]", order)
		}
	})
}

func TestSubmitWithMultiplePrerequisites(t *testing.T) {
	withTestScheduler(t, 4, func(*Scheduler) {
		var count atomic.Int32
		a := Submit(func() { count.Add(1) }, nil)
		b := Submit(func() { count.Add(1) }, nil)
		c := Submit(func() { count.Add(1) }, nil)

		final := Submit(func() {}, []*Event{a, b, c})
		final.Wait()

		if count.Load() != 3 {
			t.Fatalf("got %d, want 3 prerequisites to have run", count.Load())
		}
	})
}

func TestSubmitWithAlreadyCompletePrerequisite(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		a := Submit(func() {}, nil)
		a.Wait()

		done := make(chan struct{})
		b := Submit(func() { close(done) }, []*Event{a})
		_ = b

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task with already-complete prerequisite never ran")
		}
	})
}

func TestSubmitWithNilPrerequisite(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		done := make(chan struct{})
		Submit(func() { close(done) }, []*Event{nil})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task with a nil prerequisite never ran")
		}
	})
}

func TestManyIndependentTasksAllRun(t *testing.T) {
	withTestScheduler(t, 4, func(*Scheduler) {
		const n = 500
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			Submit(func() { wg.Done() }, nil)
		}

		doneCh := make(chan struct{})
		go func() {
			wg.Wait()
			close(doneCh)
		}()

		select {
		case <-doneCh:
		case <-time.After(5 * time.Second):
			t.Fatal("not all tasks ran")
		}
	})
}

func TestTaskSpawningSubtask(t *testing.T) {
	withTestScheduler(t, 2, func(*Scheduler) {
		done := make(chan struct{})
		Submit(func() {
			Submit(func() { close(done) }, nil)
		}, nil)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("subtask spawned from within a task never ran")
		}
	})
}

func TestOnTaskExecutedCallback(t *testing.T) {
	var calls atomic.Int32
	cfg := Config{
		Platform:       fixedPlatform{cores: 3},
		OnTaskExecuted: func(int, time.Duration) { calls.Add(1) },
	}
	if err := InitializeWithConfig(2, cfg); err != nil {
		t.Fatalf("InitializeWithConfig: %v", err)
	}
	defer Shutdown()

	ev := Submit(func() {}, nil)
	ev.Wait()

	if calls.Load() != 1 {
		t.Fatalf("got %d calls, want 1", calls.Load())
	}
}

// TestStealFromBusyWorkerLocalQueue covers P7: when one worker receives a
// burst of independent tasks (by submitting them from inside its own
// running task, so dispatch pushes every one into that worker's local
// queue), other workers must steal from it rather than sit idle waiting on
// the global queue, which never sees any of them: the tasks must end up
// running on at least two different workers.
func TestStealFromBusyWorkerLocalQueue(t *testing.T) {
	withTestScheduler(t, 4, func(s *Scheduler) {
		const n = 200

		var mu sync.Mutex
		ranOn := make(map[int]int)

		var wg sync.WaitGroup
		wg.Add(n)

		seedDone := make(chan struct{})
		Submit(func() {
			for i := 0; i < n; i++ {
				Submit(func() {
					if w, ok := s.workerFor(goid.Get()); ok {
						mu.Lock()
						ranOn[w.id]++
						mu.Unlock()
					}
					wg.Done()
				}, nil)
			}
			close(seedDone)
		}, nil)

		select {
		case <-seedDone:
		case <-time.After(time.Second):
			t.Fatal("seed task never ran")
		}

		doneCh := make(chan struct{})
		go func() {
			wg.Wait()
			close(doneCh)
		}()

		select {
		case <-doneCh:
		case <-time.After(5 * time.Second):
			t.Fatal("not all tasks pushed into the busy worker's local queue ran")
		}

		mu.Lock()
		defer mu.Unlock()
		if len(ranOn) < 2 {
			t.Fatalf("expected tasks stuffed into one worker's local queue to be stolen by others, but only ran on %v", ranOn)
		}
	})
}

func TestDetermineWorkerCount(t *testing.T) {
	cases := []struct {
		requested int
		cores     int
		want      int
	}{
		{requested: 0, cores: 8, want: 7},
		{requested: -1, cores: 4, want: 3},
		{requested: 2, cores: 8, want: 2},
		{requested: 100, cores: 8, want: 7},
		{requested: 0, cores: 1, want: 1},
	}
	for _, c := range cases {
		got := determineWorkerCount(c.requested, fixedPlatform{cores: c.cores})
		if got != c.want {
			t.Errorf("determineWorkerCount(%d, cores=%d) = %d, want %d", c.requested, c.cores, got, c.want)
		}
	}
}
