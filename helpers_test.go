package jobsystem

import (
	"testing"

	"github.com/zoobzio/clockz"

	"github.com/SkaLe3/jobsystem/platform"
)

// fixedPlatform is a platform.Platform stub for tests: a fixed core count
// and no named threads, so determineWorkerCount is deterministic regardless
// of the machine running the test.
type fixedPlatform struct {
	cores int
}

func (p fixedPlatform) LogicalCoreCount() int      { return p.cores }
func (fixedPlatform) SetThreadAffinity(int, uint64) {}
func (fixedPlatform) RequiresRenderThread() bool    { return false }
func (fixedPlatform) RequiresAudioThread() bool     { return false }

var _ platform.Platform = fixedPlatform{}

// withTestScheduler initializes a scheduler with workers workers on a fake
// core count large enough to honor the request, runs fn, and guarantees
// Shutdown runs even if fn fails.
func withTestScheduler(t *testing.T, workers int, fn func(s *Scheduler)) {
	t.Helper()

	cfg := Config{
		Platform: fixedPlatform{cores: workers + 1},
		Clock:    clockz.RealClock,
	}
	if err := InitializeWithConfig(workers, cfg); err != nil {
		t.Fatalf("InitializeWithConfig: %v", err)
	}
	defer Shutdown()

	schedMu.Lock()
	s := scheduler
	schedMu.Unlock()

	fn(s)
}
