//go:build linux

package platform

import "golang.org/x/sys/unix"

// SetThreadAffinity pins osThreadID (a Linux TID, as returned by
// unix.Gettid on the target thread) to the cores set in mask, via
// sched_setaffinity — the same syscall the original C++ Platform reaches for
// on __linux__ (pthread_setaffinity_np wraps the same call). Errors are
// swallowed: affinity is a scheduling hint, not a correctness requirement,
// and a caller running under a container or cgroup that restricts the
// available cores can legitimately fail this.
func (Default) SetThreadAffinity(osThreadID int, mask uint64) {
	var set unix.CPUSet
	for core := 0; core < 64; core++ {
		if mask&(1<<uint(core)) != 0 {
			set.Set(core)
		}
	}
	_ = unix.SchedSetaffinity(osThreadID, &set)
}
