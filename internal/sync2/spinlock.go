// Package sync2 provides short-critical-section primitives for the scheduler's
// queues and completion events. None of this is meant for general use outside
// jobsystem: the lock is only ever held for a handful of slice operations.
package sync2

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a test-and-test-and-set spin lock for critical sections shorter
// than a cache-line write. Local queues and task events use it instead of
// sync.Mutex because their hold times are microseconds and the contention is
// brief; a real mutex's syscall fallback would dominate the cost.
//
// Do not use SpinLock for anything that might block (I/O, channel receive,
// another lock acquisition) while held — a blocked holder turns every spinning
// waiter into a busy-loop for the duration.
type SpinLock struct {
	locked atomic.Bool
}

// Lock blocks until the lock is acquired.
func (s *SpinLock) Lock() {
	for !s.locked.CompareAndSwap(false, true) {
		// Spin on a plain load first (test) before retrying the CAS (test-and-set);
		// this keeps cache traffic to reads while the lock is held.
		for s.locked.Load() {
			runtime.Gosched()
		}
	}
}

// Unlock releases the lock. Unlock on an unlocked SpinLock is undefined, same
// as sync.Mutex.
func (s *SpinLock) Unlock() {
	s.locked.Store(false)
}

// TryLock acquires the lock without blocking, reporting whether it succeeded.
func (s *SpinLock) TryLock() bool {
	return s.locked.CompareAndSwap(false, true)
}

// Guard locks s and returns a function that unlocks it, so callers can write
//
//	defer sync2.Guard(&s.lock)()
//
// for a scope that releases on every exit path, mirroring the original
// ScopedSpinLock RAII guard.
func Guard(s *SpinLock) func() {
	s.Lock()
	return s.Unlock
}
