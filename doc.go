// Package jobsystem is a fixed-size work-stealing task scheduler: a pool of
// worker goroutines, each with a local deque, backed by a shared global
// queue, wired together by completion events that let a task depend on
// others without the caller managing counters by hand.
//
// Typical use:
//
//	if err := jobsystem.Initialize(0); err != nil {
//		log.Fatal(err)
//	}
//	defer jobsystem.Shutdown()
//
//	a := jobsystem.Submit(stepA, nil)
//	b := jobsystem.Submit(stepB, nil)
//	c := jobsystem.Submit(stepC, []*jobsystem.Event{a, b})
//	c.Wait()
//
// A zero requestedWorkers argument to Initialize asks for as many workers as
// determineWorkerCount computes from the host's logical core count.
package jobsystem
