// jobdemo is a small driver that exercises the scheduler end to end: a
// handful of independent tasks feeding one that waits on all of them, plus a
// task that spawns a subtask of its own.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/SkaLe3/jobsystem"
)

func main() {
	if err := jobsystem.Initialize(0); err != nil {
		log.Fatalf("jobsystem.Initialize: %v", err)
	}
	defer jobsystem.Shutdown()

	fmt.Println("=== Starting Job Graph ===")

	a := jobsystem.Submit(func() {
		fmt.Println("task A running")
		time.Sleep(20 * time.Millisecond)
	}, nil)

	b := jobsystem.Submit(func() {
		fmt.Println("task B running")
	}, nil)

	c := jobsystem.Submit(func() {
		fmt.Println("task C running, after A and B")
	}, []*jobsystem.Event{a, b})

	jobsystem.Submit(func() {
		fmt.Println("task D running, spawns a child task")
		jobsystem.Submit(func() {
			fmt.Println("  child of D running")
		}, nil)
	}, nil)

	c.Wait()
	fmt.Println("=== Job Graph Complete ===")
}
