package queue

import (
	"testing"
	"time"
)

func TestGlobalPushPop(t *testing.T) {
	g := NewGlobal()
	g.Push(1)
	g.Push(2)

	got, ok := g.Pop()
	if !ok || got != 1 {
		t.Fatalf("Pop() = %v, %v, want 1, true", got, ok)
	}
	if n := g.Size(); n != 1 {
		t.Fatalf("Size() = %d, want 1", n)
	}
}

func TestGlobalPopEmpty(t *testing.T) {
	g := NewGlobal()
	if _, ok := g.Pop(); ok {
		t.Fatal("Pop on empty queue returned ok=true")
	}
}

func TestGlobalWaitAndPopBlocksUntilPush(t *testing.T) {
	g := NewGlobal()

	results := make(chan interface{}, 1)
	go func() {
		v, ok := g.WaitAndPop()
		if ok {
			results <- v
		} else {
			results <- nil
		}
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-results:
		t.Fatal("WaitAndPop returned before anything was pushed")
	default:
	}

	g.Push("task")
	select {
	case v := <-results:
		if v != "task" {
			t.Fatalf("got %v, want \"task\"", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndPop never woke up after Push")
	}
}

func TestGlobalNotifyAllUnblocksWaiters(t *testing.T) {
	g := NewGlobal()

	done := make(chan struct{})
	go func() {
		_, ok := g.WaitAndPop()
		if ok {
			t.Error("WaitAndPop returned ok=true after shutdown with nothing queued")
		}
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	g.NotifyAll()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyAll did not unblock a waiting WaitAndPop")
	}

	// Subsequent calls must not block once shutdown.
	if _, ok := g.WaitAndPop(); ok {
		t.Fatal("WaitAndPop after shutdown returned ok=true")
	}
}

func TestGlobalSteal(t *testing.T) {
	g := NewGlobal()
	g.Push(1)
	if _, ok := g.Steal(); ok {
		t.Fatal("Global.Steal should never succeed, it has no stealable concept")
	}
}
