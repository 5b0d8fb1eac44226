package loop

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestQueueRunsTasksInOrder(t *testing.T) {
	queue := NewQueue(4)
	var order []int
	for i := 1; i <= 3; i++ {
		value := i
		queue.Post(func() { order = append(order, value) })
	}
	queue.Post(queue.Close)
	queue.Run()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestQueuePostAfterCloseDoesNotBlock(t *testing.T) {
	queue := NewQueue(1)
	queue.Close()
	queue.Close()

	done := make(chan struct{})
	go func() {
		queue.Post(func() {})
		queue.Post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("post blocked on a closed queue")
	}
}

func TestSchedulerDispatchesOntoLoop(t *testing.T) {
	queue := NewQueue(16)
	scheduler := NewScheduler(queue.Post)

	var ticks atomic.Int32
	reached := make(chan struct{})
	var ticker interface{ Stop() }
	ticker = scheduler.Every(5*time.Millisecond, func() {
		if ticks.Add(1) == 3 {
			ticker.Stop()
			close(reached)
		}
	})

	go func() {
		select {
		case <-reached:
		case <-time.After(2 * time.Second):
		}
		queue.Post(queue.Close)
	}()
	queue.Run()

	if got := ticks.Load(); got < 3 {
		t.Fatalf("expected at least 3 ticks on the loop, got %d", got)
	}
}
