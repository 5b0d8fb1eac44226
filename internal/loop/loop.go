// Package loop delivers timer ticks and asynchronous input onto the single
// goroutine that owns the timer.
package loop

import (
	"sync"
	"time"

	"pomotray/internal/core/timer"
)

// Dispatcher runs fn on the owning loop. fyne.Do satisfies it for the GUI.
type Dispatcher func(fn func())

// Scheduler implements timer.Scheduler with time.Ticker goroutines whose
// callbacks are handed to a Dispatcher.
type Scheduler struct {
	dispatch Dispatcher
}

// NewScheduler returns a scheduler posting callbacks through dispatch.
func NewScheduler(dispatch Dispatcher) *Scheduler {
	return &Scheduler{dispatch: dispatch}
}

// Every starts a ticker calling callback on the owning loop every interval.
func (scheduler *Scheduler) Every(interval time.Duration, callback func()) timer.Ticker {
	ticker := &tickerHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go ticker.run(scheduler.dispatch, callback)
	return ticker
}

type tickerHandle struct {
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func (handle *tickerHandle) run(dispatch Dispatcher, callback func()) {
	for {
		select {
		case <-handle.done:
			return
		case <-handle.ticker.C:
			dispatch(callback)
		}
	}
}

// Stop halts the ticker. Ticks already dispatched may still run; the timer
// discards them.
func (handle *tickerHandle) Stop() {
	handle.stopOnce.Do(func() {
		handle.ticker.Stop()
		close(handle.done)
	})
}

// Queue is a minimal event loop for front-ends without their own, such as
// the terminal mode.
type Queue struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewQueue returns a queue with room for size pending tasks.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and drops fn once the
// queue is closed.
func (queue *Queue) Post(fn func()) {
	select {
	case <-queue.done:
	case queue.tasks <- fn:
	}
}

// Run executes posted tasks on the calling goroutine until Close.
func (queue *Queue) Run() {
	for {
		select {
		case <-queue.done:
			return
		case fn := <-queue.tasks:
			fn()
		}
	}
}

// Close stops Run. Safe to call more than once and from a task.
func (queue *Queue) Close() {
	queue.once.Do(func() {
		close(queue.done)
	})
}
