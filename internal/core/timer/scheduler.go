package timer

import "time"

// Ticker is a running periodic callback.
type Ticker interface {
	Stop()
}

// Scheduler starts periodic callbacks that are delivered on the loop owning
// the timer. Callbacks must never run concurrently with timer commands.
type Scheduler interface {
	Every(interval time.Duration, callback func()) Ticker
}
