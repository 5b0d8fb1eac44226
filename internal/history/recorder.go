package history

import (
	"context"
	"sync"
	"time"

	"pomotray/internal/core/timer"
	"pomotray/internal/logging"
)

const writeTimeout = 5 * time.Second

// Recorder appends every completed phase of a timer to a Store. Writes happen
// on a background goroutine so the timer loop never waits on disk.
type Recorder struct {
	store   *Store
	entries chan Entry
	done    chan struct{}

	mu     sync.Mutex
	closed bool

	// OnRecorded runs on the writer goroutine after each successful append.
	OnRecorded func(Entry)
}

// NewRecorder starts the writer goroutine.
func NewRecorder(store *Store) *Recorder {
	recorder := &Recorder{
		store:   store,
		entries: make(chan Entry, 32),
		done:    make(chan struct{}),
	}
	go recorder.run()
	return recorder
}

// Attach subscribes to completion events of source.
func (recorder *Recorder) Attach(source *timer.Timer) {
	source.Subscribe(func(event timer.Event) {
		if event.Type != timer.EventSessionCompleted {
			return
		}
		// The counter has already moved past the work session this phase belongs to.
		recorder.Record(Entry{
			Phase:          string(event.State),
			Session:        event.Session - 1,
			PlannedSeconds: source.PhaseDuration(event.State),
			CompletedAt:    event.At,
		})
	})
}

// Record queues entry. It drops the entry when the queue is full or closed.
func (recorder *Recorder) Record(entry Entry) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.closed {
		return
	}
	select {
	case recorder.entries <- entry:
	default:
		logging.Warnf("history: queue full, dropping %s entry", entry.Phase)
	}
}

// Close flushes queued entries and stops the writer.
func (recorder *Recorder) Close() {
	recorder.mu.Lock()
	if !recorder.closed {
		recorder.closed = true
		close(recorder.entries)
	}
	recorder.mu.Unlock()
	<-recorder.done
}

func (recorder *Recorder) run() {
	defer close(recorder.done)
	for entry := range recorder.entries {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		stored, err := recorder.store.Append(ctx, entry)
		cancel()
		if err != nil {
			logging.Errorf("history: %v", err)
			continue
		}
		logging.Debugf("history: recorded %s session %d", stored.Phase, stored.Session)
		if recorder.OnRecorded != nil {
			recorder.OnRecorded(stored)
		}
	}
}
