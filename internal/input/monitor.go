// Package input turns user presence and global key presses into timer
// commands.
package input

import (
	"errors"
	"sync"
	"time"

	"pomotray/internal/core/timer"
	"pomotray/internal/logging"
	"pomotray/internal/loop"
	"pomotray/internal/platform"
)

// DefaultPollInterval is how often the activity monitor samples idle time.
const DefaultPollInterval = 500 * time.Millisecond

// ActivityMonitor starts the next work session when the user returns after a
// break. It is armed once per finished break and fires at most once.
type ActivityMonitor struct {
	idle     platform.IdleProvider
	dispatch loop.Dispatcher
	interval time.Duration

	onActivity func()

	mu         sync.Mutex
	generation uint64
	stop       chan struct{}
	disabled   bool
}

// NewActivityMonitor creates a disarmed monitor. onActivity runs through
// dispatch.
func NewActivityMonitor(idle platform.IdleProvider, dispatch loop.Dispatcher, onActivity func()) *ActivityMonitor {
	return &ActivityMonitor{
		idle:       idle,
		dispatch:   dispatch,
		interval:   DefaultPollInterval,
		onActivity: onActivity,
	}
}

// SetInterval overrides the poll interval. Takes effect on the next Arm.
func (monitor *ActivityMonitor) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	monitor.mu.Lock()
	monitor.interval = interval
	monitor.mu.Unlock()
}

// Attach arms the monitor when a break completes and auto-start is enabled,
// and disarms it whenever the timer leaves idle.
func (monitor *ActivityMonitor) Attach(source *timer.Timer, config timer.ConfigSource) {
	source.Subscribe(func(event timer.Event) {
		switch {
		case event.Type == timer.EventSessionCompleted && event.State.Break():
			if config.Current().AutoStartWorkAfterBreak {
				monitor.Arm()
			}
		case event.Type == timer.EventStateChanged && event.State != timer.StateIdle:
			monitor.Disarm()
		}
	})
}

// Arm starts watching for activity. Re-arming restarts the watch.
func (monitor *ActivityMonitor) Arm() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if monitor.disabled {
		return
	}
	monitor.disarmLocked()

	monitor.generation++
	stop := make(chan struct{})
	monitor.stop = stop
	logging.Infof("input: watching for activity to auto-start work")
	go monitor.watch(monitor.generation, monitor.interval, stop)
}

// Disarm stops watching.
func (monitor *ActivityMonitor) Disarm() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.disarmLocked()
}

// Armed reports whether the monitor is watching.
func (monitor *ActivityMonitor) Armed() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.stop != nil
}

func (monitor *ActivityMonitor) disarmLocked() {
	if monitor.stop == nil {
		return
	}
	close(monitor.stop)
	monitor.stop = nil
	logging.Debugf("input: activity monitor disarmed")
}

func (monitor *ActivityMonitor) watch(generation uint64, interval time.Duration, stop <-chan struct{}) {
	previous, err := monitor.idle.IdleDuration()
	if err != nil {
		monitor.fail(generation, err)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		current, err := monitor.idle.IdleDuration()
		if err != nil {
			monitor.fail(generation, err)
			return
		}
		if current < previous {
			monitor.fire(generation)
			return
		}
		previous = current
	}
}

func (monitor *ActivityMonitor) fire(generation uint64) {
	monitor.mu.Lock()
	if generation != monitor.generation || monitor.stop == nil {
		monitor.mu.Unlock()
		return
	}
	monitor.disarmLocked()
	monitor.mu.Unlock()

	logging.Infof("input: user activity detected, starting work session")
	monitor.dispatch(monitor.onActivity)
}

func (monitor *ActivityMonitor) fail(generation uint64, err error) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if generation != monitor.generation {
		return
	}
	monitor.disarmLocked()
	if errors.Is(err, platform.ErrIdleUnsupported) {
		monitor.disabled = true
		logging.Warnf("input: auto-start disabled: %v", err)
		return
	}
	logging.Errorf("input: read idle time: %v", err)
}
