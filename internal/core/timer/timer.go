package timer

import (
	"time"

	"pomotray/internal/core/model"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// ConfigSource supplies the configuration read when a phase starts.
type ConfigSource interface {
	Current() model.Config
}

// Timer is the pomodoro state machine. It is not safe for concurrent use:
// commands and ticks must arrive on a single loop.
type Timer struct {
	config    ConfigSource
	scheduler Scheduler
	ticker    Ticker

	// generation invalidates ticks queued by a countdown that was stopped.
	generation uint64

	state     State
	previous  State
	remaining int
	session   int

	listeners []Listener
	now       func() time.Time
}

// New creates an idle timer reading durations from config.
func New(config ConfigSource, scheduler Scheduler) *Timer {
	return &Timer{
		config:    config,
		scheduler: scheduler,
		state:     StateIdle,
		previous:  StateIdle,
		remaining: 0,
		session:   1,
		now:       time.Now,
	}
}

// Subscribe registers a listener. Listeners run in registration order.
func (timer *Timer) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	timer.listeners = append(timer.listeners, listener)
}

// State returns the current state.
func (timer *Timer) State() State {
	return timer.state
}

// PreviousState returns the state restored on resume. Only meaningful while paused.
func (timer *Timer) PreviousState() State {
	return timer.previous
}

// Remaining returns the seconds left in the active or paused phase.
func (timer *Timer) Remaining() int {
	return timer.remaining
}

// Session returns the ordinal of the current or next work session.
func (timer *Timer) Session() int {
	return timer.session
}

// TimeDisplay renders the remaining time as mm:ss.
func (timer *Timer) TimeDisplay() string {
	return FormatClock(timer.remaining)
}

// StartWork begins a work session. Ignored unless idle.
func (timer *Timer) StartWork() {
	if timer.state != StateIdle {
		return
	}
	timer.remaining = timer.config.Current().WorkSeconds()
	timer.changeState(StateWork)
	timer.startCountdown()
}

// StartBreak begins the break that follows a work session. Ignored unless working.
func (timer *Timer) StartBreak() {
	if timer.state != StateWork {
		return
	}

	config := timer.config.Current()
	next := StateShortBreak
	if isLongBreak(timer.session-1, config.SessionsUntilLongBreak) {
		next = StateLongBreak
	}
	timer.remaining = timer.PhaseDuration(next)
	timer.changeState(next)
	timer.startCountdown()
}

// Pause freezes a running countdown.
func (timer *Timer) Pause() {
	if !timer.state.Running() {
		return
	}
	timer.stopCountdown()
	timer.previous = timer.state
	timer.changeState(StatePaused)
}

// Resume restarts a paused countdown from where it stopped.
func (timer *Timer) Resume() {
	if timer.state != StatePaused {
		return
	}
	timer.changeState(timer.previous)
	timer.startCountdown()
}

// Reset stops any countdown and returns to the initial idle state.
func (timer *Timer) Reset() {
	timer.stopCountdown()
	timer.changeState(StateIdle)
	timer.previous = StateIdle
	timer.remaining = 0
	timer.session = 1
	timer.emit(EventTimeChanged, StateIdle)
}

// Extend adds seconds to a running or paused break.
func (timer *Timer) Extend(seconds int) {
	if seconds <= 0 {
		return
	}
	if !timer.state.Break() && !(timer.state == StatePaused && timer.previous.Break()) {
		return
	}
	timer.remaining += seconds
	timer.emit(EventTimeChanged, timer.state)
}

// PhaseDuration returns the configured length of a phase in seconds.
func (timer *Timer) PhaseDuration(state State) int {
	config := timer.config.Current()
	switch state {
	case StateWork:
		return config.WorkSeconds()
	case StateShortBreak:
		return config.ShortBreakSeconds()
	case StateLongBreak:
		return config.LongBreakSeconds()
	default:
		return 0
	}
}

// Progress returns the elapsed fraction of the active or paused phase.
func (timer *Timer) Progress() float64 {
	phase := timer.state
	if phase == StatePaused {
		phase = timer.previous
	}
	total := timer.PhaseDuration(phase)
	if total <= 0 {
		return 0
	}
	progress := float64(total-timer.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (timer *Timer) startCountdown() {
	timer.stopCountdown()
	generation := timer.generation
	timer.ticker = timer.scheduler.Every(TickInterval, func() {
		timer.tick(generation)
	})
	timer.emit(EventTimeChanged, timer.state)
}

func (timer *Timer) stopCountdown() {
	timer.generation++
	if timer.ticker != nil {
		timer.ticker.Stop()
		timer.ticker = nil
	}
}

func (timer *Timer) tick(generation uint64) {
	if generation != timer.generation || !timer.state.Running() {
		return
	}

	timer.remaining--
	if timer.remaining < 0 {
		timer.remaining = 0
	}
	timer.emit(EventTimeChanged, timer.state)

	if timer.remaining <= 0 {
		timer.finish()
	}
}

func (timer *Timer) finish() {
	timer.stopCountdown()
	finished := timer.state

	switch finished {
	case StateWork:
		timer.session++
		timer.emit(EventSessionCompleted, finished)
		timer.StartBreak()
	case StateShortBreak, StateLongBreak:
		timer.changeState(StateIdle)
		timer.emit(EventSessionCompleted, finished)
	}
}

func (timer *Timer) changeState(next State) {
	if next == timer.state {
		return
	}
	timer.state = next
	timer.emit(EventStateChanged, next)
}

func (timer *Timer) emit(eventType EventType, state State) {
	event := Event{
		Type:      eventType,
		State:     state,
		Remaining: timer.remaining,
		Session:   timer.session,
		At:        timer.now(),
	}
	listeners := append([]Listener(nil), timer.listeners...)
	for _, listener := range listeners {
		listener(event)
	}
}

// isLongBreak reports whether the break after completed work sessions is long.
func isLongBreak(completed, every int) bool {
	if every <= 0 {
		return false
	}
	return completed > 0 && completed%every == 0
}
