package timer

import "time"

// State represents the current timer phase.
type State string

const (
	StateIdle       State = "idle"
	StateWork       State = "work"
	StateShortBreak State = "short_break"
	StateLongBreak  State = "long_break"
	StatePaused     State = "paused"
)

// Running reports whether a countdown is active in this state.
func (state State) Running() bool {
	return state == StateWork || state == StateShortBreak || state == StateLongBreak
}

// Break reports whether the state is a short or long break.
func (state State) Break() bool {
	return state == StateShortBreak || state == StateLongBreak
}

// Label returns a human-readable name for the state.
func (state State) Label() string {
	switch state {
	case StateIdle:
		return "Ready to start"
	case StateWork:
		return "Work Session"
	case StateShortBreak:
		return "Short Break"
	case StateLongBreak:
		return "Long Break"
	case StatePaused:
		return "Paused"
	default:
		return string(state)
	}
}

// EventType defines the type of timer event.
type EventType string

const (
	EventStateChanged     EventType = "state_changed"
	EventTimeChanged      EventType = "time_changed"
	EventSessionCompleted EventType = "session_completed"
)

// Event represents a timer update for observers.
//
// For EventStateChanged, State is the new state. For EventSessionCompleted,
// State is the phase that just finished. For EventTimeChanged, State is the
// current state.
type Event struct {
	Type      EventType
	State     State
	Remaining int
	Session   int
	At        time.Time
}

// Listener receives timer events synchronously on the timer's loop.
type Listener func(Event)
