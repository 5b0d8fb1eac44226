// Package audio plays a short sound on timer transitions.
package audio

import "pomotray/internal/core/timer"

// SoundEvent names a moment that can have a sound.
type SoundEvent string

const (
	SoundWorkStart       SoundEvent = "work_start"
	SoundBreakStart      SoundEvent = "break_start"
	SoundSessionComplete SoundEvent = "session_complete"
	SoundTimerFinish     SoundEvent = "timer_finish"
)

// AllEvents lists every sound event.
var AllEvents = []SoundEvent{SoundWorkStart, SoundBreakStart, SoundSessionComplete, SoundTimerFinish}

// SoundFor maps a timer event to the sound it triggers, if any.
func SoundFor(event timer.Event) (SoundEvent, bool) {
	switch event.Type {
	case timer.EventStateChanged:
		switch {
		case event.State == timer.StateWork:
			return SoundWorkStart, true
		case event.State.Break():
			return SoundBreakStart, true
		}
	case timer.EventSessionCompleted:
		switch {
		case event.State == timer.StateWork:
			return SoundSessionComplete, true
		case event.State.Break():
			return SoundTimerFinish, true
		}
	}
	return "", false
}
