package timer

import "pomotray/internal/logging"

// BreakExtension is how much ExtendBreak adds to a break, in seconds.
const BreakExtension = 5 * 60

// Controller resolves ambiguous user intents into timer commands so every
// front-end shares the same branching.
type Controller struct {
	timer *Timer
}

// NewController wraps timer.
func NewController(timer *Timer) *Controller {
	return &Controller{timer: timer}
}

// Timer returns the controlled timer.
func (controller *Controller) Timer() *Timer {
	return controller.timer
}

// StartOrResume starts work when idle and resumes when paused.
func (controller *Controller) StartOrResume() {
	state := controller.timer.State()
	switch {
	case state == StateIdle:
		logging.Debugf("controller: starting work session")
		controller.timer.StartWork()
	case state == StatePaused:
		logging.Debugf("controller: resuming timer")
		controller.timer.Resume()
	default:
		logging.Debugf("controller: cannot start or resume from state %s", state)
	}
}

// PauseOrResume pauses a running countdown and resumes a paused one.
func (controller *Controller) PauseOrResume() {
	state := controller.timer.State()
	switch {
	case state.Running():
		logging.Debugf("controller: pausing timer")
		controller.timer.Pause()
	case state == StatePaused:
		logging.Debugf("controller: resuming timer")
		controller.timer.Resume()
	default:
		logging.Debugf("controller: cannot pause or resume from state %s", state)
	}
}

// Reset resets the timer.
func (controller *Controller) Reset() {
	logging.Debugf("controller: resetting timer")
	controller.timer.Reset()
}

// SkipBreak abandons the current break, running or paused.
func (controller *Controller) SkipBreak() {
	if !controller.IsBreakActive() {
		logging.Debugf("controller: no break to skip in state %s", controller.timer.State())
		return
	}
	logging.Infof("controller: break skipped")
	controller.timer.Reset()
}

// ExtendBreak adds BreakExtension seconds to the current break.
func (controller *Controller) ExtendBreak() {
	if !controller.IsBreakActive() {
		logging.Debugf("controller: no break to extend in state %s", controller.timer.State())
		return
	}
	logging.Infof("controller: break extended by %d minutes", BreakExtension/60)
	controller.timer.Extend(BreakExtension)
}

// StartButton returns whether the start control is enabled and its label.
func (controller *Controller) StartButton() (bool, string) {
	switch controller.timer.State() {
	case StateIdle:
		return true, "Start"
	case StatePaused:
		return true, "Resume"
	default:
		return false, "Start"
	}
}

// PauseButton returns whether the pause control is enabled and its label.
func (controller *Controller) PauseButton() (bool, string) {
	state := controller.timer.State()
	switch {
	case state.Running():
		return true, "Pause"
	case state == StatePaused:
		return true, "Resume"
	default:
		return false, "Pause"
	}
}

// CanStart reports whether StartOrResume would act.
func (controller *Controller) CanStart() bool {
	state := controller.timer.State()
	return state == StateIdle || state == StatePaused
}

// CanPause reports whether PauseOrResume would act.
func (controller *Controller) CanPause() bool {
	state := controller.timer.State()
	return state.Running() || state == StatePaused
}

// IsRunning reports whether a countdown is active.
func (controller *Controller) IsRunning() bool {
	return controller.timer.State().Running()
}

// IsBreakActive reports whether a break is running or paused.
func (controller *Controller) IsBreakActive() bool {
	state := controller.timer.State()
	if state == StatePaused {
		return controller.timer.PreviousState().Break()
	}
	return state.Break()
}
