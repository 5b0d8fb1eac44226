package timer

import (
	"testing"
	"time"
)

func TestControllerStartOrResume(t *testing.T) {
	timer, scheduler, _ := newTestTimer(testConfig(5*time.Second, 2*time.Second, 3*time.Second, 4))
	controller := NewController(timer)

	controller.StartOrResume()
	if timer.State() != StateWork {
		t.Fatalf("expected work, got %s", timer.State())
	}

	scheduler.Tick()
	controller.StartOrResume()
	if timer.State() != StateWork || timer.Remaining() != 4 {
		t.Fatalf("start while running must be ignored, got %s/%d", timer.State(), timer.Remaining())
	}

	timer.Pause()
	controller.StartOrResume()
	if timer.State() != StateWork || timer.Remaining() != 4 {
		t.Fatalf("expected resume to work with 4, got %s/%d", timer.State(), timer.Remaining())
	}
}

func TestControllerPauseOrResume(t *testing.T) {
	timer, scheduler, _ := newTestTimer(testConfig(time.Second, 5*time.Second, 3*time.Second, 4))
	controller := NewController(timer)

	controller.PauseOrResume()
	if timer.State() != StateIdle {
		t.Fatalf("pause from idle must be ignored, got %s", timer.State())
	}

	controller.StartOrResume()
	scheduler.Tick()
	if timer.State() != StateShortBreak {
		t.Fatalf("expected short break, got %s", timer.State())
	}

	controller.PauseOrResume()
	if timer.State() != StatePaused || timer.PreviousState() != StateShortBreak {
		t.Fatalf("expected paused from short break, got %s/%s", timer.State(), timer.PreviousState())
	}

	controller.PauseOrResume()
	if timer.State() != StateShortBreak {
		t.Fatalf("expected resumed short break, got %s", timer.State())
	}
}

func TestControllerButtons(t *testing.T) {
	timer, scheduler, _ := newTestTimer(testConfig(time.Second, 5*time.Second, 3*time.Second, 4))
	controller := NewController(timer)

	type buttons struct {
		startEnabled bool
		startLabel   string
		pauseEnabled bool
		pauseLabel   string
	}
	check := func(name string, want buttons) {
		t.Helper()
		startEnabled, startLabel := controller.StartButton()
		pauseEnabled, pauseLabel := controller.PauseButton()
		got := buttons{startEnabled, startLabel, pauseEnabled, pauseLabel}
		if got != want {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}
		if controller.CanStart() != want.startEnabled || controller.CanPause() != want.pauseEnabled {
			t.Fatalf("%s: CanStart/CanPause disagree with button state", name)
		}
	}

	check("idle", buttons{true, "Start", false, "Pause"})

	controller.StartOrResume()
	check("work", buttons{false, "Start", true, "Pause"})

	scheduler.Tick()
	check("short break", buttons{false, "Start", true, "Pause"})

	controller.PauseOrResume()
	check("paused", buttons{true, "Resume", true, "Resume"})

	controller.Reset()
	check("reset", buttons{true, "Start", false, "Pause"})
}

func TestControllerBreakHelpers(t *testing.T) {
	timer, scheduler, _ := newTestTimer(testConfig(time.Second, 5*time.Second, 3*time.Second, 4))
	controller := NewController(timer)

	controller.ExtendBreak()
	controller.SkipBreak()
	if timer.State() != StateIdle || timer.Remaining() != 0 {
		t.Fatalf("break helpers must be ignored while idle")
	}

	controller.StartOrResume()
	if controller.IsBreakActive() || !controller.IsRunning() {
		t.Fatalf("work session is running and not a break")
	}
	controller.SkipBreak()
	if timer.State() != StateWork {
		t.Fatalf("skip must not end a work session, got %s", timer.State())
	}

	scheduler.Tick()
	if !controller.IsBreakActive() {
		t.Fatalf("expected an active break")
	}
	controller.ExtendBreak()
	if timer.Remaining() != 5+BreakExtension {
		t.Fatalf("expected %d remaining, got %d", 5+BreakExtension, timer.Remaining())
	}

	controller.PauseOrResume()
	if !controller.IsBreakActive() || controller.IsRunning() {
		t.Fatalf("paused break should count as active but not running")
	}
	controller.SkipBreak()
	if timer.State() != StateIdle || timer.Session() != 1 {
		t.Fatalf("skip should reset the timer, got %s session %d", timer.State(), timer.Session())
	}
}
