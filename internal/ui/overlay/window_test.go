package overlay

import (
	"testing"
	"time"

	"pomotray/internal/core/model"
	"pomotray/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
)

// newTestApp uses the stock theme, which has a bold monospace font for the
// clock; the bare test theme does not.
func newTestApp(t *testing.T) fyne.App {
	t.Helper()
	app := test.NewApp()
	app.Settings().SetTheme(theme.DefaultTheme())
	t.Cleanup(app.Quit)
	return app
}

type latestScheduler struct {
	callback func()
}

type nopTicker struct{}

func (nopTicker) Stop() {}

func (scheduler *latestScheduler) Every(_ time.Duration, callback func()) timer.Ticker {
	scheduler.callback = callback
	return nopTicker{}
}

func (scheduler *latestScheduler) tick() {
	if scheduler.callback != nil {
		scheduler.callback()
	}
}

func newOverlay(t *testing.T) (*Window, *timer.Controller, *latestScheduler) {
	t.Helper()
	app := newTestApp(t)

	config := model.DefaultConfig()
	config.WorkDuration = time.Second
	config.ShortBreakDuration = 5 * time.Second
	config.LongBreakDuration = 10 * time.Second
	config.SessionsUntilLongBreak = 4

	scheduler := &latestScheduler{}
	source := timer.New(model.NewMemoryProvider(config), scheduler)
	controller := timer.NewController(source)

	window := New(app, Config{Opacity: 200}, nil)
	window.Bind(controller)
	window.Attach(source)
	return window, controller, scheduler
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		state    timer.State
		previous timer.State
		title    string
		visible  bool
	}{
		{timer.StateShortBreak, timer.StateIdle, "Short Break", true},
		{timer.StateLongBreak, timer.StateIdle, "Long Break", true},
		{timer.StatePaused, timer.StateShortBreak, "Short Break - Paused", true},
		{timer.StatePaused, timer.StateLongBreak, "Long Break - Paused", true},
		{timer.StatePaused, timer.StateWork, "", false},
		{timer.StateWork, timer.StateIdle, "", false},
		{timer.StateIdle, timer.StateIdle, "", false},
	}
	for _, tc := range cases {
		view, ok := Describe(tc.state, tc.previous)
		if ok != tc.visible || view.Title != tc.title {
			t.Fatalf("Describe(%s, %s) = %q/%v, want %q/%v", tc.state, tc.previous, view.Title, ok, tc.title, tc.visible)
		}
	}
}

func TestOverlayFollowsBreaks(t *testing.T) {
	window, controller, scheduler := newOverlay(t)

	controller.StartOrResume()
	if window.Visible() {
		t.Fatalf("overlay must stay hidden during work")
	}

	scheduler.tick()
	if !window.Visible() {
		t.Fatalf("overlay should appear for the short break")
	}
	if window.titleLabel.Text != "Short Break" || window.timerLabel.Text != "00:05" {
		t.Fatalf("unexpected overlay text %q %q", window.titleLabel.Text, window.timerLabel.Text)
	}

	scheduler.tick()
	if window.timerLabel.Text != "00:04" {
		t.Fatalf("countdown not refreshed, got %q", window.timerLabel.Text)
	}

	test.Tap(window.pauseButton)
	if window.titleLabel.Text != "Short Break - Paused" || window.pauseButton.Text != "Resume" {
		t.Fatalf("expected paused view, got %q/%q", window.titleLabel.Text, window.pauseButton.Text)
	}

	test.Tap(window.extendButton)
	if window.timerLabel.Text != "05:04" {
		t.Fatalf("expected extended countdown, got %q", window.timerLabel.Text)
	}

	test.Tap(window.pauseButton)
	if window.pauseButton.Text != "Pause" || !window.Visible() {
		t.Fatalf("expected resumed break")
	}

	test.Tap(window.skipButton)
	if window.Visible() {
		t.Fatalf("skip should hide the overlay")
	}
	if controller.Timer().State() != timer.StateIdle {
		t.Fatalf("skip should reset the timer, got %s", controller.Timer().State())
	}
}

func TestOverlayEscapeDismisses(t *testing.T) {
	window, controller, scheduler := newOverlay(t)

	controller.StartOrResume()
	scheduler.tick()
	if !window.Visible() {
		t.Fatalf("expected visible overlay")
	}

	window.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if window.Visible() {
		t.Fatalf("escape should dismiss the overlay")
	}
	if controller.Timer().State() != timer.StateShortBreak {
		t.Fatalf("dismissing must not touch the timer, got %s", controller.Timer().State())
	}

	scheduler.tick()
	if window.Visible() || window.timerLabel.Text != "00:05" {
		t.Fatalf("hidden overlay must not refresh, got %q", window.timerLabel.Text)
	}
}

func TestOpacityToAlpha(t *testing.T) {
	cases := map[float64]uint8{-1: 0, 0: 0, 0.5: 127, 1: 255, 2: 255}
	for input, want := range cases {
		if got := OpacityToAlpha(input); got != want {
			t.Fatalf("OpacityToAlpha(%v) = %d, want %d", input, got, want)
		}
	}
}
