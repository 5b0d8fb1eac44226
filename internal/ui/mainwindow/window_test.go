package mainwindow

import (
	"bytes"
	"log"
	"strings"
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

func TestWindowTracksTimer(t *testing.T) {
	app := newTestApp(t)

	config := model.DefaultConfig()
	config.WorkDuration = 3 * time.Second
	provider := model.NewMemoryProvider(config)
	scheduler := &latestScheduler{}
	source := timer.New(provider, scheduler)
	controller := timer.NewController(source)

	var autoStart []bool
	window := New(app, controller, provider, Callbacks{OnAutoStart: func(enabled bool) {
		autoStart = append(autoStart, enabled)
	}})
	window.Attach(source)

	if window.timeLabel.Text != "00:03" || window.stateLabel.Text != "Ready to start" {
		t.Fatalf("idle view should show the work duration, got %q %q", window.timeLabel.Text, window.stateLabel.Text)
	}
	if window.startButton.Disabled() || !window.pauseButton.Disabled() {
		t.Fatalf("unexpected idle buttons")
	}

	test.Tap(window.startButton)
	scheduler.callback()
	if window.timeLabel.Text != "00:02" || window.stateLabel.Text != "Work Session" {
		t.Fatalf("unexpected work view %q %q", window.timeLabel.Text, window.stateLabel.Text)
	}
	if !window.startButton.Disabled() || window.pauseButton.Disabled() {
		t.Fatalf("unexpected running buttons")
	}

	test.Tap(window.pauseButton)
	if window.stateLabel.Text != "Paused" || window.startButton.Text != "Resume" || window.pauseButton.Text != "Resume" {
		t.Fatalf("unexpected paused view %q %q %q", window.stateLabel.Text, window.startButton.Text, window.pauseButton.Text)
	}

	test.Tap(window.resetButton)
	if window.timeLabel.Text != "00:03" || window.sessionLabel.Text != "Session: 1" {
		t.Fatalf("unexpected reset view %q %q", window.timeLabel.Text, window.sessionLabel.Text)
	}

	var logs bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(previous) })

	test.Tap(window.autoStart)
	if len(autoStart) != 1 || autoStart[0] {
		t.Fatalf("expected auto-start to be toggled off, got %v", autoStart)
	}
	if !strings.Contains(logs.String(), "main window: auto-start after breaks set to false") {
		t.Fatalf("unexpected log output %q", logs.String())
	}
	window.SetAutoStart(true)
	if !window.autoStart.Checked || len(autoStart) != 1 {
		t.Fatalf("SetAutoStart must not call back, got %v", autoStart)
	}
}

func TestCloseHidesWithTray(t *testing.T) {
	app := newTestApp(t)

	provider := model.NewMemoryProvider(model.DefaultConfig())
	controller := timer.NewController(timer.New(provider, &latestScheduler{}))
	quits := 0
	window := New(app, controller, provider, Callbacks{OnQuit: func() { quits++ }})

	window.SetTrayAvailable(true)
	window.close()
	if quits != 0 {
		t.Fatalf("close with a tray must only hide")
	}
	window.SetTrayAvailable(false)
	window.close()
	if quits != 1 {
		t.Fatalf("close without a tray should quit")
	}
}
