package mainwindow

import (
	"fmt"

	"pomotray/internal/core/timer"
	"pomotray/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnPreferences func()
	OnAutoStart   func(enabled bool)
	OnQuit        func()
}

// Window is the compact timer window.
type Window struct {
	window     fyne.Window
	controller *timer.Controller
	config     timer.ConfigSource
	callbacks  Callbacks

	timeLabel    *canvas.Text
	stateLabel   *widget.Label
	sessionLabel *widget.Label
	startButton  *widget.Button
	pauseButton  *widget.Button
	resetButton  *widget.Button
	autoStart    *widget.Check

	trayAvailable bool
}

// New creates the main window for controller.
func New(app fyne.App, controller *timer.Controller, config timer.ConfigSource, callbacks Callbacks) *Window {
	window := app.NewWindow("pomotray")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:       window,
		controller:   controller,
		config:       config,
		callbacks:    callbacks,
		timeLabel:    canvas.NewText("00:00", theme.Color(theme.ColorNameForeground)),
		stateLabel:   widget.NewLabelWithStyle("Ready to start", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		sessionLabel: widget.NewLabelWithStyle("Session: 1", fyne.TextAlignCenter, fyne.TextStyle{}),
	}
	view.timeLabel.TextSize = 48
	view.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timeLabel.Alignment = fyne.TextAlignCenter

	view.startButton = widget.NewButton("Start", controller.StartOrResume)
	view.startButton.Importance = widget.HighImportance
	view.pauseButton = widget.NewButton("Pause", controller.PauseOrResume)
	view.resetButton = widget.NewButton("Reset", controller.Reset)
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})

	view.autoStart = widget.NewCheck("Auto-Start After Breaks", nil)
	view.autoStart.SetChecked(config.Current().AutoStartWorkAfterBreak)
	view.autoStart.OnChanged = func(enabled bool) {
		logging.Infof("main window: auto-start after breaks set to %v", enabled)
		if view.callbacks.OnAutoStart != nil {
			view.callbacks.OnAutoStart(enabled)
		}
	}

	buttons := container.NewHBox(layout.NewSpacer(), view.startButton, view.pauseButton, view.resetButton, settingsButton, layout.NewSpacer())
	window.SetContent(container.NewVBox(
		view.timeLabel,
		view.stateLabel,
		buttons,
		widget.NewSeparator(),
		view.sessionLabel,
		container.NewCenter(view.autoStart),
	))
	window.Resize(fyne.NewSize(320, 240))
	window.SetCloseIntercept(view.close)

	view.Refresh()
	return view
}

// Attach refreshes the window on every timer event.
func (view *Window) Attach(source *timer.Timer) {
	source.Subscribe(func(timer.Event) {
		view.Refresh()
	})
}

// SetTrayAvailable makes closing the window hide it instead of quitting.
func (view *Window) SetTrayAvailable(available bool) {
	view.trayAvailable = available
}

// SetAutoStart mirrors the setting when it changes elsewhere.
func (view *Window) SetAutoStart(enabled bool) {
	if view.autoStart.Checked == enabled {
		return
	}
	handler := view.autoStart.OnChanged
	view.autoStart.OnChanged = nil
	view.autoStart.SetChecked(enabled)
	view.autoStart.OnChanged = handler
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Refresh redraws labels and buttons from the timer.
func (view *Window) Refresh() {
	source := view.controller.Timer()
	state := source.State()

	clock := source.TimeDisplay()
	if state == timer.StateIdle {
		clock = timer.FormatClock(view.config.Current().WorkSeconds())
	}
	if view.timeLabel.Text != clock {
		view.timeLabel.Text = clock
		view.timeLabel.Refresh()
	}
	view.stateLabel.SetText(state.Label())
	view.sessionLabel.SetText(fmt.Sprintf("Session: %d", source.Session()))

	startEnabled, startLabel := view.controller.StartButton()
	pauseEnabled, pauseLabel := view.controller.PauseButton()
	setButton(view.startButton, startEnabled, startLabel)
	setButton(view.pauseButton, pauseEnabled, pauseLabel)
}

func setButton(button *widget.Button, enabled bool, label string) {
	if button.Text != label {
		button.SetText(label)
	}
	if enabled && button.Disabled() {
		button.Enable()
	} else if !enabled && !button.Disabled() {
		button.Disable()
	}
}

func (view *Window) close() {
	if view.trayAvailable {
		view.window.Hide()
		return
	}
	if view.callbacks.OnQuit != nil {
		view.callbacks.OnQuit()
		return
	}
	view.window.Close()
}
