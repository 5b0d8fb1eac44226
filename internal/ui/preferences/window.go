package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomotray/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var errInvalidNumber = errors.New("not a whole number")

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	config   model.Config
	onSave   func(model.Config) error
	validate func(model.Config) error

	work      *widget.Entry
	short     *widget.Entry
	long      *widget.Entry
	sessions  *widget.Entry
	autoStart *widget.Check

	hotkeyEnabled *widget.Check
	hotkey        *widget.Entry

	soundsEnabled *widget.Check
	volume        *widget.Slider
	soundType     *widget.Select
	customSounds  map[string]*widget.Entry

	startAtLogin *widget.Check
	fullscreen   *widget.Check
	opacity      *widget.Slider

	errorLabel *widget.Label
}

// New creates a preferences window. onSave receives the edited configuration
// and its error, if any, is shown in the window.
func New(app fyne.App, config model.Config, onSave func(model.Config) error) *Window {
	window := app.NewWindow("pomotray Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		short:         widget.NewEntry(),
		long:          widget.NewEntry(),
		sessions:      widget.NewEntry(),
		autoStart:     widget.NewCheck("Auto-start work after breaks", nil),
		hotkeyEnabled: widget.NewCheck("Enable global hotkey", nil),
		hotkey:        widget.NewEntry(),
		soundsEnabled: widget.NewCheck("Play sounds", nil),
		volume:        widget.NewSlider(0, 1),
		startAtLogin:  widget.NewCheck("Start at login", nil),
		fullscreen:    widget.NewCheck("Fullscreen break overlay", nil),
		opacity:       widget.NewSlider(model.MinOverlayOpacity, model.MaxOverlayOpacity),
		errorLabel:    widget.NewLabel(""),
		customSounds: map[string]*widget.Entry{
			"work_start":       widget.NewEntry(),
			"break_start":      widget.NewEntry(),
			"session_complete": widget.NewEntry(),
			"timer_finish":     widget.NewEntry(),
		},
	}
	prefs.volume.Step = 0.05
	prefs.opacity.Step = 0.01
	prefs.hotkey.SetPlaceHolder(model.DefaultGlobalHotkey)
	prefs.errorLabel.Importance = widget.DangerImportance
	prefs.errorLabel.Wrapping = fyne.TextWrapWord
	prefs.errorLabel.Hide()

	prefs.soundType = widget.NewSelect([]string{model.SoundTypeChimes, model.SoundTypeCustom}, func(value string) {
		prefs.setCustomSoundsEnabled(value == model.SoundTypeCustom)
	})
	prefs.hotkeyEnabled.OnChanged = func(enabled bool) {
		if enabled {
			prefs.hotkey.Enable()
			return
		}
		prefs.hotkey.Disable()
	}

	timerForm := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		minutesRow("Work session", prefs.work, "min"),
		minutesRow("Short break", prefs.short, "min"),
		minutesRow("Long break", prefs.long, "min"),
		minutesRow("Long break every", prefs.sessions, "sessions"),
		prefs.autoStart,
	)

	soundForm := container.NewVBox(
		widget.NewLabelWithStyle("Sounds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.soundsEnabled,
		widget.NewLabel("Volume"),
		prefs.volume,
		container.NewHBox(widget.NewLabel("Sound type"), prefs.soundType),
		widget.NewForm(
			widget.NewFormItem("Work start", prefs.customSounds["work_start"]),
			widget.NewFormItem("Break start", prefs.customSounds["break_start"]),
			widget.NewFormItem("Session complete", prefs.customSounds["session_complete"]),
			widget.NewFormItem("Timer finish", prefs.customSounds["timer_finish"]),
		),
	)

	systemForm := container.NewVBox(
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.hotkeyEnabled,
		container.NewBorder(nil, nil, widget.NewLabel("Hotkey"), nil, prefs.hotkey),
		prefs.startAtLogin,
		prefs.fullscreen,
		widget.NewLabel("Overlay opacity"),
		prefs.opacity,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.errorLabel.Hide()
		window.Hide()
	})
	buttons := container.NewVBox(prefs.errorLabel, container.NewHBox(saveButton, layout.NewSpacer(), cancelButton))

	form := container.NewVScroll(container.NewVBox(timerForm, widget.NewSeparator(), soundForm, widget.NewSeparator(), systemForm))
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 640))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateConfig(config)
	return prefs
}

func minutesRow(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), widget.NewLabel(unit), entry)
}

// SetValidator installs an extra check run before onSave.
func (prefs *Window) SetValidator(validate func(model.Config) error) {
	prefs.validate = validate
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	prefs.work.SetText(strconv.Itoa(int(config.WorkDuration / time.Minute)))
	prefs.short.SetText(strconv.Itoa(int(config.ShortBreakDuration / time.Minute)))
	prefs.long.SetText(strconv.Itoa(int(config.LongBreakDuration / time.Minute)))
	prefs.sessions.SetText(strconv.Itoa(config.SessionsUntilLongBreak))
	prefs.autoStart.SetChecked(config.AutoStartWorkAfterBreak)

	prefs.hotkey.SetText(config.GlobalHotkey)
	prefs.hotkeyEnabled.SetChecked(config.EnableGlobalHotkey)
	prefs.hotkeyEnabled.OnChanged(config.EnableGlobalHotkey)

	prefs.soundsEnabled.SetChecked(config.Sounds.Enabled)
	prefs.volume.SetValue(config.Sounds.Volume)
	prefs.soundType.SetSelected(config.Sounds.Type)
	prefs.setCustomSoundsEnabled(config.Sounds.Type == model.SoundTypeCustom)
	prefs.customSounds["work_start"].SetText(config.Sounds.WorkStart)
	prefs.customSounds["break_start"].SetText(config.Sounds.BreakStart)
	prefs.customSounds["session_complete"].SetText(config.Sounds.SessionComplete)
	prefs.customSounds["timer_finish"].SetText(config.Sounds.TimerFinish)

	prefs.startAtLogin.SetChecked(config.StartAtLogin)
	prefs.fullscreen.SetChecked(config.OverlayFullscreen)
	prefs.opacity.SetValue(config.OverlayOpacity)
}

// Collect builds a configuration from the form and validates it.
func (prefs *Window) Collect() (model.Config, error) {
	config := prefs.config

	var problems []string
	readInt := func(name, text string) int {
		value, err := parseWholeNumber(text)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
		return value
	}
	config.WorkDuration = time.Duration(readInt("work session", prefs.work.Text)) * time.Minute
	config.ShortBreakDuration = time.Duration(readInt("short break", prefs.short.Text)) * time.Minute
	config.LongBreakDuration = time.Duration(readInt("long break", prefs.long.Text)) * time.Minute
	config.SessionsUntilLongBreak = readInt("sessions", prefs.sessions.Text)
	if len(problems) > 0 {
		return prefs.config, fmt.Errorf("%w: %s", model.ErrInvalidConfig, strings.Join(problems, "; "))
	}

	config.AutoStartWorkAfterBreak = prefs.autoStart.Checked
	config.EnableGlobalHotkey = prefs.hotkeyEnabled.Checked
	config.GlobalHotkey = strings.TrimSpace(prefs.hotkey.Text)
	if config.GlobalHotkey == "" {
		config.GlobalHotkey = model.DefaultGlobalHotkey
	}

	config.Sounds.Enabled = prefs.soundsEnabled.Checked
	config.Sounds.Volume = prefs.volume.Value
	config.Sounds.Type = prefs.soundType.Selected
	config.Sounds.WorkStart = strings.TrimSpace(prefs.customSounds["work_start"].Text)
	config.Sounds.BreakStart = strings.TrimSpace(prefs.customSounds["break_start"].Text)
	config.Sounds.SessionComplete = strings.TrimSpace(prefs.customSounds["session_complete"].Text)
	config.Sounds.TimerFinish = strings.TrimSpace(prefs.customSounds["timer_finish"].Text)

	config.StartAtLogin = prefs.startAtLogin.Checked
	config.OverlayFullscreen = prefs.fullscreen.Checked
	config.OverlayOpacity = prefs.opacity.Value

	if err := config.Validate(); err != nil {
		return prefs.config, err
	}
	if prefs.validate != nil {
		if err := prefs.validate(config); err != nil {
			return prefs.config, err
		}
	}
	return config, nil
}

// Error returns the message currently shown, if any.
func (prefs *Window) Error() string {
	if !prefs.errorLabel.Visible() {
		return ""
	}
	return prefs.errorLabel.Text
}

func (prefs *Window) handleSave() {
	config, err := prefs.Collect()
	if err == nil && prefs.onSave != nil {
		err = prefs.onSave(config)
	}
	if err != nil {
		prefs.showError(err)
		return
	}

	prefs.config = config
	prefs.errorLabel.Hide()
	prefs.window.Hide()
}

func (prefs *Window) showError(err error) {
	prefs.errorLabel.SetText(err.Error())
	prefs.errorLabel.Show()
}

func (prefs *Window) setCustomSoundsEnabled(enabled bool) {
	for _, entry := range prefs.customSounds {
		if enabled {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
}

func parseWholeNumber(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errInvalidNumber
	}
	return parsed, nil
}
