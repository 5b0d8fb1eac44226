package tray

import (
	"fmt"

	"pomotray/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const appTitle = "pomotray"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowWindow  func()
	OnPreferences func()
	OnAutoStart   func(enabled bool)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	controller *timer.Controller
	callbacks  Callbacks

	statusItem    *fyne.MenuItem
	todayItem     *fyne.MenuItem
	startItem     *fyne.MenuItem
	pauseItem     *fyne.MenuItem
	resetItem     *fyne.MenuItem
	autoStartItem *fyne.MenuItem

	icons   iconCache
	tooltip string
}

// New creates a tray manager driving controller.
func New(app desktop.App, controller *timer.Controller, autoStart bool, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		controller: controller,
		callbacks:  callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready to start", nil)
	manager.statusItem.Disabled = true
	manager.todayItem = fyne.NewMenuItem("Today: 0 pomodoros", nil)
	manager.todayItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", controller.StartOrResume)
	manager.pauseItem = fyne.NewMenuItem("Pause", controller.PauseOrResume)
	manager.resetItem = fyne.NewMenuItem("Reset", controller.Reset)

	manager.autoStartItem = fyne.NewMenuItem("Auto-Start After Breaks", nil)
	manager.autoStartItem.Checked = autoStart
	manager.autoStartItem.Action = func() {
		manager.autoStartItem.Checked = !manager.autoStartItem.Checked
		if manager.callbacks.OnAutoStart != nil {
			manager.callbacks.OnAutoStart(manager.autoStartItem.Checked)
		}
		manager.refreshMenu()
	}

	manager.Refresh()
	return manager
}

// Attach refreshes the tray on every timer event.
func (manager *Manager) Attach(source *timer.Timer) {
	source.Subscribe(func(timer.Event) {
		manager.Refresh()
	})
}

// SetAutoStart mirrors the setting when changed elsewhere.
func (manager *Manager) SetAutoStart(enabled bool) {
	if manager.autoStartItem.Checked == enabled {
		return
	}
	manager.autoStartItem.Checked = enabled
	manager.refreshMenu()
}

// SetToday updates the completed pomodoro count line.
func (manager *Manager) SetToday(count int) {
	noun := "pomodoros"
	if count == 1 {
		noun = "pomodoro"
	}
	manager.todayItem.Label = fmt.Sprintf("Today: %d %s", count, noun)
	manager.refreshMenu()
}

// Tooltip returns the current tooltip text.
func (manager *Manager) Tooltip() string {
	return manager.tooltip
}

// Refresh redraws icon, tooltip and menu from the timer.
func (manager *Manager) Refresh() {
	source := manager.controller.Timer()
	state := source.State()

	icon, changed := manager.icons.get(state, source.Remaining(), source.Progress())
	if changed && manager.app != nil {
		manager.app.SetSystemTrayIcon(icon)
	}

	tooltip := TooltipText(state, source.TimeDisplay())
	if tooltip != manager.tooltip {
		manager.tooltip = tooltip
		if manager.app != nil {
			systray.SetTooltip(tooltip)
		}
	}

	startEnabled, startLabel := manager.controller.StartButton()
	pauseEnabled, pauseLabel := manager.controller.PauseButton()
	status := statusText(source)
	if manager.startItem.Label == startLabel && manager.startItem.Disabled == !startEnabled &&
		manager.pauseItem.Label == pauseLabel && manager.pauseItem.Disabled == !pauseEnabled &&
		manager.statusItem.Label == status {
		return
	}
	manager.startItem.Label = startLabel
	manager.startItem.Disabled = !startEnabled
	manager.pauseItem.Label = pauseLabel
	manager.pauseItem.Disabled = !pauseEnabled
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// TooltipText renders the tray tooltip for state.
func TooltipText(state timer.State, clock string) string {
	if state == timer.StateIdle {
		return appTitle + " - Ready"
	}
	label := state.Label()
	if state == timer.StateWork {
		label = "Work"
	}
	return fmt.Sprintf("%s - %s: %s", appTitle, label, clock)
}

func statusText(source *timer.Timer) string {
	return fmt.Sprintf("%s (session %d)", source.State().Label(), source.Session())
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(appTitle,
		manager.statusItem,
		manager.todayItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Window", func() {
			if manager.callbacks.OnShowWindow != nil {
				manager.callbacks.OnShowWindow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.autoStartItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
