package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"pomotray/internal/audio"
	"pomotray/internal/core/model"
	"pomotray/internal/core/timer"
	"pomotray/internal/history"
	"pomotray/internal/input"
	"pomotray/internal/logging"
	"pomotray/internal/loop"
	"pomotray/internal/platform"
	"pomotray/internal/ui/animation"
	"pomotray/internal/ui/mainwindow"
	"pomotray/internal/ui/overlay"
	"pomotray/internal/ui/preferences"
	"pomotray/internal/ui/terminal"
	"pomotray/internal/ui/tray"
	"pomotray/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const historyTimeout = 5 * time.Second

// application holds the pieces shared by both front-ends.
type application struct {
	service    platform.Service
	appDir     string
	provider   model.Provider
	persistent bool

	sounds   *audio.Manager
	history  *history.Store
	recorder *history.Recorder
}

// startServices wires sounds and history to source. post runs callbacks on
// the loop that owns the UI.
func (application *application) startServices(source *timer.Timer, post loop.Dispatcher, onToday func(int)) {
	config := application.provider.Current()

	var player audio.Player
	if commandPlayer, err := audio.NewCommandPlayer(); err != nil {
		logging.Warnf("audio: %v, sounds disabled", err)
	} else {
		logging.Infof("audio: using %s", commandPlayer.Name())
		player = commandPlayer
	}
	application.sounds = audio.NewManager(player, filepath.Join(application.appDir, "sounds"))
	application.sounds.Apply(config.Sounds)
	application.sounds.Attach(source)
	go application.sounds.Warm()

	store, err := history.Open(filepath.Join(application.appDir, history.FileName))
	if err != nil {
		logging.Warnf("history: %v, completed sessions will not be recorded", err)
		return
	}
	application.history = store
	application.recorder = history.NewRecorder(store)
	application.recorder.OnRecorded = func(entry history.Entry) {
		if entry.Phase != string(timer.StateWork) {
			return
		}
		if count, ok := application.todayCount(); ok {
			post(func() { onToday(count) })
		}
	}
	application.recorder.Attach(source)

	if count, ok := application.todayCount(); ok {
		onToday(count)
	}
}

func (application *application) todayCount() (int, bool) {
	if application.history == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	count, err := application.history.CountSince(ctx, string(timer.StateWork), history.StartOfDay(time.Now()))
	if err != nil {
		logging.Warnf("history: %v", err)
		return 0, false
	}
	return count, true
}

func (application *application) stopServices() {
	if application.sounds != nil {
		application.sounds.StopAll()
	}
	if application.recorder != nil {
		application.recorder.Close()
	}
	if application.history != nil {
		if err := application.history.Close(); err != nil {
			logging.Warnf("history: %v", err)
		}
	}
}

func (application *application) runDesktop(ctx context.Context) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logging.Infof("main: %s is already running, bringing it forward", appName)
			if err := platform.ActivateRunning(appName); err != nil {
				logging.Warnf("main: %v", err)
			}
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppLogo))

	config := application.provider.Current()
	source := timer.New(application.provider, loop.NewScheduler(fyne.Do))
	controller := timer.NewController(source)

	// Declared up front so the save path can reach every view.
	var (
		trayManager *tray.Manager
		mainWindow  *mainwindow.Window
		prefsWindow *preferences.Window
		hotkeys     *input.HotkeyManager
	)

	overlayWindow := overlay.New(fyneApp, overlay.Config{
		Opacity:    overlay.OpacityToAlpha(config.OverlayOpacity),
		Fullscreen: config.OverlayFullscreen,
	}, nil)
	overlayWindow.SetEngine(animation.New(animation.DefaultConfig(), overlayWindow.SetSprite))
	overlayWindow.SetTips(animation.DefaultTips(resources.MustSprite))
	overlayWindow.SetIdle(animation.Mascot(resources.MustSprite))
	overlayWindow.Bind(controller)
	overlayWindow.Attach(source)

	saveConfig := func(updated model.Config) error {
		previous := application.provider.Current()
		if err := application.provider.Update(updated); err != nil {
			logging.Warnf("main: settings rejected: %v", err)
			return err
		}
		logging.Infof("main: settings saved")

		application.sounds.Apply(updated.Sounds)
		if err := hotkeys.Apply(updated.EnableGlobalHotkey, updated.GlobalHotkey); err != nil {
			logging.Warnf("input: %v", err)
		}
		overlayWindow.UpdateConfig(overlay.Config{
			Opacity:    overlay.OpacityToAlpha(updated.OverlayOpacity),
			Fullscreen: updated.OverlayFullscreen,
		})
		if trayManager != nil {
			trayManager.SetAutoStart(updated.AutoStartWorkAfterBreak)
		}
		mainWindow.SetAutoStart(updated.AutoStartWorkAfterBreak)
		if prefsWindow != nil {
			prefsWindow.UpdateConfig(updated)
		}
		if application.persistent && updated.StartAtLogin != previous.StartAtLogin {
			if err := platform.SyncAutostart(application.service, appName, updated.StartAtLogin); err != nil {
				logging.Warnf("platform: %v", err)
			}
		}
		return nil
	}
	setAutoStart := func(enabled bool) {
		updated := application.provider.Current()
		updated.AutoStartWorkAfterBreak = enabled
		_ = saveConfig(updated)
	}
	quit := func() {
		logging.Infof("main: shutting down")
		fyneApp.Quit()
	}

	prefsWindow = preferences.New(fyneApp, config, saveConfig)
	prefsWindow.SetValidator(func(updated model.Config) error {
		if !updated.EnableGlobalHotkey {
			return nil
		}
		_, err := input.ParseHotkey(updated.GlobalHotkey)
		return err
	})

	mainWindow = mainwindow.New(fyneApp, controller, application.provider, mainwindow.Callbacks{
		OnPreferences: prefsWindow.Show,
		OnAutoStart:   setAutoStart,
		OnQuit:        quit,
	})
	mainWindow.Attach(source)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, controller, config.AutoStartWorkAfterBreak, tray.Callbacks{
			OnShowWindow:  mainWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnAutoStart:   setAutoStart,
			OnQuit:        quit,
		})
		trayManager.Attach(source)
		mainWindow.SetTrayAvailable(true)
	} else {
		logging.Warnf("main: system tray unsupported on this platform")
	}

	application.startServices(source, fyne.Do, func(count int) {
		if trayManager != nil {
			trayManager.SetToday(count)
		}
	})
	defer application.stopServices()

	monitor := input.NewActivityMonitor(platform.NewIdleProvider(), fyne.Do, func() {
		logging.Infof("main: activity detected, starting work")
		source.StartWork()
	})
	monitor.Attach(source, application.provider)
	defer monitor.Disarm()

	hotkeys = input.NewHotkeyManager(fyne.Do, func() {
		logging.Infof("main: global hotkey triggered")
		source.StartWork()
	})
	if err := hotkeys.Apply(config.EnableGlobalHotkey, config.GlobalHotkey); err != nil {
		logging.Warnf("input: %v", err)
	}
	defer hotkeys.Stop()

	if application.persistent {
		if err := platform.SyncAutostart(application.service, appName, config.StartAtLogin); err != nil {
			logging.Warnf("platform: %v", err)
		}
	}

	guard.OnActivate(func() {
		fyne.Do(mainWindow.Show)
	})
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(quit)
		case <-stopped:
		}
	}()

	mainWindow.Show()
	fyneApp.Run()
	return nil
}

func (application *application) runTerminal(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := loop.NewQueue(64)
	source := timer.New(application.provider, loop.NewScheduler(queue.Post))
	controller := timer.NewController(source)

	session := terminal.NewSession(controller, queue, out, tipTexts())
	session.Attach(source)

	application.startServices(source, queue.Post, session.SetToday)
	defer application.stopServices()

	monitor := input.NewActivityMonitor(platform.NewIdleProvider(), queue.Post, source.StartWork)
	monitor.Attach(source, application.provider)
	defer monitor.Disarm()

	return session.Run(ctx, in)
}

func tipTexts() []string {
	tips := animation.DefaultTips(func(string) fyne.Resource { return nil })
	texts := make([]string, 0, len(tips))
	for _, tip := range tips {
		texts = append(texts, tip.Text)
	}
	return texts
}
