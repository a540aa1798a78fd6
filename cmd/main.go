package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/stefior/WORK-WORK/internal/core/tracker"
	"github.com/stefior/WORK-WORK/internal/platform"
	"github.com/stefior/WORK-WORK/internal/storage"
	"github.com/stefior/WORK-WORK/internal/ui/border"
	"github.com/stefior/WORK-WORK/internal/ui/mainwindow"
	"github.com/stefior/WORK-WORK/internal/ui/tray"
	"github.com/stefior/WORK-WORK/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "WORK WORK"
	appID   = "com.workwork.app"
	// storageName is the directory name under the user config and cache dirs.
	storageName = "workwork"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	lock, err := platform.AcquireLock(storageName)
	if err != nil {
		logger.Error("another instance is already running")
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	settings := storage.DefaultSettings()
	store, err := storage.NewStore(storageName)
	if err != nil {
		logger.Error("settings unavailable, running without persistence", "error", err)
		store = nil
	} else {
		settings, err = store.Load()
		if err != nil {
			logger.Error("load settings", "error", err)
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon())

	engine := tracker.New(settings.Tracker, tracker.Config{
		TickInterval:      time.Second,
		UIRefreshInterval: time.Second,
		AutosaveInterval:  30 * time.Second,
	}, nil, logger)

	engine.SetIdleChecker(platform.NewIdleProvider())
	engine.SetActivityProvider(platform.NewForegroundProvider())
	if store != nil {
		engine.SetStore(store)
	}
	if execPath, execErr := os.Executable(); execErr == nil {
		engine.SetSelfPath(execPath)
	} else {
		logger.Warn("resolve own executable", "error", execErr)
	}

	if wavData, wavErr := resources.AlertWav(); wavErr == nil {
		sounder, soundErr := platform.NewSounder(storageName, wavData)
		if soundErr != nil {
			logger.Warn("alert sound unavailable", "error", soundErr)
		} else {
			engine.SetSounder(sounder)
		}
	}

	borderWindow := border.New(fyneApp)
	engine.SetBorder(borderWindow)

	quit := func() {
		engine.Stop()
		fyneApp.Quit()
	}

	hotkeys := platform.NewHotkeyManager()
	defer func() {
		_ = hotkeys.Close()
	}()
	var hotkeyFailures []error
	for _, binding := range []struct {
		sequence string
		action   func()
	}{
		{settings.AddProgramHotkey, engine.RequestAddProgram},
		{settings.RemoveProgramHotkey, engine.RequestRemoveProgram},
	} {
		if failure := registerHotkey(hotkeys, binding.sequence, binding.action, logger); failure != nil {
			hotkeyFailures = append(hotkeyFailures, failure)
		}
	}

	// Current bindings; mutated only from UI-thread callbacks.
	addHotkey := settings.AddProgramHotkey
	removeHotkey := settings.RemoveProgramHotkey
	persistHotkeys := func() {
		if store == nil {
			return
		}
		if err := store.SaveHotkeys(addHotkey, removeHotkey); err != nil {
			logger.Error("save hotkeys", "error", err)
		}
	}

	var mainWindow *mainwindow.Window
	mainWindow = mainwindow.New(fyneApp, engine.Snapshot, mainwindow.Callbacks{
		OnAddProgram:    engine.RequestAddProgram,
		OnRemoveProgram: engine.RequestRemoveProgram,
		OnReset:         engine.RequestReset,
		OnResume:        engine.RequestSetTotal,
		OnToggleSound:   engine.RequestToggleSound,
		OnToggleBorder:  engine.RequestToggleBorder,
		OnSetIdleTimeout: func(seconds int) {
			engine.RequestSetIdleTimeout(time.Duration(seconds) * time.Second)
		},
		OnSetGoal: func(seconds int) {
			engine.RequestSetGoal(time.Duration(seconds) * time.Second)
		},
		OnClose: quit,
		HotkeyBindings: func() (string, string) {
			return addHotkey, removeHotkey
		},
		OnSetAddHotkey: func(sequence string) {
			if sequence == addHotkey {
				return
			}
			if err := hotkeys.Replace(addHotkey, sequence, engine.RequestAddProgram); err != nil {
				logger.Error("rebind add hotkey", "sequence", sequence, "error", err)
				mainWindow.ShowError(err)
				return
			}
			addHotkey = sequence
			persistHotkeys()
		},
		OnSetRemoveHotkey: func(sequence string) {
			if sequence == removeHotkey {
				return
			}
			if err := hotkeys.Replace(removeHotkey, sequence, engine.RequestRemoveProgram); err != nil {
				logger.Error("rebind remove hotkey", "sequence", sequence, "error", err)
				mainWindow.ShowError(err)
				return
			}
			removeHotkey = sequence
			persistHotkeys()
		},
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		service := platform.NewService()
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowWindow:    mainWindow.Show,
			OnAddProgram:    engine.RequestAddProgram,
			OnRemoveProgram: engine.RequestRemoveProgram,
			OnReset:         engine.RequestReset,
			AutostartEnabled: func() bool {
				return service.AutostartEnabled(appName)
			},
			OnToggleAutostart: func() bool {
				if service.AutostartEnabled(appName) {
					if autostartErr := service.DisableAutostart(appName); autostartErr != nil {
						logger.Error("disable autostart", "error", autostartErr)
					}
				} else if execPath, execErr := os.Executable(); execErr == nil {
					if autostartErr := service.EnableAutostart(appName, execPath); autostartErr != nil {
						logger.Error("enable autostart", "error", autostartErr)
					}
				}
				return service.AutostartEnabled(appName)
			},
			OnQuit: quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustIcon())
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	events := engine.Subscribe(8)
	go func() {
		for event := range events {
			if event.Type == tracker.EventIdleError {
				logger.Warn("idle detection unavailable, counting on activity only")
			}
			applied := event
			fyne.Do(func() {
				mainWindow.ApplyEvent(applied)
				if trayManager != nil {
					trayManager.Apply(applied)
				}
			})
		}
	}()

	engine.Start()
	mainWindow.Show()
	for _, failure := range hotkeyFailures {
		mainWindow.ShowError(failure)
	}
	fyneApp.Run()
	engine.Stop()
}

// registerHotkey binds a global shortcut, tolerating platforms without
// hotkey support. A real registration failure is returned so the caller
// can surface it to the user.
func registerHotkey(hotkeys platform.HotkeyManager, sequence string, action func(), logger *slog.Logger) error {
	if sequence == "" {
		return nil
	}
	if err := hotkeys.Register(sequence, action); err != nil {
		if errors.Is(err, platform.ErrHotkeysUnsupported) {
			logger.Info("global hotkeys unsupported", "sequence", sequence)
			return nil
		}
		logger.Error("register hotkey", "sequence", sequence, "error", err)
		return err
	}
	return nil
}
