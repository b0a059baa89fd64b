package main

import (
	"os"
	"time"

	"traychime/internal/audio"
	"traychime/internal/core/alarmclock"
	"traychime/internal/core/model"
	"traychime/internal/platform"
	"traychime/internal/storage"
	"traychime/internal/ui/tray"
	"traychime/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const appName = "TrayChime"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Warn("single instance", zap.Error(err))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.traychime.app")
	fyneApp.SetIcon(resources.MustIcon("Active.png"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("TrayChime is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	settingsPath, err := storage.DefaultPath(appName)
	if err != nil {
		logger.Warn("resolve settings path, persisting next to the binary", zap.Error(err))
		settingsPath = "settings.json"
	}
	store := storage.NewStore(settingsPath, logger)
	settings := store.Load()

	player := audio.New(logger, settings.SoundEnabled)
	clock := alarmclock.New(settings.Hours, alarmclock.Config{TickInterval: 5 * time.Second})
	autostart := platform.NewService()

	icons := map[alarmclock.Mode]fyne.Resource{
		alarmclock.ModeActive:   resources.MustIcon("Active.png"),
		alarmclock.ModeInactive: resources.MustIcon("Inactive.png"),
		alarmclock.ModePaused:   resources.MustIcon("Paused.png"),
	}

	var trayManager *tray.Manager
	applyMode := func(mode alarmclock.Mode, until time.Time) {
		desktopApp.SetSystemTrayIcon(icons[mode])
		trayManager.SetMode(mode, until)
	}

	trayManager = tray.New(desktopApp, settings, tray.Callbacks{
		OnTestChime: func(kind model.ChimeKind) {
			if err := player.Play(kind); err != nil {
				logger.Warn("test chime", zap.String("kind", string(kind)), zap.Error(err))
			}
		},
		OnPauseFor: func(minutes int) {
			deadline := clock.PauseFor(minutes)
			applyMode(alarmclock.ModePaused, deadline)
		},
		OnResume: func() {
			clock.Resume()
			applyMode(clock.Mode(), time.Time{})
		},
		OnSetWorkHours: func(hours model.WorkHours) {
			if err := clock.UpdateWorkHours(hours); err != nil {
				logger.Warn("set work hours", zap.Error(err))
				return
			}
			settings.Hours = hours
			_ = store.Save(settings)
			trayManager.SetWorkHours(hours)
			applyMode(clock.Mode(), clock.PauseUntil())
		},
		OnToggleSound: func(enabled bool) {
			player.SetEnabled(enabled)
			settings.SoundEnabled = enabled
			_ = store.Save(settings)
			trayManager.SetSound(enabled)
		},
		OnSetAutostart: func(enabled bool) {
			execPath, err := os.Executable()
			if err != nil {
				logger.Warn("resolve executable path", zap.Error(err))
				return
			}
			if enabled {
				err = autostart.EnableAutostart(appName, execPath)
			} else {
				err = autostart.DisableAutostart(appName)
			}
			if err != nil {
				logger.Warn("autostart", zap.Bool("enabled", enabled), zap.Error(err))
				return
			}
			settings.Autostart = enabled
			_ = store.Save(settings)
			trayManager.SetAutostart(enabled)
		},
		OnQuit: func() {
			clock.Stop()
			fyneApp.Quit()
		},
	})

	events := clock.Subscribe(8)
	go func() {
		for event := range events {
			switch event.Type {
			case alarmclock.EventChime:
				if err := player.Play(event.Kind); err != nil {
					logger.Warn("play chime", zap.String("kind", string(event.Kind)), zap.Error(err))
				}
			case alarmclock.EventModeChange:
				mode := event.Mode
				until := event.PauseUntil
				fyne.Do(func() {
					applyMode(mode, until)
				})
			}
		}
	}()

	clock.Start()
	fyneApp.Run()
}
