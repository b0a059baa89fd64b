package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"traychime/internal/core/alarmclock"
	"traychime/internal/core/model"
)

// App is the subset of the desktop driver the tray manager needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTestChime    func(kind model.ChimeKind)
	OnPauseFor     func(minutes int)
	OnResume       func()
	OnSetWorkHours func(hours model.WorkHours)
	OnToggleSound  func(enabled bool)
	OnSetAutostart func(enabled bool)
	OnQuit         func()
}

// Manager handles the tray menu state. The whole menu is rebuilt on every
// refresh because menu items carry check marks that depend on settings.
type Manager struct {
	app       App
	callbacks Callbacks

	mode       alarmclock.Mode
	pauseUntil time.Time
	hours      model.WorkHours
	sound      bool
	autostart  bool
}

// New creates a tray manager with the provided callbacks and renders the
// initial menu.
func New(app App, settings model.Settings, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		mode:      alarmclock.ModeInactive,
		hours:     settings.Hours,
		sound:     settings.SoundEnabled,
		autostart: settings.Autostart,
	}
	manager.refreshMenu()
	return manager
}

// SetMode updates the displayed mode and pause deadline.
func (manager *Manager) SetMode(mode alarmclock.Mode, pauseUntil time.Time) {
	manager.mode = mode
	manager.pauseUntil = pauseUntil
	manager.refreshMenu()
}

// SetWorkHours updates the checked work-hour preset.
func (manager *Manager) SetWorkHours(hours model.WorkHours) {
	manager.hours = hours
	manager.refreshMenu()
}

// SetSound updates the sound check mark.
func (manager *Manager) SetSound(enabled bool) {
	manager.sound = enabled
	manager.refreshMenu()
}

// SetAutostart updates the start-at-login check mark.
func (manager *Manager) SetAutostart(enabled bool) {
	manager.autostart = enabled
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	statusItem := fyne.NewMenuItem(manager.statusLabel(), nil)
	statusItem.Disabled = true

	testHalfPast := fyne.NewMenuItem("Test Half-Past Sound (:29)", func() {
		if manager.callbacks.OnTestChime != nil {
			manager.callbacks.OnTestChime(model.ChimeHalfPast)
		}
	})
	testBell := fyne.NewMenuItem("Test Bell Sound (:59)", func() {
		if manager.callbacks.OnTestChime != nil {
			manager.callbacks.OnTestChime(model.ChimeHour)
		}
	})

	pauseFor := fyne.NewMenuItem("Pause for...", nil)
	pauseFor.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("30 minutes", func() {
			if manager.callbacks.OnPauseFor != nil {
				manager.callbacks.OnPauseFor(30)
			}
		}),
		fyne.NewMenuItem("60 minutes", func() {
			if manager.callbacks.OnPauseFor != nil {
				manager.callbacks.OnPauseFor(60)
			}
		}),
	)

	resume := fyne.NewMenuItem("Resume", func() {
		if manager.callbacks.OnResume != nil {
			manager.callbacks.OnResume()
		}
	})
	resume.Disabled = manager.mode != alarmclock.ModePaused

	workHours := fyne.NewMenuItem("Work Hours", nil)
	presetItems := make([]*fyne.MenuItem, 0, len(model.WorkHoursPresets()))
	for _, preset := range model.WorkHoursPresets() {
		preset := preset
		item := fyne.NewMenuItem(preset.Label(), func() {
			if manager.callbacks.OnSetWorkHours != nil {
				manager.callbacks.OnSetWorkHours(preset)
			}
		})
		item.Checked = preset == manager.hours
		presetItems = append(presetItems, item)
	}
	workHours.ChildMenu = fyne.NewMenu("", presetItems...)

	sound := fyne.NewMenuItem("Sound enabled", func() {
		if manager.callbacks.OnToggleSound != nil {
			manager.callbacks.OnToggleSound(!manager.sound)
		}
	})
	sound.Checked = manager.sound

	autostart := fyne.NewMenuItem("Start at login", func() {
		if manager.callbacks.OnSetAutostart != nil {
			manager.callbacks.OnSetAutostart(!manager.autostart)
		}
	})
	autostart.Checked = manager.autostart

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})

	manager.app.SetSystemTrayMenu(fyne.NewMenu("TrayChime",
		statusItem,
		fyne.NewMenuItemSeparator(),
		testHalfPast,
		testBell,
		fyne.NewMenuItemSeparator(),
		pauseFor,
		resume,
		fyne.NewMenuItemSeparator(),
		workHours,
		sound,
		autostart,
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

func (manager *Manager) statusLabel() string {
	switch manager.mode {
	case alarmclock.ModeActive:
		return "Status: active"
	case alarmclock.ModePaused:
		if manager.pauseUntil.IsZero() {
			return "Status: paused"
		}
		return fmt.Sprintf("Status: paused until %s", manager.pauseUntil.Format("15:04"))
	default:
		return "Status: outside work hours"
	}
}
