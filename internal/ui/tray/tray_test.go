package tray

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"traychime/internal/core/alarmclock"
	"traychime/internal/core/model"
)

type fakeApp struct {
	menu *fyne.Menu
}

func (app *fakeApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menu = menu
}

func findItem(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func newTestManager() (*Manager, *fakeApp) {
	app := &fakeApp{}
	manager := New(app, model.DefaultSettings(), Callbacks{})
	return manager, app
}

func TestNewRendersMenu(t *testing.T) {
	_, app := newTestManager()

	if app.menu == nil {
		t.Fatal("expected an initial menu")
	}
	for _, label := range []string{
		"Test Half-Past Sound (:29)",
		"Test Bell Sound (:59)",
		"Pause for...",
		"Resume",
		"Work Hours",
		"Quit",
	} {
		if findItem(app.menu, label) == nil {
			t.Fatalf("menu is missing %q", label)
		}
	}
}

func TestResumeDisabledUnlessPaused(t *testing.T) {
	manager, app := newTestManager()

	if item := findItem(app.menu, "Resume"); !item.Disabled {
		t.Fatal("Resume should be disabled while not paused")
	}

	manager.SetMode(alarmclock.ModePaused, time.Date(2026, time.March, 2, 10, 30, 0, 0, time.Local))
	if item := findItem(app.menu, "Resume"); item.Disabled {
		t.Fatal("Resume should be enabled while paused")
	}
}

func TestStatusLabelPerMode(t *testing.T) {
	manager, app := newTestManager()

	manager.SetMode(alarmclock.ModeActive, time.Time{})
	if got := app.menu.Items[0].Label; got != "Status: active" {
		t.Fatalf("status = %q", got)
	}

	manager.SetMode(alarmclock.ModeInactive, time.Time{})
	if got := app.menu.Items[0].Label; got != "Status: outside work hours" {
		t.Fatalf("status = %q", got)
	}

	until := time.Date(2026, time.March, 2, 10, 30, 0, 0, time.Local)
	manager.SetMode(alarmclock.ModePaused, until)
	if got := app.menu.Items[0].Label; !strings.Contains(got, "10:30") {
		t.Fatalf("paused status should carry the deadline, got %q", got)
	}
}

func TestWorkHoursPresetChecked(t *testing.T) {
	manager, app := newTestManager()

	parent := findItem(app.menu, "Work Hours")
	if parent == nil || parent.ChildMenu == nil {
		t.Fatal("expected a Work Hours submenu")
	}
	checked := func() string {
		for _, item := range parent.ChildMenu.Items {
			if item.Checked {
				return item.Label
			}
		}
		return ""
	}
	if got := checked(); got != "8:00 - 18:00" {
		t.Fatalf("default checked preset = %q", got)
	}

	manager.SetWorkHours(model.WorkHours{Start: 6, End: 16})
	parent = findItem(app.menu, "Work Hours")
	if got := checked(); got != "6:00 - 16:00" {
		t.Fatalf("checked preset after update = %q", got)
	}
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	app := &fakeApp{}

	var testedKind model.ChimeKind
	var pausedFor int
	var setHours model.WorkHours
	quit := false

	New(app, model.DefaultSettings(), Callbacks{
		OnTestChime:    func(kind model.ChimeKind) { testedKind = kind },
		OnPauseFor:     func(minutes int) { pausedFor = minutes },
		OnSetWorkHours: func(hours model.WorkHours) { setHours = hours },
		OnQuit:         func() { quit = true },
	})

	findItem(app.menu, "Test Bell Sound (:59)").Action()
	if testedKind != model.ChimeHour {
		t.Fatalf("test chime kind = %q", testedKind)
	}

	pauseFor := findItem(app.menu, "Pause for...")
	pauseFor.ChildMenu.Items[1].Action()
	if pausedFor != 60 {
		t.Fatalf("paused for = %d", pausedFor)
	}

	workHours := findItem(app.menu, "Work Hours")
	workHours.ChildMenu.Items[0].Action()
	if setHours != (model.WorkHours{Start: 6, End: 16}) {
		t.Fatalf("set hours = %+v", setHours)
	}

	findItem(app.menu, "Quit").Action()
	if !quit {
		t.Fatal("quit callback not invoked")
	}
}
