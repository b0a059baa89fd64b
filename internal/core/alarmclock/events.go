package alarmclock

import (
	"time"

	"traychime/internal/core/model"
)

// Mode represents the current alarm gate.
type Mode string

const (
	// ModeActive means the current hour is inside the work window and
	// chimes are eligible to fire.
	ModeActive Mode = "active"
	// ModeInactive means the current hour is outside the work window.
	ModeInactive Mode = "inactive"
	// ModePaused means a pause deadline is set and has not yet passed.
	ModePaused Mode = "paused"
)

// EventType defines the type of Clock event.
type EventType string

const (
	EventChime      EventType = "chime"
	EventModeChange EventType = "mode_change"
)

// Event represents a Clock update for observers.
type Event struct {
	Type       EventType
	Mode       Mode
	Kind       model.ChimeKind
	PauseUntil time.Time
	At         time.Time
}
