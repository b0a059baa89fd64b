package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRange indicates a work-hour window outside 0 <= start < end <= 23.
var ErrInvalidRange = errors.New("invalid work-hour range")

// ChimeKind identifies one of the two periodic cues.
type ChimeKind string

const (
	// ChimeHalfPast fires at minute 29 of each hour.
	ChimeHalfPast ChimeKind = "half_past"
	// ChimeHour fires at minute 59 of each hour.
	ChimeHour ChimeKind = "hour"
)

// WorkHours is the window during which chimes are eligible to fire.
// Start is inclusive, End exclusive.
type WorkHours struct {
	Start int
	End   int
}

// Validate checks the window bounds.
func (hours WorkHours) Validate() error {
	if hours.Start < 0 || hours.End > 23 || hours.Start >= hours.End {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, hours.Start, hours.End)
	}
	return nil
}

// Contains reports whether the given hour falls inside the window.
func (hours WorkHours) Contains(hour int) bool {
	return hour >= hours.Start && hour < hours.End
}

// Label renders the window the way the tray menu displays it.
func (hours WorkHours) Label() string {
	return fmt.Sprintf("%d:00 - %d:00", hours.Start, hours.End)
}

// Settings defines the persisted user preferences.
type Settings struct {
	Hours        WorkHours
	SoundEnabled bool
	Autostart    bool
}

// DefaultSettings returns the first-run defaults.
func DefaultSettings() Settings {
	return Settings{
		Hours:        WorkHours{Start: 8, End: 18},
		SoundEnabled: true,
		Autostart:    false,
	}
}

// WorkHoursPresets lists the windows offered in the tray menu.
func WorkHoursPresets() []WorkHours {
	return []WorkHours{
		{Start: 6, End: 16},
		{Start: 7, End: 17},
		{Start: 8, End: 18},
		{Start: 9, End: 19},
	}
}
