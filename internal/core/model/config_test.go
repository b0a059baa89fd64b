package model

import (
	"errors"
	"testing"
)

func TestWorkHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		hours   WorkHours
		wantErr bool
	}{
		{name: "default window", hours: WorkHours{Start: 8, End: 18}},
		{name: "earliest preset", hours: WorkHours{Start: 6, End: 16}},
		{name: "full day", hours: WorkHours{Start: 0, End: 23}},
		{name: "inverted", hours: WorkHours{Start: 9, End: 8}, wantErr: true},
		{name: "empty", hours: WorkHours{Start: 8, End: 8}, wantErr: true},
		{name: "negative start", hours: WorkHours{Start: -1, End: 8}, wantErr: true},
		{name: "end past 23", hours: WorkHours{Start: 8, End: 24}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
		})
	}
}

func TestWorkHoursContains(t *testing.T) {
	hours := WorkHours{Start: 8, End: 18}

	if hours.Contains(7) {
		t.Fatal("7 should be outside the window")
	}
	if !hours.Contains(8) {
		t.Fatal("window start is inclusive")
	}
	if !hours.Contains(17) {
		t.Fatal("17 should be inside the window")
	}
	if hours.Contains(18) {
		t.Fatal("window end is exclusive")
	}
}

func TestWorkHoursLabel(t *testing.T) {
	if got := (WorkHours{Start: 6, End: 16}).Label(); got != "6:00 - 16:00" {
		t.Fatalf("Label() = %q", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Hours != (WorkHours{Start: 8, End: 18}) {
		t.Fatalf("default hours = %+v", settings.Hours)
	}
	if !settings.SoundEnabled {
		t.Fatal("sound should default to enabled")
	}
	if settings.Autostart {
		t.Fatal("autostart should default to disabled")
	}
}

func TestWorkHoursPresetsAreValid(t *testing.T) {
	presets := WorkHoursPresets()
	if len(presets) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(presets))
	}
	for _, preset := range presets {
		if err := preset.Validate(); err != nil {
			t.Fatalf("preset %+v invalid: %v", preset, err)
		}
	}
}
