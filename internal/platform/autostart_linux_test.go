//go:build linux

package platform

import (
	"strings"
	"testing"
)

func TestDesktopFileName(t *testing.T) {
	tests := []struct {
		name    string
		appName string
		want    string
	}{
		{name: "simple", appName: "TrayChime", want: "traychime.desktop"},
		{name: "spaces", appName: "Tray Chime", want: "tray-chime.desktop"},
		{name: "empty", appName: "", want: "traychime.desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := desktopFileName(tt.appName); got != tt.want {
				t.Fatalf("desktopFileName(%q) = %q, want %q", tt.appName, got, tt.want)
			}
		})
	}
}

func TestBuildDesktopEntry(t *testing.T) {
	entry := buildDesktopEntry("TrayChime", "/usr/local/bin/traychime")

	for _, want := range []string{
		"[Desktop Entry]",
		"Name=TrayChime",
		"Exec=/usr/local/bin/traychime",
		"Terminal=false",
	} {
		if !strings.Contains(entry, want) {
			t.Fatalf("desktop entry missing %q:\n%s", want, entry)
		}
	}
}

func TestBuildDesktopEntryQuotesSpacedPath(t *testing.T) {
	entry := buildDesktopEntry("TrayChime", "/opt/My Apps/traychime")
	if !strings.Contains(entry, `Exec="/opt/My Apps/traychime"`) {
		t.Fatalf("spaced exec path should be quoted:\n%s", entry)
	}
}
