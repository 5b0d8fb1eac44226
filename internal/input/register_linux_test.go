//go:build linux

package input

import (
	"errors"
	"testing"
)

func TestRegisterWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	manager := NewHotkeyManager(direct, func() {})
	if err := manager.Apply(true, "ctrl+alt+space"); !errors.Is(err, ErrHotkeyUnavailable) {
		t.Fatalf("expected ErrHotkeyUnavailable, got %v", err)
	}
	if manager.Active() != "" {
		t.Fatalf("nothing should be registered")
	}
}
