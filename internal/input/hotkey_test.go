package input

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

func TestParseHotkey(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "ctrl+alt+space", want: "ctrl+alt+space"},
		{input: "Alt + Ctrl + Space", want: "ctrl+alt+space"},
		{input: "cmd+shift+p", want: "shift+super+p"},
		{input: "control+option+return", want: "ctrl+alt+enter"},
		{input: "ctrl+ctrl+f5", want: "ctrl+f5"},
		{input: "super+esc", want: "super+escape"},
		{input: "ctrl+7", want: "ctrl+7"},
	}
	for _, tc := range cases {
		combination, err := ParseHotkey(tc.input)
		if err != nil {
			t.Fatalf("ParseHotkey(%q): %v", tc.input, err)
		}
		if got := combination.String(); got != tc.want {
			t.Fatalf("ParseHotkey(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseHotkeyRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"space",
		"ctrl+alt",
		"ctrl+a+b",
		"ctrl++space",
		"ctrl+hyper",
		"ctrl+f13",
	} {
		if _, err := ParseHotkey(input); !errors.Is(err, ErrInvalidHotkey) {
			t.Fatalf("ParseHotkey(%q) error = %v, want ErrInvalidHotkey", input, err)
		}
	}
}

func TestKeyNamesAreSorted(t *testing.T) {
	names := KeyNames()
	if len(names) != len(keyNames) || !sort.StringsAreSorted(names) {
		t.Fatalf("unexpected key names %v", names)
	}
	for _, name := range ModifierNames() {
		if _, err := ParseHotkey(name + "+a"); err != nil {
			t.Fatalf("modifier %q rejected: %v", name, err)
		}
	}
}

func TestManagerDisabledRegistersNothing(t *testing.T) {
	manager := NewHotkeyManager(direct, func() {})
	if err := manager.Apply(false, "ctrl+alt+space"); err != nil {
		t.Fatalf("apply disabled: %v", err)
	}
	if manager.Active() != "" {
		t.Fatalf("expected nothing registered")
	}
	if err := manager.Apply(true, "ctrl+nope"); !errors.Is(err, ErrInvalidHotkey) {
		t.Fatalf("expected ErrInvalidHotkey, got %v", err)
	}
	manager.Stop()
}

type fakeRegistration struct {
	keydown      chan struct{}
	unregistered bool
}

func (registration *fakeRegistration) Keydown() <-chan struct{} { return registration.keydown }

func (registration *fakeRegistration) Unregister() error {
	if !registration.unregistered {
		registration.unregistered = true
		close(registration.keydown)
	}
	return nil
}

func TestManagerRegistersAndTriggers(t *testing.T) {
	var mu sync.Mutex
	var registered []*fakeRegistration
	triggered := make(chan struct{}, 4)

	manager := NewHotkeyManager(direct, func() { triggered <- struct{}{} })
	manager.register = func(combination Combination) (registration, error) {
		mu.Lock()
		defer mu.Unlock()
		fake := &fakeRegistration{keydown: make(chan struct{}, 1)}
		registered = append(registered, fake)
		return fake, nil
	}

	if err := manager.Apply(true, "Alt+Ctrl+Space"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if manager.Active() != "ctrl+alt+space" {
		t.Fatalf("unexpected active hotkey %q", manager.Active())
	}
	if err := manager.Apply(true, "ctrl+alt+space"); err != nil || len(registered) != 1 {
		t.Fatalf("same combination should not re-register, got %d registrations, err %v", len(registered), err)
	}

	registered[0].keydown <- struct{}{}
	select {
	case <-triggered:
	case <-time.After(2 * time.Second):
		t.Fatalf("key-down did not trigger")
	}

	if err := manager.Apply(true, "ctrl+shift+p"); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if !registered[0].unregistered || len(registered) != 2 {
		t.Fatalf("old registration should be replaced")
	}

	manager.Stop()
	if !registered[1].unregistered || manager.Active() != "" {
		t.Fatalf("stop should unregister")
	}
}

func TestManagerReportsUnavailable(t *testing.T) {
	manager := NewHotkeyManager(direct, func() {})
	manager.register = func(Combination) (registration, error) {
		return nil, ErrHotkeyUnavailable
	}
	if err := manager.Apply(true, "ctrl+alt+space"); !errors.Is(err, ErrHotkeyUnavailable) {
		t.Fatalf("expected ErrHotkeyUnavailable, got %v", err)
	}
	if manager.Active() != "" {
		t.Fatalf("nothing should be registered")
	}
}

func TestManagerForgetsEndedRegistration(t *testing.T) {
	fake := &fakeRegistration{keydown: make(chan struct{})}
	manager := NewHotkeyManager(direct, func() {})
	manager.register = func(Combination) (registration, error) { return fake, nil }

	if err := manager.Apply(true, "ctrl+alt+space"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	close(fake.keydown)
	fake.unregistered = true

	deadline := time.Now().Add(2 * time.Second)
	for manager.Active() != "" {
		if time.Now().After(deadline) {
			t.Fatalf("ended registration still active")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
