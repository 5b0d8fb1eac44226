//go:build !linux

package keymap_test

import (
	"errors"
	"testing"

	"pomotray/internal/input"
	"pomotray/internal/input/keymap"
)

func TestEveryNameMaps(t *testing.T) {
	for _, key := range input.KeyNames() {
		if _, err := keymap.New(input.ModifierNames(), key); err != nil {
			t.Fatalf("key %q: %v", key, err)
		}
	}
}

func TestUnknownNames(t *testing.T) {
	if _, err := keymap.New([]string{"hyper"}, "a"); !errors.Is(err, keymap.ErrUnmapped) {
		t.Fatalf("expected ErrUnmapped for modifier, got %v", err)
	}
	if _, err := keymap.New([]string{"ctrl"}, "f13"); !errors.Is(err, keymap.ErrUnmapped) {
		t.Fatalf("expected ErrUnmapped for key, got %v", err)
	}
}
