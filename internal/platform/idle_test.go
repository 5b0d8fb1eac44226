package platform

import (
	"errors"
	"testing"
	"time"
)

func TestIdleSinceHandlesWraparound(t *testing.T) {
	if got := idleSince(5000, 2000); got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
	if got := idleSince(500, 0xFFFFFFFF-499); got != time.Second {
		t.Fatalf("expected 1s across wraparound, got %s", got)
	}
}

func TestUnsupportedIdleProvider(t *testing.T) {
	if _, err := (unsupportedIdleProvider{}).IdleDuration(); !errors.Is(err, ErrIdleUnsupported) {
		t.Fatalf("expected ErrIdleUnsupported, got %v", err)
	}
}
