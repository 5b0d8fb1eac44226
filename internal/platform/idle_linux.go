//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type idleProvider struct {
	xprintidlePath string
	wayland        bool
}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	wayland := strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland")
	if wayland && os.Getenv("DISPLAY") == "" {
		// xprintidle needs an X server; pure Wayland sessions have none.
		return unsupportedIdleProvider{}
	}
	return &idleProvider{xprintidlePath: path, wayland: wayland}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.xprintidlePath).Output()
	if err != nil {
		if provider.wayland {
			return 0, fmt.Errorf("xprintidle under wayland: %w", ErrIdleUnsupported)
		}
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(output)
}

func parseIdleMillis(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
