package platform

import (
	"errors"
	"time"
)

// ErrIdleUnsupported indicates idle time cannot be read on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

type unsupportedIdleProvider struct{}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}

// idleSince returns the time between two 32-bit millisecond tick readings.
func idleSince(now, lastInput uint32) time.Duration {
	return time.Duration(now-lastInput) * time.Millisecond
}
