package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrInvalidConfig indicates a configuration value is outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Sound types.
const (
	SoundTypeChimes = "chimes"
	SoundTypeCustom = "custom"
)

// DefaultGlobalHotkey is the combination used when none is configured.
const DefaultGlobalHotkey = "ctrl+alt+space"

// Sounds holds audio preferences.
type Sounds struct {
	Enabled bool
	Volume  float64
	Type    string

	WorkStart       string
	BreakStart      string
	SessionComplete string
	TimerFinish     string
}

// Config contains every user-facing setting.
type Config struct {
	WorkDuration           time.Duration
	ShortBreakDuration     time.Duration
	LongBreakDuration      time.Duration
	SessionsUntilLongBreak int

	// AutoStartWorkAfterBreak is read by the activity monitor, not the timer.
	AutoStartWorkAfterBreak bool

	EnableGlobalHotkey bool
	GlobalHotkey       string

	Sounds Sounds

	StartAtLogin      bool
	OverlayFullscreen bool
	OverlayOpacity    float64
}

// DefaultConfig returns the stock pomodoro configuration.
func DefaultConfig() Config {
	return Config{
		WorkDuration:            25 * time.Minute,
		ShortBreakDuration:      5 * time.Minute,
		LongBreakDuration:       15 * time.Minute,
		SessionsUntilLongBreak:  4,
		AutoStartWorkAfterBreak: true,
		EnableGlobalHotkey:      false,
		GlobalHotkey:            DefaultGlobalHotkey,
		Sounds: Sounds{
			Enabled: true,
			Volume:  0.7,
			Type:    SoundTypeChimes,
		},
		StartAtLogin:      false,
		OverlayFullscreen: false,
		OverlayOpacity:    0.85,
	}
}

// Limits for persisted settings.
const (
	MinWorkMinutes       = 1
	MaxWorkMinutes       = 120
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 60
	MinLongBreakMinutes  = 5
	MaxLongBreakMinutes  = 120
	MinSessions          = 2
	MaxSessions          = 10
	MinOverlayOpacity    = 0.5
	MaxOverlayOpacity    = 1.0
)

// WorkSeconds returns the work phase length in whole seconds.
func (config Config) WorkSeconds() int {
	return int(config.WorkDuration / time.Second)
}

// ShortBreakSeconds returns the short break length in whole seconds.
func (config Config) ShortBreakSeconds() int {
	return int(config.ShortBreakDuration / time.Second)
}

// LongBreakSeconds returns the long break length in whole seconds.
func (config Config) LongBreakSeconds() int {
	return int(config.LongBreakDuration / time.Second)
}

// Validate checks the minute-level bounds enforced on the settings file.
func (config Config) Validate() error {
	var problems []string

	checkMinutes := func(name string, value time.Duration, minMinutes, maxMinutes int) {
		if value < time.Duration(minMinutes)*time.Minute || value > time.Duration(maxMinutes)*time.Minute {
			problems = append(problems, fmt.Sprintf("%s must be between %d and %d minutes", name, minMinutes, maxMinutes))
		}
	}
	checkMinutes("work duration", config.WorkDuration, MinWorkMinutes, MaxWorkMinutes)
	checkMinutes("short break duration", config.ShortBreakDuration, MinShortBreakMinutes, MaxShortBreakMinutes)
	checkMinutes("long break duration", config.LongBreakDuration, MinLongBreakMinutes, MaxLongBreakMinutes)

	if config.SessionsUntilLongBreak < MinSessions || config.SessionsUntilLongBreak > MaxSessions {
		problems = append(problems, fmt.Sprintf("sessions until long break must be between %d and %d", MinSessions, MaxSessions))
	}
	problems = append(problems, config.commonProblems()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateQuick checks a configuration that may use second-level durations.
func (config Config) ValidateQuick() error {
	var problems []string
	if config.WorkDuration < time.Second {
		problems = append(problems, "work duration must be at least 1s")
	}
	if config.ShortBreakDuration < time.Second {
		problems = append(problems, "short break duration must be at least 1s")
	}
	if config.LongBreakDuration < time.Second {
		problems = append(problems, "long break duration must be at least 1s")
	}
	if config.SessionsUntilLongBreak < 1 {
		problems = append(problems, "sessions until long break must be positive")
	}
	problems = append(problems, config.commonProblems()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (config Config) commonProblems() []string {
	var problems []string
	if config.Sounds.Volume < 0 || config.Sounds.Volume > 1 {
		problems = append(problems, "sound volume must be between 0 and 1")
	}
	if config.Sounds.Type != SoundTypeChimes && config.Sounds.Type != SoundTypeCustom {
		problems = append(problems, fmt.Sprintf("unknown sound type %q", config.Sounds.Type))
	}
	if config.OverlayOpacity < MinOverlayOpacity || config.OverlayOpacity > MaxOverlayOpacity {
		problems = append(problems, fmt.Sprintf("overlay opacity must be between %.2f and %.2f", MinOverlayOpacity, MaxOverlayOpacity))
	}
	if config.EnableGlobalHotkey && strings.TrimSpace(config.GlobalHotkey) == "" {
		problems = append(problems, "global hotkey is empty")
	}
	return problems
}

// Provider supplies the current configuration and accepts updates.
type Provider interface {
	Current() Config
	Update(Config) error
}

// MemoryProvider keeps configuration in memory only.
type MemoryProvider struct {
	mu     sync.RWMutex
	config Config
}

// NewMemoryProvider returns a provider seeded with config.
func NewMemoryProvider(config Config) *MemoryProvider {
	return &MemoryProvider{config: config}
}

// Current returns a copy of the configuration.
func (provider *MemoryProvider) Current() Config {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.config
}

// Update replaces the configuration without persisting it.
func (provider *MemoryProvider) Update(config Config) error {
	if err := config.ValidateQuick(); err != nil {
		return err
	}
	provider.mu.Lock()
	provider.config = config
	provider.mu.Unlock()
	return nil
}
