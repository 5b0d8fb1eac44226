package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pomotray/internal/core/model"
	"pomotray/internal/logging"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the file name of the settings document.
const SettingsFileName = "settings.yaml"

// Export formats accepted by EncodeSettingsAs.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

type yamlSounds struct {
	Enabled         bool    `yaml:"enabled" toml:"enabled"`
	Volume          float64 `yaml:"volume" toml:"volume"`
	Type            string  `yaml:"type" toml:"type"`
	WorkStart       string  `yaml:"work_start,omitempty" toml:"work_start,omitempty"`
	BreakStart      string  `yaml:"break_start,omitempty" toml:"break_start,omitempty"`
	SessionComplete string  `yaml:"session_complete,omitempty" toml:"session_complete,omitempty"`
	TimerFinish     string  `yaml:"timer_finish,omitempty" toml:"timer_finish,omitempty"`
}

type yamlSettings struct {
	WorkMinutes             int        `yaml:"work_minutes" toml:"work_minutes"`
	ShortBreakMinutes       int        `yaml:"short_break_minutes" toml:"short_break_minutes"`
	LongBreakMinutes        int        `yaml:"long_break_minutes" toml:"long_break_minutes"`
	SessionsUntilLongBreak  int        `yaml:"sessions_until_long_break" toml:"sessions_until_long_break"`
	AutoStartWorkAfterBreak bool       `yaml:"auto_start_work_after_break" toml:"auto_start_work_after_break"`
	EnableGlobalHotkey      bool       `yaml:"enable_global_hotkey" toml:"enable_global_hotkey"`
	GlobalHotkey            string     `yaml:"global_hotkey" toml:"global_hotkey"`
	Sounds                  yamlSounds `yaml:"sounds" toml:"sounds"`
	StartAtLogin            bool       `yaml:"start_at_login" toml:"start_at_login"`
	OverlayFullscreen       bool       `yaml:"overlay_fullscreen" toml:"overlay_fullscreen"`
	OverlayOpacity          float64    `yaml:"overlay_opacity" toml:"overlay_opacity"`
}

// Store persists the configuration as YAML and serves it to the timer.
type Store struct {
	path string

	mu     sync.RWMutex
	config model.Config
}

// ResolvePath returns <configDir>/<appName>/settings.yaml.
func ResolvePath(configDir, appName string) string {
	return filepath.Join(configDir, appName, SettingsFileName)
}

// Open loads the settings at path. A missing file yields the defaults.
func Open(path string) (*Store, error) {
	store := &Store{path: path, config: model.DefaultConfig()}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Infof("storage: no settings at %s, using defaults", path)
			return store, nil
		}
		return store, fmt.Errorf("read settings file: %w", err)
	}

	config, err := decodeSettings(rawData)
	if err != nil {
		return store, err
	}
	store.config = config
	return store, nil
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Current returns the configuration in effect.
func (store *Store) Current() model.Config {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.config
}

// Update validates, saves and then applies config.
func (store *Store) Update(config model.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := store.save(config); err != nil {
		return err
	}
	store.mu.Lock()
	store.config = config
	store.mu.Unlock()
	return nil
}

func (store *Store) save(config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := EncodeSettings(config)
	if err != nil {
		return err
	}

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// EncodeSettings renders config in the settings file layout.
func EncodeSettings(config model.Config) ([]byte, error) {
	serialized, err := yaml.Marshal(toYAML(config))
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// EncodeSettingsAs renders config as YAML or TOML using the settings keys.
func EncodeSettingsAs(config model.Config, format string) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		return EncodeSettings(config)
	case FormatTOML:
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(toYAML(config)); err != nil {
			return nil, fmt.Errorf("marshal settings toml: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown settings format %q", format)
	}
}

func decodeSettings(rawData []byte) (model.Config, error) {
	defaults := model.DefaultConfig()
	fileData := toYAML(defaults)
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return defaults, fmt.Errorf("parse settings yaml: %w", err)
	}
	return applyYamlSettings(defaults, fileData), nil
}

func toYAML(config model.Config) yamlSettings {
	return yamlSettings{
		WorkMinutes:             int(config.WorkDuration / time.Minute),
		ShortBreakMinutes:       int(config.ShortBreakDuration / time.Minute),
		LongBreakMinutes:        int(config.LongBreakDuration / time.Minute),
		SessionsUntilLongBreak:  config.SessionsUntilLongBreak,
		AutoStartWorkAfterBreak: config.AutoStartWorkAfterBreak,
		EnableGlobalHotkey:      config.EnableGlobalHotkey,
		GlobalHotkey:            config.GlobalHotkey,
		Sounds: yamlSounds{
			Enabled:         config.Sounds.Enabled,
			Volume:          config.Sounds.Volume,
			Type:            config.Sounds.Type,
			WorkStart:       config.Sounds.WorkStart,
			BreakStart:      config.Sounds.BreakStart,
			SessionComplete: config.Sounds.SessionComplete,
			TimerFinish:     config.Sounds.TimerFinish,
		},
		StartAtLogin:      config.StartAtLogin,
		OverlayFullscreen: config.OverlayFullscreen,
		OverlayOpacity:    config.OverlayOpacity,
	}
}

// applyYamlSettings copies file values over defaults, keeping the default for
// any value outside its allowed range.
func applyYamlSettings(settings model.Config, fileData yamlSettings) model.Config {
	if inRange(fileData.WorkMinutes, model.MinWorkMinutes, model.MaxWorkMinutes) {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	} else {
		logging.Warnf("storage: work_minutes %d out of range, using default", fileData.WorkMinutes)
	}
	if inRange(fileData.ShortBreakMinutes, model.MinShortBreakMinutes, model.MaxShortBreakMinutes) {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	} else {
		logging.Warnf("storage: short_break_minutes %d out of range, using default", fileData.ShortBreakMinutes)
	}
	if inRange(fileData.LongBreakMinutes, model.MinLongBreakMinutes, model.MaxLongBreakMinutes) {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	} else {
		logging.Warnf("storage: long_break_minutes %d out of range, using default", fileData.LongBreakMinutes)
	}
	if inRange(fileData.SessionsUntilLongBreak, model.MinSessions, model.MaxSessions) {
		settings.SessionsUntilLongBreak = fileData.SessionsUntilLongBreak
	} else {
		logging.Warnf("storage: sessions_until_long_break %d out of range, using default", fileData.SessionsUntilLongBreak)
	}

	settings.AutoStartWorkAfterBreak = fileData.AutoStartWorkAfterBreak
	settings.EnableGlobalHotkey = fileData.EnableGlobalHotkey
	if fileData.GlobalHotkey != "" {
		settings.GlobalHotkey = fileData.GlobalHotkey
	}

	settings.Sounds.Enabled = fileData.Sounds.Enabled
	if fileData.Sounds.Volume >= 0 && fileData.Sounds.Volume <= 1 {
		settings.Sounds.Volume = fileData.Sounds.Volume
	}
	if fileData.Sounds.Type == model.SoundTypeChimes || fileData.Sounds.Type == model.SoundTypeCustom {
		settings.Sounds.Type = fileData.Sounds.Type
	}
	settings.Sounds.WorkStart = fileData.Sounds.WorkStart
	settings.Sounds.BreakStart = fileData.Sounds.BreakStart
	settings.Sounds.SessionComplete = fileData.Sounds.SessionComplete
	settings.Sounds.TimerFinish = fileData.Sounds.TimerFinish

	settings.StartAtLogin = fileData.StartAtLogin
	settings.OverlayFullscreen = fileData.OverlayFullscreen
	if fileData.OverlayOpacity >= model.MinOverlayOpacity && fileData.OverlayOpacity <= model.MaxOverlayOpacity {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	return settings
}

func inRange(value, minValue, maxValue int) bool {
	return value >= minValue && value <= maxValue
}
