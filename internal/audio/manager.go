package audio

import (
	"context"
	"errors"
	"os"
	"sync"

	"pomotray/internal/core/model"
	"pomotray/internal/core/timer"
	"pomotray/internal/logging"
)

// Manager maps timer events to sounds and plays them in the background.
type Manager struct {
	player    Player
	chimesDir string
	prepare   func(dir string) (map[SoundEvent]string, error)

	chimesOnce sync.Once
	chimes     map[SoundEvent]string

	mu        sync.Mutex
	enabled   bool
	volume    float64
	soundType string
	custom    map[SoundEvent]string

	playing map[int]context.CancelFunc
	nextID  int
	wg      sync.WaitGroup
}

// NewManager creates a manager. Chimes are generated into chimesDir on first use.
// A nil player disables playback.
func NewManager(player Player, chimesDir string) *Manager {
	return &Manager{
		player:    player,
		chimesDir: chimesDir,
		prepare:   PrepareChimes,
		volume:    1,
		soundType: model.SoundTypeChimes,
		custom:    map[SoundEvent]string{},
		playing:   map[int]context.CancelFunc{},
	}
}

// Apply takes the sound preferences from settings.
func (manager *Manager) Apply(sounds model.Sounds) {
	manager.SetEnabled(sounds.Enabled)
	manager.SetVolume(sounds.Volume)

	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.soundType = sounds.Type
	manager.custom = map[SoundEvent]string{
		SoundWorkStart:       sounds.WorkStart,
		SoundBreakStart:      sounds.BreakStart,
		SoundSessionComplete: sounds.SessionComplete,
		SoundTimerFinish:     sounds.TimerFinish,
	}
	if manager.soundType == model.SoundTypeCustom {
		for event, path := range manager.custom {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				logging.Warnf("audio: custom sound for %s not found: %s", event, path)
			}
		}
	}
}

// SetEnabled turns playback on or off.
func (manager *Manager) SetEnabled(enabled bool) {
	manager.mu.Lock()
	manager.enabled = enabled
	manager.mu.Unlock()
	logging.Debugf("audio: enabled=%v", enabled)
}

// SetVolume clamps volume into [0, 1].
func (manager *Manager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	manager.mu.Lock()
	manager.volume = volume
	manager.mu.Unlock()
}

// Attach plays sounds for the timer's transitions.
func (manager *Manager) Attach(source *timer.Timer) {
	source.Subscribe(func(event timer.Event) {
		if sound, ok := SoundFor(event); ok {
			manager.Play(sound)
		}
	})
}

// Play starts the sound for event without blocking. Files are resolved and
// chimes generated on the playback goroutine.
func (manager *Manager) Play(event SoundEvent) {
	manager.mu.Lock()
	if !manager.enabled || manager.player == nil {
		manager.mu.Unlock()
		return
	}
	soundType := manager.soundType
	customPath := manager.custom[event]
	volume := manager.volume

	ctx, cancel := context.WithCancel(context.Background())
	id := manager.nextID
	manager.nextID++
	manager.playing[id] = cancel
	manager.wg.Add(1)
	manager.mu.Unlock()

	go func() {
		defer manager.wg.Done()
		defer manager.finish(id)

		path := customPath
		if soundType != model.SoundTypeCustom {
			path = manager.chimePaths()[event]
		}
		if path == "" {
			logging.Debugf("audio: no sound configured for %s", event)
			return
		}
		if _, err := os.Stat(path); err != nil {
			logging.Warnf("audio: sound file not found: %s", path)
			return
		}

		logging.Debugf("audio: playing %s", event)
		if err := manager.player.Play(ctx, path, volume); err != nil && !errors.Is(err, context.Canceled) {
			logging.Errorf("audio: playback failed: %v", err)
		}
	}()
}

// chimePaths generates the chime files once and returns their paths.
func (manager *Manager) chimePaths() map[SoundEvent]string {
	manager.chimesOnce.Do(func() {
		paths, err := manager.prepare(manager.chimesDir)
		if err != nil {
			logging.Errorf("audio: generate chimes: %v", err)
			paths = map[SoundEvent]string{}
		}
		manager.chimes = paths
	})
	return manager.chimes
}

func (manager *Manager) finish(id int) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if cancel, ok := manager.playing[id]; ok {
		cancel()
		delete(manager.playing, id)
	}
}

// StopAll cancels every running playback and waits for them to exit.
func (manager *Manager) StopAll() {
	manager.mu.Lock()
	for id, cancel := range manager.playing {
		cancel()
		delete(manager.playing, id)
	}
	manager.mu.Unlock()
	manager.wg.Wait()
	logging.Debugf("audio: all sounds stopped")
}

// Warm generates the chime files ahead of the first playback.
func (manager *Manager) Warm() {
	manager.mu.Lock()
	soundType := manager.soundType
	manager.mu.Unlock()
	if soundType != model.SoundTypeCustom {
		manager.chimePaths()
	}
}
