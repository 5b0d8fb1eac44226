package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pomotray/internal/logging"
	"pomotray/internal/loop"
)

var (
	// ErrInvalidHotkey is returned for combinations that cannot be parsed.
	ErrInvalidHotkey = errors.New("invalid hotkey")
	// ErrHotkeyUnavailable is returned when global hotkeys cannot be
	// registered in this session.
	ErrHotkeyUnavailable = errors.New("global hotkeys unavailable")
)

// Combination is a parsed, platform-neutral key combination.
type Combination struct {
	Modifiers []string
	Key       string
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"super":   "super",
	"cmd":     "super",
	"command": "super",
	"win":     "super",
	"meta":    "super",
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
}

var modifierOrder = map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "super": 3}

// ParseHotkey parses strings such as "ctrl+alt+space". At least one modifier
// and exactly one key are required.
func ParseHotkey(value string) (Combination, error) {
	var combination Combination
	seen := map[string]bool{}

	for _, part := range strings.Split(strings.ToLower(value), "+") {
		token := strings.TrimSpace(part)
		if token == "" {
			return Combination{}, fmt.Errorf("%w: empty token in %q", ErrInvalidHotkey, value)
		}
		if modifier, ok := modifierAliases[token]; ok {
			if !seen[modifier] {
				seen[modifier] = true
				combination.Modifiers = append(combination.Modifiers, modifier)
			}
			continue
		}
		if alias, ok := keyAliases[token]; ok {
			token = alias
		}
		if !keyNames[token] {
			return Combination{}, fmt.Errorf("%w: unknown key %q", ErrInvalidHotkey, token)
		}
		if combination.Key != "" {
			return Combination{}, fmt.Errorf("%w: more than one key in %q", ErrInvalidHotkey, value)
		}
		combination.Key = token
	}

	if combination.Key == "" {
		return Combination{}, fmt.Errorf("%w: no key in %q", ErrInvalidHotkey, value)
	}
	if len(combination.Modifiers) == 0 {
		return Combination{}, fmt.Errorf("%w: %q needs a modifier", ErrInvalidHotkey, value)
	}
	sort.Slice(combination.Modifiers, func(i, j int) bool {
		return modifierOrder[combination.Modifiers[i]] < modifierOrder[combination.Modifiers[j]]
	})
	return combination, nil
}

// String renders the canonical form, e.g. "ctrl+alt+space".
func (combination Combination) String() string {
	parts := append(append([]string(nil), combination.Modifiers...), combination.Key)
	return strings.Join(parts, "+")
}

// registration is a live global hotkey. Keydown is closed once the
// registration ends, whether through Unregister or a failure.
type registration interface {
	Keydown() <-chan struct{}
	Unregister() error
}

// HotkeyManager owns the registered global hotkey.
type HotkeyManager struct {
	dispatch  loop.Dispatcher
	onTrigger func()
	register  func(Combination) (registration, error)

	mu      sync.Mutex
	current registration
	label   string
}

// NewHotkeyManager creates a manager with nothing registered. onTrigger runs
// through dispatch on every key-down.
func NewHotkeyManager(dispatch loop.Dispatcher, onTrigger func()) *HotkeyManager {
	return &HotkeyManager{dispatch: dispatch, onTrigger: onTrigger, register: registerHotkey}
}

// Apply replaces the registration to match the settings. Errors wrapping
// ErrHotkeyUnavailable mean the platform cannot provide global hotkeys.
func (manager *HotkeyManager) Apply(enabled bool, value string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !enabled {
		manager.stopLocked()
		return nil
	}

	combination, err := ParseHotkey(value)
	if err != nil {
		return err
	}
	if manager.current != nil && manager.label == combination.String() {
		return nil
	}
	manager.stopLocked()

	registered, err := manager.register(combination)
	if err != nil {
		return fmt.Errorf("register hotkey %s: %w", combination, err)
	}
	manager.current = registered
	manager.label = combination.String()
	go manager.listen(registered)

	logging.Infof("input: global hotkey enabled: %s", combination)
	return nil
}

// Active returns the registered combination, or "" when none.
func (manager *HotkeyManager) Active() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.label
}

// Stop unregisters the hotkey.
func (manager *HotkeyManager) Stop() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.stopLocked()
}

func (manager *HotkeyManager) stopLocked() {
	if manager.current == nil {
		return
	}
	current := manager.current
	manager.current = nil
	if err := current.Unregister(); err != nil {
		logging.Warnf("input: unregister hotkey %s: %v", manager.label, err)
	}
	logging.Infof("input: global hotkey disabled")
	manager.label = ""
}

func (manager *HotkeyManager) listen(registered registration) {
	for range registered.Keydown() {
		logging.Infof("input: global hotkey triggered")
		manager.dispatch(manager.onTrigger)
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.current == registered {
		logging.Warnf("input: global hotkey %s stopped unexpectedly", manager.label)
		manager.current = nil
		manager.label = ""
	}
}
