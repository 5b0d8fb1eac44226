// Package keymap translates key names into golang.design/x/hotkey codes.
//
// On Linux the hotkey package opens the X11 display in its init and panics
// without one, so only the pomotray-hotkey helper imports this package there.
package keymap

import (
	"errors"
	"fmt"

	"golang.design/x/hotkey"
)

// ErrUnmapped is returned for names with no code on this platform.
var ErrUnmapped = errors.New("key not available on this platform")

// New builds an unregistered hotkey from canonical modifier and key names.
func New(modifiers []string, key string) (*hotkey.Hotkey, error) {
	codes := make([]hotkey.Modifier, 0, len(modifiers))
	for _, name := range modifiers {
		code, ok := modifierCodes[name]
		if !ok {
			return nil, fmt.Errorf("%w: modifier %q", ErrUnmapped, name)
		}
		codes = append(codes, code)
	}
	code, ok := keyCodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrUnmapped, key)
	}
	return hotkey.New(codes, code), nil
}
