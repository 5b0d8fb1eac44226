//go:build !linux

package input

import (
	"fmt"
	"sync"

	"pomotray/internal/input/keymap"

	"golang.design/x/hotkey"
)

type nativeRegistration struct {
	hotkey   *hotkey.Hotkey
	keydown  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func registerHotkey(combination Combination) (registration, error) {
	registered, err := keymap.New(combination.Modifiers, combination.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHotkey, err)
	}
	if err := registered.Register(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHotkeyUnavailable, err)
	}
	native := &nativeRegistration{
		hotkey:  registered,
		keydown: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go native.forward()
	return native, nil
}

func (native *nativeRegistration) forward() {
	defer close(native.keydown)
	source := native.hotkey.Keydown()
	for {
		select {
		case <-native.done:
			return
		case _, ok := <-source:
			if !ok {
				return
			}
			select {
			case native.keydown <- struct{}{}:
			default:
			}
		}
	}
}

func (native *nativeRegistration) Keydown() <-chan struct{} {
	return native.keydown
}

func (native *nativeRegistration) Unregister() error {
	var err error
	native.stopOnce.Do(func() {
		close(native.done)
		err = native.hotkey.Unregister()
	})
	return err
}
