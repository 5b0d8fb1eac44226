//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// AgentName is the helper binary that owns the X11 hotkey grab.
const AgentName = "pomotray-hotkey"

func registerHotkey(combination Combination) (registration, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("%w: no X11 display", ErrHotkeyUnavailable)
	}
	path, err := agentPath()
	if err != nil {
		return nil, err
	}
	agent, err := startAgent(exec.Command(path, combination.String()))
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// agentPath prefers a helper installed next to the running executable.
func agentPath() (string, error) {
	if executable, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(executable), AgentName)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
			return sibling, nil
		}
	}
	path, err := exec.LookPath(AgentName)
	if err != nil {
		return "", fmt.Errorf("%w: %s not installed", ErrHotkeyUnavailable, AgentName)
	}
	return path, nil
}
