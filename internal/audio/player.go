package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoPlayer is returned when no supported audio player is installed.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays a sound file, blocking until it ends or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, path string, volume float64) error
}

// CommandPlayer plays files through the first available command line player.
type CommandPlayer struct {
	name string
	path string
}

var playerCandidates = []string{"paplay", "aplay", "ffplay", "afplay", "powershell"}

// NewCommandPlayer looks up a player on PATH.
func NewCommandPlayer() (*CommandPlayer, error) {
	return findPlayer(exec.LookPath)
}

func findPlayer(lookPath func(string) (string, error)) (*CommandPlayer, error) {
	var tried []string
	for _, candidate := range playerCandidates {
		path, err := lookPath(candidate)
		if err == nil {
			return &CommandPlayer{name: candidate, path: path}, nil
		}
		tried = append(tried, candidate)
	}
	return nil, fmt.Errorf("%w (tried %s)", ErrNoPlayer, strings.Join(tried, ", "))
}

// Name returns the player command in use.
func (player *CommandPlayer) Name() string {
	return player.name
}

// Play runs the player command.
func (player *CommandPlayer) Play(ctx context.Context, path string, volume float64) error {
	command := exec.CommandContext(ctx, player.path, playerArgs(player.name, path, volume)...)
	output, err := command.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", player.name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func playerArgs(name, path string, volume float64) []string {
	switch name {
	case "paplay":
		return []string{"--volume=" + strconv.Itoa(int(volume*65536)), path}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(int(volume * 100)), path}
	case "afplay":
		return []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64), path}
	case "powershell":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(path, "'", "''"))
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	default:
		return []string{path}
	}
}
