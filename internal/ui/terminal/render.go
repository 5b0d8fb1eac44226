// Package terminal runs the timer in a terminal without the desktop shell.
package terminal

import (
	"fmt"
	"strings"

	"pomotray/internal/core/timer"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth = 60
	minWidth     = 24
	helpLine     = "s start  p pause  r reset  x skip  e +5 min  q quit"
)

var (
	stateColors = map[timer.State]lipgloss.Color{
		timer.StateIdle:       lipgloss.Color("244"),
		timer.StateWork:       lipgloss.Color("1"),
		timer.StateShortBreak: lipgloss.Color("2"),
		timer.StateLongBreak:  lipgloss.Color("4"),
		timer.StatePaused:     lipgloss.Color("3"),
	}

	clockStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tipStyle   = lipgloss.NewStyle().Italic(true)
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Snapshot is everything the terminal view shows.
type Snapshot struct {
	State    timer.State
	Previous timer.State
	Clock    string
	Session  int
	Progress float64
	Tip      string
	Today    int
}

// SnapshotOf captures the timer for rendering.
func SnapshotOf(source *timer.Timer) Snapshot {
	return Snapshot{
		State:    source.State(),
		Previous: source.PreviousState(),
		Clock:    source.TimeDisplay(),
		Session:  source.Session(),
		Progress: source.Progress(),
	}
}

// Render draws snapshot inside a frame at most width columns wide.
func Render(snapshot Snapshot, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	inner := width - frameStyle.GetHorizontalFrameSize()

	color := stateColors[snapshot.State]
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(stateTitle(snapshot))

	lines := []string{
		title,
		clockStyle.Render(snapshot.Clock),
		lipgloss.NewStyle().Foreground(color).Render(progressBar(snapshot.Progress, inner)),
		mutedStyle.Render(fmt.Sprintf("Session %d  |  Today: %d", snapshot.Session, snapshot.Today)),
	}
	if snapshot.Tip != "" && breakVisible(snapshot) {
		lines = append(lines, "", tipStyle.Render(wordwrap.String(snapshot.Tip, inner)))
	}
	lines = append(lines, "", mutedStyle.Render(wordwrap.String(helpLine, inner)))

	return frameStyle.BorderForeground(color).Width(inner + frameStyle.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func stateTitle(snapshot Snapshot) string {
	if snapshot.State == timer.StatePaused && snapshot.Previous != timer.StateIdle {
		return snapshot.Previous.Label() + " - Paused"
	}
	return snapshot.State.Label()
}

func breakVisible(snapshot Snapshot) bool {
	if snapshot.State == timer.StatePaused {
		return snapshot.Previous.Break()
	}
	return snapshot.State.Break()
}

func progressBar(progress float64, width int) string {
	if width < 2 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
