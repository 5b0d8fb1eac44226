package tray

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pomotray/internal/core/timer"

	"fyne.io/fyne/v2"
)

const (
	iconSize    = 64
	arcWidth    = 9.6
	progressHex = "#2e7d32"
)

var stateColors = map[timer.State]string{
	timer.StateIdle:       "#9e9e9e",
	timer.StateWork:       "#e0483e",
	timer.StateShortBreak: "#4fb35c",
	timer.StateLongBreak:  "#3a86ff",
	timer.StatePaused:     "#f2a93b",
}

// IconText returns the label drawn inside the tray icon.
func IconText(state timer.State, remaining int) string {
	switch state {
	case timer.StateIdle:
		return "●"
	case timer.StatePaused:
		return "||"
	default:
		return strconv.Itoa(RoundedMinutes(remaining))
	}
}

// RoundedMinutes rounds seconds to the nearest minute, halves rounding up.
func RoundedMinutes(seconds int) int {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	if seconds%60 >= 30 {
		minutes++
	}
	return minutes
}

// RenderIcon draws the state-coloured disc with a progress arc and label.
func RenderIcon(state timer.State, remaining int, progress float64) []byte {
	fill, ok := stateColors[state]
	if !ok {
		fill = stateColors[timer.StateIdle]
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, iconSize, iconSize, iconSize, iconSize)
	fmt.Fprintf(&svg, `<circle cx="32" cy="32" r="30" fill="%s"/>`, fill)
	if arc := progressArc(progress); arc != "" {
		svg.WriteString(arc)
	}
	fmt.Fprintf(&svg,
		`<text x="32" y="32" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-weight="bold" font-size="24" fill="#ffffff">%s</text>`,
		IconText(state, remaining))
	svg.WriteString(`</svg>`)
	return []byte(svg.String())
}

func progressArc(progress float64) string {
	if progress <= 0 {
		return ""
	}
	radius := (iconSize - arcWidth) / 2
	if progress >= 1 {
		return fmt.Sprintf(`<circle cx="32" cy="32" r="%.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`, radius, progressHex, arcWidth)
	}

	// Clockwise from twelve o'clock.
	angle := 2 * math.Pi * progress
	endX := 32 + radius*math.Sin(angle)
	endY := 32 - radius*math.Cos(angle)
	largeArc := 0
	if progress > 0.5 {
		largeArc = 1
	}
	return fmt.Sprintf(
		`<path d="M 32 %.2f A %.2f %.2f 0 %d 1 %.2f %.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`,
		32-radius, radius, radius, largeArc, endX, endY, progressHex, arcWidth)
}

// iconCache avoids rebuilding the resource when nothing visible changed.
type iconCache struct {
	key      string
	resource fyne.Resource
}

func (cache *iconCache) get(state timer.State, remaining int, progress float64) (fyne.Resource, bool) {
	key := fmt.Sprintf("%s/%s/%d", state, IconText(state, remaining), int(progress*100))
	if cache.resource != nil && cache.key == key {
		return cache.resource, false
	}
	cache.key = key
	cache.resource = fyne.NewStaticResource("pomotray-"+strings.ReplaceAll(key, "/", "-")+".svg", RenderIcon(state, remaining, progress))
	return cache.resource, true
}
