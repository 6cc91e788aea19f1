// Package overlay composites a popup over the screen beneath it without
// clearing that screen. All slicing is ANSI-aware so styling survives on
// both layers.
package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the popup sits in the viewport.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "center"
	}
}

// ParsePosition maps "center", "top" and "bottom" to a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return Center, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	default:
		return Center, fmt.Errorf("invalid popup position %q (must be center, top or bottom)", s)
	}
}

// Config sizes the viewport and positions the popup in it.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the gap from the edge for Top and Bottom.
	PadY int
}

// Place draws fg over bg and returns the composited frame.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := Origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		var right string
		end := x + ansi.StringWidth(line)
		if end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}

		bgLines[row] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

// Origin returns the top-left cell of a fgWidth x fgHeight popup, clamped
// to the viewport.
func Origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
