// Package popups holds the stock popups and their view-models.
//
// Each view renders whatever its bound view-model holds at View time, so a
// view-model may be mutated after the popup is shown.
package popups

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/poptart/internal/ui/styles"
)

// DefaultMinWidth is the content width used when none is configured.
const DefaultMinWidth = 40

// MaxTitleWidth caps title cells; longer titles end in an ellipsis.
const MaxTitleWidth = 72

// frame draws title, divider and body inside the popup box.
func frame(title, body string, minWidth int) string {
	unlock := styles.RLock()
	defer unlock()

	title = runewidth.Truncate(title, MaxTitleWidth, "…")
	contentWidth := max(minWidth, DefaultMinWidth, lipgloss.Width(title))
	boxWidth := contentWidth + 2

	divider := lipgloss.NewStyle().
		Foreground(styles.PopupBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(body))

	return styles.BoxStyle.Width(boxWidth).Render(b.String())
}

// wrap word-wraps plain text to the frame's content width.
func wrap(text string, minWidth int) string {
	return wordwrap.String(text, max(minWidth, DefaultMinWidth))
}

type buttonKind int

const (
	buttonPrimary buttonKind = iota
	buttonSecondary
	buttonDanger
)

func button(label string, kind buttonKind, focused bool) string {
	unlock := styles.RLock()
	defer unlock()

	var s lipgloss.Style
	switch kind {
	case buttonDanger:
		s = styles.DangerButtonStyle
		if focused {
			s = styles.DangerButtonFocusedStyle
		}
	case buttonSecondary:
		s = styles.SecondaryButtonStyle
		if focused {
			s = styles.SecondaryButtonFocusedStyle
		}
	default:
		s = styles.PrimaryButtonStyle
		if focused {
			s = styles.PrimaryButtonFocusedStyle
		}
	}
	return s.Render(label)
}

func hint(text string) string {
	unlock := styles.RLock()
	defer unlock()
	return styles.HintStyle.Render(text)
}
