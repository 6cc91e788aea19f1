package styles

import (
	"fmt"
	"maps"
	"regexp"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu sync.RWMutex

	TextPrimaryColor lipgloss.TerminalColor = lipgloss.Color("#CCCCCC")
	TextMutedColor   lipgloss.TerminalColor = lipgloss.Color("#696969")
	PopupTitleColor  lipgloss.TerminalColor = lipgloss.Color("#C9C9C9")
	PopupBorderColor lipgloss.TerminalColor = lipgloss.Color("#8C8C8C")
	StatusErrorColor lipgloss.TerminalColor = lipgloss.Color("#FF8787")

	TitleStyle                  lipgloss.Style
	BodyStyle                   lipgloss.Style
	HintStyle                   lipgloss.Style
	ErrorStyle                  lipgloss.Style
	BoxStyle                    lipgloss.Style
	PrimaryButtonStyle          lipgloss.Style
	PrimaryButtonFocusedStyle   lipgloss.Style
	SecondaryButtonStyle        lipgloss.Style
	SecondaryButtonFocusedStyle lipgloss.Style
	DangerButtonStyle           lipgloss.Style
	DangerButtonFocusedStyle    lipgloss.Style
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func init() {
	build(DefaultPreset.Colors)
}

// ApplyTheme starts from the default palette, layers preset on top, then
// the per-token overrides, and rebuilds every style.
func ApplyTheme(preset string, overrides map[string]string) error {
	colors := maps.Clone(DefaultPreset.Colors)
	if preset != "" {
		p, ok := Presets[preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", preset)
		}
		maps.Copy(colors, p.Colors)
	}
	for key, value := range overrides {
		token := ColorToken(key)
		if _, ok := DefaultPreset.Colors[token]; !ok {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !hexColor.MatchString(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	mu.Lock()
	defer mu.Unlock()
	build(colors)
	return nil
}

// build must run with mu held, or from init.
func build(colors map[ColorToken]string) {
	c := func(token ColorToken) lipgloss.Color { return lipgloss.Color(colors[token]) }

	TextPrimaryColor = c(TokenTextPrimary)
	TextMutedColor = c(TokenTextMuted)
	PopupTitleColor = c(TokenPopupTitle)
	PopupBorderColor = c(TokenPopupBorder)
	StatusErrorColor = c(TokenStatusError)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PopupTitleColor).PaddingLeft(1)
	BodyStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(PopupBorderColor)

	button := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(c(TokenButtonText))
	focused := func(s lipgloss.Style) lipgloss.Style { return s.Underline(true).UnderlineSpaces(true) }

	PrimaryButtonStyle = button.Background(c(TokenButtonPrimaryBg))
	PrimaryButtonFocusedStyle = focused(button.Background(c(TokenButtonPrimaryFocus)))
	SecondaryButtonStyle = button.Background(c(TokenButtonSecondaryBg))
	SecondaryButtonFocusedStyle = focused(button.Background(c(TokenButtonSecondaryFocus)))
	DangerButtonStyle = button.Background(c(TokenButtonDangerBg))
	DangerButtonFocusedStyle = focused(button.Background(c(TokenButtonDangerFocus)))
}

// RLock guards reads of the style variables against a concurrent ApplyTheme.
func RLock() func() {
	mu.RLock()
	return mu.RUnlock
}
