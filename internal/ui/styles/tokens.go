// Package styles holds the Lip Gloss styles for popup chrome. Colors are
// themeable by token through ApplyTheme.
package styles

// ColorToken is a themeable color key, as written in config.
type ColorToken string

const (
	TokenTextPrimary          ColorToken = "text.primary"
	TokenTextMuted            ColorToken = "text.muted"
	TokenPopupTitle           ColorToken = "popup.title"
	TokenPopupBorder          ColorToken = "popup.border"
	TokenButtonText           ColorToken = "button.text"
	TokenButtonPrimaryBg      ColorToken = "button.primary.bg"
	TokenButtonPrimaryFocus   ColorToken = "button.primary.focus"
	TokenButtonSecondaryBg    ColorToken = "button.secondary.bg"
	TokenButtonSecondaryFocus ColorToken = "button.secondary.focus"
	TokenButtonDangerBg       ColorToken = "button.danger.bg"
	TokenButtonDangerFocus    ColorToken = "button.danger.focus"
	TokenStatusError          ColorToken = "status.error"
)

// AllTokens lists every token ApplyTheme accepts.
var AllTokens = []ColorToken{
	TokenTextPrimary,
	TokenTextMuted,
	TokenPopupTitle,
	TokenPopupBorder,
	TokenButtonText,
	TokenButtonPrimaryBg,
	TokenButtonPrimaryFocus,
	TokenButtonSecondaryBg,
	TokenButtonSecondaryFocus,
	TokenButtonDangerBg,
	TokenButtonDangerFocus,
	TokenStatusError,
}

// Preset is a named palette.
type Preset struct {
	Name   string
	Colors map[ColorToken]string
}

var DefaultPreset = Preset{
	Name: "default",
	Colors: map[ColorToken]string{
		TokenTextPrimary:          "#CCCCCC",
		TokenTextMuted:            "#696969",
		TokenPopupTitle:           "#C9C9C9",
		TokenPopupBorder:          "#8C8C8C",
		TokenButtonText:           "#FFFFFF",
		TokenButtonPrimaryBg:      "#1A5276",
		TokenButtonPrimaryFocus:   "#3498DB",
		TokenButtonSecondaryBg:    "#2D3436",
		TokenButtonSecondaryFocus: "#636E72",
		TokenButtonDangerBg:       "#922B21",
		TokenButtonDangerFocus:    "#E74C3C",
		TokenStatusError:          "#FF8787",
	},
}

// Presets are the built-in palettes by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": {
		Name: "dracula",
		Colors: map[ColorToken]string{
			TokenTextPrimary:        "#F8F8F2",
			TokenTextMuted:          "#6272A4",
			TokenPopupTitle:         "#BD93F9",
			TokenPopupBorder:        "#BD93F9",
			TokenButtonPrimaryBg:    "#44475A",
			TokenButtonPrimaryFocus: "#BD93F9",
			TokenButtonDangerFocus:  "#FF5555",
			TokenStatusError:        "#FF5555",
		},
	},
	"nord": {
		Name: "nord",
		Colors: map[ColorToken]string{
			TokenTextPrimary:        "#ECEFF4",
			TokenTextMuted:          "#4C566A",
			TokenPopupTitle:         "#88C0D0",
			TokenPopupBorder:        "#81A1C1",
			TokenButtonPrimaryBg:    "#3B4252",
			TokenButtonPrimaryFocus: "#5E81AC",
			TokenButtonDangerFocus:  "#BF616A",
			TokenStatusError:        "#BF616A",
		},
	},
}
