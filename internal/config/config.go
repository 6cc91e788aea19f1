// Package config provides configuration types and defaults for poptart.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/poptart/internal/log"
	"github.com/zjrosen/poptart/internal/tracing"
	"github.com/zjrosen/poptart/internal/ui/host"
	"github.com/zjrosen/poptart/internal/ui/markdown"
	"github.com/zjrosen/poptart/internal/ui/overlay"
	"github.com/zjrosen/poptart/internal/ui/popups"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

// Config holds all configuration options for poptart.
type Config struct {
	Popups        PopupsConfig  `mapstructure:"popups"`
	Theme         ThemeConfig   `mapstructure:"theme"`
	MarkdownStyle string        `mapstructure:"markdown_style"` // glamour style: auto, dark, light, notty, dracula
	Log           LogConfig     `mapstructure:"log"`
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// PopupsConfig controls popup placement and dismissal.
type PopupsConfig struct {
	Position        string `mapstructure:"position"`          // center (default), top or bottom
	MinWidth        int    `mapstructure:"min_width"`         // content width floor (default 40)
	DismissOnEscape bool   `mapstructure:"dismiss_on_escape"` // esc closes the top popup
	LightDismiss    bool   `mapstructure:"light_dismiss"`     // clicking outside closes the top popup
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in palette as the base: default, dracula or nord.
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Both nested YAML and quoted
	// dot notation work:
	//   colors:
	//     popup:
	//       border: "#FF0000"
	//     "text.primary": "#FFFFFF"
	Colors map[string]any `mapstructure:"colors"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"` // debug (default), info, warn or error
}

// TracingConfig controls OpenTelemetry export of show-request spans.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file (default), stdout or otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ApplyTheme pushes the theme into the shared popup styles.
func (t ThemeConfig) ApplyTheme() error {
	return styles.ApplyTheme(t.Preset, t.FlattenedColors())
}

// HostConfig converts the popups section for the UI host.
func (c Config) HostConfig() host.Config {
	pos, err := overlay.ParsePosition(c.Popups.Position)
	if err != nil {
		log.Warn(log.CatConfig, "invalid popup position, using center", "position", c.Popups.Position)
	}
	return host.Config{
		Position:        pos,
		PadY:            1,
		DismissOnEscape: c.Popups.DismissOnEscape,
		LightDismiss:    c.Popups.LightDismiss,
	}
}

// PopupOptions converts the config for the stock popups.
func (c Config) PopupOptions() popups.Options {
	return popups.Options{MinWidth: c.Popups.MinWidth, MarkdownStyle: c.MarkdownStyle}
}

// TracingConfig converts the tracing section for the tracing package.
// An enabled file exporter with no path writes under the config dir.
func (c Config) TracingConfig() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = c.Tracing.Enabled
	if c.Tracing.Exporter != "" {
		cfg.Exporter = c.Tracing.Exporter
	}
	cfg.FilePath = c.Tracing.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if c.Tracing.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = c.Tracing.OTLPEndpoint
	}
	if c.Tracing.SampleRate > 0 {
		cfg.SampleRate = c.Tracing.SampleRate
	}
	return cfg
}

// DefaultTracesFilePath returns ~/.config/poptart/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "poptart", "traces", "traces.jsonl")
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidatePopups(c.Popups); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if c.MarkdownStyle != "" && !markdown.ValidStyle(c.MarkdownStyle) {
		return fmt.Errorf("markdown_style must be one of %v, got %q", markdown.Styles, c.MarkdownStyle)
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

func ValidatePopups(p PopupsConfig) error {
	if _, err := overlay.ParsePosition(p.Position); err != nil {
		return fmt.Errorf("popups.position: %w", err)
	}
	if p.MinWidth < 0 {
		return fmt.Errorf("popups.min_width must not be negative, got %d", p.MinWidth)
	}
	return nil
}

func ValidateTheme(t ThemeConfig) error {
	if t.Preset != "" {
		if _, ok := styles.Presets[t.Preset]; !ok {
			return fmt.Errorf("theme.preset: unknown preset %q", t.Preset)
		}
	}
	known := make(map[styles.ColorToken]bool, len(styles.AllTokens))
	for _, token := range styles.AllTokens {
		known[token] = true
	}
	for key := range t.FlattenedColors() {
		if !known[styles.ColorToken(key)] {
			return fmt.Errorf("theme.colors: unknown color token %q", key)
		}
	}
	return nil
}

func ValidateLog(l LogConfig) error {
	if l.Level == "" {
		return nil
	}
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Popups: PopupsConfig{
			Position:        "center",
			MinWidth:        popups.DefaultMinWidth,
			DismissOnEscape: true,
			LightDismiss:    true,
		},
		MarkdownStyle: "auto",
		Log: LogConfig{
			Path:  "debug.log",
			Level: "debug",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Poptart Configuration

# Popup placement and dismissal
popups:
  position: center          # center, top or bottom
  min_width: 40             # content width floor
  dismiss_on_escape: true   # esc closes the top popup
  light_dismiss: true       # clicking outside closes the top popup

# Theme configuration
theme:
  # preset: dracula         # default, dracula or nord
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   popup.border: "#BD93F9"
  #   popup.title: "#FFFFFF"
  #   button.primary.focus: "#3498DB"

# Markdown style for notice popups: auto, dark, light, notty or dracula
markdown_style: auto

# Debug logging (also enabled by --debug or POPTART_DEBUG=1)
log:
  debug: false
  path: debug.log
  level: debug              # debug, info, warn or error

# Tracing of show-requests
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/poptart/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
