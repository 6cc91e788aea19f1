package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/poptart/internal/ui/overlay"
)

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	defaults := Defaults()
	require.Equal(t, defaults.Popups, cfg.Popups)
	require.Equal(t, defaults.MarkdownStyle, cfg.MarkdownStyle)
	require.Equal(t, defaults.Log, cfg.Log)
	require.NoError(t, cfg.Validate())
}

func TestValidatePopups(t *testing.T) {
	require.NoError(t, ValidatePopups(PopupsConfig{Position: "top"}))
	require.NoError(t, ValidatePopups(PopupsConfig{}), "empty position means center")

	err := ValidatePopups(PopupsConfig{Position: "left"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "popups.position")

	err = ValidatePopups(PopupsConfig{MinWidth: -1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "min_width")
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{Preset: "nord"}))
	require.NoError(t, ValidateTheme(ThemeConfig{Colors: map[string]any{
		"popup": map[string]any{"border": "#FFFFFF"},
	}}))

	err := ValidateTheme(ThemeConfig{Preset: "solarized"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown preset")

	err = ValidateTheme(ThemeConfig{Colors: map[string]any{"popup.shadow": "#000000"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "popup.shadow")
}

func TestValidate_MarkdownStyle(t *testing.T) {
	cfg := Defaults()
	cfg.MarkdownStyle = "neon"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "markdown_style")
}

func TestValidateLog(t *testing.T) {
	require.NoError(t, ValidateLog(LogConfig{}))
	require.NoError(t, ValidateLog(LogConfig{Level: "warn"}))
	require.Error(t, ValidateLog(LogConfig{Level: "loud"}))
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr string
	}{
		{name: "defaults", cfg: Defaults().Tracing},
		{name: "sample rate too high", cfg: TracingConfig{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "negative sample rate", cfg: TracingConfig{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "unknown exporter", cfg: TracingConfig{Exporter: "jaeger"}, wantErr: "tracing.exporter"},
		{name: "otlp without endpoint", cfg: TracingConfig{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "otlp disabled without endpoint", cfg: TracingConfig{Exporter: "otlp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"popup": map[string]any{
			"border": "#111111",
			"title":  "#222222",
		},
		"text.primary": "#333333",
		"button": map[any]any{
			"primary": map[string]any{"bg": "#444444"},
		},
	}}

	require.Equal(t, map[string]string{
		"popup.border":      "#111111",
		"popup.title":       "#222222",
		"text.primary":      "#333333",
		"button.primary.bg": "#444444",
	}, theme.FlattenedColors())
}

func TestHostConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Popups.Position = "bottom"
	cfg.Popups.LightDismiss = false

	hc := cfg.HostConfig()
	require.Equal(t, overlay.Bottom, hc.Position)
	require.True(t, hc.DismissOnEscape)
	require.False(t, hc.LightDismiss)
}

func TestTracingConfig_Conversion(t *testing.T) {
	cfg := Defaults()
	cfg.Tracing.Enabled = true
	cfg.Tracing.FilePath = "/tmp/traces.jsonl"
	cfg.Tracing.SampleRate = 0.5

	tc := cfg.TracingConfig()
	require.True(t, tc.Enabled)
	require.Equal(t, "file", tc.Exporter)
	require.Equal(t, "/tmp/traces.jsonl", tc.FilePath)
	require.Equal(t, 0.5, tc.SampleRate)
	require.Equal(t, "poptart", tc.ServiceName)
}

func TestPopupOptions(t *testing.T) {
	cfg := Defaults()
	cfg.MarkdownStyle = "light"
	opts := cfg.PopupOptions()
	require.Equal(t, 40, opts.MinWidth)
	require.Equal(t, "light", opts.MarkdownStyle)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
