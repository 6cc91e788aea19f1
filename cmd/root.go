package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/poptart/internal/app"
	"github.com/zjrosen/poptart/internal/config"
	"github.com/zjrosen/poptart/internal/log"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply cannot land in a popup's text input.
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".poptart/config.yaml"

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "poptart",
	Short:   "Popups for Bubble Tea applications",
	Long:    `Poptart shows modal popups in terminal applications by naming a view-model type. Run without arguments for the interactive demo.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .poptart/config.yaml, then ~/.config/poptart/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug log (also POPTART_DEBUG=1)")
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .poptart/config.yaml (current directory)
		// 2. ~/.config/poptart/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "poptart"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setDefaults seeds v so keys missing from the file keep their defaults.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("popups.position", d.Popups.Position)
	v.SetDefault("popups.min_width", d.Popups.MinWidth)
	v.SetDefault("popups.dismiss_on_escape", d.Popups.DismissOnEscape)
	v.SetDefault("popups.light_dismiss", d.Popups.LightDismiss)
	v.SetDefault("markdown_style", d.MarkdownStyle)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// setupLogging starts the debug log when asked for by flag, env or config.
// The returned func closes it.
func setupLogging() (func(), error) {
	if !debug && !cfg.Log.Debug && !log.EnabledFromEnv() {
		return func() {}, nil
	}
	cleanup, err := log.Init(cfg.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			cleanup()
			return nil, err
		}
		log.SetMinLevel(level)
	}
	return cleanup, nil
}

// newApp validates the loaded config and builds the app.
func newApp() (*app.App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	closeLog, err := setupLogging()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
		closeLog()
	}
	return a, cleanup, nil
}

// watchConfig reloads the theme and host settings when the file changes.
func watchConfig(a *app.App) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug(log.CatConfig, "config file changed", "path", e.Name, "op", e.Op.String())
		var next config.Config
		if err := viper.Unmarshal(&next); err != nil {
			log.ErrorErr(log.CatConfig, "reloading config", err)
			return
		}
		if err := next.Validate(); err != nil {
			log.ErrorErr(log.CatConfig, "reloaded config is invalid", err)
			return
		}
		if err := a.Reload(next); err != nil {
			log.ErrorErr(log.CatConfig, "applying reloaded config", err)
		}
	})
	viper.WatchConfig()
}

func runApp(cmd *cobra.Command, _ []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	zone.NewGlobal()
	watchConfig(a)

	if err := a.Run(cmd.Context(), tea.WithAltScreen(), tea.WithMouseCellMotion()); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
