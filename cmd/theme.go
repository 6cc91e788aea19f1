package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/poptart/internal/config"
	"github.com/zjrosen/poptart/internal/ui/styles"
)

var themeSetCmd = &cobra.Command{
	Use:   "theme:set <preset>",
	Short: "Switch the popup theme preset",
	Long: `Write a theme preset to the config file. Color overrides already in the
file are kept. A running poptart picks the change up immediately.

Presets: default, dracula, nord`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset := args[0]
		if _, ok := styles.Presets[preset]; !ok {
			return fmt.Errorf("unknown preset %q (available: %v)", preset, presetNames())
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			path = localConfigPath
		}

		theme := cfg.Theme
		theme.Preset = preset
		if err := config.SaveTheme(path, theme); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "theme preset set to %s in %s\n", preset, path)
		return err
	},
}

func presetNames() []string {
	names := make([]string, 0, len(styles.Presets))
	for name := range styles.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(themeSetCmd)
}
