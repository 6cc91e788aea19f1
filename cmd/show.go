package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/presentation"
	"github.com/zjrosen/poptart/internal/ui/popups"
)

var (
	showArgs   []string
	showFormat string
)

var showCmd = &cobra.Command{
	Use:   "show <popup>",
	Short: "Show one popup and print its result",
	Long: `Show a stock popup over an empty screen and print the value it was
dismissed with. Popup arguments are passed as repeated --arg key=value.

Popups: ` + strings.Join(popups.Names(), ", ") + `

Examples:
  poptart show greeting --arg name=Ada
  poptart show confirm --arg message="Delete everything?" --arg danger=true
  poptart show prompt --arg title=Branch --arg required=true -f json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: popups.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := presentation.ParseFormat(showFormat)
		if err != nil {
			return err
		}
		arguments, err := parseArguments(showArgs)
		if err != nil {
			return err
		}

		a, cleanup, err := newApp()
		if err != nil {
			return err
		}
		defer cleanup()

		zone.NewGlobal()
		result, err := a.RunOne(cmd.Context(), args[0], arguments, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if errors.Is(err, popup.ErrCanceled) {
			return fmt.Errorf("%s was cancelled", args[0])
		}
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), format).FormatResult(args[0], result)
	},
}

// parseArguments turns key=value pairs into popup arguments. Values stay
// strings; view-models coerce them.
func parseArguments(pairs []string) (popup.Arguments, error) {
	args := make(popup.Arguments, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q (want key=value)", pair)
		}
		args[key] = value
	}
	return args, nil
}

func init() {
	showCmd.Flags().StringArrayVarP(&showArgs, "arg", "a", nil, "Popup argument as key=value (repeatable)")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(showCmd)
}
