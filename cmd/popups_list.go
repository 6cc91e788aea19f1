package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/poptart/internal/presentation"
)

var listFormat string

var popupsListCmd = &cobra.Command{
	Use:   "popups:list",
	Short: "List registered popups",
	Long: `List every registered view-model type and the popup view it resolves to.

Examples:
  # Table of registered popups
  poptart popups:list

  # Machine readable output
  poptart popups:list --format json | jq '.[].view_model'
  poptart popups:list -f yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := presentation.ParseFormat(listFormat)
		if err != nil {
			return err
		}

		a, cleanup, err := newApp()
		if err != nil {
			return err
		}
		defer cleanup()

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), format)
		return formatter.FormatRegistrations(presentation.FromRegistry(a.Registry()))
	},
}

func init() {
	popupsListCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(popupsListCmd)
}
