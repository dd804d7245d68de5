package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
	"github.com/pluqqy/inline-editor/pkg/models"
)

// NewThemesCommand creates the themes command
func NewThemesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the built-in color themes",
		Long: `List the built-in themes in the order ctrl+t cycles through them.
The theme selected in settings is marked with *.

Examples:
  inline-editor themes
  inline-editor themes --format json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			themes := models.BuiltinThemes()
			out := cmd.OutOrStdout()

			if format != string(cli.FormatText) {
				return cli.OutputResults(out, format, themes)
			}

			current := cli.NewCommandContext().LoadSettingsWithDefault().UI.Theme
			table := cli.NewTableFormatter(out)
			table.Header("NAME", "BACKGROUND", "FOREGROUND", "BORDER", "APP BACKGROUND")
			for _, t := range themes {
				name := t.Name
				if name == current {
					name += " *"
				}
				table.Row(name, t.Background, t.Foreground, t.Border, t.AppBackground)
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	return cmd
}
