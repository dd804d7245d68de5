package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
	"github.com/pluqqy/inline-editor/pkg/surface"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	var (
		width  int
		plain  bool
		source bool
	)

	cmd := &cobra.Command{
		Use:   "show <document|->",
		Short: "Print a document's visual view",
		Long: `Render a document the way the editor's visual mode shows it, without
starting the interactive UI. Math notation is typeset.

Examples:
  inline-editor show notes
  inline-editor show notes --width 60
  inline-editor show notes --source`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("width") {
				return cli.ValidateWidth(width)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := cli.ReadInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			codec := newCodec(cmd)
			if source {
				_, err := fmt.Fprintln(out, codec.Collapse(content))
				return err
			}

			settings := cli.NewCommandContext().LoadSettingsWithDefault()
			if width == 0 {
				width = settings.Editor.WrapWidth
			}

			dom := surface.NewDOM()
			dom.SetHTML(codec.Expand(codec.Collapse(content)))
			r := surface.Renderer{
				Width: width,
				Theme: settings.ResolveTheme(),
				Plain: plain || cli.NoColor(),
			}.Render(dom)

			_, err = fmt.Fprintln(out, r.Text)
			return err
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width (default from settings)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without styling")
	cmd.Flags().BoolVar(&source, "source", false, "Print the collapsed source instead")

	return cmd
}
