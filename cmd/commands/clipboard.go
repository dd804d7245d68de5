package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
)

var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	var rendered bool

	cmd := &cobra.Command{
		Use:   "clipboard <document>",
		Short: "Copy a document to the clipboard",
		Long: `Copy a document's HTML to the system clipboard.

The copy holds math as $...$ notation, the same form the editor saves.
With --rendered the math is expanded into rendered markup instead.

Examples:
  inline-editor clipboard notes
  inline-editor clipboard ./draft.html --rendered`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveDocument(args[0])
			if err != nil {
				return err
			}
			return cli.ValidateFilePath(path)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			content, err := cli.ReadInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			codec := newCodec(cmd)
			content = codec.Collapse(content)
			if rendered {
				content = codec.Expand(content)
			}

			if err := writeClipboard(content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			cli.PrintSuccess(out, "Document '%s' copied to clipboard", args[0])
			cli.PrintInfo(out, "Preview: %s", cli.TruncateString(cli.SingleLine(content), 80))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rendered, "rendered", false, "Copy with math expanded into rendered markup")

	return cmd
}
