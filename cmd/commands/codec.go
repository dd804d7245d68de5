package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
	"github.com/pluqqy/inline-editor/internal/logging"
	"github.com/pluqqy/inline-editor/pkg/mathcodec"
)

// NewExpandCommand creates the expand command
func NewExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand [document|-]",
		Short: "Turn $...$ notation into rendered math markup",
		Long: `Reads HTML from a document or stdin and writes it to stdout with every
$...$ and $$...$$ span replaced by a rendered fragment that records its
original notation.

Examples:
  echo '<p>$x^2$</p>' | inline-editor expand
  inline-editor expand notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(cmd, args, newCodec(cmd).Expand)
		},
	}
}

// NewCollapseCommand creates the collapse command
func NewCollapseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse [document|-]",
		Short: "Turn rendered math markup back into $...$ notation",
		Long: `Reads HTML from a document or stdin and writes it to stdout with every
rendered math fragment replaced by the notation it was produced from.
Input without rendered math passes through unchanged.

Examples:
  inline-editor expand notes | inline-editor collapse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(cmd, args, newCodec(cmd).Collapse)
		},
	}
}

// newCodec logs to stderr at the --log-level given to the root command.
// Without that flag the codec stays silent.
func newCodec(cmd *cobra.Command) *mathcodec.Codec {
	logger := logging.NewNop()
	if name, err := cmd.Flags().GetString("log-level"); err == nil {
		if level, err := logging.ParseLevel(name); err == nil {
			logger = logging.New(level)
		}
	}
	return mathcodec.New(mathcodec.WithLogger(logger))
}

func transform(cmd *cobra.Command, args []string, fn func(string) string) error {
	input, err := cli.ReadInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), fn(input))
	return err
}
