package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
	"github.com/pluqqy/inline-editor/pkg/editor"
	"github.com/pluqqy/inline-editor/pkg/files"
	"github.com/pluqqy/inline-editor/pkg/models"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new inline-editor project",
		Long: `Creates the .inline-editor folder in the current directory with a
settings file and a starter document. Existing files are left alone unless
--reset is given, which asks before replacing the starter document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Replace the starter document with the default content")

	return cmd
}

func runInit(cmd *cobra.Command, reset bool) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}
	cli.PrintInfo(out, "Initializing inline-editor project in %s...", cwd)

	if err := files.InitProjectStructure(); err != nil {
		return fmt.Errorf("failed to initialize project structure: %w", err)
	}
	cli.PrintSuccess(out, "Created %s folder structure", files.ProjectDir)

	if files.DocumentExists(files.SettingsPath()) {
		cli.PrintInfo(out, "Keeping existing %s", files.SettingsPath())
	} else {
		if err := files.WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
		cli.PrintSuccess(out, "Created %s", files.SettingsPath())
	}

	index := files.DocumentPath(files.DefaultDocument)
	write := !files.DocumentExists(index)
	switch {
	case write:
	case reset:
		ok, err := cli.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Overwrite %s?", index), false)
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !ok {
			cli.PrintWarning(out, "Kept existing %s", index)
		}
		write = ok
	default:
		cli.PrintInfo(out, "Keeping existing %s", index)
	}
	if write {
		if err := files.WriteDocument(index, editor.DefaultContent); err != nil {
			return err
		}
		cli.PrintSuccess(out, "Created %s", index)
	}

	cli.PrintInfo(out, "Run 'inline-editor' to start editing.")
	return nil
}
