package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/inline-editor/internal/cli"
	"github.com/pluqqy/inline-editor/internal/logging"
	"github.com/pluqqy/inline-editor/pkg/files"
	"github.com/pluqqy/inline-editor/pkg/models"
	"github.com/pluqqy/inline-editor/pkg/tui"
)

// GlobalOptions holds the persistent flags shared by every command
type GlobalOptions struct {
	Theme    string
	LogLevel string
	LogFile  string
	Quiet    bool
	NoColor  bool
	Yes      bool
}

// runProgram starts the terminal UI. Tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCommand builds the inline-editor command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "inline-editor [document]",
		Short: "Terminal editor for HTML documents with math notation",
		Long: `inline-editor edits an HTML document in two modes: a visual view that
renders the markup, and a source view that shows the raw HTML.

Math written as $...$ (inline) or $$...$$ (block) is typeset in the visual
view and stored back as plain notation, so saved documents stay readable.

The document argument is either a path or a name inside the project's
documents directory. Without one, the project's index.html is opened.
Paths outside the project can be edited without running init.

Examples:
  # Edit the default document
  inline-editor

  # Edit a named document with the dark theme
  inline-editor notes --theme dark

  # Edit a file anywhere on disk, logging to a file
  inline-editor ./draft.html --log-file editor.log --log-level debug`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetGlobalFlags(opts.Quiet, opts.NoColor, opts.Yes)
			if opts.Theme != "" {
				if err := cli.ValidateThemeName(opts.Theme); err != nil {
					return err
				}
			}
			if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Theme, "theme", "", "Theme to use (light, dark, blue, warm)")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFile, "log-file", "", "Append logs to this file")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "Answer yes to confirmation prompts")

	cmd.AddCommand(
		NewInitCommand(),
		NewVersionCommand(version),
		NewExpandCommand(),
		NewCollapseCommand(),
		NewClipboardCommand(),
		NewThemesCommand(),
		NewShowCommand(),
	)

	return cmd
}

func runEditor(cmd *cobra.Command, opts *GlobalOptions, args []string) error {
	var path string
	if len(args) == 1 {
		resolved, err := cli.ResolveDocument(args[0])
		if err != nil {
			return err
		}
		path = resolved
	}

	ctx := cli.NewCommandContext()
	if path == "" || inProject(path) {
		if err := ctx.ValidateProject(); err != nil {
			return err
		}
	}

	logger, closer, err := opts.logger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	app, err := tui.NewApp(tui.AppOptions{
		Path:     path,
		Settings: opts.settings(ctx),
		Plain:    opts.NoColor,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting editor", "path", app.Path())
	if err := runProgram(app); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

// inProject reports whether path lies under the project directory
func inProject(path string) bool {
	root, err := filepath.Abs(files.ProjectDir)
	if err != nil {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// settings loads the project settings and applies flag overrides
func (o *GlobalOptions) settings(ctx *cli.CommandContext) *models.Settings {
	settings := ctx.LoadSettingsWithDefault()
	if o.Theme != "" {
		if theme, err := models.LookupTheme(o.Theme); err == nil {
			settings.UI.Theme = theme.Name
		}
	}
	return settings
}

// logger returns a file logger when --log-file is set. The UI owns the
// terminal, so there is no stderr fallback.
func (o *GlobalOptions) logger() (*slog.Logger, io.Closer, error) {
	if o.LogFile == "" {
		return logging.NewNop(), nil, nil
	}
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFile(o.LogFile, level)
}
