package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vizlayout/internal/config"
	"github.com/matzehuels/vizlayout/pkg/buildinfo"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "vizlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "vizlayout arranges dimensions on visualization axes by drag and drop",
		Long:              `vizlayout is a drag-and-drop layout engine for visualization authoring. It replays recorded gestures, edits layouts interactively in the terminal, and serves the engine to browser hosts over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/vizlayout/config.toml)")

	root.AddCommand(c.replayCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	path := c.configPath
	if path == "" {
		path, _ = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.configPath = path

	level, _ := cfg.Level()
	c.SetLogLevel(level)
	c.Logger.Debug("loaded config", "path", path)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// initialLayout builds the starting layout from axis flags.
func initialLayout(columns, rows, filters []string) (layout.Layout, error) {
	l := layout.Layout{Columns: columns, Rows: rows, Filters: filters}.Clone()
	if err := l.Validate(); err != nil {
		return layout.Layout{}, err
	}
	return l, nil
}

// mergeCatalog returns catalog followed by every placed dimension it lacks.
func mergeCatalog(catalog []string, l layout.Layout) []string {
	out := append([]string(nil), catalog...)
	seen := make(map[string]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, a := range layout.Axes {
		for _, id := range l.Dimensions(a) {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
