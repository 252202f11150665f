package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// editOpts holds the flags for the edit command.
type editOpts struct {
	columns []string
	rows    []string
	filters []string
	catalog []string
}

// editCommand creates the edit command for the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Arrange dimensions interactively in the terminal",
		Long: `Edit opens a full-screen editor with a sidebar of available dimensions and the
columns, rows and filters axes. Drag chips with the mouse to place or reorder
them, right-click a chip to remove it, press esc to cancel a drag and q to quit.

The final layout is printed on exit.`,
		Example: `  vizlayout edit --catalog region,product,sales --columns region
  vizlayout edit --rows year,quarter --filters country`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.columns, "columns", nil, "dimensions on the columns axis")
	cmd.Flags().StringSliceVar(&opts.rows, "rows", nil, "dimensions on the rows axis")
	cmd.Flags().StringSliceVar(&opts.filters, "filters", nil, "dimensions on the filters axis")
	cmd.Flags().StringSliceVar(&opts.catalog, "catalog", nil, "additional dimensions offered in the sidebar")

	return cmd
}

// runEdit runs the editor until the user quits.
func (c *CLI) runEdit(cmd *cobra.Command, opts editOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	initial, err := initialLayout(opts.columns, opts.rows, opts.filters)
	if err != nil {
		return err
	}
	catalog := mergeCatalog(append(append([]string(nil), c.Config.Catalog...), opts.catalog...), initial)
	if len(catalog) == 0 {
		return fmt.Errorf("no dimensions to edit: pass --catalog or set catalog in %s", c.configPath)
	}

	logger.Debug("starting editor", "dimensions", len(catalog), "layout", initial)

	// The editor owns the terminal; failures are shown in its status line.
	quiet := newLogger(io.Discard, LogError)
	store, err := layout.NewStore(initial, quiet)
	if err != nil {
		return err
	}
	ctrl := dnd.NewController(store, dnd.NewDetector(dnd.WithPadding(c.Config.Drag.Padding)), quiet)

	p := tea.NewProgram(NewEditorModel(ctx, store, ctrl, catalog),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	fwd := newLayoutForwarder()
	unsubscribe := store.Subscribe(fwd.publish)
	defer unsubscribe()

	fwdCtx, stop := context.WithCancel(ctx)
	defer stop()
	go fwd.run(fwdCtx, p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	w := cmd.OutOrStdout()
	printLayout(w, store.Layout())
	return nil
}
