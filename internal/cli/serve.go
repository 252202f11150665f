package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/vizlayout/internal/server"
	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/layout"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 5 * time.Second

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr    string
	logFile string
	columns []string
	rows    []string
	filters []string
	catalog []string
}

// serveCommand creates the serve command for the HTTP bridge.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve exposes one in-memory layout and the drag-and-drop engine to browser
hosts over HTTP:

  GET  /layout          current layout
  POST /commands        dispatch an add, move or remove command
  GET  /board           measured board with its drop targets
  POST /drag/collision  pick the drop target for a dragged rectangle
  POST /drag/drop       resolve a drop into a command and apply it
  POST /drag/start, /drag/over, /drag/end, /drag/cancel
                        run a gesture on the server

Invariant violations are answered with 409 and the error code.`,
		Example: `  vizlayout serve --addr :7420 --columns region --catalog region,product,sales
  vizlayout serve --log-file /var/log/vizlayout.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("log-file") {
				opts.logFile = c.Config.Serve.LogFile
			}
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, 127.0.0.1:7420)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "also write logs to this file, rotated by size")
	cmd.Flags().StringSliceVar(&opts.columns, "columns", nil, "initial dimensions on the columns axis")
	cmd.Flags().StringSliceVar(&opts.rows, "rows", nil, "initial dimensions on the rows axis")
	cmd.Flags().StringSliceVar(&opts.filters, "filters", nil, "initial dimensions on the filters axis")
	cmd.Flags().StringSliceVar(&opts.catalog, "catalog", nil, "additional dimensions offered in the sidebar")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.logFile,
			MaxSize:    c.Config.Serve.LogMaxSizeMB,
			MaxBackups: c.Config.Serve.LogMaxBackups,
			MaxAge:     c.Config.Serve.LogMaxAgeDays,
			Compress:   true,
		}
		defer rotator.Close()
		logger = newLogger(io.MultiWriter(cmd.ErrOrStderr(), rotator), logger.GetLevel())
	}

	initial, err := initialLayout(opts.columns, opts.rows, opts.filters)
	if err != nil {
		return err
	}
	store, err := layout.NewStore(initial, logger)
	if err != nil {
		return err
	}
	catalog := mergeCatalog(append(append([]string(nil), c.Config.Catalog...), opts.catalog...), initial)

	srv := server.New(store, server.Options{
		Catalog: catalog,
		Padding: c.Config.Drag.Padding,
	}, logger)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(ln)
	}()

	w := cmd.OutOrStdout()
	printSuccess(w, "Serving layout on %s", StyleHighlight.Render("http://"+ln.Addr().String()))
	printInfo(w, "%d dimensions in catalog, drag padding %g", len(catalog), c.Config.Drag.Padding)
	if c.Config.Drag.Padding != dnd.DefaultPadding {
		printWarning(w, "padding differs from the default of %d", dnd.DefaultPadding)
	}
	logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
