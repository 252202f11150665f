package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vizlayout/pkg/errors"
	"github.com/matzehuels/vizlayout/pkg/replay"
)

// replayOpts holds the flags for the replay command.
type replayOpts struct {
	json    bool
	strict  bool
	padding float64
}

// replayCommand creates the replay command for playing scenario files.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay <scenario>...",
		Short: "Replay recorded drag gestures against a layout",
		Long: `Replay plays the gestures of one or more scenario files through the collision
detector, the drop resolver and the layout reducer, then prints each gesture's
target and command together with the final layout.

Scenario files may be TOML, YAML or JSON. A scenario with an expect section
fails when the final layout differs.`,
		Example: `  vizlayout replay session.toml
  vizlayout replay --strict --json testdata/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("padding") {
				opts.padding = c.Config.Drag.Padding
			}
			return c.runReplay(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "stop at the first rejected command")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "vertical collision padding for scenarios without one (default from config)")

	return cmd
}

// runReplay loads and plays each scenario in turn.
func (c *CLI) runReplay(cmd *cobra.Command, paths []string, opts replayOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()

	runner := replay.NewRunner(logger)
	runner.Strict = opts.strict

	var results []*replay.Result
	var failed int
	for _, path := range paths {
		sc, err := replay.Load(path)
		if err != nil {
			return err
		}
		if sc.Padding == nil {
			p := opts.padding
			sc.Padding = &p
		}

		prog := newProgress(logger)
		res, err := runner.Run(ctx, sc)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			failed++
			if !opts.json {
				if res != nil {
					printReplay(w, res)
				}
				printError(w, "%s: %s", sc.Name, errors.UserMessage(err))
				fmt.Fprintln(w)
			}
			logger.Debug("replay failed", "scenario", sc.Name, "error", err)
			continue
		}
		prog.done("Replayed scenario",
			"scenario", sc.Name,
			"gestures", res.Stats.Gestures,
			"applied", res.Stats.Applied)

		if !opts.json {
			printReplay(w, res)
			printSuccess(w, "%s", sc.Name)
			fmt.Fprintln(w)
		}
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(paths))
	}
	if !opts.json && len(paths) == 1 {
		printNextStep(w, "Edit this layout interactively", "vizlayout edit")
	}
	return nil
}
