// Package replay runs recorded drag-and-drop scenarios against a layout.
//
// A [Scenario] starts from an initial layout and plays a list of gestures.
// Each gesture drags one dimension through a sequence of frames and ends in
// a drop or a cancel; a gesture may instead dispatch a command directly.
// Frames carry the dragged rectangle and, optionally, the measured targets.
// When no targets are given, the current layout is measured with
// [board.Measure] before the gesture starts.
//
// Scenarios are read from TOML, YAML or JSON files:
//
//	sc, err := replay.Load("reorder.toml")
//	res, err := replay.NewRunner(logger).Run(ctx, sc)
//	fmt.Println(res.Final)
//
// A [Runner] stops at the first invariant violation. Rejected commands are
// recorded in the gesture's [Outcome] and the run continues unless
// [Runner.Strict] is set.
package replay
