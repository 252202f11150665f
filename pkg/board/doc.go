// Package board measures an authoring surface: a sidebar of unplaced
// dimensions and the three axes, each holding its chips left to right and
// wrapping onto new lines when the row is full.
//
// The measured [Board] is what a host would report from its rendered
// elements. [Board.Targets] turns it into the droppable targets consumed by
// [dnd.Detector], with every chip split into a "before" and an "after"
// half:
//
//	b := board.Measure(l, catalog, board.DefaultMetrics())
//	over, ok := detector.Detect(active, b.Targets())
//
// Units are arbitrary; [CellMetrics] sizes everything in whole terminal
// cells so that a board can be drawn on a character grid.
package board
