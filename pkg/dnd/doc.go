// Package dnd turns drag gestures into layout commands.
//
// # Gesture model
//
// A gesture has one [Active] item (the dimension being dragged) and, on every
// pointer update, a set of [Target] values measured by the host. Targets are
// either a whole axis ([KindAxis]) or a placed dimension chip ([KindChip]).
// Both live for one gesture only and never touch the persisted layout.
//
// # Collision detection
//
// [Detector.Detect] scores every target by Intersection-over-Union against
// the dragged rectangle, padded vertically so that near misses between chip
// rows still register. Chip and axis scores are tracked separately because
// an axis visually contains its chips: any overlapping chip beats the axis.
// When only an axis overlaps, a non-empty axis hands over to
// [ResolveLineEnd], which finds the visual line of wrapped chips nearest to
// the pointer and targets the rightmost chip on it ("append to this line").
//
// # Drop
//
// [ResolveDrop] converts the final active item and target into a single
// [layout.Command]: [layout.Add] for items from the sidebar, [layout.Move]
// for items already on an axis. Releases over nothing produce no command.
//
// [Controller] wires the pieces to a [Dispatcher] (usually a
// [layout.Store]) and enforces one gesture at a time:
//
//	ctrl := dnd.NewController(store, dnd.NewDetector(), logger)
//	ctrl.Start(ctx, dnd.Active{ID: "columns/dx", DimensionID: "dx", SourceAxis: layout.Columns})
//	ctrl.Over(ctx, draggedRect, targets) // every pointer move
//	ctrl.End(ctx)                        // on release
package dnd
