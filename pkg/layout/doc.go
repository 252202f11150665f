// Package layout holds the visualization layout and the reducer that
// mutates it.
//
// # Model
//
// A [Layout] is three ordered axes ([Columns], [Rows], [Filters]) of opaque
// dimension identifiers. Order is meaningful: it drives display order and
// query grouping. A dimension appears at most once across all axes.
//
// # Commands
//
// The layout changes only through commands, a closed set of variants:
//
//   - [Add]: place a dimension that is not on any axis yet
//   - [Move]: move a dimension between axes or reorder it within one
//   - [Remove]: take a dimension off an axis
//
// [Reduce] is a pure function from (layout, command) to a new layout. The
// input layout is never modified, so a rejected command leaves state exactly
// as it was.
//
// # Index semantics
//
// Insertion indices name a slot in the target axis as it looks before the
// command runs. A nil index appends. For a [Move] within one axis the
// dimension is removed first; when it moves forward (its original index is
// before the target index) the target index is decremented so the dimension
// lands in front of the element that occupied the slot:
//
//	columns = [c1 c2 c3 c4 c5 c6]
//	Move{DimensionID: "c2", Source: Columns, Target: Columns, Index: At(3)}
//	columns = [c1 c3 c2 c4 c5 c6]
//
// # Errors
//
// Moving or removing a dimension that is not on the claimed axis, adding a
// dimension that is already placed, and out-of-range indices are invariant
// violations (see [errors.IsInvariant]). They mean the drag state and the
// layout have desynchronized and are returned, never repaired.
//
// # Store
//
// [Store] is the shared state container: a single writer applies commands
// through [Store.Dispatch], readers take snapshots with [Store.Layout].
package layout
