// Package pkg provides the core libraries of vizlayout, a drag-and-drop
// layout engine for visualization authoring.
//
// # Overview
//
// Dimensions are dragged from a sidebar onto three axes (columns, rows and
// filters) and reordered or moved between them. The pkg directory is
// organized into three areas:
//
//  1. [layout] - Layout state, mutation commands and the reducer
//  2. [geom] and [dnd] - Geometry, collision detection and drop resolution
//  3. [board] and [replay] - Measured boards and recorded gesture playback
//
// # Architecture
//
// The data flow of one gesture:
//
//	pointer frame (dragged rect + droppable targets)
//	         ↓
//	    [dnd.Detector] (IoU collision, chip beats axis, line ends)
//	         ↓
//	    drop: [dnd.ResolveDrop] (target → Add or Move command)
//	         ↓
//	    [layout.Store] (Reduce under a write lock, notify subscribers)
//
// # Quick Start
//
// Detect the target under a dragged chip and apply the drop:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/vizlayout/pkg/board"
//	    "github.com/matzehuels/vizlayout/pkg/dnd"
//	    "github.com/matzehuels/vizlayout/pkg/layout"
//	)
//
//	// 1. Create the store
//	store, _ := layout.NewStore(layout.Layout{Columns: []string{"region"}}, nil)
//
//	// 2. Measure a board for the current layout
//	b := board.Measure(store.Layout(), []string{"region", "sales"}, board.DefaultMetrics())
//
//	// 3. Drag the sidebar chip "sales" over the board
//	ctrl := dnd.NewController(store, dnd.NewDetector(), nil)
//	chip, _ := b.Find("sales")
//	ctrl.Start(ctx, chip.Active())
//	ctrl.Over(ctx, &rect, b.Targets())
//
//	// 4. Drop
//	cmd, err := ctrl.End(ctx)
//
// # Main Packages
//
// [layout] - The three-axis layout, the closed command set (Add, Move,
// Remove), the pure [layout.Reduce] function and the concurrent-safe Store.
//
// [geom] - Rectangles and the intersection-over-union ratio.
//
// [dnd] - The collision detector with vertical padding, the line-end
// resolver for wrapped axes, the drop intent resolver, and the Controller
// that runs gestures against a Store.
//
// [board] - Measures a layout into chip and axis rectangles for hosts
// without their own geometry, such as the terminal editor.
//
// [replay] - Loads recorded scenarios (TOML, YAML, JSON) and plays them
// through the engine.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Hooks for dispatches, gestures and HTTP requests.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/dnd/...       # Specific package
//	go test -run Example ./...  # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/layout
// [geom]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/geom
// [dnd]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/dnd
// [board]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/board
// [replay]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/replay
// [errors]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/buildinfo
// [dnd.Detector]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/dnd#Detector
// [dnd.ResolveDrop]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/dnd#ResolveDrop
// [layout.Store]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/layout#Store
// [layout.Reduce]: https://pkg.go.dev/github.com/matzehuels/vizlayout/pkg/layout#Reduce
package pkg
