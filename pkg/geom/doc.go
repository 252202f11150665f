// Package geom provides screen-space rectangles and overlap measures for
// drag-and-drop collision detection.
//
// # Coordinates
//
// A [Rect] is described the way hosts report element geometry: top, left,
// width and height in one consistent coordinate space (viewport pixels in a
// browser, cells in a terminal). Bottom and right are derived. Y grows
// downward.
//
// # Overlap
//
// [IntersectionRatio] computes Intersection-over-Union:
//
//	ratio = intersection / (areaA + areaB - intersection)
//
// The ratio is symmetric, lies in (0, 1] for any real overlap, and is
// exactly 0 for disjoint or edge-touching rectangles.
//
//	a := geom.Rect{Top: 0, Left: 0, Width: 10, Height: 10}
//	b := geom.Rect{Top: 0, Left: 5, Width: 10, Height: 10}
//	geom.IntersectionRatio(a, b) // 50 / 150
package geom
