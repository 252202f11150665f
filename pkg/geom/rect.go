package geom

import "math"

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Bottom returns the lower edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Area returns width times height, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Expand grows the rectangle by dy on the top and on the bottom.
// The vertical center is unchanged.
func (r Rect) Expand(dy float64) Rect {
	return Rect{
		Top:    r.Top - dy,
		Left:   r.Left,
		Width:  r.Width,
		Height: r.Height + 2*dy,
	}
}

// Translate returns the rectangle moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Contains reports whether the point lies inside the rectangle.
// The top and left edges are inclusive, the bottom and right edges exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// FromEdges builds a Rect from its four edges.
func FromEdges(left, top, right, bottom float64) Rect {
	return Rect{Top: top, Left: left, Width: right - left, Height: bottom - top}
}

// Intersection returns the overlapping box of a and b.
// The second result is false when the box is degenerate, that is when its
// width or height is not positive.
func Intersection(a, b Rect) (Rect, bool) {
	left := math.Max(a.Left, b.Left)
	top := math.Max(a.Top, b.Top)
	right := math.Min(a.Right(), b.Right())
	bottom := math.Min(a.Bottom(), b.Bottom())

	if right-left <= 0 || bottom-top <= 0 {
		return Rect{}, false
	}
	return FromEdges(left, top, right, bottom), true
}

// IntersectionRatio returns the Intersection-over-Union of a and b.
func IntersectionRatio(a, b Rect) float64 {
	inter, ok := Intersection(a, b)
	if !ok {
		return 0
	}
	interArea := inter.Area()
	union := a.Area() + b.Area() - interArea
	if union <= 0 {
		return 0
	}
	return interArea / union
}
