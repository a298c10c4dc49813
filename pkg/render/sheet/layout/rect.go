package layout

const eps = 1e-9

// Rect is an axis-aligned rectangle in page points.
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Overlaps reports whether the interiors of r and o intersect. Rectangles
// that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right-eps && o.Left < r.Right-eps &&
		r.Bottom < o.Top-eps && o.Bottom < r.Top-eps
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left-eps && o.Right <= r.Right+eps &&
		o.Bottom >= r.Bottom-eps && o.Top <= r.Top+eps
}
