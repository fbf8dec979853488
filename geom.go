package raster

// Point represents a 2D point with integer pixel coordinates.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect represents an axis-aligned rectangle with integer pixel
// coordinates. The right and bottom edges are exclusive: a pixel (x, y)
// is inside when Left <= x < Right and Top <= y < Bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// NewRect creates a rectangle from its edge coordinates.
func NewRect(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectWH creates a rectangle anchored at the origin with the given size.
func RectWH(width, height int) Rect {
	return Rect{Right: width, Bottom: height}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// IsValidRect reports whether the rectangle has a strictly positive area.
func (r Rect) IsValidRect() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right &&
		r.Top < o.Bottom && o.Top < r.Bottom
}

// Intersect returns the intersection of two rectangles. The result is
// empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	return r.Clip(o)
}

// Clip returns r constrained to lie within o. The result may be empty.
func (r Rect) Clip(o Rect) Rect {
	if r.Left < o.Left {
		r.Left = o.Left
	}
	if r.Top < o.Top {
		r.Top = o.Top
	}
	if r.Right > o.Right {
		r.Right = o.Right
	}
	if r.Bottom > o.Bottom {
		r.Bottom = o.Bottom
	}
	if r.Right < r.Left {
		r.Right = r.Left
	}
	if r.Bottom < r.Top {
		r.Bottom = r.Top
	}
	return r
}

// ClipToSize returns r constrained to a (0, 0, width, height) area.
func (r Rect) ClipToSize(width, height int) Rect {
	return r.Clip(RectWH(width, height))
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// MoveTo returns the rectangle repositioned so its top-left corner lies
// at (x, y), preserving its size.
func (r Rect) MoveTo(x, y int) Rect {
	return r.Translate(x-r.Left, y-r.Top)
}

// Extend returns the smallest rectangle containing both r and o.
// An empty operand does not contribute to the result.
func (r Rect) Extend(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	if o.Left < r.Left {
		r.Left = o.Left
	}
	if o.Top < r.Top {
		r.Top = o.Top
	}
	if o.Right > r.Right {
		r.Right = o.Right
	}
	if o.Bottom > r.Bottom {
		r.Bottom = o.Bottom
	}
	return r
}
