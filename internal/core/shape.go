package core

import "math"

// Shape is a collision silhouette in world (pixel) coordinates.
//
// Implementations must handle Box and Ellipse directly in Intersects and
// may delegate any other shape back to other.Intersects.
type Shape interface {
	// Bounds returns the smallest Box enclosing the shape.
	Bounds() Box

	// Intersects reports whether the two silhouettes overlap.
	// Touching edges do not count as an overlap.
	Intersects(other Shape) bool
}

// Box is an axis-aligned rectangle with float coordinates covering
// [X, X+W) x [Y, Y+H).
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Empty reports whether the box covers no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Overlaps is plain AABB overlap between two boxes.
func (b Box) Overlaps(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest box enclosing both boxes.
// An empty box contributes nothing.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	x := math.Min(b.X, o.X)
	y := math.Min(b.Y, o.Y)
	return Box{
		X: x,
		Y: y,
		W: math.Max(b.Right(), o.Right()) - x,
		H: math.Max(b.Bottom(), o.Bottom()) - y,
	}
}

// Bounds implements Shape.
func (b Box) Bounds() Box {
	return b
}

// Intersects implements Shape.
func (b Box) Intersects(other Shape) bool {
	switch o := other.(type) {
	case Box:
		return b.Overlaps(o)
	case Ellipse:
		return o.intersectsBox(b)
	default:
		return other.Intersects(b)
	}
}

// Ellipse is an axis-aligned ellipse given by its center and radii.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

// EllipseIn returns the ellipse inscribed in box, shrunk by inset on every side.
func EllipseIn(b Box, inset float64) Ellipse {
	return Ellipse{
		CX: b.X + b.W/2,
		CY: b.Y + b.H/2,
		RX: math.Max(b.W/2-inset, 0),
		RY: math.Max(b.H/2-inset, 0),
	}
}

// Bounds implements Shape.
func (e Ellipse) Bounds() Box {
	return Box{X: e.CX - e.RX, Y: e.CY - e.RY, W: 2 * e.RX, H: 2 * e.RY}
}

// Contains reports whether the point lies strictly inside the ellipse.
func (e Ellipse) Contains(x, y float64) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	u := (x - e.CX) / e.RX
	v := (y - e.CY) / e.RY
	return u*u+v*v < 1
}

// Intersects implements Shape.
func (e Ellipse) Intersects(other Shape) bool {
	switch o := other.(type) {
	case Box:
		return e.intersectsBox(o)
	case Ellipse:
		return e.intersectsEllipse(o)
	default:
		return other.Intersects(e)
	}
}

// intersectsBox scales space so the ellipse becomes the unit circle, which
// keeps the box axis-aligned, then tests the closest box point.
func (e Ellipse) intersectsBox(b Box) bool {
	if e.RX <= 0 || e.RY <= 0 || b.Empty() {
		return false
	}
	x0 := (b.X - e.CX) / e.RX
	x1 := (b.Right() - e.CX) / e.RX
	y0 := (b.Y - e.CY) / e.RY
	y1 := (b.Bottom() - e.CY) / e.RY

	nx := ClampF(0, x0, x1)
	ny := ClampF(0, y0, y1)
	return nx*nx+ny*ny < 1
}

// ellipseSamples is the number of boundary points used for
// ellipse/ellipse tests.
const ellipseSamples = 128

// intersectsEllipse samples the boundary of each ellipse against the other.
// Either center being inside the other catches full containment.
func (e Ellipse) intersectsEllipse(o Ellipse) bool {
	if e.RX <= 0 || e.RY <= 0 || o.RX <= 0 || o.RY <= 0 {
		return false
	}
	if !e.Bounds().Overlaps(o.Bounds()) {
		return false
	}
	if e.Contains(o.CX, o.CY) || o.Contains(e.CX, e.CY) {
		return true
	}
	for i := 0; i < ellipseSamples; i++ {
		theta := 2 * math.Pi * float64(i) / ellipseSamples
		cos, sin := math.Cos(theta), math.Sin(theta)
		if e.Contains(o.CX+o.RX*cos, o.CY+o.RY*sin) {
			return true
		}
		if o.Contains(e.CX+e.RX*cos, e.CY+e.RY*sin) {
			return true
		}
	}
	return false
}

// Group is the union of several shapes, e.g. the two stacks of a pipe pair.
type Group []Shape

// Bounds implements Shape.
func (g Group) Bounds() Box {
	var out Box
	for _, s := range g {
		out = out.Union(s.Bounds())
	}
	return out
}

// Intersects implements Shape.
func (g Group) Intersects(other Shape) bool {
	if !g.Bounds().Overlaps(other.Bounds()) {
		return false
	}
	for _, s := range g {
		if s.Intersects(other) {
			return true
		}
	}
	return false
}
