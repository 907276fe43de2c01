// Package core provides fundamental types and utilities for the game and
// its platform layer. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect is a cell rectangle with half-open edges, used for drawing panels
// and hit-testing the restart button. World collision uses the float
// shapes in shape.go.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the rectangle with top-left (x, y) and size w by h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF limits v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
