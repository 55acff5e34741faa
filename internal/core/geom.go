package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner returns r shrunk by one cell on every side, the area inside a box
// drawn along r.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: max(0, r.W-2), H: max(0, r.H-2)}
}

// Project maps a world position on a playfield of the given size to a cell
// of r. ok is false when the cell lies outside r.
//
// Projection is display only; its floating point result never feeds back
// into the simulation.
func (r Rect) Project(p, size Vec2) (x, y int, ok bool) {
	if size.X <= 0 || size.Y <= 0 {
		return 0, 0, false
	}
	x = r.X + int(p.X.Float64()/size.X.Float64()*float64(r.W))
	y = r.Y + int(p.Y.Float64()/size.Y.Float64()*float64(r.H))
	return x, y, r.Contains(x, y)
}
