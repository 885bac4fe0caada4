// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is an integer grid coordinate. It is never validated: scatter
// corners and look-ahead targets may lie outside any grid.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by k.
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Step returns the neighbor of p in direction d, scaled by n tiles.
// DirNone returns p unchanged.
func (p Point) Step(d Direction, n int) Point {
	return p.Add(d.Delta().Scale(n))
}

// DistanceSq returns the squared Euclidean distance between two points.
func (p Point) DistanceSq(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Manhattan returns the taxicab distance between two points.
func (p Point) Manhattan(o Point) int {
	return Abs(p.X-o.X) + Abs(p.Y-o.Y)
}

// Direction is a facing on the grid.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four movement directions in arcade tie-break order.
var Directions = [4]Direction{DirUp, DirLeft, DirDown, DirRight}

// Delta returns the unit offset for the direction. Y grows downward.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
