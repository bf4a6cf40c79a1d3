// Package core provides fundamental types and utilities shared by the runner's
// packages. It has no UI dependencies (especially no Bubble Tea) so game logic
// stays pure and testable.
package core

import "github.com/go-gl/mathgl/mgl64"

// Travel axis conventions. The ball rolls towards +Z, X is lateral and Y is up.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Rect represents an integer axis-aligned rectangle in screen cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is an axis-aligned bounding box in world units.
type Box struct {
	Min, Max mgl64.Vec3
}

// BoxAround returns a box centered on c with the given full size.
func BoxAround(c, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

// Translate returns the box moved by d.
func (b Box) Translate(d mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Center returns the middle point of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Intersects reports whether two boxes overlap. Touching faces do not count.
func (b Box) Intersects(o Box) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] >= o.Max[i] || o.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the box.
func (b Box) IntersectsSphere(c mgl64.Vec3, r float64) bool {
	var d2 float64
	for i := 0; i < 3; i++ {
		v := ClampF(c[i], b.Min[i], b.Max[i])
		d := c[i] - v
		d2 += d * d
	}
	return d2 < r*r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
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
