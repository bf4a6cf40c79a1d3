package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxIntersects(t *testing.T) {
	unit := mgl64.Vec3{1, 1, 1}
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", BoxAround(mgl64.Vec3{0, 0, 0}, unit), BoxAround(mgl64.Vec3{0.5, 0.5, 0.5}, unit), true},
		{"apart on x", BoxAround(mgl64.Vec3{0, 0, 0}, unit), BoxAround(mgl64.Vec3{3, 0, 0}, unit), false},
		{"apart on z", BoxAround(mgl64.Vec3{0, 0, 0}, unit), BoxAround(mgl64.Vec3{0, 0, 3}, unit), false},
		{"touching faces", BoxAround(mgl64.Vec3{0, 0, 0}, unit), BoxAround(mgl64.Vec3{1, 0, 0}, unit), false},
		{"contained", BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 4, 4}), BoxAround(mgl64.Vec3{0, 0, 0}, unit), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxIntersectsSphere(t *testing.T) {
	b := BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 2, 2})

	if !b.IntersectsSphere(mgl64.Vec3{1.4, 0, 0}, 0.5) {
		t.Error("sphere overlapping the +X face should intersect")
	}
	if b.IntersectsSphere(mgl64.Vec3{2, 0, 0}, 0.5) {
		t.Error("sphere 0.5 past the +X face should not intersect")
	}
	if !b.IntersectsSphere(mgl64.Vec3{0, 0, 0}, 0.1) {
		t.Error("sphere inside the box should intersect")
	}
}

func TestBoxTranslateCenter(t *testing.T) {
	b := BoxAround(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{2, 2, 2}).Translate(mgl64.Vec3{0, 0, 10})
	if c := b.Center(); c != (mgl64.Vec3{1, 2, 13}) {
		t.Errorf("Center() = %v, expected [1 2 13]", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}
