// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used when drawing into a Screen.
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

// Vec is a point or displacement in world units.
// World space has its origin at the bottom-left corner with y pointing up.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Vec) float64 {
	return math.Sqrt((p1.X-p2.X)*(p1.X-p2.X) + (p1.Y-p2.Y)*(p1.Y-p2.Y))
}

// Bearing returns the angle in radians of the line from p1 to p2,
// measured counter-clockwise from the positive x axis.
func Bearing(p1, p2 Vec) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RectF is an axis-aligned box in world units, anchored at its bottom-left corner.
type RectF struct {
	X, Y float64
	W, H float64
}

// CenteredRect returns the box of the given size centred on c.
func CenteredRect(c Vec, size Vec) RectF {
	return RectF{X: c.X - size.X/2, Y: c.Y - size.Y/2, W: size.X, H: size.Y}
}

// MinX returns the left edge.
func (r RectF) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r RectF) MaxX() float64 { return r.X + r.W }

// MinY returns the bottom edge.
func (r RectF) MinY() float64 { return r.Y }

// MaxY returns the top edge.
func (r RectF) MaxY() float64 { return r.Y + r.H }

// Center returns the centre point of the box.
func (r RectF) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside the box, edges included.
func (r RectF) Contains(p Vec) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Intersects reports whether two boxes overlap with positive area.
// Boxes that only share an edge do not intersect.
func (r RectF) Intersects(o RectF) bool {
	if r.MinX() >= o.MaxX() || o.MinX() >= r.MaxX() {
		return false
	}
	if r.MinY() >= o.MaxY() || o.MinY() >= r.MaxY() {
		return false
	}
	return true
}

// Inset shrinks the box by dx on the left and right and dy on the top and bottom.
func (r RectF) Inset(dx, dy float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// ClampPoint moves p to the nearest point inside the box.
func (r RectF) ClampPoint(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, r.MinX(), r.MaxX()),
		Y: ClampF(p.Y, r.MinY(), r.MaxY()),
	}
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
