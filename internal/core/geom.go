// Package core provides fundamental types and utilities shared by the arena
// simulation and its hosts. It has no external dependencies so that game logic
// stays pure and testable.
package core

import "math"

// Vec2 is a 2D point or displacement in arena units.
// Origin is top-left, X grows right and Y grows down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// AngleTo returns the angle in radians of the vector from v to o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Polar returns a displacement of the given length along angle.
func Polar(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// CirclesOverlap reports whether two circles strictly overlap
// (center distance less than the sum of radii).
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return a.Dist(b) < ra+rb
}

// Bounds is the axis-aligned arena rectangle anchored at the origin.
type Bounds struct {
	W, H float64
}

// Contains reports whether p lies inside the closed rectangle [0,W]x[0,H].
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}

// ClampInset clamps p into the rectangle shrunk by margin on every side.
func (b Bounds) ClampInset(p Vec2, margin float64) Vec2 {
	return Vec2{
		X: ClampF(p.X, margin, b.W-margin),
		Y: ClampF(p.Y, margin, b.H-margin),
	}
}

// Center returns the middle of the rectangle.
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.W / 2, Y: b.H / 2}
}

// Rect represents an axis-aligned box of screen cells.
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
