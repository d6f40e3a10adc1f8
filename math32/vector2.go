// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the 2D geometry primitives the rest of the core
// is built on: vectors, affine matrices, axis-aligned boxes, segment
// intersection, and rounded-rect corner math.
package math32

import "math"

// Dims is an axis selector, used throughout layout and snapping to process
// one axis at a time.
type Dims int32

const (
	X Dims = iota
	Y
)

// Other returns the opposite dimension.
func (d Dims) Other() Dims {
	if d == X {
		return Y
	}
	return X
}

func (d Dims) String() string {
	if d == X {
		return "X"
	}
	return "Y"
}

// Vector2 is a 2D point or size.
type Vector2 struct {
	X, Y float32
}

// Vec2 constructs a Vector2.
func Vec2(x, y float32) Vector2 { return Vector2{x, y} }

// Dim returns the value along the given dimension.
func (v Vector2) Dim(d Dims) float32 {
	if d == X {
		return v.X
	}
	return v.Y
}

// SetDim sets the value along the given dimension.
func (v *Vector2) SetDim(d Dims, val float32) {
	if d == X {
		v.X = val
	} else {
		v.Y = val
	}
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Mul(o Vector2) Vector2 { return Vector2{v.X * o.X, v.Y * o.Y} }
func (v Vector2) MulScalar(s float32) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Negate() Vector2 { return Vector2{-v.X, -v.Y} }

func (v Vector2) Min(o Vector2) Vector2 { return Vector2{min(v.X, o.X), min(v.Y, o.Y)} }
func (v Vector2) Max(o Vector2) Vector2 { return Vector2{max(v.X, o.X), max(v.Y, o.Y)} }

// SetZero zeros the vector in place.
func (v *Vector2) SetZero() { v.X, v.Y = 0, 0 }

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// DegToRad converts degrees to radians.
func DegToRad(d float32) float32 { return d * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(r float32) float32 { return r * 180 / math.Pi }

func Round(v float32) float32 { return float32(math.Round(float64(v))) }
func Floor(v float32) float32 { return float32(math.Floor(float64(v))) }
func Ceil(v float32) float32  { return float32(math.Ceil(float64(v))) }
func Abs(v float32) float32   { return float32(math.Abs(float64(v))) }
func Sqrt(v float32) float32  { return float32(math.Sqrt(float64(v))) }
