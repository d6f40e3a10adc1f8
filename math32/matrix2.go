// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "math"

// Matrix2 is a 2D affine transform, stored as the standard 2x3 matrix
//
//	[ XX XY X0 ]
//	[ YX YY Y0 ]
//
// x' = XX*x + XY*y + X0
// y' = YX*x + YY*y + Y0
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns the identity transform.
func Identity2() Matrix2 {
	return Matrix2{XX: 1, YY: 1}
}

// Translate2D returns a translation matrix.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{XX: 1, YY: 1, X0: x, Y0: y}
}

// Scale2D returns a scaling matrix.
func Scale2D(sx, sy float32) Matrix2 {
	return Matrix2{XX: sx, YY: sy}
}

// Rotate2D returns a counter-clockwise rotation matrix, angle in radians.
func Rotate2D(angle float32) Matrix2 {
	s, c := sincos(angle)
	return Matrix2{XX: c, YX: s, XY: -s, YY: c}
}

func sincos(a float32) (float32, float32) {
	return float32(math.Sin(float64(a))), float32(math.Cos(float64(a)))
}

// MulPoint transforms the given point by this matrix.
func (a Matrix2) MulPoint(p Vector2) Vector2 {
	return Vector2{
		X: a.XX*p.X + a.XY*p.Y + a.X0,
		Y: a.YX*p.X + a.YY*p.Y + a.Y0,
	}
}

// Mul returns a*b: the matrix that applies b first, then a.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		YX: a.YX*b.XX + a.YY*b.YX,
		YY: a.YX*b.XY + a.YY*b.YY,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// Inverse returns the inverse transform.
func (a Matrix2) Inverse() Matrix2 {
	det := a.XX*a.YY - a.XY*a.YX
	if det == 0 {
		return Identity2()
	}
	id := 1 / det
	inv := Matrix2{
		XX: a.YY * id,
		XY: -a.XY * id,
		YX: -a.YX * id,
		YY: a.XX * id,
	}
	inv.X0 = -(inv.XX*a.X0 + inv.XY*a.Y0)
	inv.Y0 = -(inv.YX*a.X0 + inv.YY*a.Y0)
	return inv
}

// ExtractRot returns the rotation angle (radians) encoded in this matrix,
// assuming no non-uniform scale/shear.
func (a Matrix2) ExtractRot() float32 {
	return float32(math.Atan2(float64(a.YX), float64(a.XX)))
}
