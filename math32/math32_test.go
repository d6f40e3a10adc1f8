// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2Basics(t *testing.T) {
	v := Vec2(3, 4)
	assert.Equal(t, Vec2(5, 8), v.Add(Vec2(2, 4)))
	assert.Equal(t, Vec2(1, 0), v.Sub(Vec2(2, 4)))
	assert.Equal(t, float32(3), v.Dim(X))
	assert.Equal(t, float32(4), v.Dim(Y))
	v.SetDim(X, 10)
	assert.Equal(t, float32(10), v.X)
}

func TestMatrix2Compose(t *testing.T) {
	v0 := Vec2(0, 0)
	vx := Vec2(1, 0)
	vy := Vec2(0, 1)
	vxy := Vec2(1, 1)

	rot90 := DegToRad(90)

	assert.Equal(t, vx, Identity2().MulPoint(vx))
	assert.Equal(t, vxy, Translate2D(1, 1).MulPoint(v0))
	assert.Equal(t, vxy.MulScalar(2), Scale2D(2, 2).MulPoint(vxy))

	got := Rotate2D(rot90).MulPoint(vx)
	assert.InDelta(t, vy.X, got.X, 1e-5)
	assert.InDelta(t, vy.Y, got.Y, 1e-5)

	// apply Scale then Rotate then Translate (composition order matches teacher convention)
	m := Translate2D(1, 1).Mul(Rotate2D(rot90)).Mul(Scale2D(2, 2))
	got = m.MulPoint(vx)
	assert.InDelta(t, float32(1), got.X, 1e-5)
	assert.InDelta(t, float32(3), got.Y, 1e-5)

	inv := Rotate2D(rot90).Inverse()
	back := inv.MulPoint(Rotate2D(rot90).MulPoint(vxy))
	assert.InDelta(t, vxy.X, back.X, 1e-5)
	assert.InDelta(t, vxy.Y, back.Y, 1e-5)
}

func TestBox2MulMatrix2(t *testing.T) {
	b := B2(1, 2, 3, 4)
	m := Matrix2{XX: 1, YX: 2, XY: 3, YY: 4, X0: 5, Y0: 6}
	got := b.MulMatrix2(m)
	assert.Equal(t, B2(12, 16, 20, 28), got)
}

func TestBox2Union(t *testing.T) {
	a := B2(0, 0, 10, 10)
	b := B2(5, 5, 20, 8)
	u := a.Union(b)
	assert.Equal(t, B2(0, 0, 20, 10), u)
}

func TestSegmentsIntersect(t *testing.T) {
	p, ok := SegmentsIntersect(Vec2(0, 0), Vec2(10, 10), Vec2(0, 10), Vec2(10, 0))
	assert.True(t, ok)
	assert.InDelta(t, float32(5), p.X, 1e-5)
	assert.InDelta(t, float32(5), p.Y, 1e-5)
}
