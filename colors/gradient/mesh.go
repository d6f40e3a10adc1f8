// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradient

import (
	"image/color"

	"github.com/cogentcore-design/vectorscene/math32"
)

// MeshHandle is an optional Bezier control handle on a mesh gradient
// point, used to bend the patch edge between it and its neighbors.
type MeshHandle struct {
	Left, Right, Top, Bottom *math32.Vector2
}

// MeshPoint is one control point of the mesh gradient's Columns x Rows
// grid, as described in §6 ("points: [[x,y] | {position, leftHandle, ...}]").
type MeshPoint struct {
	Position math32.Vector2
	Handle   MeshHandle
}

// Mesh is a mesh (coons-patch) gradient: a Columns x Rows grid of control
// points, each with an associated color. The actual patch rasterization
// (bicubic interpolation along bent handles) is the rasterizer's job (an
// external collaborator, §1); this type keeps exactly the data the wire
// format carries plus a bilinear evaluator usable for non-rendering
// purposes (bounds estimation, hit-testing fallbacks).
type Mesh struct {
	Base
	Columns, Rows int
	Points        []MeshPoint // row-major, len == Columns*Rows
	Colors        []color.RGBA
}

func (m *Mesh) AsBase() *Base { return &m.Base }

// point returns the control point at (col, row), with bounds checking.
func (m *Mesh) point(col, row int) math32.Vector2 {
	idx := row*m.Columns + col
	if idx < 0 || idx >= len(m.Points) {
		return math32.Vector2{}
	}
	return m.Points[idx].Position
}

func (m *Mesh) color(col, row int) color.RGBA {
	idx := row*m.Columns + col
	if idx < 0 || idx >= len(m.Colors) {
		return color.RGBA{}
	}
	return m.Colors[idx]
}

// At0to1 bilinearly interpolates the mesh's colors treating p as a
// fraction across the Columns-1 x Rows-1 patch grid (ignoring bezier
// handles, which only affect patch edge curvature for the rasterizer).
func (m *Mesh) At0to1(p math32.Vector2) color.RGBA {
	if m.Columns < 2 || m.Rows < 2 {
		if len(m.Colors) > 0 {
			return m.Colors[0]
		}
		return color.RGBA{}
	}
	fx := p.X * float32(m.Columns-1)
	fy := p.Y * float32(m.Rows-1)
	cx, cy := int(fx), int(fy)
	cx = clampInt(cx, 0, m.Columns-2)
	cy = clampInt(cy, 0, m.Rows-2)
	tx, ty := fx-float32(cx), fy-float32(cy)

	top := lerpColor(m.color(cx, cy), m.color(cx+1, cy), tx)
	bot := lerpColor(m.color(cx, cy+1), m.color(cx+1, cy+1), tx)
	return lerpColor(top, bot, ty)
}

func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
