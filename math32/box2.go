// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "math"

// Box2 is an axis-aligned bounding box.
type Box2 struct {
	Min, Max Vector2
}

// B2 constructs a Box2 from raw min/max coordinates.
func B2(minX, minY, maxX, maxY float32) Box2 {
	return Box2{Min: Vector2{minX, minY}, Max: Vector2{maxX, maxY}}
}

// BoxFromPosSize constructs a Box2 from a position and size.
func BoxFromPosSize(pos, size Vector2) Box2 {
	return Box2{Min: pos, Max: pos.Add(size)}
}

// Size returns the width/height of the box.
func (b Box2) Size() Vector2 { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the box.
func (b Box2) Center() Vector2 { return b.Min.Add(b.Max).MulScalar(0.5) }

// IsEmpty reports whether the box has non-positive area.
func (b Box2) IsEmpty() bool { return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y }

// Union returns the smallest box containing both b and o.
func (b Box2) Union(o Box2) Box2 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box2{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Overlaps reports whether b and o share any area.
func (b Box2) Overlaps(o Box2) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X && b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}

// ContainsPoint reports whether p lies within the box (inclusive).
func (b Box2) ContainsPoint(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Corners returns the four corners of the box, in order:
// top-left, top-right, bottom-right, bottom-left.
func (b Box2) Corners() [4]Vector2 {
	return [4]Vector2{
		{b.Min.X, b.Min.Y},
		{b.Max.X, b.Min.Y},
		{b.Max.X, b.Max.Y},
		{b.Min.X, b.Max.Y},
	}
}

// Handles returns the five snap handles of a box: four corners plus center.
func (b Box2) Handles() [5]Vector2 {
	c := b.Corners()
	return [5]Vector2{c[0], c[1], c[2], c[3], b.Center()}
}

// MulMatrix2 transforms the box's corners by m and returns the new
// axis-aligned bounding box of the transformed corners.
func (b Box2) MulMatrix2(m Matrix2) Box2 {
	corners := b.Corners()
	out := Box2{Min: m.MulPoint(corners[0]), Max: m.MulPoint(corners[0])}
	for _, c := range corners[1:] {
		p := m.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Expand grows the box outward by d on each side (negative shrinks).
func (b Box2) Expand(d float32) Box2 {
	return Box2{Min: b.Min.Sub(Vec2(d, d)), Max: b.Max.Add(Vec2(d, d))}
}

// ExpandInsets grows the box outward by a per-side inset.
func (b Box2) ExpandInsets(top, right, bottom, left float32) Box2 {
	return Box2{
		Min: Vec2(b.Min.X-left, b.Min.Y-top),
		Max: Vec2(b.Max.X+right, b.Max.Y+bottom),
	}
}

// SegmentsIntersect reports whether segment p1-p2 intersects q1-q2, using
// a parametric cross-product test, and returns the intersection point if so.
func SegmentsIntersect(p1, p2, q1, q2 Vector2) (Vector2, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := cross(r, s)
	if denom == 0 {
		return Vector2{}, false // parallel or collinear
	}
	qp := q1.Sub(p1)
	t := cross(qp, s) / denom
	u := cross(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vector2{}, false
	}
	return p1.Add(r.MulScalar(t)), true
}

func cross(a, b Vector2) float32 { return a.X*b.Y - a.Y*b.X }

// RoundedRectCornerCenter returns the center of the circular arc forming
// the given corner of a w x h rect with the given per-corner radius,
// corner indices matching Corners(): 0=TL, 1=TR, 2=BR, 3=BL.
func RoundedRectCornerCenter(w, h, radius float32, corner int) Vector2 {
	r := radius
	switch corner {
	case 0:
		return Vec2(r, r)
	case 1:
		return Vec2(w-r, r)
	case 2:
		return Vec2(w-r, h-r)
	default:
		return Vec2(r, h-r)
	}
}

// ClampCornerRadius clamps a requested corner radius so that opposite
// corners never overlap on a w x h rect.
func ClampCornerRadius(r, w, h float32) float32 {
	m := float32(math.Min(float64(w), float64(h))) / 2
	if r > m {
		return m
	}
	if r < 0 {
		return 0
	}
	return r
}
