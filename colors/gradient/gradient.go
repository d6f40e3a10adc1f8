// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on cogentcore.org/core/colors/gradient, adapted for the document's
// linear/radial/angular/mesh gradient fill model (§6).
package gradient

import (
	"image/color"
	"math"
	"sort"

	"github.com/cogentcore-design/vectorscene/colors"
	"github.com/cogentcore-design/vectorscene/math32"
)

// Stop is one color stop in a gradient ramp.
type Stop struct {
	Color    color.RGBA
	Position float32 // 0-1
}

// Base holds the fields common to every gradient kind.
type Base struct {
	Stops      []Stop
	Opacity    float32
	Enabled    bool
	BlendMode  colors.BlendMode
	Transform  math32.Matrix2 // object-space transform applied before evaluation
}

// AddStop appends a stop in the given color and position.
func (b *Base) AddStop(c color.RGBA, pos float32) {
	b.Stops = append(b.Stops, Stop{Color: c, Position: pos})
}

// sortedStops returns Stops sorted by Position, used by every gradient's
// ramp evaluation.
func (b *Base) sortedStops() []Stop {
	s := append([]Stop(nil), b.Stops...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Position < s[j].Position })
	return s
}

// At returns the interpolated color of the ramp at parameter t (0-1),
// clamping to the end stops.
func (b *Base) At(t float32) color.RGBA {
	stops := b.sortedStops()
	if len(stops) == 0 {
		return color.RGBA{}
	}
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b2 := stops[i], stops[i+1]
		if t >= a.Position && t <= b2.Position {
			span := b2.Position - a.Position
			if span <= 0 {
				return a.Color
			}
			return colors.Lerp(a.Color, b2.Color, (t-a.Position)/span)
		}
	}
	return last.Color
}

// Gradient is the common interface for every fill-gradient kind, sampled
// at a point in the shape's local (unit-box-normalized) space.
type Gradient interface {
	AsBase() *Base
	// At0to1 evaluates the gradient at a point in the gradient's own
	// normalized [0,1]x[0,1] coordinate frame.
	At0to1(p math32.Vector2) color.RGBA
}

// Linear is a linear gradient between Start and End points, both in
// normalized [0,1] box space, matching the wire format's
// center/size/rotation encoding once resolved by ResolveLinearEndpoints.
type Linear struct {
	Base
	Start, End math32.Vector2
}

func (l *Linear) AsBase() *Base { return &l.Base }

func (l *Linear) At0to1(p math32.Vector2) color.RGBA {
	dir := l.End.Sub(l.Start)
	len2 := dir.X*dir.X + dir.Y*dir.Y
	if len2 == 0 {
		return l.Base.At(0)
	}
	rel := p.Sub(l.Start)
	t := (rel.X*dir.X + rel.Y*dir.Y) / len2
	return l.Base.At(t)
}

// ResolveLinearEndpoints implements the current (2.6) schema's encoding of
// a linear gradient: rotation is counter-clockwise degrees with 0 pointing
// up, center is the gradient's midpoint, and size.height is the axis
// length (see SPEC_FULL Open Question 1 for the 2.5->2.6 migration).
func ResolveLinearEndpoints(center math32.Vector2, length, rotationDeg float32) (start, end math32.Vector2) {
	rad := math32.DegToRad(rotationDeg)
	// 0 degrees points up (-Y); rotation is CCW.
	dir := math32.Vec2(-float32(math.Sin(float64(rad))), -float32(math.Cos(float64(rad))))
	half := dir.MulScalar(length / 2)
	return center.Sub(half), center.Add(half)
}
