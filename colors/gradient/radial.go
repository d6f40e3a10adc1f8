// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradient

import (
	"image/color"
	"math"

	"github.com/cogentcore-design/vectorscene/math32"
)

// Radial is a radial gradient centered at Center with radii Radius
// (elliptical: X and Y may differ, matching the wire `size` field).
type Radial struct {
	Base
	Center math32.Vector2
	Radius math32.Vector2
}

func (r *Radial) AsBase() *Base { return &r.Base }

func (r *Radial) At0to1(p math32.Vector2) color.RGBA {
	rel := p.Sub(r.Center)
	rx, ry := r.Radius.X, r.Radius.Y
	if rx == 0 {
		rx = 1e-6
	}
	if ry == 0 {
		ry = 1e-6
	}
	t := float32(math.Sqrt(float64((rel.X/rx)*(rel.X/rx) + (rel.Y/ry)*(rel.Y/ry))))
	return r.Base.At(t)
}

// Angular is a conic (angular) gradient around Center. Its ramp starts in
// the direction given by RotationDeg (counter-clockwise degrees, 0 pointing
// up, the same convention as Linear's rotation) and sweeps clockwise in
// screen space.
type Angular struct {
	Base
	Center      math32.Vector2
	RotationDeg float32
}

func (a *Angular) AsBase() *Base { return &a.Base }

func (a *Angular) At0to1(p math32.Vector2) color.RGBA {
	rel := p.Sub(a.Center)
	ang := float32(math.Atan2(float64(rel.X), float64(-rel.Y))) // 0 at up, CW screen-space
	ang += math32.DegToRad(a.RotationDeg)
	twoPi := float32(2 * math.Pi)
	for ang < 0 {
		ang += twoPi
	}
	for ang >= twoPi {
		ang -= twoPi
	}
	return a.Base.At(ang / twoPi)
}
