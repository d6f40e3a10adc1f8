// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"image/color"
	"math"

	"github.com/tidwall/gjson"

	"github.com/cogentcore-design/vectorscene/colors"
	"github.com/cogentcore-design/vectorscene/colors/gradient"
	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// convertStops converts the common `colors: [{color, position}]` ramp
// (§6) shared by linear/radial/angular gradients.
func convertStops(v gjson.Result, op string) ([]gradient.Stop, error) {
	items := v.Array()
	out := make([]gradient.Stop, 0, len(items))
	for _, it := range items {
		c, err := colors.Parse(it.Get("color").String())
		if err != nil {
			return nil, vserr.Wrap(vserr.TypeMismatch, op, it.Raw, err)
		}
		out = append(out, gradient.Stop{Color: c, Position: float32(it.Get("position").Float())})
	}
	return out, nil
}

func exportStops(stops []gradient.Stop) []any {
	out := make([]any, 0, len(stops))
	for _, s := range stops {
		out = append(out, map[string]any{"color": colors.ToHex(s.Color), "position": s.Position})
	}
	return out
}

func gradientBase(v gjson.Result, op string) (gradient.Base, error) {
	stops, err := convertStops(v.Get("colors"), op)
	if err != nil {
		return gradient.Base{}, err
	}
	enabled := true
	if en := v.Get("enabled"); en.Exists() {
		enabled = en.Bool()
	}
	opacity := float32(1)
	if o := v.Get("opacity"); o.Exists() {
		opacity = float32(o.Float())
	}
	return gradient.Base{
		Stops:     stops,
		Opacity:   opacity,
		Enabled:   enabled,
		BlendMode: colors.BlendMode(v.Get("blendMode").String()),
	}, nil
}

// convertGradient converts the `gradientType ∈ {linear, radial, angular}`
// fill variant (§6).
func convertGradient(v gjson.Result, op string) (gradient.Gradient, error) {
	base, err := gradientBase(v, op)
	if err != nil {
		return nil, err
	}
	center := math32.Vec2(float32(v.Get("center.x").Float()), float32(v.Get("center.y").Float()))
	width := float32(v.Get("size.width").Float())
	height := float32(v.Get("size.height").Float())
	rotation := float32(v.Get("rotation").Float())

	switch v.Get("gradientType").String() {
	case "linear":
		start, end := gradient.ResolveLinearEndpoints(center, height, rotation)
		return &gradient.Linear{Base: base, Start: start, End: end}, nil
	case "radial":
		return &gradient.Radial{Base: base, Center: center, Radius: math32.Vec2(width/2, height/2)}, nil
	case "angular":
		return &gradient.Angular{Base: base, Center: center, RotationDeg: rotation}, nil
	default:
		return nil, vserr.New(vserr.TypeMismatch, op, v.Get("gradientType").String())
	}
}

// exportGradientInto writes a gradient's wire fields into m, which
// already carries the fill-level `type`, `enabled`, `opacity` keys.
func exportGradientInto(m map[string]any, g gradient.Gradient) {
	base := g.AsBase()
	m["colors"] = exportStops(base.Stops)
	if base.BlendMode != "" {
		m["blendMode"] = string(base.BlendMode)
	}
	switch t := g.(type) {
	case *gradient.Linear:
		m["gradientType"] = "linear"
		mid := t.Start.Add(t.End).MulScalar(0.5)
		length := t.End.Sub(t.Start)
		m["center"] = map[string]any{"x": mid.X, "y": mid.Y}
		lenMag := math32.Sqrt(length.X*length.X + length.Y*length.Y)
		m["size"] = map[string]any{"height": lenMag}
		m["rotation"] = math32.RadToDeg(angleFromVector(length))
	case *gradient.Radial:
		m["gradientType"] = "radial"
		m["center"] = map[string]any{"x": t.Center.X, "y": t.Center.Y}
		m["size"] = map[string]any{"width": t.Radius.X * 2, "height": t.Radius.Y * 2}
	case *gradient.Angular:
		m["gradientType"] = "angular"
		m["center"] = map[string]any{"x": t.Center.X, "y": t.Center.Y}
		m["rotation"] = t.RotationDeg
	}
}

// angleFromVector inverts ResolveLinearEndpoints' direction formula
// (dir = (-sin(rad), -cos(rad)) * length), returning the CCW-from-up
// rotation in radians.
func angleFromVector(dir math32.Vector2) float32 {
	return float32(math.Atan2(float64(-dir.X), float64(-dir.Y)))
}

// convertMeshGradient converts the `mesh_gradient` fill variant (§6):
// a Columns x Rows grid of points (either `[x,y]` pairs or
// `{position, leftHandle?, rightHandle?, topHandle?, bottomHandle?}`
// objects) plus a flat per-point color array.
func convertMeshGradient(v gjson.Result, op string) (gradient.Gradient, error) {
	base, err := gradientBase(v, op)
	if err != nil {
		return nil, err
	}
	cols := int(v.Get("columns").Int())
	rows := int(v.Get("rows").Int())
	points := make([]gradient.MeshPoint, 0, cols*rows)
	for _, p := range v.Get("points").Array() {
		points = append(points, convertMeshPoint(p))
	}
	colorList := make([]color.RGBA, 0)
	for _, c := range v.Get("colors").Array() {
		parsed, err := colors.Parse(c.String())
		if err != nil {
			return nil, vserr.Wrap(vserr.TypeMismatch, op, c.String(), err)
		}
		colorList = append(colorList, parsed)
	}
	return &gradient.Mesh{Base: base, Columns: cols, Rows: rows, Points: points, Colors: colorList}, nil
}

func convertMeshPoint(p gjson.Result) gradient.MeshPoint {
	if p.IsArray() {
		arr := p.Array()
		if len(arr) >= 2 {
			return gradient.MeshPoint{Position: math32.Vec2(float32(arr[0].Float()), float32(arr[1].Float()))}
		}
		return gradient.MeshPoint{}
	}
	mp := gradient.MeshPoint{Position: math32.Vec2(float32(p.Get("position.x").Float()), float32(p.Get("position.y").Float()))}
	readHandle := func(key string) *math32.Vector2 {
		h := p.Get(key)
		if !h.Exists() {
			return nil
		}
		v := math32.Vec2(float32(h.Get("x").Float()), float32(h.Get("y").Float()))
		return &v
	}
	mp.Handle.Left = readHandle("leftHandle")
	mp.Handle.Right = readHandle("rightHandle")
	mp.Handle.Top = readHandle("topHandle")
	mp.Handle.Bottom = readHandle("bottomHandle")
	return mp
}

func exportMeshGradientInto(m map[string]any, g gradient.Gradient) {
	mesh, ok := g.(*gradient.Mesh)
	if !ok {
		return
	}
	m["columns"] = mesh.Columns
	m["rows"] = mesh.Rows
	points := make([]any, 0, len(mesh.Points))
	for _, p := range mesh.Points {
		pm := map[string]any{"position": map[string]any{"x": p.Position.X, "y": p.Position.Y}}
		writeHandle := func(key string, h *math32.Vector2) {
			if h != nil {
				pm[key] = map[string]any{"x": h.X, "y": h.Y}
			}
		}
		writeHandle("leftHandle", p.Handle.Left)
		writeHandle("rightHandle", p.Handle.Right)
		writeHandle("topHandle", p.Handle.Top)
		writeHandle("bottomHandle", p.Handle.Bottom)
		points = append(points, pm)
	}
	m["points"] = points
	cs := make([]any, 0, len(mesh.Colors))
	for _, c := range mesh.Colors {
		cs = append(cs, colors.ToHex(c))
	}
	m["colors"] = cs
}
