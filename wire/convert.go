// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cogentcore-design/vectorscene/colors"
	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// variableRef reports whether s is a `"$name"` variable reference (§6)
// and, if so, returns the bare name.
func variableRef(s string) (string, bool) {
	if strings.HasPrefix(s, "$") && len(s) > 1 {
		return s[1:], true
	}
	return "", false
}

// lookupVariable resolves a `"$name"` reference against the expected
// type, failing with TypeMismatch per §6 ("type mismatch is a fatal parse
// error for that property").
func lookupVariable(name string, expect variable.Type, vars *variable.Manager, op string) (variable.Handle, error) {
	v, err := vars.Get(name, expect)
	if err != nil {
		return nil, vserr.Wrap(vserr.TypeMismatch, op, name, err)
	}
	return v, nil
}

// convertNumber converts a number-or-variable field (§4.5 "typed
// converters... number-or-variable").
func convertNumber(v gjson.Result, vars *variable.Manager, op string) (any, error) {
	switch v.Type {
	case gjson.Number:
		return float32(v.Float()), nil
	case gjson.String:
		if name, ok := variableRef(v.String()); ok {
			return lookupVariable(name, variable.Number, vars, op)
		}
		f, err := strconv.ParseFloat(v.String(), 32)
		if err != nil {
			return nil, vserr.Wrap(vserr.TypeMismatch, op, v.String(), err)
		}
		return float32(f), nil
	default:
		return nil, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
}

// convertBool converts a boolean-or-variable field.
func convertBool(v gjson.Result, vars *variable.Manager, op string) (any, error) {
	switch v.Type {
	case gjson.True, gjson.False:
		return v.Bool(), nil
	case gjson.String:
		if name, ok := variableRef(v.String()); ok {
			return lookupVariable(name, variable.Boolean, vars, op)
		}
	}
	return nil, vserr.New(vserr.TypeMismatch, op, v.Raw)
}

// convertColor converts a color-or-variable field: a hex string, or
// `"$name"` bound to a Color-typed Variable.
func convertColor(v gjson.Result, vars *variable.Manager, op string) (any, error) {
	if v.Type != gjson.String {
		return nil, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
	s := v.String()
	if name, ok := variableRef(s); ok {
		return lookupVariable(name, variable.Color, vars, op)
	}
	c, err := colors.Parse(s)
	if err != nil {
		return nil, vserr.Wrap(vserr.TypeMismatch, op, s, err)
	}
	return c, nil
}

// convertString converts a string-or-variable field.
func convertString(v gjson.Result, vars *variable.Manager, op string) (any, error) {
	if v.Type != gjson.String {
		return nil, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
	s := v.String()
	if name, ok := variableRef(s); ok {
		return lookupVariable(name, variable.String, vars, op)
	}
	return s, nil
}

// convertDimension converts a width/height field, which accepts a number,
// a `"$name"` variable reference, or a sizing-behavior string (§6):
// `"fill_container"`, `"fit_content"`, `"fill_container(<fallback>)"`,
// `"fit_content(<fallback>)"`.
func convertDimension(v gjson.Result, vars *variable.Manager, op string) (scene.Dimension, error) {
	switch v.Type {
	case gjson.Number:
		return scene.Fixed(float32(v.Float())), nil
	case gjson.String:
		s := v.String()
		if name, ok := variableRef(s); ok {
			h, err := lookupVariable(name, variable.Number, vars, op)
			if err != nil {
				return scene.Dimension{}, err
			}
			return scene.Fixed(h), nil
		}
		return parseSizingString(s, op)
	default:
		return scene.Dimension{}, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
}

// parseSizingString parses the four sizing-behavior spellings (§6).
func parseSizingString(s, op string) (scene.Dimension, error) {
	parseFallback := func(rest string) (float32, bool, error) {
		rest = strings.TrimPrefix(rest, "(")
		rest = strings.TrimSuffix(rest, ")")
		if rest == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(rest, 32)
		if err != nil {
			return 0, false, vserr.Wrap(vserr.TypeMismatch, op, s, err)
		}
		return float32(f), true, nil
	}
	switch {
	case s == "fill_container":
		return scene.FillContainerDim(0, false), nil
	case s == "fit_content":
		return scene.FitContent(0, false), nil
	case strings.HasPrefix(s, "fill_container("):
		fb, has, err := parseFallback(strings.TrimPrefix(s, "fill_container"))
		return scene.FillContainerDim(fb, has), err
	case strings.HasPrefix(s, "fit_content("):
		fb, has, err := parseFallback(strings.TrimPrefix(s, "fit_content"))
		return scene.FitContent(fb, has), err
	default:
		return scene.Dimension{}, vserr.New(vserr.TypeMismatch, op, s)
	}
}

// exportDimension is the inverse of convertDimension.
func exportDimension(d scene.Dimension) any {
	switch d.Behavior {
	case scene.SizingFitContent:
		if d.HasFallback {
			return fmt.Sprintf("fit_content(%v)", d.Fallback)
		}
		return "fit_content"
	case scene.SizingFillContainer:
		if d.HasFallback {
			return fmt.Sprintf("fill_container(%v)", d.Fallback)
		}
		return "fill_container"
	default:
		return exportScalar(d.Value)
	}
}

// exportScalar is the inverse of convertNumber/convertBool/convertColor/
// convertString: a Variable handle becomes `"$name"`, everything else
// passes through as its concrete wire representation.
func exportScalar(v any) any {
	if h, ok := v.(variable.Handle); ok {
		if h == nil {
			return nil
		}
		return "$" + h.Name
	}
	if c, ok := v.(color.RGBA); ok {
		return colors.ToHex(c)
	}
	return v
}

// convertLayoutMode converts the `layout.mode` string to a Direction.
func convertLayoutMode(s string) scene.Direction {
	switch s {
	case "horizontal":
		return scene.DirectionHorizontal
	case "vertical":
		return scene.DirectionVertical
	default:
		return scene.DirectionNone
	}
}

func exportLayoutMode(d scene.Direction) string {
	switch d {
	case scene.DirectionHorizontal:
		return "horizontal"
	case scene.DirectionVertical:
		return "vertical"
	default:
		return "none"
	}
}

func convertJustify(s string) scene.Justify {
	switch s {
	case "center":
		return scene.JustifyCenter
	case "end":
		return scene.JustifyEnd
	case "space-between":
		return scene.JustifySpaceBetween
	case "space-around":
		return scene.JustifySpaceAround
	default:
		return scene.JustifyStart
	}
}

func exportJustify(j scene.Justify) string {
	switch j {
	case scene.JustifyCenter:
		return "center"
	case scene.JustifyEnd:
		return "end"
	case scene.JustifySpaceBetween:
		return "space-between"
	case scene.JustifySpaceAround:
		return "space-around"
	default:
		return "start"
	}
}

func convertAlign(s string) scene.Align {
	switch s {
	case "center":
		return scene.AlignCenter
	case "end":
		return scene.AlignEnd
	default:
		return scene.AlignStart
	}
}

func exportAlign(a scene.Align) string {
	switch a {
	case scene.AlignCenter:
		return "center"
	case scene.AlignEnd:
		return "end"
	default:
		return "start"
	}
}

func convertStrokeAlign(s string) scene.StrokeAlign {
	switch s {
	case "center":
		return scene.StrokeCenter
	case "outside":
		return scene.StrokeOutside
	default:
		return scene.StrokeInside
	}
}

func exportStrokeAlign(a scene.StrokeAlign) string {
	switch a {
	case scene.StrokeCenter:
		return "center"
	case scene.StrokeOutside:
		return "outside"
	default:
		return "inside"
	}
}

// convertPadding converts a `padding` field, either a single number
// (applied to all four sides) or `{top,right,bottom,left}`.
func convertPadding(v gjson.Result, op string) (scene.Padding, error) {
	switch v.Type {
	case gjson.Number:
		f := float32(v.Float())
		return scene.Padding{Top: f, Right: f, Bottom: f, Left: f}, nil
	case gjson.JSON:
		if v.IsArray() {
			arr := v.Array()
			if len(arr) != 4 {
				return scene.Padding{}, vserr.New(vserr.TypeMismatch, op, v.Raw)
			}
			return scene.Padding{
				Top: float32(arr[0].Float()), Right: float32(arr[1].Float()),
				Bottom: float32(arr[2].Float()), Left: float32(arr[3].Float()),
			}, nil
		}
		return scene.Padding{
			Top:    float32(v.Get("top").Float()),
			Right:  float32(v.Get("right").Float()),
			Bottom: float32(v.Get("bottom").Float()),
			Left:   float32(v.Get("left").Float()),
		}, nil
	default:
		return scene.Padding{}, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
}

// exportPadding is the inverse of convertPadding.
func exportPadding(p scene.Padding) any {
	if p.Top == p.Right && p.Right == p.Bottom && p.Bottom == p.Left {
		return p.Top
	}
	return map[string]any{"top": p.Top, "right": p.Right, "bottom": p.Bottom, "left": p.Left}
}

// exportCornerRadius is the inverse of convertCornerRadius.
func exportCornerRadius(r scene.CornerRadius) any {
	if r.TopLeft == r.TopRight && r.TopRight == r.BottomRight && r.BottomRight == r.BottomLeft {
		return r.TopLeft
	}
	return map[string]any{
		"topLeft": r.TopLeft, "topRight": r.TopRight,
		"bottomRight": r.BottomRight, "bottomLeft": r.BottomLeft,
	}
}

// convertCornerRadius converts a `cornerRadius` field: a uniform number
// or `{topLeft,topRight,bottomRight,bottomLeft}`.
func convertCornerRadius(v gjson.Result, op string) (scene.CornerRadius, error) {
	switch v.Type {
	case gjson.Number:
		return scene.UniformCornerRadius(float32(v.Float())), nil
	case gjson.JSON:
		return scene.CornerRadius{
			TopLeft:     float32(v.Get("topLeft").Float()),
			TopRight:    float32(v.Get("topRight").Float()),
			BottomRight: float32(v.Get("bottomRight").Float()),
			BottomLeft:  float32(v.Get("bottomLeft").Float()),
		}, nil
	default:
		return scene.CornerRadius{}, vserr.New(vserr.TypeMismatch, op, v.Raw)
	}
}

// convertStroke converts the `stroke` field (§3 Properties "visual").
func convertStroke(v gjson.Result, vars *variable.Manager, op string) (scene.Stroke, error) {
	c, err := convertColor(v.Get("color"), vars, op)
	if err != nil {
		return scene.Stroke{}, err
	}
	if h, ok := c.(variable.Handle); ok {
		c = variable.Resolve(h, nil)
	}
	rgba, _ := c.(color.RGBA)
	return scene.Stroke{
		Color: rgba,
		Width: float32(v.Get("width").Float()),
		Align: convertStrokeAlign(v.Get("align").String()),
	}, nil
}

func exportStroke(s scene.Stroke) map[string]any {
	return map[string]any{
		"color": colors.ToHex(s.Color),
		"width": s.Width,
		"align": exportStrokeAlign(s.Align),
	}
}

// convertEffects converts the `effects` field: a single effect object or
// an array of them (§6).
func convertEffects(v gjson.Result, op string) ([]scene.Effect, error) {
	items := asArray(v)
	out := make([]scene.Effect, 0, len(items))
	for _, it := range items {
		e, err := convertEffect(it, op)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func convertEffect(v gjson.Result, op string) (scene.Effect, error) {
	kind := v.Get("type").String()
	e := scene.Effect{Enabled: true}
	if en := v.Get("enabled"); en.Exists() {
		e.Enabled = en.Bool()
	}
	switch kind {
	case "blur":
		e.Kind = scene.EffectLayerBlur
		e.Radius = float32(v.Get("radius").Float())
	case "background_blur":
		e.Kind = scene.EffectBackgroundBlur
		e.Radius = float32(v.Get("radius").Float())
	case "shadow":
		e.Kind = scene.EffectShadow
		e.Radius = float32(v.Get("blur").Float())
		e.Spread = float32(v.Get("spread").Float())
		e.OffsetX = float32(v.Get("offset.x").Float())
		e.OffsetY = float32(v.Get("offset.y").Float())
		c, err := colors.Parse(v.Get("color").String())
		if err != nil {
			return scene.Effect{}, vserr.Wrap(vserr.TypeMismatch, op, v.Raw, err)
		}
		e.Color = c
	default:
		return scene.Effect{}, vserr.New(vserr.TypeMismatch, op, kind)
	}
	e.BlendMode = v.Get("blendMode").String()
	return e, nil
}

func exportEffects(effects []scene.Effect) []any {
	out := make([]any, 0, len(effects))
	for _, e := range effects {
		m := map[string]any{"enabled": e.Enabled}
		if e.BlendMode != "" {
			m["blendMode"] = e.BlendMode
		}
		switch e.Kind {
		case scene.EffectLayerBlur:
			m["type"] = "blur"
			m["radius"] = e.Radius
		case scene.EffectBackgroundBlur:
			m["type"] = "background_blur"
			m["radius"] = e.Radius
		case scene.EffectShadow:
			m["type"] = "shadow"
			m["shadowType"] = "outer"
			m["color"] = colors.ToHex(e.Color)
			m["offset"] = map[string]any{"x": e.OffsetX, "y": e.OffsetY}
			m["blur"] = e.Radius
			m["spread"] = e.Spread
		}
		out = append(out, m)
	}
	return out
}

// asArray normalizes a "single value or array" wire field to a slice of
// gjson.Result (§6: "Fills (per field: single value or array)").
func asArray(v gjson.Result) []gjson.Result {
	if !v.Exists() {
		return nil
	}
	if v.IsArray() {
		return v.Array()
	}
	return []gjson.Result{v}
}

// convertFills converts the `fill`/`fills` field (§6).
func convertFills(v gjson.Result, vars *variable.Manager, op string) ([]scene.Fill, error) {
	items := asArray(v)
	out := make([]scene.Fill, 0, len(items))
	for _, it := range items {
		f, err := convertFill(it, vars, op)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func convertFill(v gjson.Result, vars *variable.Manager, op string) (scene.Fill, error) {
	// A bare string is a solid color (possibly a variable reference).
	if v.Type == gjson.String {
		c, err := convertColor(v, vars, op)
		if err != nil {
			return scene.Fill{}, err
		}
		f := scene.Fill{Kind: scene.FillSolid, Enabled: true, Opacity: 1}
		if h, ok := c.(variable.Handle); ok {
			// Solid fills store a concrete color; a variable-bound solid
			// fill resolves the handle once here with no theme, and the
			// handle is not kept, so later theme or value changes of the
			// Variable do not reach this fill.
			f.Color, _ = variable.Resolve(h, nil).(color.RGBA)
			return f, nil
		}
		f.Color, _ = c.(color.RGBA)
		return f, nil
	}
	kind := v.Get("type").String()
	enabled := true
	if en := v.Get("enabled"); en.Exists() {
		enabled = en.Bool()
	}
	opacity := float32(1)
	if op2 := v.Get("opacity"); op2.Exists() {
		opacity = float32(op2.Float())
	}
	f := scene.Fill{Enabled: enabled, Opacity: opacity, BlendMode: v.Get("blendMode").String()}
	switch kind {
	case "color":
		c, err := convertColor(v.Get("color"), vars, op)
		if err != nil {
			return scene.Fill{}, err
		}
		f.Kind = scene.FillSolid
		if h, ok := c.(variable.Handle); ok {
			f.Color, _ = variable.Resolve(h, nil).(color.RGBA)
		} else {
			f.Color, _ = c.(color.RGBA)
		}
	case "image":
		f.Kind = scene.FillImage
		f.ImageURL = v.Get("url").String()
		f.ImageMode = v.Get("mode").String()
	case "gradient":
		f.Kind = scene.FillGradient
		g, err := convertGradient(v, op)
		if err != nil {
			return scene.Fill{}, err
		}
		f.Gradient = g
	case "mesh_gradient":
		f.Kind = scene.FillMesh
		g, err := convertMeshGradient(v, op)
		if err != nil {
			return scene.Fill{}, err
		}
		f.Gradient = g
	default:
		return scene.Fill{}, vserr.New(vserr.TypeMismatch, op, kind)
	}
	return f, nil
}

func exportFills(fills []scene.Fill) any {
	out := make([]any, 0, len(fills))
	for _, f := range fills {
		out = append(out, exportFill(f))
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func exportFill(f scene.Fill) map[string]any {
	m := map[string]any{"enabled": f.Enabled, "opacity": f.Opacity}
	if f.BlendMode != "" {
		m["blendMode"] = f.BlendMode
	}
	switch f.Kind {
	case scene.FillSolid:
		m["type"] = "color"
		m["color"] = colors.ToHex(f.Color)
	case scene.FillImage:
		m["type"] = "image"
		m["url"] = f.ImageURL
		m["mode"] = f.ImageMode
	case scene.FillGradient:
		m["type"] = "gradient"
		exportGradientInto(m, f.Gradient)
	case scene.FillMesh:
		m["type"] = "mesh_gradient"
		exportMeshGradientInto(m, f.Gradient)
	}
	return m
}
