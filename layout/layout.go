// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the two-pass fit-then-fill sizing algorithm,
// run independently per axis (horizontal before vertical), followed by a
// position pass that applies justify/align.
package layout

import (
	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
)

// axisOrder fixes horizontal-first processing so text wrapping can react
// to a settled width before vertical size depends on it.
var axisOrder = [2]math32.Dims{math32.X, math32.Y}

// Run executes the full fit/fill/position pipeline over root's subtree
// under the given active theme, consulting ts to shape text nodes.
func Run(root *scene.Node, theme variable.Theme, ts scene.TextMeasurer) {
	for _, axis := range axisOrder {
		fitPass(root, axis, theme, ts)
	}
	for _, axis := range axisOrder {
		fillPass(root, axis, theme)
	}
	for _, axis := range axisOrder {
		positionPass(root, axis, theme)
	}
}

func participates(n *scene.Node, theme variable.Theme) bool {
	if v, ok := n.Resolved(scene.PropEnabled, theme); ok {
		if b, ok := v.(bool); ok && !b {
			return false
		}
	}
	return true
}

func getDim(n *scene.Node, axis math32.Dims) float32 {
	if axis == math32.X {
		return n.Width
	}
	return n.Height
}

func setDim(n *scene.Node, axis math32.Dims, v float32) {
	if axis == math32.X {
		n.Width = v
	} else {
		n.Height = v
	}
}

func sizingBehavior(n *scene.Node, axis math32.Dims, theme variable.Theme) scene.Dimension {
	key := scene.PropHorizontalSizing
	if axis == math32.Y {
		key = scene.PropVerticalSizing
	}
	raw, ok := n.RawProperty(key)
	if !ok {
		return scene.Fixed(getDim(n, axis))
	}
	d, ok := raw.(scene.Dimension)
	if !ok {
		return scene.Fixed(getDim(n, axis))
	}
	if d.Behavior == scene.SizingFixed {
		resolved := variable.Resolve(d.Value, theme)
		if f, ok := resolved.(float32); ok {
			d.Value = f
		}
	}
	return d
}

func direction(n *scene.Node, theme variable.Theme) scene.Direction {
	v, ok := n.Resolved(scene.PropLayoutMode, theme)
	if !ok {
		return scene.DirectionNone
	}
	d, _ := v.(scene.Direction)
	return d
}

func padding(n *scene.Node, theme variable.Theme) scene.Padding {
	v, ok := n.Resolved(scene.PropPadding, theme)
	if !ok {
		return scene.Padding{}
	}
	p, _ := v.(scene.Padding)
	return p
}

func childSpacing(n *scene.Node, theme variable.Theme) float32 {
	v, ok := n.Resolved(scene.PropChildSpacing, theme)
	if !ok {
		return 0
	}
	f, _ := v.(float32)
	return f
}

func justify(n *scene.Node, theme variable.Theme) scene.Justify {
	v, ok := n.Resolved(scene.PropJustifyContent, theme)
	if !ok {
		return scene.JustifyStart
	}
	j, _ := v.(scene.Justify)
	return j
}

func align(n *scene.Node, theme variable.Theme) scene.Align {
	v, ok := n.Resolved(scene.PropAlignItems, theme)
	if !ok {
		return scene.AlignStart
	}
	a, _ := v.(scene.Align)
	return a
}

// paddingAlong returns (leading, trailing) padding for axis: (left,right)
// on X, (top,bottom) on Y.
func paddingAlong(p scene.Padding, axis math32.Dims) (lead, trail float32) {
	if axis == math32.X {
		return p.Left, p.Right
	}
	return p.Top, p.Bottom
}

// fitPass walks post-order: children are fitted before their parent so a
// FitContent parent can aggregate already-settled child outer sizes.
func fitPass(n *scene.Node, axis math32.Dims, theme variable.Theme, ts scene.TextMeasurer) {
	if !participates(n, theme) {
		return
	}
	for _, c := range n.Children {
		fitPass(c, axis, theme, ts)
	}

	if n.Type == scene.TypeText {
		fitText(n, axis, theme, ts)
		return
	}

	dim := sizingBehavior(n, axis, theme)
	if dim.Behavior != scene.SizingFitContent {
		return
	}
	dir := direction(n, theme)
	pad := padding(n, theme)
	lead, trail := paddingAlong(pad, axis)

	if dir == scene.DirectionNone || len(n.Children) == 0 {
		fallback := float32(0)
		if dim.HasFallback {
			fallback = dim.Fallback
		}
		setDim(n, axis, fallback+lead+trail)
		return
	}

	primaryAxis := primaryAxisOf(dir)
	var agg float32
	if axis == primaryAxis {
		spacing := childSpacing(n, theme)
		for _, c := range visibleChildren(n, theme) {
			agg += getDim(c, axis)
		}
		if nv := len(visibleChildren(n, theme)); nv > 1 {
			agg += spacing * float32(nv-1)
		}
	} else {
		for _, c := range visibleChildren(n, theme) {
			if v := getDim(c, axis); v > agg {
				agg = v
			}
		}
	}
	setDim(n, axis, agg+lead+trail)
}

func visibleChildren(n *scene.Node, theme variable.Theme) []*scene.Node {
	out := make([]*scene.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if participates(c, theme) {
			out = append(out, c)
		}
	}
	return out
}

func primaryAxisOf(dir scene.Direction) math32.Dims {
	if dir == scene.DirectionVertical {
		return math32.Y
	}
	return math32.X
}

// fitText shapes once unbounded to find intrinsic width, then (on the Y
// pass, once width is settled) reshapes at that width to get the final
// height, per the double-shaping rule for multi-line text.
func fitText(n *scene.Node, axis math32.Dims, theme variable.Theme, ts scene.TextMeasurer) {
	if ts == nil {
		return
	}
	content, _ := n.Resolved(scene.PropTextContent, theme)
	s, _ := content.(string)
	family, _ := n.Resolved(scene.PropFontFamily, theme)
	famStr, _ := family.(string)
	fontSize := resolvedFloatOr(n, scene.PropFontSize, theme, 16)
	lineHeight := resolvedFloatOr(n, scene.PropLineHeight, theme, fontSize*1.2)
	letterSpacing := resolvedFloatOr(n, scene.PropLetterSpacing, theme, 0)

	growth, _ := n.Resolved(scene.PropTextGrowth, theme)
	growthStr, _ := growth.(string)

	if axis == math32.X {
		if growthStr == "fixed-width" || growthStr == "fixed-width-height" {
			return // width is authored, not derived
		}
		sz := ts.Measure(s, famStr, fontSize, lineHeight, letterSpacing, 0)
		n.Width = sz.X
		return
	}
	maxWidth := n.Width
	sz := ts.Measure(s, famStr, fontSize, lineHeight, letterSpacing, maxWidth)
	if growthStr != "fixed-width-height" {
		n.Height = sz.Y
	}
}

func resolvedFloatOr(n *scene.Node, key string, theme variable.Theme, def float32) float32 {
	v, ok := n.Resolved(key, theme)
	if !ok {
		return def
	}
	f, ok := v.(float32)
	if !ok {
		return def
	}
	return f
}

// fillPass walks pre-order: a node's inner size must be settled before its
// FillContainer children are sized.
func fillPass(n *scene.Node, axis math32.Dims, theme variable.Theme) {
	if !participates(n, theme) {
		return
	}
	dir := direction(n, theme)
	if dir != scene.DirectionNone && len(n.Children) > 0 {
		pad := padding(n, theme)
		lead, trail := paddingAlong(pad, axis)
		inner := getDim(n, axis) - lead - trail

		primaryAxis := primaryAxisOf(dir)
		visible := visibleChildren(n, theme)

		if axis == primaryAxis {
			spacing := childSpacing(n, theme)
			var fixedTotal float32
			var fillCount int
			for _, c := range visible {
				if sizingBehavior(c, axis, theme).Behavior == scene.SizingFillContainer {
					fillCount++
				} else {
					fixedTotal += getDim(c, axis)
				}
			}
			if len(visible) > 1 {
				fixedTotal += spacing * float32(len(visible)-1)
			}
			if fillCount > 0 {
				remainder := inner - fixedTotal
				each := remainder / float32(fillCount)
				if each < 1 {
					each = 1
				}
				for _, c := range visible {
					if sizingBehavior(c, axis, theme).Behavior == scene.SizingFillContainer {
						setDim(c, axis, each)
					}
				}
			}
		} else {
			for _, c := range visible {
				if sizingBehavior(c, axis, theme).Behavior == scene.SizingFillContainer {
					v := inner
					if v < 1 {
						v = 1
					}
					setDim(c, axis, v)
				}
			}
		}
	}

	if n.Type == scene.TypeGroup {
		rescaleGroup(n, axis)
	}

	for _, c := range n.Children {
		fillPass(c, axis, theme)
	}
}

// rescaleGroup applies the node's newly-set size as a proportional rescale
// of every child's position and size on axis, with a 1e-6 floor to avoid a
// degenerate collapse.
func rescaleGroup(n *scene.Node, axis math32.Dims) {
	old := groupExtent(n, axis)
	if old < 1e-6 {
		old = 1e-6
	}
	newSize := getDim(n, axis)
	if newSize < 1e-6 {
		newSize = 1e-6
	}
	k := newSize / old
	for _, c := range n.Children {
		if axis == math32.X {
			c.X *= k
			c.Width *= k
		} else {
			c.Y *= k
			c.Height *= k
		}
	}
}

func groupExtent(n *scene.Node, axis math32.Dims) float32 {
	var max float32
	for _, c := range n.Children {
		var edge float32
		if axis == math32.X {
			edge = c.X + c.Width
		} else {
			edge = c.Y + c.Height
		}
		if edge > max {
			max = edge
		}
	}
	return max
}

// positionPass assigns each child's leading coordinate on axis per the
// parent's justifyContent (primary axis) or alignItems (cross axis).
func positionPass(n *scene.Node, axis math32.Dims, theme variable.Theme) {
	if !participates(n, theme) {
		return
	}
	dir := direction(n, theme)
	if dir != scene.DirectionNone && len(n.Children) > 0 {
		pad := padding(n, theme)
		lead, trail := paddingAlong(pad, axis)
		inner := getDim(n, axis) - lead - trail
		primaryAxis := primaryAxisOf(dir)
		visible := visibleChildren(n, theme)

		if axis == primaryAxis {
			positionPrimary(visible, lead, inner, childSpacing(n, theme), justify(n, theme), axis)
		} else {
			positionCross(visible, lead, inner, align(n, theme), axis)
		}
	}
	for _, c := range n.Children {
		positionPass(c, axis, theme)
	}
}

func positionPrimary(children []*scene.Node, lead, inner, spacing float32, j scene.Justify, axis math32.Dims) {
	n := len(children)
	if n == 0 {
		return
	}
	var total float32
	for _, c := range children {
		total += getDim(c, axis)
	}
	gaps := spacing * float32(n-1)
	free := inner - total - gaps

	cursor := lead
	effectiveSpacing := spacing
	switch j {
	case scene.JustifyStart:
		// cursor already at lead
	case scene.JustifyCenter:
		cursor += free / 2
	case scene.JustifyEnd:
		cursor += free
	case scene.JustifySpaceBetween:
		if n == 1 {
			// behaves like Start
		} else {
			effectiveSpacing = spacing + free/float32(n-1)
		}
	case scene.JustifySpaceAround:
		around := free / float32(n)
		cursor += around / 2
		effectiveSpacing = spacing + around
	}

	for _, c := range children {
		if axis == math32.X {
			c.X = cursor
		} else {
			c.Y = cursor
		}
		cursor += getDim(c, axis) + effectiveSpacing
	}
}

func positionCross(children []*scene.Node, lead, inner float32, a scene.Align, axis math32.Dims) {
	for _, c := range children {
		size := getDim(c, axis)
		var pos float32
		switch a {
		case scene.AlignStart:
			pos = lead
		case scene.AlignCenter:
			pos = lead + (inner-size)/2
		case scene.AlignEnd:
			pos = lead + (inner - size)
		}
		if axis == math32.X {
			c.X = pos
		} else {
			c.Y = pos
		}
	}
}

// InsertionIndex finds the insertion point for a drop at (x, y) in
// parent's local coordinates: the first child whose primary-axis midline
// lies past the point, or len(children) if none does.
func InsertionIndex(parent *scene.Node, theme variable.Theme, x, y float32) int {
	dir := direction(parent, theme)
	if dir == scene.DirectionNone {
		return len(parent.Children)
	}
	axis := primaryAxisOf(dir)
	point := x
	if axis == math32.Y {
		point = y
	}
	for i, c := range parent.Children {
		lead := c.X
		size := c.Width
		if axis == math32.Y {
			lead = c.Y
			size = c.Height
		}
		mid := lead + size/2
		if mid > point {
			return i
		}
	}
	return len(parent.Children)
}
