// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/cogentcore-design/vectorscene/math32"

// LocalMatrix computes translate(x,y) * rotate(rotation) * scale(flip)
// (§4.2).
func (n *Node) LocalMatrix() math32.Matrix2 {
	sx, sy := float32(1), float32(1)
	if n.FlipX {
		sx = -1
	}
	if n.FlipY {
		sy = -1
	}
	return math32.Translate2D(n.X, n.Y).Mul(math32.Rotate2D(n.Rotation)).Mul(math32.Scale2D(sx, sy))
}

// WorldMatrix computes parent.WorldMatrix * LocalMatrix, with the
// viewport's matrix being the identity (§4.2).
func (n *Node) WorldMatrix() math32.Matrix2 {
	if n.Parent == nil {
		return math32.Identity2()
	}
	return n.Parent.WorldMatrix().Mul(n.LocalMatrix())
}

// TextMeasurer is the narrow interface the core consumes from font
// shaping, an external collaborator (§1, §6): it shapes a text run and
// returns its metrics. The core never shapes text itself.
type TextMeasurer interface {
	// Measure shapes content at the given font settings and an optional
	// max width (0 = unbounded), returning the resulting bounding size.
	Measure(content string, fontFamily string, fontSize, lineHeight, letterSpacing float32, maxWidth float32) math32.Vector2
}

// LocalBounds computes the node's type-specific local bounding box
// (§4.2). Groups recurse into children (transformed by each child's local
// matrix); shapes use (0,0,w,h); text uses the external TextMeasurer.
func (n *Node) LocalBounds(ts TextMeasurer) math32.Box2 {
	switch n.Type {
	case TypeGroup, TypeViewport:
		return n.childrenUnionBounds(ts)
	case TypeText:
		return n.textLocalBounds(ts)
	default:
		return math32.BoxFromPosSize(math32.Vec2(0, 0), math32.Vec2(n.Width, n.Height))
	}
}

func (n *Node) childrenUnionBounds(ts TextMeasurer) math32.Box2 {
	var out math32.Box2
	first := true
	for _, c := range n.Children {
		cb := c.LocalBounds(ts).MulMatrix2(c.LocalMatrix())
		if first {
			out = cb
			first = false
		} else {
			out = out.Union(cb)
		}
	}
	return out
}

func (n *Node) textLocalBounds(ts TextMeasurer) math32.Box2 {
	if ts == nil {
		return math32.BoxFromPosSize(math32.Vec2(0, 0), math32.Vec2(n.Width, n.Height))
	}
	content, _ := n.Resolved(PropTextContent, nil)
	s, _ := content.(string)
	family, _ := n.Resolved(PropFontFamily, nil)
	famStr, _ := family.(string)
	fontSize := resolvedFloat(n, PropFontSize, 16)
	lineHeight := resolvedFloat(n, PropLineHeight, fontSize*1.2)
	letterSpacing := resolvedFloat(n, PropLetterSpacing, 0)
	sz := ts.Measure(s, famStr, fontSize, lineHeight, letterSpacing, n.Width)
	return math32.BoxFromPosSize(math32.Vec2(0, 0), sz)
}

func resolvedFloat(n *Node, key string, def float32) float32 {
	v, ok := n.Resolved(key, nil)
	if !ok {
		return def
	}
	if f, ok := v.(float32); ok {
		return f
	}
	return def
}

// VisualLocalBounds is the local bounds expanded by stroke and effects
// (§4.2): fill-path bounds ∪ stroke bounds ∪ effect expansion.
func (n *Node) VisualLocalBounds(ts TextMeasurer) math32.Box2 {
	b := n.LocalBounds(ts)
	if sv, ok := n.Resolved(PropStroke, nil); ok {
		if s, ok := sv.(Stroke); ok && s.Width > 0 {
			switch s.Align {
			case StrokeOutside:
				b = b.Expand(s.Width)
			case StrokeCenter:
				b = b.Expand(s.Width / 2)
			case StrokeInside:
				// no expansion: the stroke is drawn inward.
			}
		}
	}
	if ev, ok := n.Resolved(PropEffects, nil); ok {
		if effects, ok := ev.([]Effect); ok {
			for _, e := range effects {
				if !e.Enabled {
					continue
				}
				switch e.Kind {
				case EffectShadow:
					d := e.Radius + e.Spread
					inset := func(v float32) float32 {
						if v < 0 {
							return 0
						}
						return v
					}
					b = b.ExpandInsets(
						inset(d-e.OffsetY), inset(d+e.OffsetX), inset(d+e.OffsetY), inset(d-e.OffsetX),
					)
				case EffectLayerBlur:
					b = b.Expand(e.Radius)
				}
			}
		}
	}
	return b
}
