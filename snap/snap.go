// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snap implements the geometric snapping engine: per-axis
// best-delta tracking over anchor points collected from a selection's
// parent and siblings.
package snap

import (
	"math"

	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
)

// Config holds the caller-tunable snap parameters.
type Config struct {
	// Threshold is the maximum screen-space distance (before dividing by
	// Zoom) at which a candidate may snap to an anchor.
	Threshold float32
	Zoom      float32
	// RoundToPixels rounds anchor and candidate coordinates to integers
	// before comparison.
	RoundToPixels bool
	// Enabled disables the engine globally when false.
	Enabled bool
}

// RecordedSnap is one of possibly several snaps tied for bestDelta on an
// axis.
type RecordedSnap struct {
	AnchorPoint   math32.Vector2
	SnapPoint     math32.Vector2
	PositionAlong float32
}

// Result is the outcome of a Run: the delta to apply to the dragged
// selection, plus the ties recorded at that delta per axis (useful for
// rendering snap guides).
type Result struct {
	Delta   math32.Vector2
	Ties    [2][]RecordedSnap
}

// Engine runs the per-axis best-delta search described by the snap
// algorithm: reset, collect anchors, score every (candidate, anchor, axis)
// triple, and return the smallest qualifying delta per axis.
type Engine struct {
	cfg Config
}

// NewEngine constructs an Engine with the given configuration.
func NewEngine(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Run snaps the moving selection's candidate points (its bounding box's 4
// corners + center, in world space) against anchors derived from the
// lead node's parent and non-selected siblings whose world bounds
// overlap viewport, restricted to enabledAxes.
func (e *Engine) Run(lead *scene.Node, selection map[*scene.Node]bool, candidates []math32.Vector2, enabledAxes [2]bool, viewport math32.Box2, ts scene.TextMeasurer) Result {
	var result Result
	if !e.cfg.Enabled {
		return result
	}
	if lead == nil || lead.Parent == nil {
		return result
	}
	for n := range selection {
		if participatesInLayout(n) {
			return result
		}
	}

	anchors := e.collectAnchors(lead.Parent, selection, viewport, ts)

	bestDelta := [2]float32{float32(math.Inf(1)), float32(math.Inf(1))}
	var ties [2][]RecordedSnap

	for axisIdx := 0; axisIdx < 2; axisIdx++ {
		axis := math32.Dims(axisIdx)
		if !enabledAxes[axisIdx] {
			continue
		}
		for _, cand := range candidates {
			cv := cand.Dim(axis)
			if e.cfg.RoundToPixels {
				cv = math32.Round(cv)
			}
			for _, a := range anchors {
				av := a.Dim(axis)
				if e.cfg.RoundToPixels {
					av = math32.Round(av)
				}
				delta := av - cv
				absDelta := math32.Abs(delta)
				threshold := e.cfg.Threshold
				if e.cfg.Zoom != 0 {
					threshold = e.cfg.Threshold / e.cfg.Zoom
				}
				if absDelta >= threshold {
					continue
				}
				if absDelta > math32.Abs(bestDelta[axisIdx]) {
					continue
				}
				rs := RecordedSnap{AnchorPoint: a, SnapPoint: cand, PositionAlong: cand.Dim(axis.Other())}
				if absDelta == math32.Abs(bestDelta[axisIdx]) && !math.IsInf(float64(bestDelta[axisIdx]), 1) {
					ties[axisIdx] = append(ties[axisIdx], rs)
				} else {
					bestDelta[axisIdx] = delta
					ties[axisIdx] = []RecordedSnap{rs}
				}
			}
		}
	}

	result.Ties = ties
	if !math.IsInf(float64(bestDelta[0]), 1) {
		result.Delta.X = bestDelta[0]
	}
	if !math.IsInf(float64(bestDelta[1]), 1) {
		result.Delta.Y = bestDelta[1]
	}
	return result
}

func participatesInLayout(n *scene.Node) bool {
	if n.Parent == nil {
		return false
	}
	v, ok := n.Parent.RawProperty(scene.PropLayoutMode)
	if !ok {
		return false
	}
	d, _ := v.(scene.Direction)
	return d != scene.DirectionNone
}

// collectAnchors gathers the 5 handle points (4 corners + center) of
// parent (if it is a frame) and of every sibling not in selection whose
// world bounds overlap viewport, recursing transparently through
// groups.
func (e *Engine) collectAnchors(parent *scene.Node, selection map[*scene.Node]bool, viewport math32.Box2, ts scene.TextMeasurer) []math32.Vector2 {
	var anchors []math32.Vector2
	if parent.Type == scene.TypeFrame {
		anchors = append(anchors, worldHandles(parent, ts)...)
	}
	for _, sib := range parent.Children {
		anchors = append(anchors, e.anchorsFor(sib, selection, viewport, ts)...)
	}
	return anchors
}

func (e *Engine) anchorsFor(n *scene.Node, selection map[*scene.Node]bool, viewport math32.Box2, ts scene.TextMeasurer) []math32.Vector2 {
	if selection[n] {
		return nil
	}
	if n.Type == scene.TypeGroup {
		var out []math32.Vector2
		for _, c := range n.Children {
			out = append(out, e.anchorsFor(c, selection, viewport, ts)...)
		}
		return out
	}
	if !worldBounds(n, ts).Overlaps(viewport) {
		return nil
	}
	return worldHandles(n, ts)
}

// worldBounds returns n's local bounds transformed into world space.
func worldBounds(n *scene.Node, ts scene.TextMeasurer) math32.Box2 {
	return n.LocalBounds(ts).MulMatrix2(n.WorldMatrix())
}

// worldHandles returns n's local-bounds handles transformed into world
// space.
func worldHandles(n *scene.Node, ts scene.TextMeasurer) []math32.Vector2 {
	b := n.LocalBounds(ts)
	wm := n.WorldMatrix()
	var out []math32.Vector2
	for _, h := range b.Handles() {
		out = append(out, wm.MulPoint(h))
	}
	return out
}
