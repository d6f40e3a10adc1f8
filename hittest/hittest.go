// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hittest implements depth-ordered, world-space hit resolution
// over the scene graph: pointer-to-node picking with frame capture.
package hittest

import (
	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
)

// Point finds the topmost node under (x, y) starting the search at root.
// Children are visited back-to-front (last child drawn on top, checked
// first). A frame that contains a hit descendant normally "captures" the
// hit and is returned in the descendant's place, unless shouldDirectSelect
// is true or the frame is present in allowedNestedSet — either lets the
// search report the descendant instead.
//
// Hit containment is bounding-box only: a node's visual bounds,
// transformed to world space, tested against the point. Disabled nodes
// (enabled == false) and their subtrees never match.
func Point(root *scene.Node, x, y float32, shouldDirectSelect bool, allowedNestedSet map[*scene.Node]bool, ts scene.TextMeasurer) *scene.Node {
	return search(root, x, y, shouldDirectSelect, allowedNestedSet, ts)
}

func search(node *scene.Node, x, y float32, shouldDirectSelect bool, allowedNestedSet map[*scene.Node]bool, ts scene.TextMeasurer) *scene.Node {
	for i := len(node.Children) - 1; i >= 0; i-- {
		c := node.Children[i]
		if !isEnabled(c) {
			continue
		}
		if !containsWorldPoint(c, x, y, ts) {
			continue
		}
		switch c.Type {
		case scene.TypeGroup, scene.TypeViewport:
			if hit := search(c, x, y, shouldDirectSelect, allowedNestedSet, ts); hit != nil {
				return hit
			}
			continue
		case scene.TypeFrame:
			hit := search(c, x, y, shouldDirectSelect, allowedNestedSet, ts)
			if hit == nil {
				return c
			}
			if shouldDirectSelect || allowedNestedSet[c] {
				return hit
			}
			return c
		default:
			return c
		}
	}
	return nil
}

func isEnabled(n *scene.Node) bool {
	v, ok := n.RawProperty(scene.PropEnabled)
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}

func containsWorldPoint(n *scene.Node, x, y float32, ts scene.TextMeasurer) bool {
	b := n.VisualLocalBounds(ts).MulMatrix2(n.WorldMatrix())
	return b.ContainsPoint(math32.Vec2(x, y))
}

// Path returns the chain of nodes from root down to (and including) the
// hit node, for building an allowedNestedSet from a prior hit (e.g. a
// double-click descending one level deeper each time).
func Path(root, hit *scene.Node) []*scene.Node {
	if hit == nil {
		return nil
	}
	var chain []*scene.Node
	for n := hit; n != nil; n = n.Parent {
		chain = append([]*scene.Node{n}, chain...)
		if n == root {
			break
		}
	}
	return chain
}
