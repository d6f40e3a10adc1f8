// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
)

// infiniteViewport covers any geometry a test constructs, so tests that
// aren't specifically exercising the viewport-bounds filter don't need to
// compute one.
var infiniteViewport = math32.B2(-1e6, -1e6, 1e6, 1e6)

func rect(id string, x, w float32) *scene.Node {
	n := scene.NewNode(id, scene.TypeRectangle)
	n.X, n.Y, n.Width, n.Height = x, 0, w, 20
	return n
}

// Scenario F — snapping.
func TestScenarioFSnapping(t *testing.T) {
	parent := scene.NewNode("parent", scene.TypeFrame)
	r1 := rect("r1", 100, 50)
	r2 := rect("r2", 300, 50)
	dragged := rect("dragged", 148, 50)
	for _, c := range []*scene.Node{r1, r2, dragged} {
		c.Parent = parent
		parent.Children = append(parent.Children, c)
	}

	e := NewEngine(Config{Threshold: 5, Zoom: 1, Enabled: true})
	selection := map[*scene.Node]bool{dragged: true}
	candidates := worldHandles(dragged, nil)

	res := e.Run(dragged, selection, candidates, [2]bool{true, true}, infiniteViewport, nil)
	assert.InDelta(t, 2, res.Delta.X, 0.0001)
	assert.InDelta(t, 0, res.Delta.Y, 0.0001)
}

func TestSnapDisabledReturnsZero(t *testing.T) {
	parent := scene.NewNode("parent", scene.TypeFrame)
	r1 := rect("r1", 100, 50)
	dragged := rect("dragged", 148, 50)
	r1.Parent, dragged.Parent = parent, parent
	parent.Children = []*scene.Node{r1, dragged}

	e := NewEngine(Config{Threshold: 5, Zoom: 1, Enabled: false})
	res := e.Run(dragged, map[*scene.Node]bool{dragged: true}, worldHandles(dragged, nil), [2]bool{true, true}, infiniteViewport, nil)
	assert.Equal(t, float32(0), res.Delta.X)
	assert.Equal(t, float32(0), res.Delta.Y)
}

func TestSnapRestrictedAxis(t *testing.T) {
	parent := scene.NewNode("parent", scene.TypeFrame)
	r1 := rect("r1", 100, 50)
	dragged := rect("dragged", 148, 50)
	r1.Parent, dragged.Parent = parent, parent
	parent.Children = []*scene.Node{r1, dragged}

	e := NewEngine(Config{Threshold: 5, Zoom: 1, Enabled: true})
	res := e.Run(dragged, map[*scene.Node]bool{dragged: true}, worldHandles(dragged, nil), [2]bool{false, true}, infiniteViewport, nil)
	assert.Equal(t, float32(0), res.Delta.X)
}

func TestSnapGroupTransparency(t *testing.T) {
	parent := scene.NewNode("parent", scene.TypeFrame)
	group := scene.NewNode("group", scene.TypeGroup)
	inner := rect("inner", 100, 50)
	inner.Parent = group
	group.Children = append(group.Children, inner)
	dragged := rect("dragged", 148, 50)
	group.Parent, dragged.Parent = parent, parent
	parent.Children = []*scene.Node{group, dragged}

	e := NewEngine(Config{Threshold: 5, Zoom: 1, Enabled: true})
	anchors := e.collectAnchors(parent, map[*scene.Node]bool{dragged: true}, infiniteViewport, nil)
	require.NotEmpty(t, anchors)

	var sawInnerEdge bool
	for _, a := range anchors {
		if a.X == 150 {
			sawInnerEdge = true
		}
	}
	assert.True(t, sawInnerEdge)
}

// TestSnapViewportFilter verifies that a sibling whose world bounds fall
// entirely outside the passed-in viewport does not contribute anchors,
// per the documented collectAnchors algorithm.
func TestSnapViewportFilter(t *testing.T) {
	parent := scene.NewNode("parent", scene.TypeFrame)
	near := rect("near", 100, 50)
	far := rect("far", 10000, 50)
	dragged := rect("dragged", 148, 50)
	for _, c := range []*scene.Node{near, far, dragged} {
		c.Parent = parent
		parent.Children = append(parent.Children, c)
	}

	e := NewEngine(Config{Threshold: 5, Zoom: 1, Enabled: true})
	viewport := math32.B2(0, 0, 500, 200)
	anchors := e.collectAnchors(parent, map[*scene.Node]bool{dragged: true}, viewport, nil)
	require.NotEmpty(t, anchors)
	for _, a := range anchors {
		assert.Less(t, a.X, float32(500))
	}
}
