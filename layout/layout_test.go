// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
)

func frameWith(dir scene.Direction, pad scene.Padding, spacing float32) *scene.Node {
	f := scene.NewNode("frame", scene.TypeFrame)
	f.Props.Set(scene.PropLayoutMode, dir)
	f.Props.Set(scene.PropPadding, pad)
	f.Props.Set(scene.PropChildSpacing, spacing)
	f.Props.Set(scene.PropAlignItems, scene.AlignStart)
	f.Props.Set(scene.PropJustifyContent, scene.JustifyStart)
	f.Props.Set(scene.PropHorizontalSizing, scene.FitContent(0, false))
	f.Props.Set(scene.PropVerticalSizing, scene.FitContent(0, false))
	return f
}

func fixedChild(id string, w, h float32) *scene.Node {
	n := scene.NewNode(id, scene.TypeRectangle)
	n.Width, n.Height = w, h
	n.Props.Set(scene.PropHorizontalSizing, scene.Fixed(w))
	n.Props.Set(scene.PropVerticalSizing, scene.Fixed(h))
	return n
}

func attach(parent, child *scene.Node) {
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// Scenario A — linear horizontal layout.
func TestScenarioALinearHorizontal(t *testing.T) {
	f := frameWith(scene.DirectionHorizontal, scene.Padding{Top: 10, Right: 10, Bottom: 10, Left: 10}, 5)
	c1 := fixedChild("c1", 50, 30)
	c2 := fixedChild("c2", 70, 40)
	attach(f, c1)
	attach(f, c2)

	Run(f, nil, nil)

	assert.Equal(t, float32(145), f.Width)
	assert.Equal(t, float32(60), f.Height)
	assert.Equal(t, float32(10), c1.X)
	assert.Equal(t, float32(10), c1.Y)
	assert.Equal(t, float32(65), c2.X)
	assert.Equal(t, float32(10), c2.Y)
}

// Scenario B — fit/fill mix.
func TestScenarioBFitFillMix(t *testing.T) {
	f := scene.NewNode("frame", scene.TypeFrame)
	f.Width = 200
	f.Props.Set(scene.PropLayoutMode, scene.DirectionHorizontal)
	f.Props.Set(scene.PropPadding, scene.Padding{})
	f.Props.Set(scene.PropChildSpacing, float32(0))
	f.Props.Set(scene.PropHorizontalSizing, scene.Fixed(float32(200)))
	f.Props.Set(scene.PropVerticalSizing, scene.FitContent(0, false))

	fixed := fixedChild("fixed", 40, 10)
	fill1 := scene.NewNode("fill1", scene.TypeRectangle)
	fill1.Props.Set(scene.PropHorizontalSizing, scene.FillContainerDim(0, false))
	fill1.Props.Set(scene.PropVerticalSizing, scene.Fixed(float32(10)))
	fill2 := scene.NewNode("fill2", scene.TypeRectangle)
	fill2.Props.Set(scene.PropHorizontalSizing, scene.FillContainerDim(0, false))
	fill2.Props.Set(scene.PropVerticalSizing, scene.Fixed(float32(10)))

	attach(f, fixed)
	attach(f, fill1)
	attach(f, fill2)

	Run(f, nil, nil)

	assert.Equal(t, float32(40), fixed.Width)
	assert.Equal(t, float32(80), fill1.Width)
	assert.Equal(t, float32(80), fill2.Width)
}

func TestFitContentEmptyUsesPaddingOnly(t *testing.T) {
	f := frameWith(scene.DirectionNone, scene.Padding{Top: 3, Right: 4, Bottom: 5, Left: 6}, 0)
	Run(f, nil, nil)
	assert.Equal(t, float32(10), f.Width)  // 6 + 4
	assert.Equal(t, float32(8), f.Height) // 3 + 5
}

func TestGroupRescaleByFactor(t *testing.T) {
	g := scene.NewNode("g", scene.TypeGroup)
	c := scene.NewNode("c", scene.TypeRectangle)
	c.X, c.Width = 10, 20 // extent (X+Width) = 30
	attach(g, c)

	g.Width = 60 // rescale by factor 2
	rescaleGroup(g, math32.X)
	assert.InDelta(t, 20, c.X, 0.001)
	assert.InDelta(t, 40, c.Width, 0.001)
}

func TestGroupRescaleFloorsAtEpsilon(t *testing.T) {
	g := scene.NewNode("g", scene.TypeGroup)
	c := scene.NewNode("c", scene.TypeRectangle)
	c.Width = 10
	attach(g, c)
	g.Width = 0

	rescaleGroup(g, math32.X)
	assert.Greater(t, c.Width, float32(0))
}

func TestSpaceBetweenSingleChildBehavesLikeStart(t *testing.T) {
	f := frameWith(scene.DirectionHorizontal, scene.Padding{}, 0)
	f.Width = 100
	f.Props.Set(scene.PropJustifyContent, scene.JustifySpaceBetween)
	c := fixedChild("only", 20, 20)
	attach(f, c)

	positionPrimary([]*scene.Node{c}, 0, 100, 0, scene.JustifySpaceBetween, math32.X)
	assert.Equal(t, float32(0), c.X)
}

func TestInsertionIndex(t *testing.T) {
	f := frameWith(scene.DirectionHorizontal, scene.Padding{}, 0)
	c1 := fixedChild("c1", 50, 30)
	c2 := fixedChild("c2", 50, 30)
	attach(f, c1)
	attach(f, c2)
	Run(f, nil, nil)

	idx := InsertionIndex(f, nil, 5, 0)
	assert.Equal(t, 0, idx)
	idx = InsertionIndex(f, nil, 1000, 0)
	assert.Equal(t, 2, idx)
}
