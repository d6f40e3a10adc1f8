// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cogentcore-design/vectorscene/scene"
)

func rect(id string, x, y, w, h float32) *scene.Node {
	n := scene.NewNode(id, scene.TypeRectangle)
	n.X, n.Y, n.Width, n.Height = x, y, w, h
	return n
}

func attach(parent, child *scene.Node) {
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

func TestPointHitsLeaf(t *testing.T) {
	root := scene.NewViewport()
	r := rect("r", 10, 10, 20, 20)
	attach(root, r)

	assert.Equal(t, r, Point(root, 15, 15, false, nil, nil))
	assert.Nil(t, Point(root, 0, 0, false, nil, nil))
}

func TestPointFrameCapturesByDefault(t *testing.T) {
	root := scene.NewViewport()
	frame := rect("frame", 0, 0, 100, 100)
	frame.Type = scene.TypeFrame
	child := rect("child", 10, 10, 20, 20)
	attach(root, frame)
	attach(frame, child)

	assert.Equal(t, frame, Point(root, 15, 15, false, nil, nil))
}

func TestPointFrameDirectSelectReachesChild(t *testing.T) {
	root := scene.NewViewport()
	frame := rect("frame", 0, 0, 100, 100)
	frame.Type = scene.TypeFrame
	child := rect("child", 10, 10, 20, 20)
	attach(root, frame)
	attach(frame, child)

	assert.Equal(t, child, Point(root, 15, 15, true, nil, nil))
}

func TestPointFrameAllowedNestedSetReachesChild(t *testing.T) {
	root := scene.NewViewport()
	frame := rect("frame", 0, 0, 100, 100)
	frame.Type = scene.TypeFrame
	child := rect("child", 10, 10, 20, 20)
	attach(root, frame)
	attach(frame, child)

	allowed := map[*scene.Node]bool{frame: true}
	assert.Equal(t, child, Point(root, 15, 15, false, allowed, nil))
}

func TestPointDisabledNodeSkipped(t *testing.T) {
	root := scene.NewViewport()
	r := rect("r", 10, 10, 20, 20)
	r.Props.Set(scene.PropEnabled, false)
	attach(root, r)

	assert.Nil(t, Point(root, 15, 15, false, nil, nil))
}

func TestPointBackToFrontOrdering(t *testing.T) {
	root := scene.NewViewport()
	back := rect("back", 0, 0, 50, 50)
	front := rect("front", 0, 0, 50, 50)
	attach(root, back)
	attach(root, front)

	assert.Equal(t, front, Point(root, 25, 25, false, nil, nil))
}

func TestPointGroupTransparent(t *testing.T) {
	root := scene.NewViewport()
	group := scene.NewNode("group", scene.TypeGroup)
	inner := rect("inner", 10, 10, 20, 20)
	attach(root, group)
	attach(group, inner)

	assert.Equal(t, inner, Point(root, 15, 15, false, nil, nil))
}

func TestPathFromRootToHit(t *testing.T) {
	root := scene.NewViewport()
	frame := rect("frame", 0, 0, 100, 100)
	frame.Type = scene.TypeFrame
	child := rect("child", 10, 10, 20, 20)
	attach(root, frame)
	attach(frame, child)

	chain := Path(root, child)
	assert.Equal(t, []*scene.Node{root, frame, child}, chain)
}
