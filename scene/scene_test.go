// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

func buildParented(ids ...string) *Node {
	root := NewViewport()
	cur := root
	for _, id := range ids {
		child := NewNode(id, TypeFrame)
		child.Parent = cur
		cur.Children = append(cur.Children, child)
		cur = child
	}
	return root
}

func TestNodePathEscaping(t *testing.T) {
	root := NewViewport()
	child := NewNode("a/b", TypeGroup)
	child.Parent = root
	root.Children = append(root.Children, child)

	assert.Equal(t, `/a\,b`, child.Path())
	got, err := GetByPath(root, `/a\,b`)
	require.NoError(t, err)
	assert.Same(t, child, got)
}

func TestNodePathNotFound(t *testing.T) {
	root := NewViewport()
	_, err := GetByPath(root, "/missing")
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.NotFound))
}

func TestSetPropertyOverrideMinimality(t *testing.T) {
	arena := NewArena()
	proto := NewNode("proto", TypeRectangle)
	proto.SetProperty(PropOpacity, float32(1))

	inst, err := Instantiate(proto, "inst", arena)
	require.NoError(t, err)

	inst.SetProperty(PropOpacity, float32(0.5))
	assert.True(t, inst.Overridden[PropOpacity])

	// Setting it back to the prototype's value clears the override.
	inst.SetProperty(PropOpacity, float32(1))
	assert.False(t, inst.Overridden[PropOpacity])
	v, _ := inst.RawProperty(PropOpacity)
	assert.Equal(t, float32(1), v)
}

func TestRawPropertyFallsBackToPrototype(t *testing.T) {
	arena := NewArena()
	proto := NewNode("proto", TypeRectangle)
	proto.SetProperty(PropFill, Fill{Kind: FillSolid, Color: color.RGBA{R: 255, A: 255}})

	inst, err := Instantiate(proto, "proto", arena)
	require.NoError(t, err)

	v, ok := inst.RawProperty(PropFill)
	require.True(t, ok)
	assert.Equal(t, FillSolid, v.(Fill).Kind)
}

func TestWouldCreateCycleSelf(t *testing.T) {
	n := NewNode("a", TypeGroup)
	assert.True(t, WouldCreateCycle(n, n))
}

func TestWouldCreateCycleTransitive(t *testing.T) {
	a := NewNode("a", TypeGroup)
	b := NewNode("b", TypeGroup)
	b.Prototype = a
	assert.True(t, WouldCreateCycle(a, b))
	assert.False(t, WouldCreateCycle(b, a))
}

func TestInstantiateClonesStructure(t *testing.T) {
	arena := NewArena()
	proto := NewNode("card", TypeFrame)
	label := NewNode("label", TypeText)
	label.Parent = proto
	proto.Children = append(proto.Children, label)

	inst, err := Instantiate(proto, "card-1", arena)
	require.NoError(t, err)

	require.Len(t, inst.Children, 1)
	assert.Same(t, proto, inst.Prototype)
	assert.Same(t, label, inst.Children[0].Prototype)
	assert.True(t, proto.Instances[inst])
	assert.True(t, inst.IsUnique)
}

func TestCloneSubtreeDetectsCycle(t *testing.T) {
	arena := NewArena()
	a := NewNode("a", TypeGroup)
	b := NewNode("b", TypeGroup)
	b.Parent = a
	a.Children = append(a.Children, b)
	// Force a self-referencing prototype loop by pointing a child back at
	// an ancestor currently mid-clone.
	b.Children = append(b.Children, a)
	a.Parent = b

	_, err := CloneSubtree(a, arena)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.ReferenceCycle))
}

func TestEnsurePrototypeReusabilityMarksUpward(t *testing.T) {
	root := buildParented("page", "section", "card")
	card := root.Children[0].Children[0].Children[0]

	marked := EnsurePrototypeReusability(card)
	assert.True(t, card.Reusable)
	assert.NotEmpty(t, marked)
	assert.True(t, IsReusable(card))

	// Calling again is a no-op: already satisfied.
	again := EnsurePrototypeReusability(card)
	assert.Empty(t, again)
}

func TestEnsurePrototypeReusabilityStopsAtReusableAncestor(t *testing.T) {
	root := buildParented("page", "section", "card")
	section := root.Children[0].Children[0]
	section.Reusable = true
	card := section.Children[0]

	assert.True(t, IsReusable(card))
	marked := EnsurePrototypeReusability(card)
	assert.Empty(t, marked)
}

func TestRebuildInstanceReappliesOverridesAndDropsVanished(t *testing.T) {
	arena := NewArena()
	proto := NewNode("card", TypeFrame)
	label := NewNode("label", TypeText)
	label.Parent = proto
	proto.Children = append(proto.Children, label)

	inst, err := Instantiate(proto, "card-1", arena)
	require.NoError(t, err)
	inst.Children[0].SetProperty(PropTextContent, "hello")

	// Prototype restructures: the label is removed.
	proto.Children = nil

	rebuilt, dropped, err := RebuildInstance(inst, arena)
	require.NoError(t, err)
	assert.Empty(t, rebuilt.Children)
	require.Len(t, dropped, 1)
	assert.Equal(t, PropTextContent, dropped[0].Key)
}

func TestGraphCanonicalizeRewritesNonUniqueChild(t *testing.T) {
	g := NewGraph()
	proto := NewNode("proto", TypeFrame)
	protoLabel := NewNode("label", TypeText)
	protoLabel.Parent = proto
	proto.Children = append(proto.Children, protoLabel)
	proto.Parent = g.Root
	g.Root.Children = append(g.Root.Children, proto)

	inst, err := Instantiate(proto, "inst", g.Arena)
	require.NoError(t, err)
	inst.Parent = g.Root
	g.Root.Children = append(g.Root.Children, inst)
	// Locally renamed but not flagged unique: the instance root keeps its
	// own id, while its non-unique child is rewritten back to the
	// prototype's id in the canonical path.
	inst.Children[0].ID = "label-local"

	canon, err := g.Canonicalize("/inst/label-local")
	require.NoError(t, err)
	assert.Equal(t, "/inst/label", canon)
}

func TestGraphDeleteVariableInUseFails(t *testing.T) {
	g := NewGraph()
	_, err := g.Variables.Add("accent", variable.Color)
	require.NoError(t, err)
	h, _ := g.Variables.Lookup("accent")

	n := NewNode("r", TypeRectangle)
	n.Parent = g.Root
	g.Root.Children = append(g.Root.Children, n)
	n.SetProperty(PropOpacity, h)

	err = g.DeleteVariable("accent")
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.PrototypeInUse))
}
