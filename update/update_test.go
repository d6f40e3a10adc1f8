// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

func newTestSession() *Session {
	return NewSession(scene.NewGraph(), nil)
}

func TestSingleOpenBlockEnforced(t *testing.T) {
	s := newTestSession()
	_, err := s.Open()
	require.NoError(t, err)

	_, err = s.Open()
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.BlockAlreadyOpen))
}

func TestAddNodeCommitAndUndo(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	rect := scene.NewNode("r1", scene.TypeRectangle)
	require.NoError(t, b.AddNode(s.Graph.Root, rect, 0))
	require.NoError(t, b.Commit(true))

	assert.Len(t, s.Graph.Root.Children, 1)
	require.NoError(t, s.Undo())
	assert.Empty(t, s.Graph.Root.Children)
	require.NoError(t, s.Redo())
	assert.Len(t, s.Graph.Root.Children, 1)
}

func TestRollbackReversesPartialBlock(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	rect := scene.NewNode("r1", scene.TypeRectangle)
	require.NoError(t, b.AddNode(s.Graph.Root, rect, 0))
	require.NoError(t, b.Update(rect, scene.PropOpacity, float32(0.5)))

	b.Rollback()
	assert.Empty(t, s.Graph.Root.Children)

	// The session should accept a new Open immediately.
	_, err = s.Open()
	require.NoError(t, err)
}

func TestDeleteNodeBlockedWhilePrototypeInUse(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	proto := scene.NewNode("proto", scene.TypeFrame)
	require.NoError(t, b.AddNode(s.Graph.Root, proto, 0))
	inst, ierr := scene.Instantiate(proto, "inst", s.Graph.Arena)
	require.NoError(t, ierr)
	require.NoError(t, b.AddNode(s.Graph.Root, inst, 1))
	require.NoError(t, b.Commit(true))

	b2, err := s.Open()
	require.NoError(t, err)
	err = b2.DeleteNode(proto)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.PrototypeInUse))
	b2.Rollback()
}

func TestChangeParentRejectsCycle(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	parent := scene.NewNode("p", scene.TypeFrame)
	child := scene.NewNode("c", scene.TypeFrame)
	require.NoError(t, b.AddNode(s.Graph.Root, parent, 0))
	require.NoError(t, b.AddNode(parent, child, 0))

	err = b.ChangeParent(parent, child, 0)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.ReferenceCycle))
	b.Rollback()
}

func TestUpdateByPathFailsOnVanishedDescendant(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	proto := scene.NewNode("card", scene.TypeFrame)
	label := scene.NewNode("label", scene.TypeText)
	label.Parent = proto
	proto.Children = append(proto.Children, label)
	require.NoError(t, b.AddNode(s.Graph.Root, proto, 0))

	inst, ierr := scene.Instantiate(proto, "inst", s.Graph.Arena)
	require.NoError(t, ierr)
	require.NoError(t, b.AddNode(s.Graph.Root, inst, 1))
	require.NoError(t, b.Commit(true))

	b2, err := s.Open()
	require.NoError(t, err)
	err = b2.UpdateByPath(inst, "missing", scene.PropTextContent, "x")
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.InvalidOverridePath))
	b2.Rollback()
}

func TestDeleteVariableDeferredValidationFailsCommit(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	v, verr := b.AddVariable("accent", variable.Color)
	require.NoError(t, verr)
	require.NoError(t, b.Commit(true))

	b2, err := s.Open()
	require.NoError(t, err)
	rect := scene.NewNode("r", scene.TypeRectangle)
	require.NoError(t, b2.AddNode(s.Graph.Root, rect, 0))
	require.NoError(t, b2.Update(rect, scene.PropOpacity, variable.Handle(v)))
	require.NoError(t, b2.DeleteVariable("accent"))

	err = b2.Commit(true)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.PrototypeInUse))

	// Commit rolled the whole block back, including the AddNode.
	assert.Empty(t, s.Graph.Root.Children)
	_, stillExists := s.Graph.Variables.Lookup("accent")
	assert.True(t, stillExists)
}

func TestSetVariableNotifiesListeners(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)
	v, verr := b.AddVariable("accent", variable.Number)
	require.NoError(t, verr)
	require.NoError(t, b.Commit(true))

	var notified int
	v.Subscribe(func(*variable.Variable) { notified++ })

	b2, err := s.Open()
	require.NoError(t, err)
	require.NoError(t, b2.SetVariable(v, []variable.ThemedValue{{Value: float32(2)}}))
	require.NoError(t, b2.Commit(true))

	assert.Equal(t, 1, notified)
	assert.Equal(t, float32(2), v.Resolve(nil))
}

func TestRebuildInstancesUpdatesChildren(t *testing.T) {
	s := newTestSession()
	b, err := s.Open()
	require.NoError(t, err)

	proto := scene.NewNode("card", scene.TypeFrame)
	require.NoError(t, b.AddNode(s.Graph.Root, proto, 0))
	inst, ierr := scene.Instantiate(proto, "inst", s.Graph.Arena)
	require.NoError(t, ierr)
	require.NoError(t, b.AddNode(s.Graph.Root, inst, 1))
	require.NoError(t, b.Commit(true))

	b2, err := s.Open()
	require.NoError(t, err)
	label := scene.NewNode("label", scene.TypeText)
	require.NoError(t, b2.AddNode(proto, label, 0))
	require.NoError(t, b2.RebuildInstances(proto))
	require.NoError(t, b2.Commit(true))

	newInst := s.Graph.Root.Children[1]
	require.Len(t, newInst.Children, 1)
}
