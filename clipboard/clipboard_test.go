// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clipboard

import (
	"image/color"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
)

func newGraphWithRect(id string, x, y, w, h float32) (*scene.Graph, *scene.Node) {
	g := scene.NewGraph()
	n := scene.NewNode(id, scene.TypeRectangle)
	n.X, n.Y, n.Width, n.Height = x, y, w, h
	g.Root.AppendChild(n)
	return g, n
}

func TestLocalPasteDuplicatesAndRenamesOnCollision(t *testing.T) {
	g, card := newGraphWithRect("card", 10, 20, 100, 50)
	session := uuid.New()

	payload, err := Copy(g, []*scene.Node{card}, session)
	require.NoError(t, err)

	pasted, warnings, err := Paste(g, payload, session, g.Root, len(g.Root.Children))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, pasted, 1)

	assert.Equal(t, "card-copy", pasted[0].ID)
	assert.True(t, pasted[0].IsUnique)
	assert.Equal(t, float32(10), pasted[0].X)
	assert.Equal(t, float32(100), pasted[0].Width)
	assert.Len(t, g.Root.Children, 2)
}

func TestLocalPasteFallsBackToRemoteAcrossSessions(t *testing.T) {
	g, card := newGraphWithRect("card", 0, 0, 10, 10)
	sourceSession := uuid.New()
	otherSession := uuid.New()

	payload, err := Copy(g, []*scene.Node{card}, sourceSession)
	require.NoError(t, err)

	pasted, _, err := Paste(g, payload, otherSession, g.Root, len(g.Root.Children))
	require.NoError(t, err)
	require.Len(t, pasted, 1)
	assert.Equal(t, "card-copy", pasted[0].ID)
	assert.Equal(t, float32(10), pasted[0].Width)
}

func TestRemotePasteRenamesVariableOnTypeConflict(t *testing.T) {
	g, _ := newGraphWithRect("card", 0, 0, 10, 10)
	accent, err := g.Variables.Add("accent", variable.Color)
	require.NoError(t, err)
	accent.SetValues([]variable.ThemedValue{{Value: color.RGBA{R: 255, A: 255}}})

	other := scene.NewGraph()
	clashing, err := other.Variables.Add("accent", variable.Number)
	require.NoError(t, err)
	clashing.SetValues([]variable.ThemedValue{{Value: float32(1)}})
	node := scene.NewNode("widget", scene.TypeRectangle)
	node.Width, node.Height = 5, 5
	node.SetProperty("opacity", variable.Handle(clashing))
	other.Root.AppendChild(node)

	payload, err := Copy(other, []*scene.Node{node}, uuid.New())
	require.NoError(t, err)

	pasted, warnings, err := Paste(g, payload, uuid.New(), g.Root, len(g.Root.Children))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, pasted, 1)

	_, ok := g.Variables.Lookup("accent-2")
	assert.True(t, ok, "conflicting-type variable should be renamed, not merged")

	raw, ok := pasted[0].RawProperty("opacity")
	require.True(t, ok)
	h, ok := raw.(variable.Handle)
	require.True(t, ok)
	assert.Equal(t, "accent-2", h.Name)
}
