// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore-design/vectorscene/colors/gradient"
	"github.com/cogentcore-design/vectorscene/scene"
)

const basicDoc = `{
  "version": "2.6",
  "themes": {"mode": ["light", "dark"]},
  "variables": {"accent": {"type": "color", "value": "#ff0000"}},
  "children": [
    {
      "type": "frame",
      "id": "page",
      "x": 0, "y": 0, "width": 400, "height": 300,
      "layout": {"mode": "vertical", "padding": 8, "justifyContent": "center"},
      "fill": "#ffffff",
      "children": [
        {"type": "rectangle", "id": "card", "x": 10, "y": 10, "width": 100, "height": 50, "fill": "$accent"}
      ]
    }
  ]
}`

func TestDeserializeBasicDocument(t *testing.T) {
	g, warnings, err := Deserialize([]byte(basicDoc), Config{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, g.Root.Children, 1)
	page := g.Root.Children[0]
	assert.Equal(t, "page", page.ID)
	require.Len(t, page.Children, 1)
	card := page.Children[0]
	assert.Equal(t, float32(10), card.X)

	_, ok := g.Variables.Lookup("accent")
	assert.True(t, ok)
}

func TestDeserializeRejectsUnknownVersion(t *testing.T) {
	_, _, err := Deserialize([]byte(`{"version": "9.9", "children": []}`), Config{})
	require.Error(t, err)
}

func TestSerializeRoundTripsPlainDocument(t *testing.T) {
	g, _, err := Deserialize([]byte(basicDoc), Config{})
	require.NoError(t, err)

	out, err := Serialize(g, Config{})
	require.NoError(t, err)

	g2, warnings, err := Deserialize(out, Config{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, g2.Root.Children, 1)
	page := g2.Root.Children[0]
	require.Len(t, page.Children, 1)
	assert.Equal(t, float32(10), page.Children[0].X)
	assert.Equal(t, float32(100), page.Children[0].Width)
}

func TestMigrateLinearGradient2_5to2_6(t *testing.T) {
	old := `{
	  "version": "2.5",
	  "children": [
	    {"type": "rectangle", "id": "r", "x": 0, "y": 0, "width": 10, "height": 10,
	     "fill": {"type": "gradient", "gradientType": "linear", "colors": [{"color": "#000000", "position": 0}],
	              "center": {"x": 5, "y": 0}, "size": {"width": 10}, "rotation": 0}}
	  ]
	}`
	migrated, warnings, err := Migrate([]byte(old))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	g, _, err := Deserialize(migrated, Config{})
	require.NoError(t, err)
	r := g.Root.Children[0]
	raw, ok := r.RawProperty(scene.PropFill)
	require.True(t, ok)
	fills := raw.([]scene.Fill)
	require.Len(t, fills, 1)
	linear, ok := fills[0].Gradient.(*gradient.Linear)
	require.True(t, ok)
	// 2.5's size.width=10 becomes the 2.6 axis length, and center (the old
	// start point) shifts to the midpoint of the [Start,End] segment.
	diff := linear.End.Sub(linear.Start)
	length := math.Sqrt(float64(diff.X*diff.X + diff.Y*diff.Y))
	assert.InDelta(t, 10, length, 1e-4)
}

func TestMigrateNonLinearGradientWarnsAndLeavesSizeAlone(t *testing.T) {
	old := `{
	  "version": "2.5",
	  "children": [
	    {"type": "ellipse", "id": "e", "x": 0, "y": 0, "width": 10, "height": 10,
	     "fill": {"type": "gradient", "gradientType": "radial", "colors": [{"color": "#000000", "position": 0}],
	              "center": {"x": 5, "y": 5}, "size": {"width": 10, "height": 10}, "rotation": 0}}
	  ]
	}`
	migrated, warnings, err := Migrate([]byte(old))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "non-linear")

	g, _, err := Deserialize(migrated, Config{})
	require.NoError(t, err)
	require.Len(t, g.Root.Children, 1)
}

func TestMigrateRejectsUnknownOlderVersion(t *testing.T) {
	_, _, err := Migrate([]byte(`{"version": "1.0", "children": []}`))
	require.Error(t, err)
}

const refDoc = `{
  "version": "2.6",
  "children": [
    {"type": "frame", "id": "card", "x": 0, "y": 0, "width": 100, "height": 50,
     "children": [{"type": "text", "id": "label", "x": 0, "y": 0, "width": 100, "height": 20, "content": "hello"}]},
    {"type": "ref", "id": "card-1", "ref": "/card", "x": 200, "y": 0,
     "descendants": {"label": {"content": "overridden"}}}
  ]
}`

func TestDeserializeRefAppliesDescendantOverride(t *testing.T) {
	g, warnings, err := Deserialize([]byte(refDoc), Config{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, g.Root.Children, 2)
	inst := g.Root.Children[1]
	assert.Same(t, g.Root.Children[0], inst.Prototype)
	require.Len(t, inst.Children, 1)
	content, _ := inst.Children[0].RawProperty("content")
	assert.Equal(t, "overridden", content)
}

func TestSerializeRefEmitsDescendantOverride(t *testing.T) {
	g, _, err := Deserialize([]byte(refDoc), Config{})
	require.NoError(t, err)

	out, err := Serialize(g, Config{})
	require.NoError(t, err)

	g2, warnings, err := Deserialize(out, Config{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	inst := g2.Root.Children[1]
	content, _ := inst.Children[0].RawProperty("content")
	assert.Equal(t, "overridden", content)
}

func TestDeserializeInvalidDescendantPathWarnsNotFails(t *testing.T) {
	doc := `{
	  "version": "2.6",
	  "children": [
	    {"type": "frame", "id": "card", "x": 0, "y": 0, "width": 100, "height": 50, "children": []},
	    {"type": "ref", "id": "card-1", "ref": "/card", "x": 0, "y": 0,
	     "descendants": {"missing": {"content": "x"}}}
	  ]
	}`
	_, warnings, err := Deserialize([]byte(doc), Config{})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "invalid override path", warnings[0].Message)
}
