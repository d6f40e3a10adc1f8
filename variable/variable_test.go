// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variable

import (
	"image/color"
	"testing"

	"github.com/cogentcore-design/vectorscene/vserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario C from §8: accent color variable resolves differently per theme.
func TestResolveScenarioC(t *testing.T) {
	red, _ := parseHex("#ff0000")
	blue, _ := parseHex("#0000ff")
	accent := New("accent", Color)
	accent.SetValues([]ThemedValue{
		{Value: red},
		{Value: blue, Theme: Theme{"mode": "dark"}},
	})

	light := Theme{"mode": "light"}
	dark := Theme{"mode": "dark"}

	assert.Equal(t, red, Resolve(Handle(accent), light))
	assert.Equal(t, blue, Resolve(Handle(accent), dark))
}

func TestResolvePurity(t *testing.T) {
	accent := New("accent", Number)
	accent.SetValues([]ThemedValue{{Value: float32(1)}, {Value: float32(2), Theme: Theme{"mode": "dark"}}})
	a := accent.Resolve(Theme{"mode": "dark"})
	b := accent.Resolve(Theme{"mode": "dark"})
	assert.Equal(t, a, b)
}

func TestResolveDefaultWhenNoMatch(t *testing.T) {
	v := New("flag", Boolean)
	v.SetValues([]ThemedValue{{Value: true, Theme: Theme{"mode": "dark"}}})
	assert.Equal(t, false, v.Resolve(Theme{"mode": "light"}))
}

func TestManagerDuplicateName(t *testing.T) {
	m := NewManager()
	_, err := m.Add("accent", Color)
	require.NoError(t, err)
	_, err = m.Add("accent", Number)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.DuplicateName))
}

func TestManagerRenameAndTypeMismatch(t *testing.T) {
	m := NewManager()
	_, err := m.Add("accent", Color)
	require.NoError(t, err)
	require.NoError(t, m.Rename("accent", "brand"))

	_, err = m.Get("brand", Number)
	require.Error(t, err)
	assert.True(t, vserr.Is(err, vserr.TypeMismatch))

	_, err = m.Get("brand", Color)
	require.NoError(t, err)
}

func TestThemeSubset(t *testing.T) {
	assert.True(t, Theme(nil).Subset(Theme{"mode": "dark"}))
	assert.True(t, Theme{"mode": "dark"}.Subset(Theme{"mode": "dark", "density": "compact"}))
	assert.False(t, Theme{"mode": "dark"}.Subset(Theme{"mode": "light"}))
}

func parseHex(s string) (color.RGBA, error) {
	// minimal local parse to avoid importing colors package into its own
	// dependency's tests; it knows only the two colors these tests use.
	switch s {
	case "#ff0000":
		return color.RGBA{R: 0xff, A: 0xff}, nil
	case "#0000ff":
		return color.RGBA{B: 0xff, A: 0xff}, nil
	}
	return color.RGBA{}, nil
}
