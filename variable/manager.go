// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variable

import (
	"github.com/cogentcore-design/vectorscene/vserr"
)

// Manager is the document-wide, process-wide-singleton registry of
// Variables (§5 "Shared-resource policy"). It is a pure name index; the
// transactional semantics (undo-recorded add/delete/setValues) live in
// the update package, which calls through to Manager. Rename has no
// undo-recorded counterpart there.
type Manager struct {
	byName map[string]*Variable
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{byName: map[string]*Variable{}}
}

// Add registers a new Variable, failing with DuplicateName if one with
// that name already exists (§4.1 addVariable).
func (m *Manager) Add(name string, t Type) (*Variable, error) {
	if _, ok := m.byName[name]; ok {
		return nil, vserr.New(vserr.DuplicateName, "addVariable", name)
	}
	v := New(name, t)
	m.byName[name] = v
	return v, nil
}

// Delete removes a Variable from the index. It does not touch properties
// that still hold this Variable's handle. update.Block.DeleteVariable does
// not rewrite them to concrete values either; it fails the block's commit
// while any property still holds the handle.
func (m *Manager) Delete(name string) error {
	if _, ok := m.byName[name]; !ok {
		return vserr.New(vserr.NotFound, "deleteVariable", name)
	}
	delete(m.byName, name)
	return nil
}

// Rename atomically updates the name index (§4.1 renameVariable).
func (m *Manager) Rename(oldName, newName string) error {
	v, ok := m.byName[oldName]
	if !ok {
		return vserr.New(vserr.NotFound, "renameVariable", oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, exists := m.byName[newName]; exists {
		return vserr.New(vserr.DuplicateName, "renameVariable", newName)
	}
	delete(m.byName, oldName)
	v.Name = newName
	m.byName[newName] = v
	return nil
}

// Get looks up a Variable by name, failing with TypeMismatch if its type
// does not match expected (§4.1 getVariable).
func (m *Manager) Get(name string, expected Type) (*Variable, error) {
	v, ok := m.byName[name]
	if !ok {
		return nil, vserr.New(vserr.NotFound, "getVariable", name)
	}
	if err := CheckType(v, expected, "getVariable"); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup looks up a Variable by name regardless of type, used by the
// serialization bridge before it knows the expected type of a property.
func (m *Manager) Lookup(name string) (*Variable, bool) {
	v, ok := m.byName[name]
	return v, ok
}

// All returns every Variable in the manager, for serialization.
func (m *Manager) All() []*Variable {
	out := make([]*Variable, 0, len(m.byName))
	for _, v := range m.byName {
		out = append(out, v)
	}
	return out
}

// Document is the document-wide theme table: an ordered list of axis
// values per axis (§3 "Theme": "themes: Map<axis, ordered list of
// axisValue>").
type Document struct {
	Axes map[string][]string
}

// NewDocument constructs an empty theme Document.
func NewDocument() *Document {
	return &Document{Axes: map[string][]string{}}
}

// DefaultTheme returns the viewport's default active theme: the first
// value of each axis (§3, §4.1).
func (d *Document) DefaultTheme() Theme {
	th := Theme{}
	for axis, values := range d.Axes {
		if len(values) > 0 {
			th[axis] = values[0]
		}
	}
	return th
}

// Set replaces the theme axis table (§4.4 setThemes).
func (d *Document) Set(axes map[string][]string) {
	d.Axes = axes
}
