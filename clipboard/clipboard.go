// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard implements subtree duplication for copy/paste: a
// local form (live node paths, resolved against the same session's
// graph) and a remote form (a self-contained document built through the
// Serialization Bridge, for paste into a different session or document).
package clipboard

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/wire"
)

// Payload is the clipboard content: a source session id, the live paths
// behind a same-session copy, and a remote document any session can
// import.
type Payload struct {
	Source     uuid.UUID
	LocalPaths []string
	Remote     json.RawMessage
}

// Copy builds a Payload from a set of live, currently-selected nodes in
// g. Remote is always populated (via Config.ResolveInstances, so it
// never needs to resolve a prototype path back into the source
// document) even when the paste turns out to be local.
func Copy(g *scene.Graph, nodes []*scene.Node, sessionID uuid.UUID) (*Payload, error) {
	paths := make([]string, 0, len(nodes))
	for _, n := range nodes {
		paths = append(paths, n.Path())
	}
	remote, err := buildRemoteDocument(g, nodes)
	if err != nil {
		return nil, err
	}
	return &Payload{Source: sessionID, LocalPaths: paths, Remote: remote}, nil
}

// buildRemoteDocument serializes nodes into a standalone document: the
// document's full theme axis table, plus only the variables the copied
// subtrees actually reference (not the whole document's variable set).
func buildRemoteDocument(g *scene.Graph, nodes []*scene.Node) (json.RawMessage, error) {
	temp := scene.NewGraph()
	temp.Themes.Set(g.Themes.Axes)
	temp.Root.Children = append(temp.Root.Children, nodes...)

	referenced := map[*variable.Variable]bool{}
	for _, n := range nodes {
		n.WalkDown(func(node *scene.Node) bool {
			for _, k := range node.Props.Keys() {
				v, _ := node.Props.Get(k)
				collectHandle(v, referenced)
			}
			return true
		})
	}
	for v := range referenced {
		nv, err := temp.Variables.Add(v.Name, v.Type)
		if err != nil {
			return nil, err
		}
		nv.SetValues(v.Values)
	}

	out, err := wire.Serialize(temp, wire.Config{ResolveInstances: true})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

func collectHandle(v any, into map[*variable.Variable]bool) {
	switch val := v.(type) {
	case variable.Handle:
		if val != nil {
			into[val] = true
		}
	case scene.Dimension:
		if h, ok := val.Value.(variable.Handle); ok && h != nil {
			into[h] = true
		}
	}
}

// Paste applies payload against g, inserting under parent at index.
// Local paste (source matches sessionID and every recorded path still
// resolves) duplicates the live subtrees directly, preserving instance
// relationships; otherwise the remote document is imported instead,
// importing its themes (axis union) and variables (renamed on type
// conflict) into g.
func Paste(g *scene.Graph, payload *Payload, sessionID uuid.UUID, parent *scene.Node, index int) ([]*scene.Node, []wire.Warning, error) {
	if payload.Source == sessionID && allPathsResolve(g, payload.LocalPaths) {
		nodes, err := pasteLocal(g, payload.LocalPaths, parent, index)
		return nodes, nil, err
	}
	return pasteRemote(g, payload.Remote, parent, index)
}

func allPathsResolve(g *scene.Graph, paths []string) bool {
	for _, p := range paths {
		if _, err := g.GetNodeByPath(p); err != nil {
			return false
		}
	}
	return true
}

func pasteLocal(g *scene.Graph, paths []string, parent *scene.Node, index int) ([]*scene.Node, error) {
	out := make([]*scene.Node, 0, len(paths))
	for _, p := range paths {
		src, err := g.GetNodeByPath(p)
		if err != nil {
			return nil, err
		}
		clone, err := duplicateSubtree(g, src)
		if err != nil {
			return nil, err
		}
		newID := uniqueID(parent, clone.ID)
		if newID != clone.ID {
			clone.ID = newID
			clone.IsUnique = true
		}
		parent.InsertChild(clone, index)
		index++
		out = append(out, clone)
	}
	return out, nil
}

// duplicateSubtree copies n into a new, detached node tree. An instance
// boundary is re-instantiated from the same prototype (via
// scene.Instantiate) with its overrides replayed, rather than flattened
// into a plain copy, so the duplicate keeps tracking its prototype the
// way the original did. A plain node is copied field-for-field.
func duplicateSubtree(g *scene.Graph, n *scene.Node) (*scene.Node, error) {
	if n.Prototype != nil {
		clone, err := scene.Instantiate(n.Prototype, n.ID, g.Arena)
		if err != nil {
			return nil, err
		}
		clone.Reusable = n.Reusable
		clone.ChildrenOverridden = n.ChildrenOverridden
		clone.X, clone.Y, clone.Rotation = n.X, n.Y, n.Rotation
		clone.FlipX, clone.FlipY = n.FlipX, n.FlipY
		clone.ThemeOverride = cloneTheme(n.ThemeOverride)
		for _, ov := range scene.CollectOverrides(n) {
			target, err := scene.GetByRelativePath(clone, ov.RelPath)
			if err != nil {
				continue // dropped, same policy as scene.RebuildInstance
			}
			target.SetProperty(ov.Key, ov.Value)
		}
		return clone, nil
	}

	clone := scene.NewNode(n.ID, n.Type)
	clone.X, clone.Y, clone.Width, clone.Height, clone.Rotation = n.X, n.Y, n.Width, n.Height, n.Rotation
	clone.FlipX, clone.FlipY = n.FlipX, n.FlipY
	clone.ThemeOverride = cloneTheme(n.ThemeOverride)
	for _, k := range n.Props.Keys() {
		v, _ := n.Props.Get(k)
		clone.Props.Set(k, v)
	}
	for _, c := range n.Children {
		cc, err := duplicateSubtree(g, c)
		if err != nil {
			return nil, err
		}
		clone.AppendChild(cc)
	}
	return clone, nil
}

func cloneTheme(t variable.Theme) variable.Theme {
	if t == nil {
		return nil
	}
	out := make(variable.Theme, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// uniqueID returns base if parent has no child with that id, otherwise
// the first of base-copy, base-copy-2, base-copy-3... that parent
// doesn't already have.
func uniqueID(parent *scene.Node, base string) string {
	if parent.ChildByID(base) == nil {
		return base
	}
	candidate := base + "-copy"
	for i := 2; parent.ChildByID(candidate) != nil; i++ {
		candidate = fmt.Sprintf("%s-copy-%d", base, i)
	}
	return candidate
}

// pasteRemote imports payload's remote document into a throwaway graph,
// then merges its themes and variables into g before reparenting its
// root nodes under parent.
func pasteRemote(g *scene.Graph, remote json.RawMessage, parent *scene.Node, index int) ([]*scene.Node, []wire.Warning, error) {
	imported, warnings, err := wire.Deserialize(remote, wire.Config{})
	if err != nil {
		return nil, warnings, err
	}

	for axis, values := range imported.Themes.Axes {
		if _, ok := g.Themes.Axes[axis]; !ok {
			g.Themes.Axes[axis] = values
		}
	}

	rename := map[string]string{}
	for _, v := range imported.Variables.All() {
		name := v.Name
		if existing, ok := g.Variables.Lookup(v.Name); ok && existing.Type == v.Type {
			rename[v.Name] = existing.Name
			continue
		}
		if _, conflict := g.Variables.Lookup(v.Name); conflict {
			name = uniqueVariableName(g, v.Name)
		}
		nv, err := g.Variables.Add(name, v.Type)
		if err != nil {
			return nil, warnings, err
		}
		nv.SetValues(v.Values)
		rename[v.Name] = name
	}

	out := make([]*scene.Node, 0, len(imported.Root.Children))
	for _, n := range imported.Root.Children {
		remapVariables(n, rename, g.Variables)
		n.ID = uniqueID(parent, n.ID)
		parent.InsertChild(n, index)
		index++
		out = append(out, n)
	}
	return out, warnings, nil
}

func uniqueVariableName(g *scene.Graph, base string) string {
	if _, ok := g.Variables.Lookup(base); !ok {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := g.Variables.Lookup(candidate); !ok {
			return candidate
		}
	}
}

// remapVariables rewrites every Variable handle held directly in node's
// properties (or inside a Dimension's Value) from the imported graph's
// variable objects to the renamed equivalents now registered in vars,
// recursing into children.
func remapVariables(node *scene.Node, rename map[string]string, vars *variable.Manager) {
	for _, k := range node.Props.Keys() {
		v, _ := node.Props.Get(k)
		node.Props.Set(k, remapValue(v, rename, vars))
	}
	for _, c := range node.Children {
		remapVariables(c, rename, vars)
	}
}

func remapValue(v any, rename map[string]string, vars *variable.Manager) any {
	switch val := v.(type) {
	case variable.Handle:
		return remapHandle(val, rename, vars)
	case scene.Dimension:
		if h, ok := val.Value.(variable.Handle); ok {
			val.Value = remapHandle(h, rename, vars)
		}
		return val
	default:
		return v
	}
}

func remapHandle(h variable.Handle, rename map[string]string, vars *variable.Manager) variable.Handle {
	if h == nil {
		return nil
	}
	newName, ok := rename[h.Name]
	if !ok {
		return h
	}
	nv, _ := vars.Lookup(newName)
	return nv
}
