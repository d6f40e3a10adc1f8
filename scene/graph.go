// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// Graph owns one design document's scene tree, its variable set, and its
// theme axes — the three pieces that resolution and the update block both
// need in hand (§3, §4.1).
type Graph struct {
	Root      *Node
	Variables *variable.Manager
	Themes    *variable.Document
	Arena     *Arena
}

// NewGraph constructs an empty document: a bare viewport, no variables,
// and the default (axis-less) theme document.
func NewGraph() *Graph {
	return &Graph{
		Root:      NewViewport(),
		Variables: variable.NewManager(),
		Themes:    variable.NewDocument(),
		Arena:     NewArena(),
	}
}

// GetNodeByPath resolves an absolute path against the document root.
func (g *Graph) GetNodeByPath(path string) (*Node, error) {
	return GetByPath(g.Root, path)
}

// Canonicalize rewrites each id along a path to the prototype's
// corresponding id whenever that node is not isUnique, so two
// callers addressing "the same" descendant by different locally-assigned
// ids agree on one canonical form (§4.3 "Canonical addressing": "a path
// segment is rewritten to the prototype's child id whenever the local
// child is not marked unique").
func (g *Graph) Canonicalize(path string) (string, error) {
	n, err := g.GetNodeByPath(path)
	if err != nil {
		return "", err
	}
	segs := []string{}
	cur := n
	for cur != nil && cur.Parent != nil {
		id := cur.ID
		if !cur.IsUnique && cur.Prototype != nil {
			id = cur.Prototype.ID
		}
		segs = append([]string{escapeID(id)}, segs...)
		cur = cur.Parent
	}
	out := "/"
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out, nil
}

// ActiveThemeFor resolves the active theme at a node, combining the
// document default theme with any ancestor overrides (§4.1).
func (g *Graph) ActiveThemeFor(n *Node) variable.Theme {
	return n.ActiveTheme(g.Themes.DefaultTheme())
}

// DeleteVariable removes a variable, first checking nothing currently
// references it through a property value. Callers needing an undoable
// delete go through the update package; this is the raw primitive.
func (g *Graph) DeleteVariable(name string) error {
	h, ok := g.Variables.Lookup(name)
	if !ok {
		return vserr.New(vserr.NotFound, "deleteVariable", name)
	}
	var inUse bool
	g.Root.WalkDown(func(n *Node) bool {
		for _, k := range n.Props.Keys() {
			v, _ := n.Props.Get(k)
			if vh, ok := v.(variable.Handle); ok && vh == h {
				inUse = true
			}
		}
		return true
	})
	if inUse {
		return vserr.New(vserr.PrototypeInUse, "deleteVariable", name)
	}
	return g.Variables.Delete(name)
}

// Prototypes returns every node in the document currently acting as a
// prototype (has at least one instance).
func (g *Graph) Prototypes() []*Node {
	var out []*Node
	g.Root.WalkDown(func(n *Node) bool {
		if len(n.Instances) > 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}
