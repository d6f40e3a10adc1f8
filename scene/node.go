// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the retained scene graph: typed node entities,
// parent/child ownership, local/world transforms, resolved properties, and
// the prototype/instance graph (§3, §4.2, §4.3).
package scene

import (
	"strings"

	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// Type is the closed set of node type tags (§3).
type Type string

const (
	TypeViewport  Type = "viewport"
	TypeFrame     Type = "frame"
	TypeGroup     Type = "group"
	TypeRectangle Type = "rectangle"
	TypeEllipse   Type = "ellipse"
	TypeLine      Type = "line"
	TypePolygon   Type = "polygon"
	TypePath      Type = "path"
	TypeText      Type = "text"
	TypeIcon      Type = "icon"
	TypeNote      Type = "note"
	TypePrompt    Type = "prompt"
	TypeContext   Type = "context"
)

// Node is one entity of the retained scene graph (§3 "Node").
type Node struct {
	ID   string
	Type Type

	// Committed geometry, written by layout or by direct mutation.
	X, Y, Width, Height, Rotation float32 // Rotation: counter-clockwise radians
	FlipX, FlipY                 bool

	Props *Properties

	// Parent is a weak back-reference; ownership flows the other way
	// (Parent.Children owns Node).
	Parent *Node
	// Children is the ordered, owned child list.
	Children []*Node

	// Prototype is a weak, non-owning reference (§3 "Prototype link").
	Prototype *Node
	// Instances is the weak back-reference set from a prototype to its
	// instances (§3 invariant 2).
	Instances map[*Node]bool

	// Overridden is the set of property keys whose value on this instance
	// diverges from its prototype (§3, §4.3).
	Overridden map[string]bool
	// ChildrenOverridden marks that this instance's children are allowed
	// to diverge structurally from the prototype's (§4.3).
	ChildrenOverridden bool
	// IsInstanceBoundary is true when this instance's root is itself a
	// prototype's root (§3).
	IsInstanceBoundary bool
	// IsUnique is true when this node's id was overridden to differ from
	// its prototype counterpart's id (§3, §4.3).
	IsUnique bool
	// Reusable marks a prototype explicitly reusable (§4.3).
	Reusable bool

	// ThemeOverride is a partial theme override carried by this node
	// (§3 "Theme", §4.1); nil means "no override at this node".
	ThemeOverride variable.Theme
}

// NewNode constructs a detached node of the given type and id, with an
// empty property bag.
func NewNode(id string, t Type) *Node {
	return &Node{
		ID:         id,
		Type:       t,
		Width:      0,
		Height:     0,
		Props:      NewProperties(),
		Instances:  map[*Node]bool{},
		Overridden: map[string]bool{},
	}
}

// NewViewport constructs the distinguished root node.
func NewViewport() *Node {
	return &Node{ID: "", Type: TypeViewport, Props: NewProperties(), Instances: map[*Node]bool{}, Overridden: map[string]bool{}}
}

// escapeID escapes path separators and escape characters in an id the way
// a slash-delimited path requires (`/` and `\` both escaped).
func escapeID(id string) string {
	r := strings.NewReplacer(`\`, `\\`, `/`, `\,`)
	return r.Replace(id)
}

// Path returns the slash-delimited sequence of ids from the viewport to
// this node (§3 "Path").
func (n *Node) Path() string {
	if n.Parent == nil {
		return ""
	}
	segs := []string{}
	cur := n
	for cur.Parent != nil {
		segs = append([]string{escapeID(cur.ID)}, segs...)
		cur = cur.Parent
	}
	return "/" + strings.Join(segs, "/")
}

// PathFrom returns this node's path relative to the given ancestor,
// without a leading slash (used for instance descendant override paths,
// §4.3).
func (n *Node) PathFrom(ancestor *Node) string {
	segs := []string{}
	cur := n
	for cur != nil && cur != ancestor {
		segs = append([]string{escapeID(cur.ID)}, segs...)
		cur = cur.Parent
	}
	return strings.Join(segs, "/")
}

// IsAncestorOf reports whether n is an ancestor of other (or other itself).
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// IndexInParent returns this node's index within its parent's children,
// or -1 if detached.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// ChildByID returns the direct child with the given id, or nil.
func (n *Node) ChildByID(id string) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// InsertChild inserts child into n's children at index, detaching it from
// any previous parent first. index is clamped to [0, len(Children)].
func (n *Node) InsertChild(child *Node, index int) {
	if child.Parent != nil {
		child.Parent.removeChildNoDetach(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
	child.Parent = n
}

// AppendChild inserts child at the end of n's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertChild(child, len(n.Children))
}

// RemoveChild detaches child from n, leaving it parentless.
func (n *Node) RemoveChild(child *Node) {
	n.removeChildNoDetach(child)
	child.Parent = nil
}

func (n *Node) removeChildNoDetach(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// WalkDown visits n and every descendant, pre-order, stopping early if fn
// returns false.
func (n *Node) WalkDown(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.WalkDown(fn)
	}
}

// ActiveTheme walks ancestors collecting theme overrides, most-specific
// (nearest ancestor) winning, falling back to the document default
// (§4.1: "resolution for a node walks ancestors collecting overrides,
// most-specific wins").
func (n *Node) ActiveTheme(docDefault variable.Theme) variable.Theme {
	chain := []variable.Theme{}
	cur := n
	for cur != nil {
		if cur.ThemeOverride != nil {
			chain = append(chain, cur.ThemeOverride)
		}
		cur = cur.Parent
	}
	merged := variable.Theme{}
	for k, v := range docDefault {
		merged[k] = v
	}
	// Apply from farthest ancestor to nearest, so the nearest wins.
	for i := len(chain) - 1; i >= 0; i-- {
		for axis, val := range chain[i] {
			merged[axis] = val
		}
	}
	return merged
}

// GetByPath resolves a path (as returned by Path) to its node, starting
// the walk at root (§4.2 getNodeByPath).
func GetByPath(root *Node, path string) (*Node, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return root, nil
	}
	segs := splitPath(path)
	cur := root
	for _, s := range segs {
		next := cur.ChildByID(s)
		if next == nil {
			return nil, vserr.New(vserr.NotFound, "getNodeByPath", path)
		}
		cur = next
	}
	return cur, nil
}

// splitPath splits an escaped slash-delimited path into ids, honoring the
// `\,` and `\\` escapes produced by escapeID.
func splitPath(path string) []string {
	var segs []string
	var cur strings.Builder
	escaped := false
	for _, r := range path {
		if escaped {
			switch r {
			case ',':
				cur.WriteByte('/')
			case '\\':
				cur.WriteByte('\\')
			default:
				cur.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '/' {
			segs = append(segs, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	segs = append(segs, cur.String())
	return segs
}
