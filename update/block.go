// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package update implements the transactional mutation protocol every
// scene edit goes through: an Update Block journals the inverse of each
// structural or property change as it happens, so the whole block can be
// rolled back atomically on failure, or committed and folded into the
// undo history.
package update

import (
	"log/slog"

	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// step is one journaled mutation: do re-applies it (used by redo), undo
// reverses it.
type step struct {
	do   func()
	undo func()
}

// Block is a single open transaction against a Graph. Only one Block may
// be open on a Session at a time ("BlockAlreadyOpen" if a second Open is
// attempted).
type Block struct {
	session *Session
	graph   *scene.Graph
	log     *slog.Logger

	steps []step

	// dirtyLayout collects the nodes whose subtree needs a layout re-run;
	// attachedProtos collects prototypes that gained a new instance during
	// this block, for the reusability closure run at commit.
	dirtyLayout    map[*scene.Node]bool
	redrawDirty    bool
	attachedProtos map[*scene.Node]bool

	pendingChecks []func() error

	closed bool
}

func newBlock(s *Session) *Block {
	return &Block{
		session:        s,
		graph:          s.Graph,
		log:            s.Log,
		dirtyLayout:    map[*scene.Node]bool{},
		attachedProtos: map[*scene.Node]bool{},
	}
}

func (b *Block) record(s step) {
	s.do()
	b.steps = append(b.steps, s)
}

func (b *Block) markDirty(n *scene.Node) {
	b.dirtyLayout[n] = true
	b.redrawDirty = true
}

func (b *Block) deferValidation(fn func() error) {
	b.pendingChecks = append(b.pendingChecks, fn)
}

func (b *Block) requireOpen(op string) error {
	if b.closed {
		return vserr.New(vserr.BlockAlreadyOpen, op, "block is closed")
	}
	return nil
}

// AddNode inserts node as a child of parent at index, journaling its
// removal as the inverse.
func (b *Block) AddNode(parent, node *scene.Node, index int) error {
	if err := b.requireOpen("addNode"); err != nil {
		return err
	}
	if parent.IsAncestorOf(node) || node.IsAncestorOf(parent) {
		return vserr.New(vserr.ReferenceCycle, "addNode", parent.Path())
	}
	b.record(step{
		do:   func() { parent.InsertChild(node, index) },
		undo: func() { parent.RemoveChild(node) },
	})
	b.markDirty(parent)
	return nil
}

// DeleteNode removes node from its parent, failing if node is a
// prototype still carrying instances (deleting it would strand them).
func (b *Block) DeleteNode(node *scene.Node) error {
	if err := b.requireOpen("deleteNode"); err != nil {
		return err
	}
	if len(node.Instances) > 0 {
		return vserr.New(vserr.PrototypeInUse, "deleteNode", node.Path())
	}
	parent := node.Parent
	if parent == nil {
		return vserr.New(vserr.InvalidPath, "deleteNode", node.Path())
	}
	index := node.IndexInParent()
	b.record(step{
		do:   func() { parent.RemoveChild(node) },
		undo: func() { parent.InsertChild(node, index) },
	})
	b.markDirty(parent)
	return nil
}

// ChangeParent re-parents node under newParent at index, failing if that
// would create a structural cycle.
func (b *Block) ChangeParent(node, newParent *scene.Node, index int) error {
	if err := b.requireOpen("changeParent"); err != nil {
		return err
	}
	if node.IsAncestorOf(newParent) {
		return vserr.New(vserr.ReferenceCycle, "changeParent", newParent.Path())
	}
	oldParent := node.Parent
	oldIndex := node.IndexInParent()
	b.record(step{
		do:   func() { newParent.InsertChild(node, index) },
		undo: func() { oldParent.InsertChild(node, oldIndex) },
	})
	if oldParent != nil {
		b.markDirty(oldParent)
	}
	b.markDirty(newParent)
	return nil
}

// Update writes a single raw property value on node, journaling the prior
// raw value (or the absence of an override) as the inverse.
func (b *Block) Update(node *scene.Node, key string, value any) error {
	if err := b.requireOpen("update"); err != nil {
		return err
	}
	hadOverride := node.Overridden[key]
	oldVal, hadLocal := node.Props.Get(key)
	b.record(step{
		do: func() { node.SetProperty(key, value) },
		undo: func() {
			if hadLocal {
				node.Props.Set(key, oldVal)
				if hadOverride {
					node.Overridden[key] = true
				} else {
					delete(node.Overridden, key)
				}
			} else {
				node.Props.Delete(key)
				delete(node.Overridden, key)
			}
		},
	})
	b.markDirty(node)
	return nil
}

// UpdateByPath writes a property on the descendant of instanceRoot found
// at relPath, failing with InvalidOverridePath if no such descendant
// exists. This is the direct-update entry point; it never silently drops
// a write the way RebuildInstance silently drops a vanished override.
func (b *Block) UpdateByPath(instanceRoot *scene.Node, relPath, key string, value any) error {
	target, err := scene.GetByRelativePath(instanceRoot, relPath)
	if err != nil {
		return err
	}
	return b.Update(target, key, value)
}

// ClearChildren removes every child of node, journaling each one's
// original index for undo re-insertion in original order.
func (b *Block) ClearChildren(node *scene.Node) error {
	if err := b.requireOpen("clearChildren"); err != nil {
		return err
	}
	children := append([]*scene.Node(nil), node.Children...)
	for _, c := range children {
		if len(c.Instances) > 0 {
			return vserr.New(vserr.PrototypeInUse, "clearChildren", c.Path())
		}
	}
	b.record(step{
		do: func() { node.Children = nil },
		undo: func() {
			for _, c := range children {
				node.AppendChild(c)
			}
		},
	})
	b.markDirty(node)
	return nil
}

// AttachInstance links node to proto as its prototype, remembering proto
// so the commit-time reusability closure runs for it.
func (b *Block) AttachInstance(node, proto *scene.Node, childrenOverridden bool) error {
	if err := b.requireOpen("attachToPrototype"); err != nil {
		return err
	}
	if scene.WouldCreateCycle(node, proto) {
		return vserr.New(vserr.ReferenceCycle, "attachToPrototype", proto.Path())
	}
	wasChildrenOverridden := node.ChildrenOverridden
	wasBoundary := node.IsInstanceBoundary
	oldProto := node.Prototype
	b.record(step{
		do: func() {
			node.Prototype = proto
			proto.Instances[node] = true
			node.ChildrenOverridden = childrenOverridden
			node.IsInstanceBoundary = true
		},
		undo: func() {
			delete(proto.Instances, node)
			node.Prototype = oldProto
			node.ChildrenOverridden = wasChildrenOverridden
			node.IsInstanceBoundary = wasBoundary
		},
	})
	b.attachedProtos[proto] = true
	b.markDirty(node)
	return nil
}

// RebuildInstances re-clones every instance of proto, replacing each in
// its parent's child list and reapplying its overrides (dropping any
// whose path vanished, logged, never failing the block).
func (b *Block) RebuildInstances(proto *scene.Node) error {
	if err := b.requireOpen("rebuildInstances"); err != nil {
		return err
	}
	for inst := range proto.Instances {
		parent := inst.Parent
		index := inst.IndexInParent()
		rebuilt, dropped, err := scene.RebuildInstance(inst, b.graph.Arena)
		if err != nil {
			return err
		}
		for _, d := range dropped {
			b.log.Info("dropped override during instance rebuild", "path", d.RelPath, "key", d.Key)
		}
		old := inst
		b.record(step{
			do: func() {
				if parent != nil {
					parent.RemoveChild(old)
					parent.InsertChild(rebuilt, index)
				}
				delete(proto.Instances, old)
			},
			undo: func() {
				if parent != nil {
					parent.RemoveChild(rebuilt)
					parent.InsertChild(old, index)
				}
				proto.Instances[old] = true
			},
		})
		if parent != nil {
			b.markDirty(parent)
		}
	}
	return nil
}

// SetThemes replaces the document's theme axis table.
func (b *Block) SetThemes(axes map[string][]string) error {
	if err := b.requireOpen("setThemes"); err != nil {
		return err
	}
	old := b.graph.Themes.Axes
	b.record(step{
		do:   func() { b.graph.Themes.Set(axes) },
		undo: func() { b.graph.Themes.Set(old) },
	})
	b.redrawDirty = true
	return nil
}

// AddVariable registers a new Variable on the document.
func (b *Block) AddVariable(name string, t variable.Type) (*variable.Variable, error) {
	if err := b.requireOpen("addVariable"); err != nil {
		return nil, err
	}
	if _, exists := b.graph.Variables.Lookup(name); exists {
		return nil, vserr.New(vserr.DuplicateName, "addVariable", name)
	}
	var v *variable.Variable
	b.record(step{
		do: func() {
			v, _ = b.graph.Variables.Add(name, t)
		},
		undo: func() { b.graph.Variables.Delete(name) },
	})
	b.redrawDirty = true
	return v, nil
}

// DeleteVariable removes a Variable, deferring the in-use check to commit
// time so earlier steps in the same block that clear its last reference
// are accounted for.
func (b *Block) DeleteVariable(name string) error {
	if err := b.requireOpen("deleteVariable"); err != nil {
		return err
	}
	v, ok := b.graph.Variables.Lookup(name)
	if !ok {
		return vserr.New(vserr.NotFound, "deleteVariable", name)
	}
	b.record(step{
		do:   func() { b.graph.Variables.Delete(name) },
		undo: func() { b.graph.Variables.Add(name, v.Type) },
	})
	b.deferValidation(func() error { return checkNoDanglingHandle(b.graph, v, name) })
	b.redrawDirty = true
	return nil
}

func checkNoDanglingHandle(g *scene.Graph, v *variable.Variable, name string) error {
	var inUse bool
	g.Root.WalkDown(func(n *scene.Node) bool {
		for _, k := range n.Props.Keys() {
			val, _ := n.Props.Get(k)
			if h, ok := val.(variable.Handle); ok && h == v {
				inUse = true
			}
		}
		return true
	})
	if inUse {
		return vserr.New(vserr.PrototypeInUse, "deleteVariable", name)
	}
	return nil
}

// SetVariable replaces a Variable's candidate values, triggering its
// synchronous listener notification.
func (b *Block) SetVariable(v *variable.Variable, values []variable.ThemedValue) error {
	if err := b.requireOpen("setVariable"); err != nil {
		return err
	}
	old := v.Values
	b.record(step{
		do:   func() { v.SetValues(values) },
		undo: func() { v.SetValues(old) },
	})
	b.redrawDirty = true
	return nil
}

// SnapshotProperties captures node's entire property bag and override
// set, returning a restore closure — used internally when a single
// logical edit touches many keys at once (e.g. converting a shape
// between types) and the per-key Update granularity would be misleading
// in the undo history.
func SnapshotProperties(node *scene.Node) func() {
	savedValues := map[string]any{}
	for _, k := range node.Props.Keys() {
		v, _ := node.Props.Get(k)
		savedValues[k] = v
	}
	savedOverridden := map[string]bool{}
	for k := range node.Overridden {
		savedOverridden[k] = true
	}
	return func() {
		for _, k := range node.Props.Keys() {
			node.Props.Delete(k)
		}
		for k, v := range savedValues {
			node.Props.Set(k, v)
		}
		node.Overridden = map[string]bool{}
		for k := range savedOverridden {
			node.Overridden[k] = true
		}
	}
}

// Rollback reverses every journaled step in this block, in reverse
// order, and closes it without touching undo history.
func (b *Block) Rollback() {
	if b.closed {
		return
	}
	for i := len(b.steps) - 1; i >= 0; i-- {
		b.steps[i].undo()
	}
	b.close()
}

// Commit runs the block's deferred invariant checks, and on success runs
// the prototype reusability closure for any newly attached instances,
// closes the block, and — if recordUndo is true — pushes it onto the
// session's undo stack. It does not run layout or redraw: the nodes that
// need layout and the redraw flag are left in DirtyLayoutRoots and
// RedrawDirty. On validation failure the block is rolled back
// automatically.
func (b *Block) Commit(recordUndo bool) error {
	if err := b.requireOpen("commit"); err != nil {
		return err
	}
	for _, check := range b.pendingChecks {
		if err := check(); err != nil {
			b.Rollback()
			return err
		}
	}
	for proto := range b.attachedProtos {
		scene.EnsurePrototypeReusability(proto)
	}
	b.close()
	if recordUndo {
		b.session.pushUndo(b.steps)
	}
	return nil
}

func (b *Block) close() {
	b.closed = true
	b.session.open = nil
}

// DirtyLayoutRoots returns the nodes whose subtree needs a layout re-run
// as a result of this block, for the caller to feed to the layout engine.
func (b *Block) DirtyLayoutRoots() []*scene.Node {
	out := make([]*scene.Node, 0, len(b.dirtyLayout))
	for n := range b.dirtyLayout {
		out = append(out, n)
	}
	return out
}

// RedrawDirty reports whether this block touched anything requiring a
// redraw (broader than layout: theme/variable changes too).
func (b *Block) RedrawDirty() bool { return b.redrawDirty }
