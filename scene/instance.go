// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/cogentcore-design/vectorscene/vserr"

// WouldCreateCycle reports whether setting node's prototype to proto
// would make the prototype graph cyclic: true if proto's own prototype
// ancestry reaches node, or if node == proto (§3 invariant 3, §4.3
// "Cycles are forbidden").
func WouldCreateCycle(node, proto *Node) bool {
	cur := proto
	for cur != nil {
		if cur == node {
			return true
		}
		cur = cur.Prototype
	}
	return false
}

// AttachToPrototype sets node's weak prototype link and registers it in
// proto's instance set (§4.3 "attachToPrototype"). It does not itself
// populate node's children; CloneSubtree / RebuildInstance do that.
func AttachToPrototype(node, proto *Node, childrenOverridden bool) error {
	if WouldCreateCycle(node, proto) {
		return vserr.New(vserr.ReferenceCycle, "attachToPrototype", proto.Path())
	}
	node.Prototype = proto
	proto.Instances[node] = true
	node.ChildrenOverridden = childrenOverridden
	node.IsInstanceBoundary = true
	return nil
}

// DetachFromPrototype removes the weak link in both directions, used when
// a prototype is deleted or an instance is fully unlinked.
func DetachFromPrototype(node *Node) {
	if node.Prototype == nil {
		return
	}
	delete(node.Prototype.Instances, node)
	node.Prototype = nil
}

// CloneSubtree deep-clones proto's structure into new, owned Node
// objects, each carrying a weak Prototype link back to its corresponding
// source node, registering cycle-guard state in arena and failing with
// ReferenceCycle on re-entry (§4.3 "Cycle check").
func CloneSubtree(proto *Node, arena *Arena) (*Node, error) {
	if err := arena.BeginCreating(proto); err != nil {
		return nil, err
	}
	defer arena.EndCreating(proto)

	clone := NewNode(proto.ID, proto.Type)
	clone.Prototype = proto
	proto.Instances[clone] = true
	clone.X, clone.Y, clone.Width, clone.Height, clone.Rotation = proto.X, proto.Y, proto.Width, proto.Height, proto.Rotation
	clone.FlipX, clone.FlipY = proto.FlipX, proto.FlipY

	for _, c := range proto.Children {
		childClone, err := CloneSubtree(c, arena)
		if err != nil {
			return nil, err
		}
		childClone.Parent = clone
		clone.Children = append(clone.Children, childClone)
	}
	return clone, nil
}

// Instantiate creates a fresh instance of proto with the given id,
// structurally identical to proto until overrides diverge it (§4.3).
func Instantiate(proto *Node, id string, arena *Arena) (*Node, error) {
	clone, err := CloneSubtree(proto, arena)
	if err != nil {
		return nil, err
	}
	if id != proto.ID {
		clone.ID = id
		clone.IsUnique = true
	}
	clone.IsInstanceBoundary = true
	return clone, nil
}

// isReusable reports whether n is reusable: explicitly marked, or any
// ancestor is (§4.3 "Reusability").
func isReusable(n *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Reusable {
			return true
		}
	}
	return false
}

// IsReusable exposes isReusable for callers outside the package (the
// update block's commit-time check).
func IsReusable(n *Node) bool { return isReusable(n) }

// EnsurePrototypeReusability walks up from proto marking ancestors
// Reusable until it reaches one that already satisfies isReusable,
// returning the newly-marked nodes so the caller can record an undoable
// step (§4.3 "ensurePrototypeReusability... recorded as an undoable
// step").
func EnsurePrototypeReusability(proto *Node) []*Node {
	if isReusable(proto) {
		return nil
	}
	var marked []*Node
	for cur := proto; cur != nil; cur = cur.Parent {
		if cur.Reusable {
			break
		}
		cur.Reusable = true
		marked = append(marked, cur)
		if cur.Parent != nil && isReusable(cur.Parent) {
			break
		}
	}
	return marked
}

// OverrideRecord is a serialized form of one property override, addressed
// by the descendant's path relative to the instance root (§4.3
// "Descendant addressing").
type OverrideRecord struct {
	RelPath string
	Key     string
	Value   any
}

// StructuralOverrideRecord records that a descendant's id was overridden
// to a value not shared with the prototype (§3 isUnique), separate from
// property overrides.
type StructuralOverrideRecord struct {
	RelPath string
}

// CollectOverrides walks an instance's subtree collecting every property
// override, addressed by path relative to the instance root.
func CollectOverrides(instanceRoot *Node) []OverrideRecord {
	var out []OverrideRecord
	instanceRoot.WalkDown(func(n *Node) bool {
		if n != instanceRoot && n.Prototype == nil {
			return true // structurally-overridden subtree: no prototype fallback to diff against
		}
		for key := range n.Overridden {
			v, _ := n.Props.Get(key)
			out = append(out, OverrideRecord{RelPath: n.PathFrom(instanceRoot), Key: key, Value: v})
		}
		return true
	})
	return out
}

// GetByRelativePath resolves a `/`-free path, relative to root, to a
// descendant node.
func GetByRelativePath(root *Node, relPath string) (*Node, error) {
	if relPath == "" {
		return root, nil
	}
	segs := splitPath(relPath)
	cur := root
	for _, s := range segs {
		next := cur.ChildByID(s)
		if next == nil {
			return nil, vserr.New(vserr.InvalidOverridePath, "resolveOverridePath", relPath)
		}
		cur = next
	}
	return cur, nil
}

// RebuildInstance re-clones instanceRoot's prototype structure and
// reapplies the instance's collected overrides, silently dropping any
// whose path no longer exists in the new structure (§4.3 "Instance
// rebuild"; SPEC_FULL Open Question Decision 3: silent-drop is specific
// to this structural rebuild path, not to direct updates).
func RebuildInstance(instanceRoot *Node, arena *Arena) (*Node, []OverrideRecord, error) {
	proto := instanceRoot.Prototype
	if proto == nil {
		return nil, nil, vserr.New(vserr.NotFound, "rebuildInstance", instanceRoot.Path())
	}
	overrides := CollectOverrides(instanceRoot)
	newClone, err := CloneSubtree(proto, arena)
	if err != nil {
		return nil, nil, err
	}
	newClone.ID = instanceRoot.ID
	newClone.IsUnique = instanceRoot.IsUnique
	newClone.IsInstanceBoundary = true
	newClone.ChildrenOverridden = instanceRoot.ChildrenOverridden

	var dropped []OverrideRecord
	for _, ov := range overrides {
		target, err := GetByRelativePath(newClone, ov.RelPath)
		if err != nil {
			dropped = append(dropped, ov)
			continue
		}
		target.SetProperty(ov.Key, ov.Value)
	}
	return newClone, dropped, nil
}
