// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/google/uuid"

	"github.com/cogentcore-design/vectorscene/vserr"
)

// Arena is the generational registry of prototype nodes, implementing the
// pattern from Design Notes §9 ("Implement prototypes as owning storage
// in a generational arena; instance and sibling-back links are indices or
// weak handles into the arena"). Each prototype gets a stable generation
// key (a uuid, surviving renames and rebuilds) independent of its mutable
// id/path, which the "currently-creating" cycle guard keys off of so a
// clone re-entering the same prototype is detected even if the prototype
// was renamed mid-clone.
type Arena struct {
	// generation maps a prototype Node to its stable key.
	generation map[*Node]uuid.UUID
	// creating is the "currently-creating" set used by cloneSubtree to
	// detect reference cycles (§4.3 "Cycle check").
	creating map[uuid.UUID]bool
}

// NewArena constructs an empty Arena.
func NewArena() *Arena {
	return &Arena{generation: map[*Node]uuid.UUID{}, creating: map[uuid.UUID]bool{}}
}

// keyFor returns the stable generation key for a prototype node,
// allocating one on first use.
func (a *Arena) keyFor(proto *Node) uuid.UUID {
	if k, ok := a.generation[proto]; ok {
		return k
	}
	k := uuid.New()
	a.generation[proto] = k
	return k
}

// BeginCreating marks proto as currently being cloned, failing with
// ReferenceCycle if it is already mid-clone on this call stack.
func (a *Arena) BeginCreating(proto *Node) error {
	k := a.keyFor(proto)
	if a.creating[k] {
		return vserr.New(vserr.ReferenceCycle, "cloneSubtree", proto.Path())
	}
	a.creating[k] = true
	return nil
}

// EndCreating clears the currently-creating mark for proto.
func (a *Arena) EndCreating(proto *Node) {
	k := a.keyFor(proto)
	delete(a.creating, k)
}

// Forget drops the generation key for a deleted prototype.
func (a *Arena) Forget(proto *Node) {
	delete(a.generation, proto)
}
