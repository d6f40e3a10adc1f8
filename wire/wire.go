// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the serialization bridge (§4.5): the
// bidirectional mapping between the on-wire JSON document (§6) and the
// runtime scene.Graph, including the legacy schema migration chain
// (migrate.go). Polymorphic wire fields (a size that is a number, a
// variable reference, or a sizing-behavior string; a fill that is a bare
// color string, an object, or an array of either) are inspected with
// tidwall/gjson ahead of the strict typed conversion in convert.go, and
// the migration chain rewrites documents with tidwall/sjson, matching the
// "parse loosely-typed JSON tree, then convert" shape this corpus reaches
// for (grounded on the pack's `tidwall/gjson` + `tidwall/sjson` usage).
package wire

// CurrentVersion is the schema version this bridge deserializes/emits
// (§6 "version: \"2.6\"").
const CurrentVersion = "2.6"

// Config carries the bridge's caller-supplied policy knobs.
type Config struct {
	// ResolveInstances, when true, serializes instance descendants with
	// path-based ids to guarantee global uniqueness (§4.5 "Id strategy").
	ResolveInstances bool
	// OmitDefaults, when true, elides properties equal to their type's
	// zero/default value from serialized output.
	OmitDefaults bool
}

// Warning is a non-fatal finding surfaced during deserialization: a
// dropped override, an elided duplicate child, an unmigrated gradient
// axis (§7: "policy decisions... happen at the Serialization Bridge
// boundary and are surfaced as warnings, not errors").
type Warning struct {
	Op      string
	Path    string
	Message string
}
