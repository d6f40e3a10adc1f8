// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cogentcore-design/vectorscene/vserr"
)

// Migrate walks the monotonic chain of version migrators, bringing raw up
// to CurrentVersion before Deserialize parses it. Each step rewrites the
// document with tidwall/sjson and bumps the `version` field; an unknown
// starting version (no migrator registered for it) is fatal, matching
// "schema version unknown after migration chain" (§7).
func Migrate(raw []byte) ([]byte, []Warning, error) {
	if !gjson.ValidBytes(raw) {
		return nil, nil, vserr.New(vserr.SchemaUnsupported, "migrate", "invalid json")
	}
	var warnings []Warning
	doc := raw
	version := gjson.GetBytes(doc, "version").String()
	for version != CurrentVersion {
		step, ok := migrators[version]
		if !ok {
			return nil, warnings, vserr.New(vserr.SchemaUnsupported, "migrate", version)
		}
		next, stepWarnings, err := step(doc)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, stepWarnings...)
		doc = next
		version = gjson.GetBytes(doc, "version").String()
	}
	return doc, warnings, nil
}

// migrators maps a schema version to the single step that advances a
// document one version forward. Only the one documented step (2.5->2.6)
// exists today; earlier versions fall through to SchemaUnsupported.
var migrators = map[string]func([]byte) ([]byte, []Warning, error){
	"2.5": migrate2_5to2_6,
}

// migrate2_5to2_6 reproduces the documented 2.5->2.6 gradient reinterpretation
// (§9.1) verbatim: for every `linear` gradient fill in the document, the
// axis length moves from `size.width` to `size.height`, and `center` shifts
// from the gradient's start point to its midpoint
// (`start + direction*0.5*length`). Radial, angular, and mesh gradients are
// left untouched beyond the version bump, since the source intent for a
// width/height swap on those is not recoverable from the document alone.
func migrate2_5to2_6(doc []byte) ([]byte, []Warning, error) {
	var warnings []Warning
	doc, err := walkEntitiesForGradientMigration(doc, "children", &warnings)
	if err != nil {
		return nil, warnings, err
	}
	doc, err = sjson.SetBytes(doc, "version", "2.6")
	if err != nil {
		return nil, warnings, vserr.Wrap(vserr.SchemaUnsupported, "migrate", "version", err)
	}
	return doc, warnings, nil
}

// walkEntitiesForGradientMigration recurses into the array of entities
// at arrayPath (each node's `children`, or a ref's legacy inline
// `children`), migrating every fill it finds along the way.
func walkEntitiesForGradientMigration(doc []byte, arrayPath string, warnings *[]Warning) ([]byte, error) {
	arr := gjson.GetBytes(doc, arrayPath)
	if !arr.Exists() {
		return doc, nil
	}
	items := arr.Array()
	for i := range items {
		entityPath := arrayPath + "." + strconv.Itoa(i)
		var err error
		doc, err = migrateEntity(doc, entityPath, warnings)
		if err != nil {
			return doc, err
		}
	}
	return doc, nil
}

// migrateEntity migrates the fills directly on one node (or ref), then
// recurses into its children and, for a ref, its legacy inline children
// and its descendants map (both structural replacements and property
// overrides).
func migrateEntity(doc []byte, entityPath string, warnings *[]Warning) ([]byte, error) {
	var err error
	doc, err = migrateFillField(doc, entityPath+".fill", warnings)
	if err != nil {
		return doc, err
	}
	doc, err = migrateFillField(doc, entityPath+".fills", warnings)
	if err != nil {
		return doc, err
	}

	doc, err = walkEntitiesForGradientMigration(doc, entityPath+".children", warnings)
	if err != nil {
		return doc, err
	}

	descendants := gjson.GetBytes(doc, entityPath+".descendants")
	if descendants.Exists() && descendants.IsObject() {
		var keys []string
		descendants.ForEach(func(k, _ gjson.Result) bool {
			keys = append(keys, k.String())
			return true
		})
		for _, key := range keys {
			descPath := entityPath + ".descendants." + sjsonEscapeKey(key)
			entry := gjson.GetBytes(doc, descPath)
			if entry.Get("type").Exists() {
				doc, err = migrateEntity(doc, descPath, warnings)
				if err != nil {
					return doc, err
				}
				continue
			}
			doc, err = migrateFillField(doc, descPath+".fill", warnings)
			if err != nil {
				return doc, err
			}
			doc, err = migrateFillField(doc, descPath+".fills", warnings)
			if err != nil {
				return doc, err
			}
		}
	}
	return doc, nil
}

// migrateFillField migrates the value at fillPath, which may be absent, a
// single fill object, or an array of fill objects (§6 "fill accepts a bare
// color string, a fill object, or an array of either").
func migrateFillField(doc []byte, fillPath string, warnings *[]Warning) ([]byte, error) {
	v := gjson.GetBytes(doc, fillPath)
	if !v.Exists() {
		return doc, nil
	}
	if v.IsArray() {
		n := len(v.Array())
		var err error
		for i := 0; i < n; i++ {
			doc, err = migrateOneFill(doc, fillPath+"."+strconv.Itoa(i), warnings)
			if err != nil {
				return doc, err
			}
		}
		return doc, nil
	}
	return migrateOneFill(doc, fillPath, warnings)
}

// migrateOneFill applies the 2.5->2.6 formula to a single fill value if
// it is a gradient; bare color strings and image fills are untouched.
func migrateOneFill(doc []byte, path string, warnings *[]Warning) ([]byte, error) {
	v := gjson.GetBytes(doc, path)
	if v.Type != gjson.JSON || !v.Get("type").Exists() || v.Get("type").String() != "gradient" {
		return doc, nil
	}
	gt := v.Get("gradientType").String()
	if gt != "linear" {
		slog.Warn("migrate: non-linear gradient width/height left unmigrated across 2.5->2.6", "path", path, "gradientType", gt)
		*warnings = append(*warnings, Warning{"migrate", path, "non-linear gradient size left unmigrated (2.5->2.6)"})
		return doc, nil
	}

	startX := v.Get("center.x").Float()
	startY := v.Get("center.y").Float()
	length := v.Get("size.width").Float()
	rotationDeg := v.Get("rotation").Float()
	rad := rotationDeg * math.Pi / 180
	// Matches gradient.ResolveLinearEndpoints's direction convention:
	// 0 degrees points up, rotation is counter-clockwise.
	dirX := -math.Sin(rad)
	dirY := -math.Cos(rad)
	midX := startX + dirX*0.5*length
	midY := startY + dirY*0.5*length

	var err error
	doc, err = sjson.DeleteBytes(doc, path+".size.width")
	if err != nil {
		return doc, vserr.Wrap(vserr.SchemaUnsupported, "migrate", path, err)
	}
	doc, err = sjson.SetBytes(doc, path+".size.height", length)
	if err != nil {
		return doc, vserr.Wrap(vserr.SchemaUnsupported, "migrate", path, err)
	}
	doc, err = sjson.SetBytes(doc, path+".center.x", midX)
	if err != nil {
		return doc, vserr.Wrap(vserr.SchemaUnsupported, "migrate", path, err)
	}
	doc, err = sjson.SetBytes(doc, path+".center.y", midY)
	if err != nil {
		return doc, vserr.Wrap(vserr.SchemaUnsupported, "migrate", path, err)
	}
	return doc, nil
}

// sjsonEscapeKey escapes the sjson/gjson path metacharacters that may
// appear in a descendant's relative-path key (itself dot-separated and
// backslash-escaped per §4.3, so dots are already rare, but any present
// must not be read as sjson path separators).
func sjsonEscapeKey(key string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`.`, `\.`,
		`*`, `\*`,
		`?`, `\?`,
	)
	return r.Replace(key)
}

