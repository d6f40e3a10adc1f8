// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/json"

	"github.com/cogentcore-design/vectorscene/math32"
	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
)

// Serialize converts a scene.Graph into its on-wire document (§6), the
// inverse of Deserialize. It always emits CurrentVersion; callers that
// need an older schema run a forward Migrate on the result of loading the
// older document instead of emitting one directly (§4.5: migration is
// monotonic and one-directional).
func Serialize(g *scene.Graph, cfg Config) ([]byte, error) {
	doc := map[string]any{"version": CurrentVersion}
	if len(g.Themes.Axes) > 0 {
		axes := map[string]any{}
		for axis, values := range g.Themes.Axes {
			vals := make([]any, 0, len(values))
			for _, v := range values {
				vals = append(vals, v)
			}
			axes[axis] = vals
		}
		doc["themes"] = axes
	}
	if vars := g.Variables.All(); len(vars) > 0 {
		doc["variables"] = exportVariables(vars)
	}
	children := make([]any, 0, len(g.Root.Children))
	for _, c := range g.Root.Children {
		children = append(children, serializeNode(c, cfg))
	}
	doc["children"] = children
	return json.Marshal(doc)
}

func exportVariables(vars []*variable.Variable) map[string]any {
	out := map[string]any{}
	for _, v := range vars {
		out[v.Name] = map[string]any{
			"type":  v.Type.String(),
			"value": exportScalar(v.Resolve(nil)),
		}
	}
	return out
}

var sceneTypeToWire = map[scene.Type]string{
	scene.TypeFrame:     "frame",
	scene.TypeGroup:     "group",
	scene.TypeRectangle: "rectangle",
	scene.TypeEllipse:   "ellipse",
	scene.TypeLine:      "line",
	scene.TypePolygon:   "polygon",
	scene.TypePath:      "path",
	scene.TypeText:      "text",
	scene.TypeIcon:      "icon",
	scene.TypeNote:      "note",
	scene.TypePrompt:    "prompt",
	scene.TypeContext:   "context",
}

// wireTypeName recovers the wire type tag for a node. A TypeLine node that
// carries connection endpoints round-trips as "connection" (§6); a bare
// icon always round-trips as "icon", since "icon" vs "iconFont" collapse
// to the same runtime type on the way in (§4.5, DESIGN.md).
func wireTypeName(n *scene.Node) string {
	if n.Type == scene.TypeLine {
		if _, ok := n.Props.Get(scene.PropConnectionFrom); ok {
			return "connection"
		}
		if _, ok := n.Props.Get(scene.PropConnectionTo); ok {
			return "connection"
		}
	}
	if t, ok := sceneTypeToWire[n.Type]; ok {
		return t
	}
	return string(n.Type)
}

// wireFieldFor reports the wire field name for a scene property key and,
// if non-empty, the nested object it belongs under (only the `layout`
// sub-object today, §6).
func wireFieldFor(key string) (name, nested string) {
	switch key {
	case scene.PropLayoutMode:
		return "mode", "layout"
	case scene.PropPadding:
		return "padding", "layout"
	case scene.PropChildSpacing:
		return "childSpacing", "layout"
	case scene.PropJustifyContent:
		return "justifyContent", "layout"
	case scene.PropAlignItems:
		return "alignItems", "layout"
	case scene.PropIncludeStroke:
		return "includeStroke", "layout"
	case scene.PropHorizontalSizing:
		return "width", ""
	case scene.PropVerticalSizing:
		return "height", ""
	default:
		return key, ""
	}
}

// exportPropertyValue dispatches a property's stored runtime value to its
// typed wire exporter, the inverse of applyNamedProperty's typed
// converters.
func exportPropertyValue(key string, value any) any {
	switch key {
	case scene.PropHorizontalSizing, scene.PropVerticalSizing:
		d, _ := value.(scene.Dimension)
		return exportDimension(d)
	case scene.PropFill:
		fills, _ := value.([]scene.Fill)
		return exportFills(fills)
	case scene.PropStroke:
		s, _ := value.(scene.Stroke)
		return exportStroke(s)
	case scene.PropEffects:
		e, _ := value.([]scene.Effect)
		return exportEffects(e)
	case scene.PropCornerRadius:
		r, _ := value.(scene.CornerRadius)
		return exportCornerRadius(r)
	case scene.PropLayoutMode:
		d, _ := value.(scene.Direction)
		return exportLayoutMode(d)
	case scene.PropJustifyContent:
		j, _ := value.(scene.Justify)
		return exportJustify(j)
	case scene.PropAlignItems:
		a, _ := value.(scene.Align)
		return exportAlign(a)
	case scene.PropPadding:
		p, _ := value.(scene.Padding)
		return exportPadding(p)
	default:
		return exportScalar(value)
	}
}

// setWireField writes a property's exported value into dest, routing it
// through the `layout` sub-object when wireFieldFor says so.
func setWireField(dest map[string]any, key string, value any) {
	name, nested := wireFieldFor(key)
	target := dest
	if nested != "" {
		sub, ok := dest[nested].(map[string]any)
		if !ok {
			sub = map[string]any{}
			dest[nested] = sub
		}
		target = sub
	}
	target[name] = value
}

func themeToWire(t variable.Theme) map[string]any {
	out := map[string]any{}
	for axis, val := range t {
		out[axis] = val
	}
	return out
}

// isDefaultProperty reports whether key/value is the ambient default a
// freshly-authored document would normally omit (Config.OmitDefaults).
func isDefaultProperty(key string, value any) bool {
	switch key {
	case scene.PropEnabled:
		b, ok := value.(bool)
		return ok && b
	case scene.PropOpacity:
		f, ok := value.(float32)
		return ok && f == 1
	default:
		return false
	}
}

func themeEqual(a, b variable.Theme) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// serializeNode converts one canonical (non-instance) node and its
// subtree. An instance-boundary node (Prototype set, cloned from a
// prototype) is instead emitted as a ref via serializeRef.
func serializeNode(n *scene.Node, cfg Config) map[string]any {
	if n.Prototype != nil && n.IsInstanceBoundary {
		return serializeRef(n, cfg)
	}
	m := map[string]any{"type": wireTypeName(n), "id": n.ID, "x": n.X, "y": n.Y}
	if n.Rotation != 0 {
		m["rotation"] = math32.RadToDeg(-n.Rotation)
	}
	if n.FlipX {
		m["flipX"] = true
	}
	if n.FlipY {
		m["flipY"] = true
	}
	if n.ThemeOverride != nil {
		m["theme"] = themeToWire(n.ThemeOverride)
	}
	if _, ok := n.Props.Get(scene.PropHorizontalSizing); !ok {
		m["width"] = n.Width
	}
	if _, ok := n.Props.Get(scene.PropVerticalSizing); !ok {
		m["height"] = n.Height
	}
	for _, key := range n.Props.Keys() {
		val, _ := n.Props.Get(key)
		if cfg.OmitDefaults && isDefaultProperty(key, val) {
			continue
		}
		setWireField(m, key, exportPropertyValue(key, val))
	}
	if len(n.Children) > 0 {
		kids := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			kids = append(kids, serializeNode(c, cfg))
		}
		m["children"] = kids
	}
	return m
}

// serializeRef emits an instance-boundary node as a ref (§6, §4.3): the
// prototype path, its own root-level property overrides inline, and every
// deeper override addressed by path under `descendants`.
func serializeRef(n *scene.Node, cfg Config) map[string]any {
	if cfg.ResolveInstances {
		return resolvedInstanceNode(n, n, cfg)
	}
	proto := n.Prototype
	m := map[string]any{"type": "ref", "id": n.ID, "ref": proto.Path(), "x": n.X, "y": n.Y}
	if n.Reusable {
		m["reusable"] = true
	}
	// x/y are always re-specified (an instance's position is its own, not
	// diffed against the prototype); rotation/flip/size are inline
	// overrides only when they diverge, mirroring how buildRef applies
	// them directly rather than through the Overridden-tracked Props bag.
	if n.Rotation != proto.Rotation {
		m["rotation"] = math32.RadToDeg(-n.Rotation)
	}
	if n.FlipX != proto.FlipX {
		m["flipX"] = n.FlipX
	}
	if n.FlipY != proto.FlipY {
		m["flipY"] = n.FlipY
	}
	// width/height overrides go through Props (PropHorizontalSizing/
	// PropVerticalSizing) like any other property, so CollectOverrides
	// below already emits them with the right sizing-behavior encoding.
	descendants := map[string]any{}

	for _, ov := range scene.CollectOverrides(n) {
		wireVal := exportPropertyValue(ov.Key, ov.Value)
		if ov.RelPath == "" {
			setWireField(m, ov.Key, wireVal)
		} else {
			setWireField(descendantEntry(descendants, ov.RelPath), ov.Key, wireVal)
		}
	}

	n.WalkDown(func(node *scene.Node) bool {
		if node != n && node.Prototype == nil {
			// A structurally-overridden subtree (§4.3 "descendant
			// addressing"): capture it wholesale and stop recursing.
			descendants[node.PathFrom(n)] = serializeNode(node, cfg)
			return false
		}
		if !themeEqual(node.ThemeOverride, node.Prototype.ThemeOverride) {
			relPath := node.PathFrom(n)
			if relPath == "" {
				m["theme"] = themeToWire(node.ThemeOverride)
			} else {
				descendantEntry(descendants, relPath)["theme"] = themeToWire(node.ThemeOverride)
			}
		}
		return true
	})

	if len(descendants) > 0 {
		m["descendants"] = descendants
	}
	return m
}

// resolvedInstanceNode flattens an instance subtree into literal nodes
// with no ref/descendants indirection, rewriting every non-root id to
// `<instance id>/<path from instance root>` so ids stay globally unique
// even though many instances may share the same prototype (Config.
// ResolveInstances, §4.5 "Id strategy").
func resolvedInstanceNode(node, instRoot *scene.Node, cfg Config) map[string]any {
	id := node.ID
	if node != instRoot {
		id = instRoot.ID + "/" + node.PathFrom(instRoot)
	}
	m := map[string]any{"type": wireTypeName(node), "id": id, "x": node.X, "y": node.Y}
	if node.Rotation != 0 {
		m["rotation"] = math32.RadToDeg(-node.Rotation)
	}
	if node.FlipX {
		m["flipX"] = true
	}
	if node.FlipY {
		m["flipY"] = true
	}
	if node.ThemeOverride != nil {
		m["theme"] = themeToWire(node.ThemeOverride)
	}
	if _, ok := node.RawProperty(scene.PropHorizontalSizing); !ok {
		m["width"] = node.Width
	}
	if _, ok := node.RawProperty(scene.PropVerticalSizing); !ok {
		m["height"] = node.Height
	}
	keys := map[string]bool{}
	for cur := node; cur != nil; cur = cur.Prototype {
		for _, k := range cur.Props.Keys() {
			keys[k] = true
		}
	}
	for key := range keys {
		val, _ := node.RawProperty(key)
		if cfg.OmitDefaults && isDefaultProperty(key, val) {
			continue
		}
		setWireField(m, key, exportPropertyValue(key, val))
	}
	if len(node.Children) > 0 {
		kids := make([]any, 0, len(node.Children))
		for _, c := range node.Children {
			kids = append(kids, resolvedInstanceNode(c, instRoot, cfg))
		}
		m["children"] = kids
	}
	return m
}

func descendantEntry(descendants map[string]any, relPath string) map[string]any {
	e, ok := descendants[relPath].(map[string]any)
	if !ok {
		e = map[string]any{}
		descendants[relPath] = e
	}
	return e
}
