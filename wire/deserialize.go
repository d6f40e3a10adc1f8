// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/tidwall/gjson"

	"github.com/cogentcore-design/vectorscene/colors"
	"github.com/cogentcore-design/vectorscene/scene"
	"github.com/cogentcore-design/vectorscene/variable"
	"github.com/cogentcore-design/vectorscene/vserr"
)

// Deserialize converts an on-wire document (§6) into a fresh scene.Graph,
// migrating it to CurrentVersion first (migrate.go) and surfacing
// non-fatal findings as Warnings rather than failing the whole document
// (§7: "policy decisions... are surfaced as warnings, not errors").
func Deserialize(raw []byte, cfg Config) (*scene.Graph, []Warning, error) {
	migrated, warnings, err := Migrate(raw)
	if err != nil {
		return nil, warnings, err
	}
	if !gjson.ValidBytes(migrated) {
		return nil, warnings, vserr.New(vserr.SchemaUnsupported, "deserialize", "invalid json")
	}
	root := gjson.ParseBytes(migrated)
	if v := root.Get("version").String(); v != CurrentVersion {
		return nil, warnings, vserr.New(vserr.SchemaUnsupported, "deserialize", v)
	}

	g := scene.NewGraph()

	axes := map[string][]string{}
	root.Get("themes").ForEach(func(axis, vals gjson.Result) bool {
		var list []string
		vals.ForEach(func(_, v gjson.Result) bool {
			list = append(list, v.String())
			return true
		})
		axes[axis.String()] = list
		return true
	})
	g.Themes.Set(axes)

	root.Get("variables").ForEach(func(name, body gjson.Result) bool {
		t, ok := parseVarType(body.Get("type").String())
		if !ok {
			warnings = append(warnings, Warning{"deserialize", name.String(), "unknown variable type"})
			return true
		}
		v, err := g.Variables.Add(name.String(), t)
		if err != nil {
			warnings = append(warnings, Warning{"deserialize", name.String(), err.Error()})
			return true
		}
		v.SetValues([]variable.ThemedValue{{Value: convertRawByType(body.Get("value"), t)}})
		return true
	})

	for _, childJSON := range root.Get("children").Array() {
		node, err := buildNode(childJSON, g, &warnings)
		if err != nil {
			return nil, warnings, err
		}
		g.Root.AppendChild(node)
	}
	return g, warnings, nil
}

func parseVarType(s string) (variable.Type, bool) {
	switch s {
	case "boolean":
		return variable.Boolean, true
	case "number":
		return variable.Number, true
	case "color":
		return variable.Color, true
	case "string":
		return variable.String, true
	default:
		return 0, false
	}
}

func convertRawByType(v gjson.Result, t variable.Type) any {
	switch t {
	case variable.Boolean:
		return v.Bool()
	case variable.Number:
		return float32(v.Float())
	case variable.Color:
		c, err := colors.Parse(v.String())
		if err != nil {
			return variable.DefaultValue(variable.Color)
		}
		return c
	default:
		return v.String()
	}
}

var mapWireTypeTable = map[string]scene.Type{
	"frame":     scene.TypeFrame,
	"group":     scene.TypeGroup,
	"rectangle": scene.TypeRectangle,
	"ellipse":   scene.TypeEllipse,
	"line":      scene.TypeLine,
	"polygon":   scene.TypePolygon,
	"path":      scene.TypePath,
	"text":      scene.TypeText,
	"note":      scene.TypeNote,
	"prompt":    scene.TypePrompt,
	"context":   scene.TypeContext,
	"icon":      scene.TypeIcon,
	"iconFont":  scene.TypeIcon,
	"connection": scene.TypeLine,
}

func mapWireType(s string) (scene.Type, bool) {
	t, ok := mapWireTypeTable[s]
	return t, ok
}

// buildNode constructs one runtime Node (plain or ref/instance) from its
// wire descriptor. The built node is detached; the caller attaches it.
func buildNode(v gjson.Result, g *scene.Graph, warnings *[]Warning) (*scene.Node, error) {
	typ := v.Get("type").String()
	if typ == "ref" {
		return buildRef(v, g, warnings)
	}
	nodeType, ok := mapWireType(typ)
	if !ok {
		return nil, vserr.New(vserr.TypeMismatch, "deserialize", typ)
	}
	node := scene.NewNode(v.Get("id").String(), nodeType)
	if err := applyCommonFields(node, v, g, "deserialize"); err != nil {
		return nil, err
	}
	if err := applyVisualFields(node, v, g.Variables, "deserialize"); err != nil {
		return nil, err
	}
	if nodeType == scene.TypeFrame || nodeType == scene.TypeGroup {
		if err := applyLayoutFields(node, v.Get("layout"), g.Variables, "deserialize"); err != nil {
			return nil, err
		}
	}
	if nodeType == scene.TypeText {
		if err := applyTextFields(node, v, g.Variables, "deserialize"); err != nil {
			return nil, err
		}
	}
	if typ == "connection" {
		if err := applyConnectionFields(node, v, g.Variables, "deserialize"); err != nil {
			return nil, err
		}
	}
	for _, c := range v.Get("children").Array() {
		child, err := buildNode(c, g, warnings)
		if err != nil {
			return nil, err
		}
		node.AppendChild(child)
	}
	return node, nil
}

// applyCommonFields converts the fields shared by every node type (§6
// "Common entity fields").
func applyCommonFields(node *scene.Node, v gjson.Result, g *scene.Graph, op string) error {
	node.X = float32(v.Get("x").Float())
	node.Y = float32(v.Get("y").Float())
	if rot := v.Get("rotation"); rot.Exists() {
		// Wire rotation is clockwise-positive degrees; internal rotation is
		// counter-clockwise radians (negate and convert, §3/§8).
		node.Rotation = -degToRad(float32(rot.Float()))
	}
	node.FlipX = v.Get("flipX").Bool()
	node.FlipY = v.Get("flipY").Bool()

	if th := v.Get("theme"); th.Exists() {
		override := variable.Theme{}
		th.ForEach(func(axis, val gjson.Result) bool {
			override[axis.String()] = val.String()
			return true
		})
		node.ThemeOverride = override
	}

	if name := v.Get("name"); name.Exists() {
		val, err := convertString(name, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropName, val)
	}
	if ctx := v.Get("context"); ctx.Exists() {
		val, err := convertString(ctx, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropContext, val)
	}
	if meta := v.Get("metadata"); meta.Exists() {
		node.SetProperty(scene.PropMetadata, meta.Value())
	}
	if en := v.Get("enabled"); en.Exists() {
		val, err := convertBool(en, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropEnabled, val)
	}
	if op2 := v.Get("opacity"); op2.Exists() {
		val, err := convertNumber(op2, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropOpacity, val)
	}

	if w := v.Get("width"); w.Exists() {
		dim, err := convertDimension(w, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropHorizontalSizing, dim)
		node.Width = commitDimension(dim, g)
	}
	if h := v.Get("height"); h.Exists() {
		dim, err := convertDimension(h, g.Variables, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropVerticalSizing, dim)
		node.Height = commitDimension(dim, g)
	}
	return nil
}

// commitDimension returns the geometry value layout should start from: the
// literal value for a Fixed dimension (resolving a Variable handle under
// the document's default theme once, at load time), or 0 for
// FitContent/FillContainer (the layout pass commits those).
func commitDimension(d scene.Dimension, g *scene.Graph) float32 {
	if d.Behavior != scene.SizingFixed {
		return 0
	}
	resolved := variable.Resolve(d.Value, g.Themes.DefaultTheme())
	if f, ok := resolved.(float32); ok {
		return f
	}
	return 0
}

func degToRad(d float32) float32 { return d * 3.14159265358979323846 / 180 }

func applyVisualFields(node *scene.Node, v gjson.Result, vars *variable.Manager, op string) error {
	if f := v.Get("fill"); f.Exists() {
		fills, err := convertFills(f, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropFill, fills)
	} else if f := v.Get("fills"); f.Exists() {
		fills, err := convertFills(f, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropFill, fills)
	}
	if s := v.Get("stroke"); s.Exists() {
		stroke, err := convertStroke(s, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropStroke, stroke)
	}
	if e := v.Get("effects"); e.Exists() {
		effects, err := convertEffects(e, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropEffects, effects)
	}
	if cr := v.Get("cornerRadius"); cr.Exists() {
		radius, err := convertCornerRadius(cr, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropCornerRadius, radius)
	}
	return nil
}

func applyLayoutFields(node *scene.Node, v gjson.Result, vars *variable.Manager, op string) error {
	if !v.Exists() {
		return nil
	}
	if m := v.Get("mode"); m.Exists() {
		node.SetProperty(scene.PropLayoutMode, convertLayoutMode(m.String()))
	}
	if p := v.Get("padding"); p.Exists() {
		pad, err := convertPadding(p, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropPadding, pad)
	}
	if cs := v.Get("childSpacing"); cs.Exists() {
		val, err := convertNumber(cs, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropChildSpacing, val)
	}
	if jc := v.Get("justifyContent"); jc.Exists() {
		node.SetProperty(scene.PropJustifyContent, convertJustify(jc.String()))
	}
	if ai := v.Get("alignItems"); ai.Exists() {
		node.SetProperty(scene.PropAlignItems, convertAlign(ai.String()))
	}
	if is := v.Get("includeStroke"); is.Exists() {
		node.SetProperty(scene.PropIncludeStroke, is.Bool())
	}
	return nil
}

func applyTextFields(node *scene.Node, v gjson.Result, vars *variable.Manager, op string) error {
	set := func(key string, result gjson.Result, conv func(gjson.Result, *variable.Manager, string) (any, error)) error {
		if !result.Exists() {
			return nil
		}
		val, err := conv(result, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(key, val)
		return nil
	}
	if err := set(scene.PropTextContent, v.Get("content"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropFontFamily, v.Get("fontFamily"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropFontWeight, v.Get("fontWeight"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropFontStyle, v.Get("fontStyle"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropFontSize, v.Get("fontSize"), convertNumber); err != nil {
		return err
	}
	if err := set(scene.PropLineHeight, v.Get("lineHeight"), convertNumber); err != nil {
		return err
	}
	if err := set(scene.PropLetterSpacing, v.Get("letterSpacing"), convertNumber); err != nil {
		return err
	}
	if err := set(scene.PropTextAlign, v.Get("textAlign"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropTextAlignVertical, v.Get("textAlignVertical"), convertString); err != nil {
		return err
	}
	if err := set(scene.PropTextGrowth, v.Get("textGrowth"), convertString); err != nil {
		return err
	}
	return nil
}

func applyConnectionFields(node *scene.Node, v gjson.Result, vars *variable.Manager, op string) error {
	if from := v.Get("connectionFrom"); from.Exists() {
		val, err := convertString(from, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropConnectionFrom, val)
	}
	if to := v.Get("connectionTo"); to.Exists() {
		val, err := convertString(to, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropConnectionTo, val)
	}
	return nil
}

// reservedRefKeys are the Ref node's own structural keys (§6), never
// treated as property overrides.
var reservedRefKeys = map[string]bool{
	"id": true, "type": true, "ref": true, "children": true,
	"descendants": true, "reusable": true,
}

// buildRef instantiates a prototype reference node (§6 Ref node, §4.3),
// applying inline property overrides, the legacy duplicate-child-id
// elision, and descendant overrides (structural or property).
func buildRef(v gjson.Result, g *scene.Graph, warnings *[]Warning) (*scene.Node, error) {
	protoPath := v.Get("ref").String()
	proto, err := g.GetNodeByPath(protoPath)
	if err != nil {
		return nil, err
	}
	id := v.Get("id").String()
	inst, err := scene.Instantiate(proto, id, g.Arena)
	if err != nil {
		return nil, err
	}
	if v.Get("reusable").Bool() {
		inst.Reusable = true
	}

	// Inline property overrides: every key on the ref object besides the
	// reserved structural ones (§4.3 "emits a ref with only the
	// overridden properties").
	var applyErr error
	v.ForEach(func(k, val gjson.Result) bool {
		key := k.String()
		if reservedRefKeys[key] {
			return true
		}
		applyErr = applyNamedProperty(inst, key, val, g, "deserialize")
		return applyErr == nil
	})
	if applyErr != nil {
		return nil, applyErr
	}

	// Legacy duplicate-child-id bug (§4.5): an inline `children` array on
	// a ref is a legacy structural-addition format; any entry sharing an
	// id with a child already present from the prototype clone is elided.
	if kids := v.Get("children"); kids.Exists() {
		for _, kidJSON := range kids.Array() {
			kidID := kidJSON.Get("id").String()
			if inst.ChildByID(kidID) != nil {
				continue
			}
			child, err := buildNode(kidJSON, g, warnings)
			if err != nil {
				return nil, err
			}
			inst.AppendChild(child)
			inst.ChildrenOverridden = true
		}
	}

	if desc := v.Get("descendants"); desc.Exists() {
		var descErr error
		desc.ForEach(func(pathKey, entry gjson.Result) bool {
			descErr = applyDescendantOverride(inst, pathKey.String(), entry, g, warnings)
			return descErr == nil // a bad path is a warning, not a fatal parse error
		})
		if descErr != nil {
			return nil, descErr
		}
	}
	return inst, nil
}

// applyNamedProperty dispatches a single wire property key to its typed
// converter, used both for a ref's inline overrides and for a
// descendant's property-override map.
func applyNamedProperty(node *scene.Node, key string, v gjson.Result, g *scene.Graph, op string) error {
	vars := g.Variables
	switch key {
	case "name":
		val, err := convertString(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropName, val)
	case "context":
		val, err := convertString(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropContext, val)
	case "enabled":
		val, err := convertBool(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropEnabled, val)
	case "opacity", "childSpacing", "fontSize", "lineHeight", "letterSpacing":
		val, err := convertNumber(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(propKeyForWireName(key), val)
	case "x":
		node.X = float32(v.Float())
	case "y":
		node.Y = float32(v.Float())
	case "rotation":
		node.Rotation = -degToRad(float32(v.Float()))
	case "flipX":
		node.FlipX = v.Bool()
	case "flipY":
		node.FlipY = v.Bool()
	case "width":
		dim, err := convertDimension(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropHorizontalSizing, dim)
		node.Width = commitDimension(dim, g)
	case "height":
		dim, err := convertDimension(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropVerticalSizing, dim)
		node.Height = commitDimension(dim, g)
	case "fill", "fills":
		fills, err := convertFills(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropFill, fills)
	case "stroke":
		stroke, err := convertStroke(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropStroke, stroke)
	case "effects":
		effects, err := convertEffects(v, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropEffects, effects)
	case "cornerRadius":
		radius, err := convertCornerRadius(v, op)
		if err != nil {
			return err
		}
		node.SetProperty(scene.PropCornerRadius, radius)
	case "layout":
		return applyLayoutFields(node, v, vars, op)
	case "content", "fontFamily", "fontWeight", "fontStyle", "textAlign", "textAlignVertical", "textGrowth":
		val, err := convertString(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(propKeyForWireName(key), val)
	case "connectionFrom", "connectionTo":
		val, err := convertString(v, vars, op)
		if err != nil {
			return err
		}
		node.SetProperty(propKeyForWireName(key), val)
	case "theme":
		override := variable.Theme{}
		v.ForEach(func(axis, val gjson.Result) bool {
			override[axis.String()] = val.String()
			return true
		})
		node.ThemeOverride = override
	case "metadata":
		node.SetProperty(scene.PropMetadata, v.Value())
	}
	return nil
}

var wireNameToPropKey = map[string]string{
	"content":           scene.PropTextContent,
	"childSpacing":      scene.PropChildSpacing,
	"fontSize":          scene.PropFontSize,
	"lineHeight":        scene.PropLineHeight,
	"letterSpacing":     scene.PropLetterSpacing,
	"fontFamily":        scene.PropFontFamily,
	"fontWeight":        scene.PropFontWeight,
	"fontStyle":         scene.PropFontStyle,
	"textAlign":         scene.PropTextAlign,
	"textAlignVertical": scene.PropTextAlignVertical,
	"textGrowth":        scene.PropTextGrowth,
	"opacity":           scene.PropOpacity,
	"connectionFrom":    scene.PropConnectionFrom,
	"connectionTo":      scene.PropConnectionTo,
}

func propKeyForWireName(key string) string {
	if k, ok := wireNameToPropKey[key]; ok {
		return k
	}
	return key
}

// applyDescendantOverride applies one `descendants` entry (§4.3
// "Descendant addressing", §6): either a structural replacement (the
// entry carries a `type`) or a property-override map.
func applyDescendantOverride(inst *scene.Node, relPath string, entry gjson.Result, g *scene.Graph, warnings *[]Warning) error {
	target, err := scene.GetByRelativePath(inst, relPath)
	if err != nil {
		*warnings = append(*warnings, Warning{"deserialize", relPath, "invalid override path"})
		return nil
	}
	if entry.Get("type").Exists() {
		parent := target.Parent
		index := target.IndexInParent()
		replacement, err := buildNode(entry, g, warnings)
		if err != nil {
			return err
		}
		if replacement.ID != target.ID {
			replacement.IsUnique = true
		}
		if parent != nil {
			parent.RemoveChild(target)
			parent.InsertChild(replacement, index)
			if parent == inst {
				inst.ChildrenOverridden = true
			}
		}
		return nil
	}
	var applyErr error
	entry.ForEach(func(k, val gjson.Result) bool {
		applyErr = applyNamedProperty(target, k.String(), val, g, "deserialize")
		return applyErr == nil
	})
	return applyErr
}
