// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"reflect"

	"github.com/cogentcore-design/vectorscene/colors/gradient"
	"github.com/cogentcore-design/vectorscene/variable"
)

// Property keys, enumerated rather than held in a heterogeneous map value
// type beyond `any`, per Design Notes §9 ("enumerate the property keys and
// generate the bridge").
const (
	PropWidth          = "width"
	PropHeight         = "height"
	PropRotation       = "rotation"
	PropFlipX          = "flipX"
	PropFlipY          = "flipY"
	PropOpacity        = "opacity"
	PropFill           = "fill"
	PropStroke         = "stroke"
	PropEffects        = "effects"
	PropCornerRadius   = "cornerRadius"

	PropLayoutMode         = "mode"
	PropPadding            = "padding"
	PropChildSpacing       = "childSpacing"
	PropJustifyContent     = "justifyContent"
	PropAlignItems         = "alignItems"
	PropIncludeStroke      = "includeStroke"
	PropHorizontalSizing   = "horizontalSizing"
	PropVerticalSizing     = "verticalSizing"

	PropTextContent           = "content"
	PropFontFamily            = "fontFamily"
	PropFontWeight            = "fontWeight"
	PropFontStyle             = "fontStyle"
	PropFontSize              = "fontSize"
	PropLineHeight            = "lineHeight"
	PropLetterSpacing         = "letterSpacing"
	PropTextAlign             = "textAlign"
	PropTextAlignVertical     = "textAlignVertical"
	PropTextGrowth            = "textGrowth"

	PropName      = "name"
	PropContext   = "context"
	PropTheme     = "theme"
	PropMetadata  = "metadata"
	PropEnabled   = "enabled"

	// PropConnectionFrom/To hold the wire paths a "connection" child binds
	// its endpoints to; a connection is otherwise a TypeLine node.
	PropConnectionFrom = "connectionFrom"
	PropConnectionTo   = "connectionTo"
)

// SizingBehavior is the per-axis layout sizing mode (§4.6).
type SizingBehavior int

const (
	SizingFixed SizingBehavior = iota
	SizingFitContent
	SizingFillContainer
)

// Dimension is the authored value of a width/height property: either a
// Fixed size (itself possibly a Variable handle, per §3 Properties
// "geometric... width/height"), or a FitContent/FillContainer behavior
// with an optional fallback size used before the layout pass commits a
// real size (§6: "fit_content(fallback?)").
type Dimension struct {
	Behavior    SizingBehavior
	Value       any // float32 or variable.Handle, meaningful when Behavior == SizingFixed
	Fallback    float32
	HasFallback bool
}

// Fixed constructs a Dimension for a literal or variable-bound fixed size.
func Fixed(value any) Dimension { return Dimension{Behavior: SizingFixed, Value: value} }

// FitContent constructs a Dimension that fits its children's content.
func FitContent(fallback float32, has bool) Dimension {
	return Dimension{Behavior: SizingFitContent, Fallback: fallback, HasFallback: has}
}

// FillContainerDim constructs a Dimension that fills available space.
func FillContainerDim(fallback float32, has bool) Dimension {
	return Dimension{Behavior: SizingFillContainer, Fallback: fallback, HasFallback: has}
}

// Direction is the layout main axis (§4.6).
type Direction int

const (
	DirectionNone Direction = iota
	DirectionHorizontal
	DirectionVertical
)

// Justify is the main-axis distribution mode (§4.6).
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align is the cross-axis alignment mode (§4.6).
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Padding is the four-sided inset (§4.6).
type Padding struct {
	Top, Right, Bottom, Left float32
}

// StrokeAlign controls how a stroke expands around its path (§4.2
// visualLocalBounds).
type StrokeAlign int

const (
	StrokeInside StrokeAlign = iota
	StrokeCenter
	StrokeOutside
)

// CornerRadius is the per-corner rounding of a rectangle-like shape.
type CornerRadius struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

// UniformCornerRadius constructs a CornerRadius with the same value on
// all four corners, the common case of a single wire number.
func UniformCornerRadius(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Stroke is the visual stroke property (§3 Properties "visual").
type Stroke struct {
	Color color.RGBA
	Width float32
	Align StrokeAlign
}

// FillKind is the closed set of fill kinds (§6).
type FillKind string

const (
	FillSolid    FillKind = "color"
	FillImage    FillKind = "image"
	FillGradient FillKind = "gradient"
	FillMesh     FillKind = "mesh_gradient"
)

// Fill is one layer of a (possibly array-valued) fill property (§6).
type Fill struct {
	Kind      FillKind
	Color     color.RGBA           // FillSolid
	Gradient  gradient.Gradient    // FillGradient, FillMesh
	ImageURL  string               // FillImage
	ImageMode string               // "fill" | "fit" | "stretch"
	Enabled   bool
	Opacity   float32
	BlendMode string
}

// EffectKind is the closed set of effect kinds (§6).
type EffectKind string

const (
	EffectLayerBlur      EffectKind = "blur"
	EffectShadow         EffectKind = "shadow"
	EffectBackgroundBlur EffectKind = "background_blur"
)

// Effect is one visual effect layer (§6).
type Effect struct {
	Kind      EffectKind
	Radius    float32
	Spread    float32
	OffsetX   float32
	OffsetY   float32
	Color     color.RGBA
	BlendMode string
	Enabled   bool
}

// Properties is the named record mapping keys to either a concrete value
// or a Variable handle (§3 "Properties").
type Properties struct {
	values map[string]any
}

// NewProperties constructs an empty Properties bag.
func NewProperties() *Properties {
	return &Properties{values: map[string]any{}}
}

// Has reports whether key is set directly on this bag (not considering
// prototype fallback).
func (p *Properties) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Get returns the raw (possibly Variable-handle) value set directly on
// this bag.
func (p *Properties) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set stores a raw value (concrete or Variable handle) directly on this
// bag.
func (p *Properties) Set(key string, value any) {
	p.values[key] = value
}

// Delete removes a key from this bag (used when an override is cleared
// because it now equals the prototype's value).
func (p *Properties) Delete(key string) {
	delete(p.values, key)
}

// Keys returns every key set directly on this bag.
func (p *Properties) Keys() []string {
	out := make([]string, 0, len(p.values))
	for k := range p.values {
		out = append(out, k)
	}
	return out
}

// RawProperty returns the raw property value for key, falling back to the
// prototype chain when the key is not overridden on this node (§4.3:
// "Every property read on an instance falls back to the prototype's
// property if not overridden").
func (n *Node) RawProperty(key string) (any, bool) {
	if n.Prototype != nil && !n.Overridden[key] {
		return n.Prototype.RawProperty(key)
	}
	return n.Props.Get(key)
}

// Resolved returns the theme-resolved value of a property (§4.1 resolve).
func (n *Node) Resolved(key string, theme variable.Theme) (any, bool) {
	raw, ok := n.RawProperty(key)
	if !ok {
		return nil, false
	}
	return variable.Resolve(raw, theme), true
}

// SetProperty applies a property write, tracking overrides against the
// prototype chain per §4.3: "setting a key that equals the prototype's
// removes it from the set" (Testable Property 7: override minimality).
func (n *Node) SetProperty(key string, value any) {
	if n.Prototype != nil {
		protoVal, _ := n.Prototype.RawProperty(key)
		if valuesEqual(value, protoVal) {
			n.Props.Delete(key)
			delete(n.Overridden, key)
			return
		}
		n.Props.Set(key, value)
		n.Overridden[key] = true
		return
	}
	n.Props.Set(key, value)
}

// valuesEqual compares two raw property values (concrete or Variable
// handles) for the override-equality check.
func valuesEqual(a, b any) bool {
	ah, aok := a.(variable.Handle)
	bh, bok := b.(variable.Handle)
	if aok || bok {
		return aok && bok && ah == bh
	}
	switch av := a.(type) {
	case Dimension:
		bv, ok := b.(Dimension)
		return ok && av == bv
	case color.RGBA:
		bv, ok := b.(color.RGBA)
		return ok && av == bv
	case Padding:
		bv, ok := b.(Padding)
		return ok && av == bv
	case []Fill:
		bv, ok := b.([]Fill)
		return ok && reflect.DeepEqual(av, bv)
	case []Effect:
		bv, ok := b.([]Effect)
		return ok && reflect.DeepEqual(av, bv)
	default:
		return a == b
	}
}
