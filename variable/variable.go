// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variable implements named, typed, theme-resolved value bindings
// (§3 "Variable", §3 "Theme", §4.1) — the value-resolution layer every
// node property read walks through.
package variable

import (
	"image/color"

	"github.com/cogentcore-design/vectorscene/vserr"
)

// Type is the closed set of variable value types.
type Type int

const (
	Boolean Type = iota
	Number
	Color
	String
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case Color:
		return "color"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// DefaultValue returns the zero value for a type, used when no ThemedValue
// in a Variable matches the active theme (§3: "the default value is used
// if none match (false / 0 / "#000000" / "")").
func DefaultValue(t Type) any {
	switch t {
	case Boolean:
		return false
	case Number:
		return float32(0)
	case Color:
		return color.RGBA{A: 255}
	default:
		return ""
	}
}

// Theme is a mapping from axis name to the axis's active value, e.g.
// {"mode": "dark"}.
type Theme map[string]string

// Subset reports whether every axis/value pair in t is also present (and
// equal) in full — i.e. t is a subset of full. A nil or empty t is
// trivially a subset of anything (the "default" / unconditional value).
func (t Theme) Subset(full Theme) bool {
	for axis, val := range t {
		if full[axis] != val {
			return false
		}
	}
	return true
}

// ThemedValue is one candidate value of a Variable, optionally restricted
// to a theme. A nil/empty Theme is the unconditional default.
type ThemedValue struct {
	Value any
	Theme Theme
}

// Listener is notified when a Variable's values change. Variables notify
// synchronously from setValues (§4.1, §5) and must not themselves open an
// Update Block; they only invalidate caches.
type Listener func(v *Variable)

// Variable is a named, typed, themed value binding (§3).
type Variable struct {
	Name      string
	Type      Type
	Values    []ThemedValue
	listeners map[int]Listener
	nextSubID int
}

// New constructs an empty Variable of the given type.
func New(name string, t Type) *Variable {
	return &Variable{Name: name, Type: t, listeners: map[int]Listener{}}
}

// Subscribe registers a listener and returns a handle usable with
// Unsubscribe. Per Design Notes §9, subscriptions are explicit: no
// GC-driven cleanup.
func (v *Variable) Subscribe(l Listener) int {
	id := v.nextSubID
	v.nextSubID++
	v.listeners[id] = l
	return id
}

// Unsubscribe removes a listener registered with Subscribe.
func (v *Variable) Unsubscribe(id int) {
	delete(v.listeners, id)
}

// SetValues replaces the Variable's candidate values and notifies all
// listeners synchronously (§4.1, §5).
func (v *Variable) SetValues(values []ThemedValue) {
	v.Values = values
	for _, l := range v.listeners {
		l(v)
	}
}

// Resolve returns the value of v under the given active theme: the last
// ThemedValue whose Theme is a subset of active, or DefaultValue(v.Type)
// if none match (§3, §4.1).
func (v *Variable) Resolve(active Theme) any {
	for i := len(v.Values) - 1; i >= 0; i-- {
		tv := v.Values[i]
		if tv.Theme.Subset(active) {
			return tv.Value
		}
	}
	return DefaultValue(v.Type)
}

// Handle is a non-owning reference to a Variable held by a property
// (§3 Properties: "a Variable handle"). It is just the Variable pointer;
// property storage distinguishes "concrete value" from "handle" using the
// sum-type property representation described in Design Notes §9.
type Handle = *Variable

// Resolve resolves value, which is either a concrete value or a Handle,
// under the given theme (§4.1 `resolve(value, theme)`). This is the single
// entry point every resolved-property read goes through, and its result
// depends only on value and theme (Testable Property 5: resolution
// purity).
func Resolve(value any, theme Theme) any {
	if h, ok := value.(Handle); ok {
		if h == nil {
			return nil
		}
		return h.Resolve(theme)
	}
	return value
}

// TypeOf returns the variable Type matching the dynamic type of a
// concrete Go value, used by converters when binding `"$name"` references.
func TypeOf(value any) (Type, bool) {
	switch value.(type) {
	case bool:
		return Boolean, true
	case float32, float64, int:
		return Number, true
	case color.RGBA:
		return Color, true
	case string:
		return String, true
	default:
		return 0, false
	}
}

// checkType returns a TypeMismatch error if the variable's type does not
// equal expected.
func checkType(v *Variable, expected Type, op string) error {
	if v.Type != expected {
		return vserr.New(vserr.TypeMismatch, op, v.Name)
	}
	return nil
}

// CheckType exposes checkType for callers outside the package (the
// Manager's getVariable uses it directly; exported for the serialization
// bridge, which also validates `"$name"` references against a declared
// type before binding).
func CheckType(v *Variable, expected Type, op string) error {
	return checkType(v, expected, op)
}
