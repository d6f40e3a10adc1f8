// Copyright (c) 2026, Vectorscene. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides the hex color parsing/formatting and blend-mode
// math the fill, stroke, and effect properties need.
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// BlendMode names the compositing mode for a fill or effect layer.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendDarken   BlendMode = "darken"
	BlendLighten  BlendMode = "lighten"
)

// FromRGB makes an opaque RGBA color from 0-255 components.
func FromRGB(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 255} }

// AsRGBA converts any color.Color to color.RGBA.
func AsRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Parse parses a `#rgb`, `#rgba`, `#rrggbb`, or `#rrggbbaa` hex color
// string, as used throughout the on-wire document format. It fails open:
// an invalid string returns the default black and an error, matching the
// serialization bridge's "warning, not error" policy for bad input (see
// §7 of the specification).
func Parse(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	expand := func(c byte) string { return string(c) + string(c) }
	switch len(s) {
	case 3:
		s = expand(s[0]) + expand(s[1]) + expand(s[2]) + "ff"
	case 4:
		s = expand(s[0]) + expand(s[1]) + expand(s[2]) + expand(s[3])
	case 6:
		s = s + "ff"
	case 8:
		// already full form
	default:
		return color.RGBA{A: 255}, fmt.Errorf("colors: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}, fmt.Errorf("colors: invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// ToHex formats a color as `#rrggbb`, or `#rrggbbaa` if not fully opaque.
func ToHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Lerp linearly interpolates between a and b by t in [0,1], per-channel.
func Lerp(a, b color.RGBA, t float32) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// Blend applies blend mode m of src over dst, ignoring alpha compositing
// beyond the modes' own definitions (the rasterizer, an external
// collaborator, handles full alpha compositing).
func Blend(m BlendMode, dst, src color.RGBA) color.RGBA {
	ch := func(d, s uint8) uint8 {
		df, sf := float32(d)/255, float32(s)/255
		var r float32
		switch m {
		case BlendMultiply:
			r = df * sf
		case BlendScreen:
			r = 1 - (1-df)*(1-sf)
		case BlendDarken:
			r = min(df, sf)
		case BlendLighten:
			r = max(df, sf)
		case BlendOverlay:
			if df < 0.5 {
				r = 2 * df * sf
			} else {
				r = 1 - 2*(1-df)*(1-sf)
			}
		default:
			r = sf
		}
		return uint8(r * 255)
	}
	return color.RGBA{R: ch(dst.R, src.R), G: ch(dst.G, src.G), B: ch(dst.B, src.B), A: src.A}
}
