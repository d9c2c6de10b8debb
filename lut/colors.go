// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lut maps scalar values to colors using named color maps:
// continuous gradients (jet and the [colormap.AvailableMaps] of Cogent
// Core) and keyword tables of control points, plus a [LUT] lookup table
// with a min / max range and legend stops.
package lut

import (
	"image/color"
	"strings"
	"sync"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/colors/colormap"
	"cogentcore.org/core/math32"
)

// DefaultMap is the color map used when no name is given
// or a name cannot be resolved.
const DefaultMap = "jet"

// Stop is one control point of a color map: the color at position Pos in [0,1].
type Stop struct {
	Pos   float32
	Color color.RGBA
}

// Gradients are the built-in continuous gradients, checked first when
// resolving a name.
var Gradients = map[string][]Stop{
	"jet": {
		{0, colors.FromRGB(0, 0, 131)},
		{0.125, colors.FromRGB(0, 60, 170)},
		{0.375, colors.FromRGB(5, 255, 255)},
		{0.625, colors.FromRGB(255, 255, 0)},
		{0.875, colors.FromRGB(250, 0, 0)},
		{1, colors.FromRGB(128, 0, 0)},
	},
}

var (
	keywordsMu sync.RWMutex

	// keywords are the control point tables used when a name is neither
	// a gradient nor a Cogent Core color map.
	keywords = map[string][]Stop{
		"rainbow":    hexStops(0x0000FF, 0x00FFFF, 0x00FF00, 0xFFFF00, 0xFF0000),
		"cooltowarm": hexStops(0x3C4EC2, 0x9BBCFF, 0xDCDCDC, 0xF6A385, 0xB40426),
		"blackbody":  hexStops(0x000000, 0x780000, 0xE63200, 0xFFFF00, 0xFFFFFF),
		"grayscale":  hexStops(0x000000, 0x404040, 0x7F7F80, 0xBFBFBF, 0xFFFFFF),
		"hot": {
			{0, FromHex(0x000000)},
			{0.3, FromHex(0xE60000)},
			{0.6, FromHex(0xFFD200)},
			{1, FromHex(0xFFFFFF)},
		},
	}
)

// hexStops returns stops at 0, 0.2, 0.5, 0.8 and 1 for the given 0xRRGGBB colors.
func hexStops(c0, c1, c2, c3, c4 uint32) []Stop {
	return []Stop{
		{0, FromHex(c0)},
		{0.2, FromHex(c1)},
		{0.5, FromHex(c2)},
		{0.8, FromHex(c3)},
		{1, FromHex(c4)},
	}
}

// AddColorMap registers a keyword color map with the given control points,
// which must be sorted by position. It replaces any keyword map of the same name.
func AddColorMap(name string, stops []Stop) {
	keywordsMu.Lock()
	keywords[name] = stops
	keywordsMu.Unlock()
}

// Keyword returns the control points of the named keyword map, if any.
func Keyword(name string) ([]Stop, bool) {
	keywordsMu.RLock()
	defer keywordsMu.RUnlock()
	st, ok := keywords[name]
	return st, ok
}

// FromHex returns the opaque color for a packed 0xRRGGBB value.
func FromHex(hex uint32) color.RGBA {
	return colors.FromRGB(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

// ToHex returns the packed 0xRRGGBB value of the color, ignoring alpha.
func ToHex(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Func maps a value in [0,1] to a color.
type Func func(t float32) color.RGBA

// Lookup returns the color function for the named map, looking in order
// at the built-in [Gradients], the keyword tables, and the Cogent Core
// [colormap.AvailableMaps], the latter ignoring case so that "viridis"
// finds "Viridis". It returns false when no map has the name.
func Lookup(name string) (Func, bool) {
	if st, ok := Gradients[name]; ok {
		return stopsFunc(st), true
	}
	if st, ok := Keyword(name); ok {
		return stopsFunc(st), true
	}
	cm, ok := colormap.AvailableMaps[name]
	if !ok {
		for k, m := range colormap.AvailableMaps {
			if strings.EqualFold(k, name) {
				cm, ok = m, true
				break
			}
		}
	}
	if !ok {
		return nil, false
	}
	return func(t float32) color.RGBA {
		return colors.AsRGBA(cm.Map(math32.Clamp(t, 0, 1)))
	}, true
}

// Resolve returns the color function for the named map, as found by
// [Lookup]. An empty or unknown name resolves to [DefaultMap].
func Resolve(name string) Func {
	if f, ok := Lookup(name); ok {
		return f
	}
	return stopsFunc(Gradients[DefaultMap])
}

// Color returns the color of the named map at t in [0,1].
func Color(name string, t float32) color.RGBA {
	return Resolve(name)(t)
}

// Sample returns n colors of the named map, evenly spaced from 0 to 1
// inclusive. A single sample is the color at 0.
func Sample(name string, n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	f := Resolve(name)
	clrs := make([]color.RGBA, n)
	for i := range clrs {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		clrs[i] = f(t)
	}
	return clrs
}

// Colors returns the flat r, g, b color array (3*count values in [0,1])
// for count elements. Explicit colors are byte triples that are scaled by
// 1/255 and passed through in order. Without explicit colors, count evenly
// spaced colors of the named map are used.
func Colors(count int, explicit []uint8, name string) []float32 {
	if count <= 0 {
		return nil
	}
	out := make([]float32, 3*count)
	if len(explicit) > 0 {
		n := min(count, len(explicit)/3)
		for i := 0; i < n*3; i++ {
			out[i] = float32(explicit[i]) / 255
		}
		return out
	}
	for i, c := range Sample(name, count) {
		out[i*3] = float32(c.R) / 255
		out[i*3+1] = float32(c.G) / 255
		out[i*3+2] = float32(c.B) / 255
	}
	return out
}

// stopsFunc returns the function interpolating linearly in RGB space
// between the two control points bracketing t.
func stopsFunc(stops []Stop) Func {
	return func(t float32) color.RGBA {
		return Interpolate(stops, t)
	}
}

// Interpolate returns the color at t, linearly interpolated in RGB space
// between the two control points bracketing it. Values outside of the
// range of the stops get the end colors.
func Interpolate(stops []Stop, t float32) color.RGBA {
	n := len(stops)
	switch {
	case n == 0:
		return color.RGBA{}
	case t <= stops[0].Pos:
		return stops[0].Color
	case t >= stops[n-1].Pos:
		return stops[n-1].Color
	}
	for j := 0; j < n-1; j++ {
		lo, hi := stops[j], stops[j+1]
		if t < lo.Pos || t > hi.Pos {
			continue
		}
		if hi.Pos == lo.Pos {
			return hi.Color
		}
		f := (t - lo.Pos) / (hi.Pos - lo.Pos)
		return color.RGBA{
			R: lerp8(lo.Color.R, hi.Color.R, f),
			G: lerp8(lo.Color.G, hi.Color.G, f),
			B: lerp8(lo.Color.B, hi.Color.B, f),
			A: lerp8(lo.Color.A, hi.Color.A, f),
		}
	}
	return stops[n-1].Color
}

func lerp8(a, b uint8, f float32) uint8 {
	return uint8(math32.Round(math32.Lerp(float32(a), float32(b), f)))
}
