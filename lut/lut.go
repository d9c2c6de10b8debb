// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lut

import (
	"image/color"
	"strconv"

	m32 "github.com/chewxy/math32"
)

// LUT is a color lookup table: a named color map precomputed into a
// fixed number of colors, looked up by scalar values in a [Min, Max] range.
type LUT struct {

	// Name is the name of the color map.
	Name string

	// N is the number of precomputed colors.
	N int

	// Min is the value mapped to the first color.
	Min float32

	// Max is the value mapped to the last color.
	Max float32

	table []color.RGBA
}

// NewLUT returns a new lookup table for the named map with n colors
// over the range [0,1]. An empty or unknown name gives the rainbow
// keyword map, and n <= 0 gives 32 colors.
func NewLUT(name string, n int) *LUT {
	lu := &LUT{Min: 0, Max: 1}
	return lu.SetColorMap(name, n)
}

// SetColorMap precomputes numStops colors of the named map,
// evenly spaced across [0,1]. Names that [Lookup] cannot find
// give the rainbow keyword map.
func (lu *LUT) SetColorMap(name string, numStops int) *LUT {
	if _, ok := Lookup(name); !ok {
		name = "rainbow"
	}
	if numStops <= 0 {
		numStops = 32
	}
	lu.Name = name
	lu.N = numStops
	lu.table = Sample(name, numStops)
	return lu
}

// SetMin sets the value mapped to the first color.
func (lu *LUT) SetMin(min float32) *LUT {
	lu.Min = min
	return lu
}

// SetMax sets the value mapped to the last color.
func (lu *LUT) SetMax(max float32) *LUT {
	lu.Max = max
	return lu
}

// Colors returns the precomputed colors, from Min to Max.
func (lu *LUT) Colors() []color.RGBA {
	return lu.table
}

// Index returns the index of the precomputed color for the value:
// the value is clamped to [Min, Max], rescaled to [0,1], and the
// floor of its position among the N colors is used, clamped to N-1.
func (lu *LUT) Index(v float32) int {
	if lu.N <= 0 {
		return 0
	}
	if v <= lu.Min {
		v = lu.Min
	} else if v >= lu.Max {
		v = lu.Max
	}
	alpha := float32(0)
	if lu.Max > lu.Min {
		alpha = (v - lu.Min) / (lu.Max - lu.Min)
	}
	idx := int(m32.Floor(alpha * float32(lu.N)))
	return min(max(idx, 0), lu.N-1)
}

// Color returns the precomputed color for the value.
func (lu *LUT) Color(v float32) color.RGBA {
	if len(lu.table) == 0 {
		return color.RGBA{}
	}
	return lu.table[lu.Index(v)]
}

// LegendStop is one swatch of a [Legend], spanning [Bottom, Bottom+Height]
// of the legend bar, measured from 0 at the bottom (Min) to 1 at the top (Max).
type LegendStop struct {
	Color  color.RGBA
	Bottom float32
	Height float32
}

// Legend is the data needed to draw a vertical color bar for a [LUT].
type Legend struct {
	Min      float32
	Max      float32
	MinLabel string
	MaxLabel string
	Stops    []LegendStop
}

// Legend returns the swatches of the table stacked bottom to top,
// with min and max labels at two significant digits.
func (lu *LUT) Legend() Legend {
	lg := Legend{
		Min:      lu.Min,
		Max:      lu.Max,
		MinLabel: label(lu.Min),
		MaxLabel: label(lu.Max),
		Stops:    make([]LegendStop, len(lu.table)),
	}
	h := float32(1) / float32(max(len(lu.table), 1))
	for i, c := range lu.table {
		lg.Stops[i] = LegendStop{Color: c, Bottom: float32(i) * h, Height: h}
	}
	return lg
}

func label(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 2, 32)
}
