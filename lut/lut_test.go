// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lut

import (
	"image/color"
	"testing"

	"cogentcore.org/core/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestColorsExplicit(t *testing.T) {
	out := Colors(2, []uint8{255, 0, 51, 0, 102, 255}, "jet")
	assert.InDeltaSlice(t, []float32{1, 0, 0.2, 0, 0.4, 1}, out, 1e-6)
}

func TestColorsDeterministic(t *testing.T) {
	a := Colors(5, nil, "jet")
	b := Colors(5, nil, "jet")
	assert.Equal(t, a, b)
	assert.Len(t, a, 15)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestColorsJetEnds(t *testing.T) {
	out := Colors(3, nil, "")
	require.Len(t, out, 9)
	assert.InDeltaSlice(t, []float32{0, 0, 131.0 / 255}, out[0:3], 1e-6)
	assert.InDeltaSlice(t, []float32{128.0 / 255, 0, 0}, out[6:9], 1e-6)
	assert.NotEqual(t, out[0:3], out[3:6])
	assert.NotEqual(t, out[3:6], out[6:9])
}

func TestColorsDeterminismProperty(t *testing.T) {
	names := []string{"jet", "rainbow", "cooltowarm", "blackbody", "grayscale", "unknown", ""}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 300).Draw(t, "n")
		name := rapid.SampledFrom(names).Draw(t, "name")
		a := Colors(n, nil, name)
		b := Colors(n, nil, name)
		if len(a) != 3*n {
			t.Fatalf("got %d values for %d colors", len(a), n)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("color %d differs: %v vs %v", i, a[i], b[i])
			}
		}
	})
}

func TestResolveFallback(t *testing.T) {
	assert.Equal(t, Sample("jet", 7), Sample("no-such-map", 7))
	assert.Equal(t, FromHex(0x0000FF), Color("rainbow", 0))
	assert.Equal(t, FromHex(0xFF0000), Color("rainbow", 1))
}

func TestResolveColormapNames(t *testing.T) {
	jet := Colors(5, nil, "jet")
	for _, nm := range []string{"viridis", "plasma", "inferno", "hot", "Viridis"} {
		_, ok := Lookup(nm)
		assert.True(t, ok, nm)
		assert.NotEqual(t, jet, Colors(5, nil, nm), nm)
	}
	assert.Equal(t, Sample("Viridis", 9), Sample("viridis", 9))
	// the keyword table wins over the Cogent Core Rainbow map
	assert.Equal(t, FromHex(0x00FFFF), Color("rainbow", 0.2))
	assert.Equal(t, FromHex(0xE60000), Color("hot", 0.3))

	_, ok := Lookup("no-such-map")
	assert.False(t, ok)
}

func TestInterpolate(t *testing.T) {
	st, ok := Keyword("grayscale")
	require.True(t, ok)
	// halfway between 0x404040 at 0.2 and 0x7F7F80 at 0.5
	c := Interpolate(st, 0.35)
	assert.InDelta(t, 96, c.R, 1)
	assert.InDelta(t, 96, c.G, 1)
	assert.InDelta(t, 96, c.B, 1)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, FromHex(0x000000), Interpolate(st, -1))
	assert.Equal(t, FromHex(0xFFFFFF), Interpolate(st, 2))
	assert.Equal(t, color.RGBA{}, Interpolate(nil, 0.5))
}

func TestHex(t *testing.T) {
	assert.Equal(t, uint32(0xf57c00), ToHex(FromHex(0xf57c00)))
	assert.Equal(t, colors.FromRGB(0xf5, 0x7c, 0x00), FromHex(0xf57c00))
}

func TestAddColorMap(t *testing.T) {
	AddColorMap("test-bw", []Stop{{0, FromHex(0x000000)}, {1, FromHex(0xFFFFFF)}})
	assert.Equal(t, FromHex(0xFFFFFF), Color("test-bw", 1))
	assert.Equal(t, colors.FromRGB(128, 128, 128), Color("test-bw", 0.5))
}

func TestLUT(t *testing.T) {
	lu := NewLUT("rainbow", 10).SetMin(-1).SetMax(1)
	assert.Equal(t, 10, lu.N)
	require.Len(t, lu.Colors(), 10)
	assert.Equal(t, 0, lu.Index(-5))
	assert.Equal(t, 0, lu.Index(-1))
	assert.Equal(t, 9, lu.Index(1))
	assert.Equal(t, 9, lu.Index(100))
	assert.Equal(t, 5, lu.Index(0))
	assert.Equal(t, 4, lu.Index(-0.01))
	assert.Equal(t, lu.Colors()[0], lu.Color(-2))
	assert.Equal(t, lu.Colors()[9], lu.Color(2))

	def := NewLUT("", 0)
	assert.Equal(t, "rainbow", def.Name)
	assert.Equal(t, 32, def.N)

	unknown := NewLUT("no-such-map", 0)
	assert.Equal(t, "rainbow", unknown.Name)
	assert.Equal(t, def.Colors(), unknown.Colors())

	flat := NewLUT("grayscale", 4).SetMin(3).SetMax(3)
	assert.Equal(t, 0, flat.Index(3))
}

func TestLegend(t *testing.T) {
	lu := NewLUT("cooltowarm", 4).SetMin(0).SetMax(2.5)
	lg := lu.Legend()
	assert.Equal(t, "0", lg.MinLabel)
	assert.Equal(t, "2.5", lg.MaxLabel)
	require.Len(t, lg.Stops, 4)
	for i, st := range lg.Stops {
		assert.Equal(t, lu.Colors()[i], st.Color)
		assert.InDelta(t, float32(i)*0.25, st.Bottom, 1e-6)
		assert.InDelta(t, 0.25, st.Height, 1e-6)
	}
}
