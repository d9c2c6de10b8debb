// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/lut"
	"cogentcore.org/geoviz/shape"
)

// Arrow glyph dimensions, in scene units.
const (
	// ArrowLength is the length of the longest arrow when arrows are normalized.
	ArrowLength = 10

	ShaftWidth = 0.1

	HeadRadius = 0.025
	HeadHeight = 0.05
	HeadSegs   = 5

	// featureShades is the number of color map entries for arrow magnitudes.
	featureShades = 101
)

// ArrowBuilder accumulates arrow glyphs, each a box shaft and a cone head,
// and merges them into two geometries on [ArrowBuilder.Finalize].
// The zero value is ready to use, and the builder can be reused after
// Finalize. It is not safe for concurrent use.
type ArrowBuilder struct {
	shafts []*shape.Geometry
	heads  []*shape.Geometry
}

// Len returns the number of arrows added since the last Finalize.
func (ab *ArrowBuilder) Len() int {
	return len(ab.shafts)
}

// Add adds an arrow for the feature vector direction at origin, with its
// tip at origin+direction. When normalized, the arrow is scaled by
// [ArrowLength]/maxLen, so that the longest arrow of the batch has length
// [ArrowLength]. All vertices of the arrow get the flat byte color.
func (ab *ArrowBuilder) Add(origin, direction math32.Vector3, clr [3]uint8, maxLen float32, normalized bool) {
	if normalized {
		f := float32(0)
		if maxLen > 0 {
			f = ArrowLength / maxLen
		}
		direction = direction.MulScalar(f)
	}
	height := direction.Length()

	shaft := shape.NewBox(ShaftWidth, height, ShaftWidth)
	shaft.Translate(math32.Vec3(0, -height/2, 0))
	head := shape.NewCone(HeadHeight, HeadRadius, HeadSegs, 1, true)
	head.Translate(math32.Vec3(0, -HeadHeight/2, 0))

	q := math32.NewQuat(0, 0, 0, 1)
	if height > 0 {
		q.SetFromUnitVectors(math32.Vec3(0, 1, 0), direction.DivScalar(height))
	}
	tip := origin.Add(direction)
	shaft.Transform(q, tip)
	head.Transform(q, tip)

	c := math32.Vec3(float32(clr[0])/255, float32(clr[1])/255, float32(clr[2])/255)
	shaft.SetColor(c)
	head.SetColor(c)

	ab.shafts = append(ab.shafts, shaft)
	ab.heads = append(ab.heads, head)
}

// Finalize merges all the added shafts and heads into an [ArrowGroup]
// and clears the builder.
func (ab *ArrowBuilder) Finalize() *ArrowGroup {
	ag := &ArrowGroup{
		Shafts: shape.Merge(ab.shafts...),
		Heads:  shape.Merge(ab.heads...),
	}
	ab.shafts = nil
	ab.heads = nil
	return ag
}

// BuildFeatureArrows returns one arrow per vertex of the batch, shape
// [batch, count, 3], for the feature vectors, which must have one
// vector per vertex. Vertex positions are multiplied by scale, the factor
// returned by [Normalize] for the geometry, or 1.
//
// Arrows get the explicit feature byte colors if given; otherwise their
// color encodes their magnitude relative to the longest vector of the
// batch along the named color map. The longest magnitude is computed in a
// first pass over the whole batch before any arrow is built, and returned.
func BuildFeatureArrows(shp []int, vertices, features []float32, featColors []uint8, cmap string, scale float32, normalized bool) (*ArrowGroup, float32, error) {
	b := &Buffers{VerticesShape: shp, Vertices: vertices, Features: features, FeatColors: featColors}
	if len(shp) != 3 || shp[0] <= 0 || shp[1] <= 0 || shp[2] != 3 {
		return nil, 0, shapeErrorf("vertices must be of shape [b, n, 3] but got %v", shp)
	}
	if len(vertices) == 0 {
		return nil, 0, &MissingDataError{Msg: "no vertices provided for feature arrows"}
	}
	if err := ValidateFeatures(b); err != nil {
		return nil, 0, err
	}
	n := b.NumVertex()
	if n > len(vertices)/3 {
		return nil, 0, shapeErrorf("vertex buffer has %d values, shape %v needs %d", len(vertices), shp, n*3)
	}

	vecAt := func(buf []float32, i int) math32.Vector3 {
		return math32.Vec3(buf[i*3], buf[i*3+1], buf[i*3+2])
	}

	var maxLen float32
	for i := 0; i < n; i++ {
		maxLen = math32.Max(maxLen, vecAt(features, i).Length())
	}

	var shades []uint8
	if len(featColors) == 0 {
		table := lut.Sample(cmap, featureShades)
		shades = make([]uint8, 3*len(table))
		for i, c := range table {
			shades[i*3], shades[i*3+1], shades[i*3+2] = c.R, c.G, c.B
		}
	}

	ab := &ArrowBuilder{}
	for i := 0; i < n; i++ {
		origin := vecAt(vertices, i).MulScalar(scale)
		dir := vecAt(features, i)
		var clr [3]uint8
		if len(featColors) > 0 {
			copy(clr[:], featColors[i*3:i*3+3])
		} else {
			si := 0
			if maxLen > 0 {
				si = int(math32.Floor(dir.Length() / maxLen * (featureShades - 1)))
				si = min(max(si, 0), featureShades-1)
			}
			copy(clr[:], shades[si*3:si*3+3])
		}
		ab.Add(origin, dir, clr, maxLen, normalized)
	}
	return ab.Finalize(), maxLen, nil
}
