// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Merge concatenates the given geometries into one, for drawing them in
// a single call. Indexes are offset by the number of vertex points that
// precede each geometry. Nothing is deduplicated: the merged vertex and
// index counts are the sums of the inputs.
// If any input has normals or colors, inputs lacking them contribute
// zero normals and white colors.
func Merge(geoms ...*Geometry) *Geometry {
	nv, ni := 0, 0
	hasNorm, hasColor := false, false
	for _, g := range geoms {
		nv += g.NumVertex()
		ni += g.NumIndex()
		hasNorm = hasNorm || len(g.Normal) > 0
		hasColor = hasColor || g.HasColor()
	}
	mg := &Geometry{
		Vertex: make(math32.ArrayF32, 0, nv*3),
		Index:  make(math32.ArrayU32, 0, ni),
	}
	if hasNorm {
		mg.Normal = make(math32.ArrayF32, 0, nv*3)
	}
	if hasColor {
		mg.Color = make(math32.ArrayF32, 0, nv*3)
	}
	for _, g := range geoms {
		vo := uint32(mg.NumVertex())
		n := g.NumVertex()
		mg.Vertex = append(mg.Vertex, g.Vertex[:n*3]...)
		if hasNorm {
			if len(g.Normal) >= n*3 {
				mg.Normal = append(mg.Normal, g.Normal[:n*3]...)
			} else {
				mg.Normal = append(mg.Normal, make(math32.ArrayF32, n*3)...)
			}
		}
		if hasColor {
			if len(g.Color) >= n*3 {
				mg.Color = append(mg.Color, g.Color[:n*3]...)
			} else {
				for i := 0; i < n*3; i++ {
					mg.Color = append(mg.Color, 1)
				}
			}
		}
		for _, idx := range g.Index {
			mg.Index = append(mg.Index, idx+vo)
		}
	}
	return mg
}
