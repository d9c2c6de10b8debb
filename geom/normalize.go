// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// NormalizeRadius is the radius of the bounding sphere of normalized geometry.
const NormalizeRadius = 100

// Normalize scales the primitive in place, about the origin, so that its
// bounding sphere has radius [NormalizeRadius], and returns the scale
// factor NormalizeRadius/radius. A primitive with zero radius (no points,
// or all points coincident) is left untouched and 1 is returned.
func Normalize(p Primitive) float32 {
	rad := Bounds(p).Radius
	if rad <= 0 {
		return 1
	}
	scale := NormalizeRadius / rad
	for _, g := range p.Geometries() {
		g.Scale(scale)
	}
	return scale
}
