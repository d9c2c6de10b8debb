// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// BoxN returns the number of vertex and index points in a box.
func BoxN() (numVertex, numIndex int) {
	return 6 * 4, 6 * 6
}

// NewBox returns a rectangular-shaped solid (cuboid) centered at the
// origin with the given size along each dimension. Each face has its
// own 4 vertices so that normals are flat per face.
func NewBox(width, height, depth float32) *Geometry {
	nv, ni := BoxN()
	g := &Geometry{
		Vertex: make(math32.ArrayF32, 0, nv*3),
		Normal: make(math32.ArrayF32, 0, nv*3),
		Index:  make(math32.ArrayU32, 0, ni),
	}
	hx, hy, hz := width/2, height/2, depth/2
	x := math32.Vec3(hx, 0, 0)
	y := math32.Vec3(0, hy, 0)
	z := math32.Vec3(0, 0, hz)

	// start with neg z as typically back
	g.addPlane(z.Negate(), y, x) // nz
	g.addPlane(y.Negate(), x, z) // ny
	g.addPlane(x, y, z)          // px
	g.addPlane(x.Negate(), z, y) // nx
	g.addPlane(y, z, x)          // py
	g.addPlane(z, x, y)          // pz
	return g
}

// addPlane adds a single-segment rectangle centered at ctr, spanning the
// half-extent vectors u and v. The face normal is along u x v, which
// must point away from the solid.
func (g *Geometry) addPlane(ctr, u, v math32.Vector3) {
	norm := u.Cross(v)
	if ln := norm.Length(); ln > 0 {
		norm = norm.DivScalar(ln)
	}
	i0 := g.appendVertex(ctr.Sub(u).Sub(v), norm)
	i1 := g.appendVertex(ctr.Add(u).Sub(v), norm)
	i2 := g.appendVertex(ctr.Add(u).Add(v), norm)
	i3 := g.appendVertex(ctr.Sub(u).Add(v), norm)
	g.Index = append(g.Index, i0, i1, i2, i0, i2, i3)
}
