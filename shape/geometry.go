// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides flat-array geometry buffers for points and
// indexed triangle meshes, together with generators for the basic
// solids (boxes, cones) used to build glyphs, and the operations
// needed to fit them into a scene: bounds, scaling, rigid transforms,
// flat coloring, smooth normals and lossless merging.
package shape

import (
	"cogentcore.org/core/math32"
	m32 "github.com/chewxy/math32"
)

// Geometry is a generic geometry storing its values in flat arrays,
// with 3 components per vertex for Vertex, Normal and Color.
// A Geometry without Index is a set of unconnected points.
type Geometry struct {

	// Vertex has the x, y, z vertex positions.
	Vertex math32.ArrayF32

	// Normal has the per-vertex normals; empty if not computed.
	Normal math32.ArrayF32

	// Color has the per-vertex r, g, b colors in the 0-1 range; empty if uncolored.
	Color math32.ArrayF32

	// Index has the triangle vertex indexes, 3 per triangle.
	Index math32.ArrayU32
}

// NewPoints returns a new point Geometry using the given vertex positions.
// The slice is used directly, not copied.
func NewPoints(vertex []float32) *Geometry {
	return &Geometry{Vertex: vertex}
}

// NumVertex returns the number of vertex points.
func (g *Geometry) NumVertex() int {
	return len(g.Vertex) / 3
}

// NumIndex returns the number of triangle indexes.
func (g *Geometry) NumIndex() int {
	return len(g.Index)
}

// HasColor returns whether the geometry has per-vertex colors.
func (g *Geometry) HasColor() bool {
	return len(g.Color) > 0
}

// VertexAt returns the vertex at given point index.
func (g *Geometry) VertexAt(i int) math32.Vector3 {
	return math32.Vec3(g.Vertex[i*3], g.Vertex[i*3+1], g.Vertex[i*3+2])
}

// SetVertexAt sets the vertex at given point index.
func (g *Geometry) SetVertexAt(i int, v math32.Vector3) {
	g.Vertex[i*3] = v.X
	g.Vertex[i*3+1] = v.Y
	g.Vertex[i*3+2] = v.Z
}

// ColorAt returns the r, g, b color at given point index.
func (g *Geometry) ColorAt(i int) math32.Vector3 {
	return math32.Vec3(g.Color[i*3], g.Color[i*3+1], g.Color[i*3+2])
}

// appendVertex adds a vertex and its normal, returning its point index.
func (g *Geometry) appendVertex(pos, norm math32.Vector3) uint32 {
	idx := uint32(g.NumVertex())
	g.Vertex = append(g.Vertex, pos.X, pos.Y, pos.Z)
	g.Normal = append(g.Normal, norm.X, norm.Y, norm.Z)
	return idx
}

// BBox returns the bounding box of all vertex points.
func (g *Geometry) BBox() math32.Box3 {
	return BBoxFromVertex(g.Vertex, 0, g.NumVertex())
}

// BBoxFromVertex returns the bounding box updated from the range of vertex points.
func BBoxFromVertex(vertex math32.ArrayF32, vtxOff int, nvtxs int) math32.Box3 {
	bb := math32.B3Empty()
	vidx := vtxOff * 3
	for vi := 0; vi < nvtxs; vi++ {
		i := vidx + vi*3
		bb.ExpandByPoint(math32.Vec3(vertex[i], vertex[i+1], vertex[i+2]))
	}
	return bb
}

// BoundingSphere returns the sphere enclosing all the vertex points of
// the given geometries: centered on their joint bounding box, with the
// radius reaching the farthest point. The sphere of no points is the
// zero sphere.
func BoundingSphere(geoms ...*Geometry) math32.Sphere {
	bb := math32.B3Empty()
	for _, g := range geoms {
		if gb := g.BBox(); !gb.IsEmpty() {
			bb.ExpandByBox(gb)
		}
	}
	if bb.IsEmpty() {
		return math32.Sphere{}
	}
	ctr := bb.Center()
	var maxSq float32
	for _, g := range geoms {
		n := g.NumVertex()
		for i := 0; i < n; i++ {
			d := g.VertexAt(i).Sub(ctr)
			maxSq = m32.Max(maxSq, d.Dot(d))
		}
	}
	return math32.Sphere{Center: ctr, Radius: m32.Sqrt(maxSq)}
}

// Scale multiplies all vertex positions by s, about the origin.
func (g *Geometry) Scale(s float32) {
	for i := range g.Vertex {
		g.Vertex[i] *= s
	}
}

// Translate offsets all vertex positions.
func (g *Geometry) Translate(off math32.Vector3) {
	n := g.NumVertex()
	for i := 0; i < n; i++ {
		g.SetVertexAt(i, g.VertexAt(i).Add(off))
	}
}

// Transform rotates all vertex positions and normals by q,
// then translates the positions to pos.
func (g *Geometry) Transform(q math32.Quat, pos math32.Vector3) {
	n := g.NumVertex()
	for i := 0; i < n; i++ {
		g.SetVertexAt(i, g.VertexAt(i).MulQuat(q).Add(pos))
	}
	if len(g.Normal) != len(g.Vertex) {
		return
	}
	for i := 0; i < n; i++ {
		nv := math32.Vec3(g.Normal[i*3], g.Normal[i*3+1], g.Normal[i*3+2]).MulQuat(q)
		g.Normal[i*3], g.Normal[i*3+1], g.Normal[i*3+2] = nv.X, nv.Y, nv.Z
	}
}

// SetColor sets the same r, g, b color (0-1 range) on every vertex.
func (g *Geometry) SetColor(clr math32.Vector3) {
	n := g.NumVertex()
	if cap(g.Color) >= n*3 {
		g.Color = g.Color[:n*3]
	} else {
		g.Color = make(math32.ArrayF32, n*3)
	}
	for vi := 0; vi < n; vi++ {
		g.Color[vi*3] = clr.X
		g.Color[vi*3+1] = clr.Y
		g.Color[vi*3+2] = clr.Z
	}
}

// ComputeNormals computes smooth per-vertex normals from the triangles,
// summing the area-weighted face normals of every triangle sharing a
// vertex. Triangles referencing vertices out of range are skipped, and
// vertices not used by any triangle get a zero normal.
func (g *Geometry) ComputeNormals() {
	n := g.NumVertex()
	g.Normal = make(math32.ArrayF32, n*3)
	nt := len(g.Index) / 3
	for t := 0; t < nt; t++ {
		ia, ib, ic := int(g.Index[t*3]), int(g.Index[t*3+1]), int(g.Index[t*3+2])
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a, b, c := g.VertexAt(ia), g.VertexAt(ib), g.VertexAt(ic)
		fn := c.Sub(b).Cross(a.Sub(b))
		for _, vi := range [3]int{ia, ib, ic} {
			g.Normal[vi*3] += fn.X
			g.Normal[vi*3+1] += fn.Y
			g.Normal[vi*3+2] += fn.Z
		}
	}
	for vi := 0; vi < n; vi++ {
		nv := math32.Vec3(g.Normal[vi*3], g.Normal[vi*3+1], g.Normal[vi*3+2])
		ln := nv.Length()
		if ln == 0 {
			continue
		}
		nv = nv.DivScalar(ln)
		g.Normal[vi*3], g.Normal[vi*3+1], g.Normal[vi*3+2] = nv.X, nv.Y, nv.Z
	}
}

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	return &Geometry{
		Vertex: append(math32.ArrayF32(nil), g.Vertex...),
		Normal: append(math32.ArrayF32(nil), g.Normal...),
		Color:  append(math32.ArrayF32(nil), g.Color...),
		Index:  append(math32.ArrayU32(nil), g.Index...),
	}
}
