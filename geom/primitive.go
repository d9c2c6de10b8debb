// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/lut"
	"cogentcore.org/geoviz/shape"
)

// Kinds are the kinds of [Primitive].
type Kinds int32

const (
	// PointCloudKind is an unconnected set of colored points.
	PointCloudKind Kinds = iota

	// MeshGroupKind is a group of indexed triangle meshes, one per sample.
	MeshGroupKind

	// ArrowGroupKind is a set of merged vector glyphs.
	ArrowGroupKind
)

func (k Kinds) String() string {
	switch k {
	case PointCloudKind:
		return "PointCloud"
	case MeshGroupKind:
		return "MeshGroup"
	case ArrowGroupKind:
		return "ArrowGroup"
	}
	return "Unknown"
}

// Primitive is a renderable element of a scene: one of [*PointCloud],
// [*MeshGroup] or [*ArrowGroup], as reported by Kind.
type Primitive interface {
	// Kind returns the kind of primitive, to switch on
	// instead of type-asserting.
	Kind() Kinds

	// Geometries returns all the geometries of the primitive.
	Geometries() []*shape.Geometry
}

// PointCloud is a colored point set.
type PointCloud struct {

	// Geometry has the point positions and per-point colors; it has no index.
	Geometry *shape.Geometry

	// PointSize is the rendered size of each point.
	PointSize float32
}

func (pc *PointCloud) Kind() Kinds { return PointCloudKind }

func (pc *PointCloud) Geometries() []*shape.Geometry {
	return []*shape.Geometry{pc.Geometry}
}

// NumPoints returns the number of points.
func (pc *PointCloud) NumPoints() int {
	return pc.Geometry.NumVertex()
}

// DefaultMeshColor is the material color of meshes without a face color.
const DefaultMeshColor = 0xf57c00

// Material describes the surface of a [Mesh]: one uniform color,
// rendered on both sides with flat shading.
type Material struct {

	// Color is the uniform color of the whole mesh.
	Color color.RGBA

	// Shiny is the specular shininess factor.
	Shiny float32

	// DoubleSided renders the back faces too.
	DoubleSided bool

	// FlatShading shades each triangle with a single normal.
	FlatShading bool
}

// Defaults sets the default mesh material.
func (mt *Material) Defaults() {
	mt.Color = lut.FromHex(DefaultMeshColor)
	mt.Shiny = 30
	mt.DoubleSided = true
	mt.FlatShading = true
}

// Hex returns the material color packed as 0xRRGGBB.
func (mt *Material) Hex() uint32 {
	return lut.ToHex(mt.Color)
}

// Mesh is an indexed triangle mesh with a uniform material.
type Mesh struct {

	// Name is the name of the mesh, unique within its group.
	Name string

	Geometry *shape.Geometry

	Material Material
}

// MeshGroup collects one [Mesh] per batch sample.
type MeshGroup struct {
	Meshes []*Mesh
}

func (gp *MeshGroup) Kind() Kinds { return MeshGroupKind }

func (gp *MeshGroup) Geometries() []*shape.Geometry {
	gs := make([]*shape.Geometry, len(gp.Meshes))
	for i, ms := range gp.Meshes {
		gs[i] = ms.Geometry
	}
	return gs
}

// ArrowGroup is a set of vector glyphs merged into two geometries,
// one for all shafts and one for all heads, each colored per vertex.
type ArrowGroup struct {
	Shafts *shape.Geometry
	Heads  *shape.Geometry
}

func (ag *ArrowGroup) Kind() Kinds { return ArrowGroupKind }

func (ag *ArrowGroup) Geometries() []*shape.Geometry {
	return []*shape.Geometry{ag.Shafts, ag.Heads}
}

// Count returns the number of arrows.
func (ag *ArrowGroup) Count() int {
	nv, _ := shape.BoxN()
	return ag.Shafts.NumVertex() / nv
}

// Bounds returns the bounding sphere of all the geometries of the primitive.
func Bounds(p Primitive) math32.Sphere {
	return shape.BoundingSphere(p.Geometries()...)
}
