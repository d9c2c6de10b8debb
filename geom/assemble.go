// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom builds renderable scene primitives from the raw geometry
// buffers of a training step: validation of the buffers against their
// shapes, colored point clouds, per-sample triangle meshes, merged vector
// glyphs for per-vertex features, and normalization into a sphere of
// fixed radius. All functions are pure: they only read their arguments
// and return new primitives, so they can be called concurrently and
// redundantly.
package geom

import (
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/shape"
)

// Bundle is the result of [Assemble]: everything needed to render one step.
type Bundle struct {

	// Geometry is the [*PointCloud] or [*MeshGroup] of the vertices.
	Geometry Primitive

	// Features has the feature arrows, nil if the step has no features.
	Features *ArrowGroup

	// MaxFeatureLength is the longest feature vector, for a color legend.
	MaxFeatureLength float32

	// Scale is the normalization scale applied to the geometry, 1 if none.
	Scale float32

	// Config is the render config the bundle was built with; never nil.
	Config *RenderConfig
}

// Bounds returns the bounding sphere of the geometry and the features.
func (bd *Bundle) Bounds() math32.Sphere {
	gs := bd.Geometry.Geometries()
	if bd.Features != nil {
		gs = append(gs, bd.Features.Geometries()...)
	}
	return shape.BoundingSphere(gs...)
}

// Camera returns the camera fitted to the bundle for the given aspect
// ratio, using the configured camera values where set.
func (bd *Bundle) Camera(aspect float32) Camera {
	return FitCamera(bd.Config.Camera, bd.Bounds(), aspect)
}

// Background returns the scene background color.
func (bd *Bundle) Background() color.RGBA {
	return bd.Config.Background()
}

// Assemble validates the buffers and builds their primitives: a mesh
// group when both the faces and their shape are present and non-empty,
// otherwise a point cloud. When normalize is set, the geometry is scaled
// into a sphere of radius [NormalizeRadius] and feature arrows are built
// with the same scale and a common maximal length. Any error aborts the
// whole call: no partial bundle is ever returned. A nil config is
// treated as empty.
func Assemble(b *Buffers, cfg *RenderConfig, rs RenderSettings, normalize bool) (*Bundle, error) {
	if cfg == nil {
		cfg = &RenderConfig{}
	}
	if err := Validate(b); err != nil {
		return nil, err
	}
	if b.HasFeatures() {
		if err := ValidateFeatures(b); err != nil {
			return nil, err
		}
	}

	bd := &Bundle{Scale: 1, Config: cfg}
	if b.HasMesh() {
		gp, err := BuildMeshBatch(b.VerticesShape, b.FacesShape, b.Vertices, b.Faces, b.FaceColors, cfg.MeshColor)
		if err != nil {
			return nil, err
		}
		bd.Geometry = gp
	} else {
		pc, err := BuildPointCloud(b.VerticesShape, b.Vertices, b.VertColors, cfg.VertexColormap(rs), rs)
		if err != nil {
			return nil, err
		}
		bd.Geometry = pc
	}
	if normalize {
		bd.Scale = Normalize(bd.Geometry)
	}

	if b.HasFeatures() {
		ag, maxLen, err := BuildFeatureArrows(b.VerticesShape, b.Vertices, b.Features, b.FeatColors, cfg.FeatureColormap(rs), bd.Scale, normalize)
		if err != nil {
			return nil, err
		}
		bd.Features = ag
		bd.MaxFeatureLength = maxLen
	}
	return bd, nil
}
