// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"cogentcore.org/geoviz/lut"
	"cogentcore.org/geoviz/shape"
)

// BuildPointCloud returns a point cloud of all the vertices of the batch,
// shape [batch, count, 3]. Vertices beyond batch*count points are ignored.
// Points get the explicit byte colors if given, one per point, else colors
// sampled along the named color map. The point size comes from the settings.
func BuildPointCloud(shp []int, vertices []float32, colors []uint8, cmap string, rs RenderSettings) (*PointCloud, error) {
	if len(shp) != 3 || shp[2] != 3 {
		return nil, shapeErrorf("vertices must be of shape [b, n, 3] but got %v", shp)
	}
	if shp[0] <= 0 || shp[1] <= 0 {
		return nil, &MissingDataError{Msg: "no vertices provided"}
	}
	npts, ok := product(shp[0], shp[1])
	if !ok || npts > len(vertices)/3 {
		return nil, shapeErrorf("vertex buffer has %d values, too few for shape %v", len(vertices), shp)
	}
	if nc := len(colors); nc > 0 && nc/3 < npts {
		return nil, &CardinalityError{What: "color for each vertex", Got: nc / 3, Want: npts}
	}
	vtx := make([]float32, npts*3)
	copy(vtx, vertices)
	g := shape.NewPoints(vtx)
	g.Color = lut.Colors(npts, colors, cmap)
	return &PointCloud{Geometry: g, PointSize: rs.pointSize()}, nil
}
