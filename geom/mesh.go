// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/shape"
)

// BuildMeshBatch returns a group with one triangle mesh per sample of the
// batch: sample i uses the vertices [i*count*3, (i+1)*count*3) of vshape
// [batch, count, 3] and the face indexes [i*faceCount*3, (i+1)*faceCount*3)
// of fshape [batch, faceCount, 3], relative to its own vertices.
//
// Meshes are colored per sample, not per vertex or face: sample i uses the
// face color bytes [i*3, i*3+3) when faceColors are given, else the meshColor
// bytes if given, else [DefaultMeshColor]. Finer coloring needs a point cloud.
// Smooth normals are computed for each mesh; the topology is not checked
// beyond index ranges, so non-manifold meshes render as they are.
func BuildMeshBatch(vshape, fshape []int, vertices []float32, faces []uint32, faceColors, meshColor []uint8) (*MeshGroup, error) {
	if len(vshape) != 3 || vshape[2] != 3 {
		return nil, shapeErrorf("vertices must be of shape [b, n, 3] but got %v", vshape)
	}
	if len(fshape) != 3 || fshape[2] != 3 {
		return nil, shapeErrorf("faces must be of shape [b, n, 3], but got %v", fshape)
	}
	batch, count, faceCount := vshape[0], vshape[1], fshape[1]
	if batch <= 0 || count <= 0 {
		return nil, &MissingDataError{Msg: "no vertices provided"}
	}
	if faceCount <= 0 || fshape[0] != batch {
		return nil, shapeErrorf("faces must be of shape [%d, n, 3], but got %v", batch, fshape)
	}
	if nv, ok := product(batch, count, 3); !ok || nv > len(vertices) {
		return nil, shapeErrorf("vertex buffer has %d values, too few for shape %v", len(vertices), vshape)
	}
	if nf, ok := product(batch, faceCount, 3); !ok || nf > len(faces) {
		return nil, shapeErrorf("face buffer has %d values, too few for shape %v", len(faces), fshape)
	}
	vstride, fstride := count*3, faceCount*3
	if nc := len(faceColors); nc > 0 && nc/3 < batch {
		return nil, &CardinalityError{What: "color for each sample", Got: nc / 3, Want: batch}
	}

	gp := &MeshGroup{Meshes: make([]*Mesh, batch)}
	for i := 0; i < batch; i++ {
		ms := &Mesh{Name: fmt.Sprintf("mesh_%d", i)}
		ms.Material.Defaults()
		switch {
		case len(faceColors) > 0:
			ms.Material.Color = colors.FromRGB(faceColors[i*3], faceColors[i*3+1], faceColors[i*3+2])
		case len(meshColor) >= 3:
			ms.Material.Color = colors.FromRGB(meshColor[0], meshColor[1], meshColor[2])
		}

		g := &shape.Geometry{
			Vertex: make(math32.ArrayF32, vstride),
			Index:  make(math32.ArrayU32, fstride),
		}
		copy(g.Vertex, vertices[i*vstride:(i+1)*vstride])
		copy(g.Index, faces[i*fstride:(i+1)*fstride])
		for _, idx := range g.Index {
			if int(idx) >= count {
				return nil, shapeErrorf("face index %d of sample %d is out of range of its %d vertices", idx, i, count)
			}
		}
		g.ComputeNormals()
		ms.Geometry = g
		gp.Meshes[i] = ms
	}
	return gp, nil
}
