// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"math"

	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/provider"
	"cogentcore.org/geoviz/shape"
	"cogentcore.org/geoviz/step"
	m32 "github.com/chewxy/math32"
)

// Demo tags written by [WriteDemo].
const (
	DemoPoints = "points"
	DemoMesh   = "mesh"

	demoSteps     = 3
	demoPoints    = 64
	demoPointsCfg = `{"vertices_cmap": "rainbow", "features_cmap": "jet", "camera": {"type": "perspective", "fov": 45}}`
	demoMeshCfg   = `{"mesh_color": [200, 200, 200], "scene": {"background_color": [32, 32, 32]}, "camera": {"type": "orthographic"}}`
)

func float32Bytes(vals []float32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func uint32Bytes(vals []uint32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}

// demoLog accumulates the records and buffers of a demo tag.
type demoLog struct {
	df   *provider.DirFetcher
	run  string
	tag  string
	cfg  string
	desc string
	recs []step.Record
}

func (dl *demoLog) add(id int, ct step.ContentType, shape []int, raw []byte) error {
	dl.recs = append(dl.recs, step.Record{
		Step:        id,
		WallTime:    1700000000 + float64(id)*60,
		ContentType: ct,
		DataShape:   shape,
		Config:      dl.cfg,
		Description: dl.desc,
	})
	return dl.df.SaveBuffer(dl.run, dl.tag, id, ct, raw)
}

func (dl *demoLog) save() error {
	return dl.df.SaveMetadata(dl.run, dl.tag, dl.recs)
}

// WriteDemo writes a helix point cloud with tangent features and a batch
// of two box meshes, over a few steps, as the tags [DemoPoints] and
// [DemoMesh] of the run in the root log directory.
func WriteDemo(root, run string) error {
	df := &provider.DirFetcher{Root: root}
	pts := &demoLog{df: df, run: run, tag: DemoPoints, cfg: demoPointsCfg, desc: "A growing helix with its tangents."}
	for id := 0; id < demoSteps; id++ {
		vtx, feat := demoHelix(demoPoints, 1+0.5*float32(id))
		shp := []int{1, demoPoints, 3}
		if err := pts.add(id, step.Vertices, shp, float32Bytes(vtx)); err != nil {
			return err
		}
		if err := pts.add(id, step.Features, shp, float32Bytes(feat)); err != nil {
			return err
		}
	}
	if err := pts.save(); err != nil {
		return err
	}

	msh := &demoLog{df: df, run: run, tag: DemoMesh, cfg: demoMeshCfg, desc: "Two boxes, one growing."}
	for id := 0; id < demoSteps; id++ {
		var vtx []float32
		var faces []uint32
		var nv, ni int
		for i := 0; i < 2; i++ {
			bx := shape.NewBox(1, 1+float32(id*i), 1)
			bx.Translate(math32.Vec3(2*float32(i), 0, 0))
			vtx = append(vtx, bx.Vertex...)
			faces = append(faces, bx.Index...)
			nv, ni = bx.NumVertex(), bx.NumIndex()
		}
		if err := msh.add(id, step.Vertices, []int{2, nv, 3}, float32Bytes(vtx)); err != nil {
			return err
		}
		if err := msh.add(id, step.Faces, []int{2, ni / 3, 3}, uint32Bytes(faces)); err != nil {
			return err
		}
		if id > 0 {
			if err := msh.add(id, step.FaceColors, []int{2, 3}, []byte{30, 136, 229, 67, 160, 71}); err != nil {
				return err
			}
		}
	}
	return msh.save()
}

// demoHelix returns n points on a helix of the given radius,
// and the tangent at each point scaled by its position along the helix.
func demoHelix(n int, radius float32) (vtx, feat []float32) {
	vtx = make([]float32, 0, 3*n)
	feat = make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		a := 0.3 * float32(i)
		s, c := m32.Sin(a), m32.Cos(a)
		f := float32(i) / float32(n)
		vtx = append(vtx, radius*c, 0.05*float32(i), radius*s)
		feat = append(feat, -s*f, 0.1*f, c*f)
	}
	return
}
