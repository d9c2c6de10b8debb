// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted from g3n: https://github.com/g3n/engine :

// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
	m32 "github.com/chewxy/math32"
)

// NewCone returns a cone centered at the origin with the apex up along
// the +Y axis, with the given height, base radius, number of radial
// segments, number of height segments, and presence of a bottom cap.
func NewCone(height, radius float32, radialSegs, heightSegs int, bottom bool) *Geometry {
	return NewCylinder(height, 0, radius, radialSegs, heightSegs, false, bottom)
}

// CylinderN returns the number of vertex and index points in a
// generalized cylinder with the given parameters.
func CylinderN(topRad, botRad float32, radialSegs, heightSegs int, top, bottom bool) (numVertex, numIndex int) {
	radialSegs = max(radialSegs, 1)
	heightSegs = max(heightSegs, 1)
	numVertex = (radialSegs + 1) * (heightSegs + 1)
	tris := 2 * radialSegs * heightSegs
	if topRad == 0 {
		tris -= radialSegs
	}
	if botRad == 0 {
		tris -= radialSegs
	}
	numIndex = 3 * tris
	if top && topRad > 0 {
		numVertex += 2*radialSegs + 1
		numIndex += 3 * radialSegs
	}
	if bottom && botRad > 0 {
		numVertex += 2*radialSegs + 1
		numIndex += 3 * radialSegs
	}
	return
}

// NewCylinder returns a generalized cylinder (truncated cone) centered at
// the origin, with height along the Y axis, the given top and bottom
// radii, number of radial segments, number of height segments,
// and presence of a top and/or bottom cap. Caps are only added
// for a non-zero radius.
func NewCylinder(height, topRad, botRad float32, radialSegs, heightSegs int, top, bottom bool) *Geometry {
	radialSegs = max(radialSegs, 1)
	heightSegs = max(heightSegs, 1)
	nv, ni := CylinderN(topRad, botRad, radialSegs, heightSegs, top, bottom)
	g := &Geometry{
		Vertex: make(math32.ArrayF32, 0, nv*3),
		Normal: make(math32.ArrayF32, 0, nv*3),
		Index:  make(math32.ArrayU32, 0, ni),
	}
	hHt := height / 2
	slope := float32(0)
	if height != 0 {
		slope = (botRad - topRad) / height
	}

	vtxs := make([][]uint32, heightSegs+1)
	for y := 0; y <= heightSegs; y++ {
		v := float32(y) / float32(heightSegs)
		radius := v*(botRad-topRad) + topRad
		row := make([]uint32, radialSegs+1)
		for x := 0; x <= radialSegs; x++ {
			u := float32(x) / float32(radialSegs)
			ang := u * 2 * math32.Pi
			sin, cos := m32.Sin(ang), m32.Cos(ang)
			pos := math32.Vec3(radius*sin, -v*height+hHt, radius*cos)
			norm := math32.Vec3(sin, slope, cos)
			norm = norm.DivScalar(norm.Length())
			row[x] = g.appendVertex(pos, norm)
		}
		vtxs[y] = row
	}

	for x := 0; x < radialSegs; x++ {
		for y := 0; y < heightSegs; y++ {
			a := vtxs[y][x]
			b := vtxs[y+1][x]
			c := vtxs[y+1][x+1]
			d := vtxs[y][x+1]
			if topRad > 0 || y != 0 {
				g.Index = append(g.Index, a, b, d)
			}
			if botRad > 0 || y != heightSegs-1 {
				g.Index = append(g.Index, b, c, d)
			}
		}
	}

	if top && topRad > 0 {
		g.addCap(hHt, topRad, radialSegs, true)
	}
	if bottom && botRad > 0 {
		g.addCap(-hHt, botRad, radialSegs, false)
	}
	return g
}

// addCap adds a disc of the given radius at height y,
// facing +Y for the top and -Y for the bottom.
func (g *Geometry) addCap(y, radius float32, radialSegs int, top bool) {
	norm := math32.Vec3(0, -1, 0)
	if top {
		norm = math32.Vec3(0, 1, 0)
	}
	ctrStart := uint32(g.NumVertex())
	for x := 0; x < radialSegs; x++ {
		g.appendVertex(math32.Vec3(0, y, 0), norm)
	}
	ringStart := uint32(g.NumVertex())
	for x := 0; x <= radialSegs; x++ {
		u := float32(x) / float32(radialSegs)
		ang := u * 2 * math32.Pi
		sin, cos := m32.Sin(ang), m32.Cos(ang)
		g.appendVertex(math32.Vec3(radius*sin, y, radius*cos), norm)
	}
	for x := 0; x < radialSegs; x++ {
		c := ctrStart + uint32(x)
		i := ringStart + uint32(x)
		if top {
			g.Index = append(g.Index, i, i+1, c)
		} else {
			g.Index = append(g.Index, i+1, i, c)
		}
	}
}
