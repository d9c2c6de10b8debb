// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// Buffers are the raw decoded buffers of one step, with the shapes
// declared for them. A nil slice means the buffer or shape is absent.
// Vertex-like shapes are [batch, count, channels]; face shapes are
// [batch, faceCount, 3]; the face color shape is [batch, 3].
type Buffers struct {
	VerticesShape []int
	Vertices      []float32

	FacesShape []int
	Faces      []uint32

	FaceColorsShape []int
	FaceColors      []uint8

	VertColors []uint8

	Features   []float32
	FeatColors []uint8
}

// NumVertex returns the total number of vertices over the batch,
// shape[0]*shape[1], or 0 if the vertices shape is not valid.
func (b *Buffers) NumVertex() int {
	if len(b.VerticesShape) < 2 {
		return 0
	}
	n, _ := product(b.VerticesShape[0], b.VerticesShape[1])
	return n
}

// product returns the product of the dimensions, and false when one of
// them is not positive or the product overflows an int.
func product(dims ...int) (int, bool) {
	p := 1
	for _, d := range dims {
		if d <= 0 || p > math.MaxInt/d {
			return 0, false
		}
		p *= d
	}
	return p, true
}

// HasMesh returns whether the buffers describe meshes rather than a point
// cloud: both the faces and their shape are present and non-empty.
func (b *Buffers) HasMesh() bool {
	return len(b.FacesShape) > 0 && len(b.Faces) > 0
}

// HasFeatures returns whether a feature buffer is present.
func (b *Buffers) HasFeatures() bool {
	return len(b.Features) > 0
}

// Validate checks the buffers against their declared shapes, returning the
// first violation as a [*MissingDataError], [*ShapeError] or [*CardinalityError].
// It does not look at features; see [ValidateFeatures].
func Validate(b *Buffers) error {
	vs := b.VerticesShape
	if len(b.Vertices) == 0 || vs == nil || (len(vs) > 1 && vs[1] <= 0) {
		return &MissingDataError{Msg: "no vertices provided"}
	}
	if len(vs) != 3 || vs[0] <= 0 || vs[2] != 3 {
		return shapeErrorf("vertices must be of shape [b, n, 3] but got %v", vs)
	}
	if nv, ok := product(vs...); !ok || nv > len(b.Vertices) {
		return shapeErrorf("vertex buffer has %d values, too few for shape %v", len(b.Vertices), vs)
	}
	if (b.FacesShape == nil) != (b.Faces == nil) {
		return shapeErrorf("need faces and its shape, not only one of them")
	}
	if fs := b.FacesShape; b.Faces != nil && len(fs) > 0 {
		if len(fs) != 3 || len(b.Faces) == 0 || fs[1] <= 0 || fs[2] != 3 {
			return shapeErrorf("faces must be of shape [b, n, 3], but got %v", fs)
		}
		if fs[0] != vs[0] {
			return shapeErrorf("faces shape %v has a batch of %d, vertices have %d", fs, fs[0], vs[0])
		}
		if nf, ok := product(fs...); !ok || nf != len(b.Faces) {
			return shapeErrorf("face buffer has %d values, shape %v needs exactly its product", len(b.Faces), fs)
		}
	}
	if nc := len(b.VertColors); nc > 0 {
		if want := b.NumVertex(); nc%3 != 0 || nc/3 != want {
			return &CardinalityError{What: "color for each vertex", Got: nc / 3, Want: want}
		}
	}
	if nc := len(b.FaceColors); nc > 0 {
		// without a face color shape there is one color per sample of the batch
		want := vs[0]
		if len(b.FaceColorsShape) > 0 {
			want = b.FaceColorsShape[0]
		}
		if nc%3 != 0 || nc/3 != want {
			return &CardinalityError{What: "color for each sample", Got: nc / 3, Want: want}
		}
	}
	return nil
}

// ValidateFeatures checks that there is one feature vector, and at most
// one feature color, per vertex. The vertex buffers must already have
// passed [Validate].
func ValidateFeatures(b *Buffers) error {
	if len(b.Features) == 0 {
		return &MissingDataError{Msg: "no features provided"}
	}
	want := b.NumVertex()
	if nf := len(b.Features); nf%3 != 0 || nf/3 != want {
		return &CardinalityError{What: "feature for each vertex", Got: nf / 3, Want: want}
	}
	if nc := len(b.FeatColors); nc > 0 && (nc%3 != 0 || nc/3 != want) {
		return &CardinalityError{What: "color for each feature", Got: nc / 3, Want: want}
	}
	return nil
}
