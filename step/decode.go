// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"cogentcore.org/geoviz/geom"
)

// DecodeError is returned for a raw buffer whose length
// is not a multiple of its element size.
type DecodeError struct {
	ContentType ContentType
	Len         int
	Size        int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("step: %v buffer of %d bytes is not a multiple of %d", e.ContentType, e.Len, e.Size)
}

// DecodeFloat32 decodes a little-endian float32 buffer.
func DecodeFloat32(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, &DecodeError{ContentType: Vertices, Len: len(raw), Size: 4}
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// DecodeUint32 decodes a little-endian uint32 buffer.
func DecodeUint32(raw []byte) ([]uint32, error) {
	if len(raw)%4 != 0 {
		return nil, &DecodeError{ContentType: Faces, Len: len(raw), Size: 4}
	}
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out, nil
}

// DecodeUint8 returns a copy of a byte color buffer.
func DecodeUint8(raw []byte) []uint8 {
	return append([]uint8(nil), raw...)
}

// Data has the decoded buffers of one step.
type Data struct {
	Vertices   []float32
	Faces      []uint32
	Features   []float32
	VertColors []uint8
	FaceColors []uint8
	FeatColors []uint8
}

// Set decodes the raw buffer of the content type into d.
func (d *Data) Set(ct ContentType, raw []byte) error {
	var err error
	withType := func(err error) error {
		var de *DecodeError
		if errors.As(err, &de) {
			de.ContentType = ct
		}
		return err
	}
	switch ct {
	case Vertices:
		d.Vertices, err = DecodeFloat32(raw)
	case Features:
		d.Features, err = DecodeFloat32(raw)
	case Faces:
		d.Faces, err = DecodeUint32(raw)
	case VertColors:
		d.VertColors = DecodeUint8(raw)
	case FaceColors:
		d.FaceColors = DecodeUint8(raw)
	case FeatColors:
		d.FeatColors = DecodeUint8(raw)
	default:
		return fmt.Errorf("step.Data.Set: cannot decode content type %v", ct)
	}
	return withType(err)
}

// Buffers returns the geometry buffers of the data, with the shapes
// recorded in the step info. The face color shape is that of the face
// colors when logged with one.
func (d *Data) Buffers(si *Info) *geom.Buffers {
	b := &geom.Buffers{
		VerticesShape: si.Shape(Vertices),
		Vertices:      d.Vertices,
		VertColors:    d.VertColors,
		Features:      d.Features,
		FeatColors:    d.FeatColors,
		FaceColors:    d.FaceColors,
	}
	if si.Components.Has(Faces) {
		b.FacesShape = si.Shape(Faces)
		b.Faces = d.Faces
	}
	if si.Components.Has(FaceColors) {
		b.FaceColorsShape = si.Shape(FaceColors)
	}
	return b
}
