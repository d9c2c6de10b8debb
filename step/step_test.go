// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"cogentcore.org/geoviz/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType(t *testing.T) {
	assert.Equal(t, "VERT_COLORS", VertColors.String())
	assert.Equal(t, "ContentType(9)", ContentType(9).String())
	assert.Equal(t, ContentType(1), Vertices)
	assert.Equal(t, ContentType(6), FeatColors)

	for _, ct := range ContentTypes() {
		p, err := ParseContentType(ct.String())
		require.NoError(t, err)
		assert.Equal(t, ct, p)
	}
	p, err := ParseContentType("face_colors")
	require.NoError(t, err)
	assert.Equal(t, FaceColors, p)
	p, err = ParseContentType("2")
	require.NoError(t, err)
	assert.Equal(t, Faces, p)

	_, err = ParseContentType("UNDEFINED")
	assert.Error(t, err)
	_, err = ParseContentType("7")
	assert.Error(t, err)
	_, err = ParseContentType("normals")
	assert.Error(t, err)
}

func TestContentTypeJSON(t *testing.T) {
	var recs []Record
	err := json.Unmarshal([]byte(`[{"step": 1, "content_type": 2}, {"step": 1, "content_type": "FEATURES"}]`), &recs)
	require.NoError(t, err)
	assert.Equal(t, Faces, recs[0].ContentType)
	assert.Equal(t, Features, recs[1].ContentType)

	b, err := json.Marshal(recs[0].ContentType)
	require.NoError(t, err)
	assert.Equal(t, `"FACES"`, string(b))
}

func TestComponents(t *testing.T) {
	var c Components
	c.Set(Vertices)
	c.Set(FaceColors)
	assert.Equal(t, Components(1<<1|1<<5), c)
	assert.True(t, c.Has(Vertices))
	assert.False(t, c.Has(Faces))
	assert.Equal(t, []ContentType{Vertices, FaceColors}, c.Types())
	assert.Equal(t, "VERTICES|FACE_COLORS", c.String())
}

func records() []Record {
	cfg := `{"mesh_color": [1, 2, 3]}`
	return []Record{
		{Step: 10, WallTime: 5, ContentType: Vertices, DataShape: []int{1, 3, 3}, Config: cfg, Description: "a tag"},
		{Step: 10, WallTime: 4, ContentType: Faces, DataShape: []int{1, 1, 3}, Config: cfg, Description: "a tag"},
		{Step: 2, WallTime: 1, ContentType: Vertices, DataShape: []int{1, 4, 3}, Config: cfg, Description: "a tag"},
		{Step: 7, WallTime: 2, ContentType: Undefined},
	}
}

func TestNewIndex(t *testing.T) {
	ix, err := NewIndex(records())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, ix.StepIDs)
	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, 10, ix.Last())
	assert.Equal(t, "a tag", ix.Description)
	assert.Equal(t, []uint8{1, 2, 3}, ix.Config.MeshColor)

	si := ix.Steps[10]
	assert.Equal(t, float64(4), si.WallTime)
	assert.True(t, si.Components.Has(Faces))
	assert.Equal(t, []int{1, 1, 3}, si.Shape(Faces))
	assert.Equal(t, float64(5), si.WallTimes[Vertices])
	assert.Nil(t, ix.Steps[7])

	assert.Equal(t, 1, ix.Position(10))
	assert.Equal(t, -1, ix.Position(7))
}

func TestNewIndexEmpty(t *testing.T) {
	ix, err := NewIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, -1, ix.Last())
	assert.NotNil(t, ix.Config)
}

func TestNewIndexBadConfig(t *testing.T) {
	recs := records()
	recs[0].Config = `{"mesh_color": [1, 2]}`
	_, err := NewIndex(recs)
	var se *geom.ShapeError
	assert.True(t, errors.As(err, &se), "%v", err)
}

func TestIndexChanged(t *testing.T) {
	a, err := NewIndex(records())
	require.NoError(t, err)
	b, err := NewIndex(records())
	require.NoError(t, err)
	assert.False(t, a.Changed(b))
	assert.True(t, a.Changed(nil))

	recs := records()
	recs[0].WallTime = 6
	c, err := NewIndex(recs)
	require.NoError(t, err)
	assert.True(t, c.Changed(a))

	recs = append(records(), Record{Step: 11, ContentType: Vertices, DataShape: []int{1, 1, 3}})
	d, err := NewIndex(recs)
	require.NoError(t, err)
	assert.True(t, d.Changed(a))
}

func float32Bytes(vals ...float32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func TestDecode(t *testing.T) {
	f, err := DecodeFloat32(float32Bytes(1, -2.5, 0))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -2.5, 0}, f)

	u, err := DecodeUint32([]byte{1, 0, 0, 0, 0, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 256}, u)

	raw := []byte{1, 2, 3}
	c := DecodeUint8(raw)
	raw[0] = 9
	assert.Equal(t, []uint8{1, 2, 3}, c)

	_, err = DecodeFloat32([]byte{1, 2, 3})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 3, de.Len)
	assert.Equal(t, 4, de.Size)
}

func TestDataBuffers(t *testing.T) {
	ix, err := NewIndex(records())
	require.NoError(t, err)
	var d Data
	require.NoError(t, d.Set(Vertices, float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0)))
	require.NoError(t, d.Set(Faces, []byte{0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}))

	err = d.Set(Features, []byte{1})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, Features, de.ContentType)
	assert.Error(t, d.Set(Undefined, nil))

	b := d.Buffers(ix.Steps[10])
	assert.Equal(t, []int{1, 3, 3}, b.VerticesShape)
	assert.True(t, b.HasMesh())
	bd, err := geom.Assemble(b, ix.Config, geom.RenderSettings{}, false)
	require.NoError(t, err)
	require.Equal(t, geom.MeshGroupKind, bd.Geometry.Kind())
	assert.Equal(t, uint32(0x010203), bd.Geometry.(*geom.MeshGroup).Meshes[0].Material.Hex())

	// faces decoded but not logged for the step are not used
	b = d.Buffers(&Info{Shapes: map[ContentType][]int{Vertices: {1, 3, 3}}})
	assert.False(t, b.HasMesh())
}
