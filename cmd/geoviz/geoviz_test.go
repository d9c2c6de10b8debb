// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"testing"

	"cogentcore.org/geoviz/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func demoConfig(t *testing.T, tag string) *Config {
	t.Helper()
	c := &Config{Root: t.TempDir(), Run: "demo", Tag: tag, Step: -1, PointSize: 1, Aspect: 1.5}
	require.NoError(t, WriteDemo(c.Root, c.Run))
	return c
}

func TestInspectPoints(t *testing.T) {
	c := demoConfig(t, DemoPoints)
	sum, err := inspect(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, demoSteps-1, sum.Step)
	assert.Equal(t, "PointCloud", sum.Kind)
	assert.Equal(t, demoPoints, sum.Points)
	assert.Equal(t, demoPoints, sum.Arrows)
	assert.Equal(t, "VERTICES|FEATURES", sum.Components)
	assert.Equal(t, "A growing helix with its tangents.", sum.Description)
	assert.Equal(t, float32(1), sum.Scale)
	require.NotNil(t, sum.Legend)
	assert.Equal(t, "jet", sum.Legend.Colormap)
	assert.Len(t, sum.Legend.Stops, legendStops)
	assert.Equal(t, "#000083", sum.Legend.Stops[0])
	assert.Equal(t, "perspective", sum.Camera.Type)
	assert.Equal(t, float32(45), sum.Camera.FOV)
	assert.Equal(t, "#ffffff", sum.Background)

	c.Step = 0
	c.Normalize = true
	sum, err = inspect(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Step)
	assert.Greater(t, sum.Scale, float32(1))
}

func TestInspectMesh(t *testing.T) {
	c := demoConfig(t, DemoMesh)
	c.Step = 0
	sum, err := inspect(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "MeshGroup", sum.Kind)
	require.Len(t, sum.Meshes, 2)
	for _, ms := range sum.Meshes {
		assert.Equal(t, 24, ms.Vertices)
		assert.Equal(t, 12, ms.Faces)
		assert.Equal(t, "#c8c8c8", ms.Color)
	}
	assert.Equal(t, "#202020", sum.Background)
	assert.Equal(t, "orthographic", sum.Camera.Type)
	assert.Nil(t, sum.Legend)

	c.Step = 2
	sum, err = inspect(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "#1e88e5", sum.Meshes[0].Color)
	assert.Equal(t, "#43a047", sum.Meshes[1].Color)

	var buf bytes.Buffer
	require.NoError(t, sum.Write(&buf))
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "MeshGroup", back["kind"])
	assert.Equal(t, "mesh", back["tag"])
}

func TestInspectErrors(t *testing.T) {
	c := demoConfig(t, DemoPoints)
	c.Step = 7
	_, err := inspect(context.Background(), c)
	assert.ErrorIs(t, err, provider.ErrNoStep)

	c.Tag = ""
	_, err = inspect(context.Background(), c)
	assert.Error(t, err)

	c.Tag = "missing"
	_, err = inspect(context.Background(), c)
	assert.Error(t, err)
}
