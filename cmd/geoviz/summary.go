// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"cogentcore.org/core/math32"
	"cogentcore.org/geoviz/geom"
	"cogentcore.org/geoviz/lut"
	"cogentcore.org/geoviz/step"
	"gopkg.in/yaml.v3"
)

// Summary describes the assembled primitives of one step.
type Summary struct {
	Run         string  `yaml:"run"`
	Tag         string  `yaml:"tag"`
	Step        int     `yaml:"step"`
	WallTime    float64 `yaml:"wall_time"`
	Components  string  `yaml:"components"`
	Description string  `yaml:"description,omitempty"`

	Kind   string `yaml:"kind"`
	Points int    `yaml:"points,omitempty"`

	// Meshes has one entry per sample for mesh groups.
	Meshes []MeshSummary `yaml:"meshes,omitempty"`

	Arrows           int            `yaml:"arrows,omitempty"`
	MaxFeatureLength float32        `yaml:"max_feature_length,omitempty"`
	Legend           *LegendSummary `yaml:"legend,omitempty"`

	Scale      float32       `yaml:"scale"`
	Center     [3]float32    `yaml:"center,flow"`
	Radius     float32       `yaml:"radius"`
	Background string        `yaml:"background"`
	Camera     CameraSummary `yaml:"camera"`
}

// MeshSummary describes one mesh of a group.
type MeshSummary struct {
	Name     string `yaml:"name"`
	Vertices int    `yaml:"vertices"`
	Faces    int    `yaml:"faces"`
	Color    string `yaml:"color"`
}

// LegendSummary describes the color bar of the feature magnitudes,
// with the swatch colors from bottom to top.
type LegendSummary struct {
	Colormap string   `yaml:"colormap"`
	Min      string   `yaml:"min"`
	Max      string   `yaml:"max"`
	Stops    []string `yaml:"stops,flow"`
}

// legendStops is the number of legend swatches in a summary.
const legendStops = 8

// CameraSummary describes the fitted camera.
type CameraSummary struct {
	Type     string     `yaml:"type"`
	FOV      float32    `yaml:"fov,omitempty"`
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

func vec3(v math32.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hex(c uint32) string {
	return fmt.Sprintf("#%06x", c)
}

// Summarize returns the summary of the bundle assembled for the step
// with the given settings, with the camera fitted for the aspect ratio.
func Summarize(run, tag string, si *step.Info, desc string, bd *geom.Bundle, rs geom.RenderSettings, aspect float32) *Summary {
	sum := &Summary{
		Run:         run,
		Tag:         tag,
		Step:        si.Step,
		WallTime:    si.WallTime,
		Components:  si.Components.String(),
		Description: desc,
		Kind:        bd.Geometry.Kind().String(),
		Scale:       bd.Scale,
		Background:  hex(lut.ToHex(bd.Background())),
	}
	switch p := bd.Geometry.(type) {
	case *geom.PointCloud:
		sum.Points = p.NumPoints()
	case *geom.MeshGroup:
		for _, ms := range p.Meshes {
			sum.Meshes = append(sum.Meshes, MeshSummary{
				Name:     ms.Name,
				Vertices: ms.Geometry.NumVertex(),
				Faces:    ms.Geometry.NumIndex() / 3,
				Color:    hex(ms.Material.Hex()),
			})
		}
	}
	if bd.Features != nil {
		sum.Arrows = bd.Features.Count()
		sum.MaxFeatureLength = bd.MaxFeatureLength
		cmap := bd.Config.FeatureColormap(rs)
		if cmap == "" {
			cmap = lut.DefaultMap
		}
		lg := lut.NewLUT(cmap, legendStops).SetMax(bd.MaxFeatureLength).Legend()
		ls := &LegendSummary{Colormap: cmap, Min: lg.MinLabel, Max: lg.MaxLabel}
		for _, st := range lg.Stops {
			ls.Stops = append(ls.Stops, hex(lut.ToHex(st.Color)))
		}
		sum.Legend = ls
	}
	bs := bd.Bounds()
	sum.Center = vec3(bs.Center)
	sum.Radius = bs.Radius

	cm := bd.Camera(aspect)
	sum.Camera = CameraSummary{
		Type:     "perspective",
		FOV:      cm.FOV,
		Position: vec3(cm.Position),
		Target:   vec3(cm.Target),
		Near:     cm.Near,
		Far:      cm.Far,
	}
	if cm.Ortho {
		sum.Camera.Type = "orthographic"
		sum.Camera.FOV = 0
	}
	return sum
}

// Write writes the summary as YAML.
func (sum *Summary) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sum); err != nil {
		return err
	}
	return enc.Close()
}
