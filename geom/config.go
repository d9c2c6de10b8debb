// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
)

// RenderConfig is the render configuration logged with a tag,
// the same for all of its steps. All fields are optional.
type RenderConfig struct {

	// VerticesCmap is the color map for vertices without explicit colors.
	VerticesCmap string `json:"vertices_cmap,omitempty"`

	// FeaturesCmap is the color map for features without explicit colors.
	FeaturesCmap string `json:"features_cmap,omitempty"`

	// MeshColor is the r, g, b byte color of meshes without face colors.
	MeshColor []uint8 `json:"mesh_color,omitempty"`

	Camera *CameraConfig `json:"camera,omitempty"`

	Scene *SceneConfig `json:"scene,omitempty"`
}

// CameraConfig has the camera parameters; unset values are fitted to the geometry.
type CameraConfig struct {

	// Type is "perspective" (default) or "orthographic";
	// the spelling "orthografic" is also accepted.
	Type string `json:"type,omitempty"`

	// Position is the x, y, z camera position.
	Position []float32 `json:"position,omitempty"`

	// FOV is the vertical field of view in degrees, for perspective cameras.
	FOV *float32 `json:"fov,omitempty"`

	Near *float32 `json:"near,omitempty"`
	Far  *float32 `json:"far,omitempty"`

	// Left, Right, Top and Bottom are the frustum planes of orthographic cameras.
	Left   *float32 `json:"left,omitempty"`
	Right  *float32 `json:"right,omitempty"`
	Top    *float32 `json:"top,omitempty"`
	Bottom *float32 `json:"bottom,omitempty"`
}

// SceneConfig has the scene parameters.
type SceneConfig struct {

	// BackgroundColor is the r, g, b byte background color.
	BackgroundColor []uint8 `json:"background_color,omitempty"`
}

// ParseConfig parses the JSON render configuration. An empty string
// gives an empty configuration.
func ParseConfig(s string) (*RenderConfig, error) {
	cfg := &RenderConfig{}
	if strings.TrimSpace(s) == "" {
		return cfg, nil
	}
	if err := jsonx.Read(cfg, strings.NewReader(s)); err != nil {
		return nil, fmt.Errorf("geom.ParseConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the lengths of the vector and color fields.
func (cfg *RenderConfig) Validate() error {
	if n := len(cfg.MeshColor); n != 0 && n != 3 {
		return shapeErrorf("mesh_color must have 3 components, but got %d", n)
	}
	if cfg.Scene != nil {
		if n := len(cfg.Scene.BackgroundColor); n != 0 && n != 3 {
			return shapeErrorf("background_color must have 3 components, but got %d", n)
		}
	}
	if cfg.Camera != nil {
		if n := len(cfg.Camera.Position); n != 0 && n != 3 {
			return shapeErrorf("camera position must have 3 components, but got %d", n)
		}
	}
	return nil
}

// VertexColormap returns the color map for vertices, falling back on the settings.
func (cfg *RenderConfig) VertexColormap(rs RenderSettings) string {
	if cfg != nil && cfg.VerticesCmap != "" {
		return cfg.VerticesCmap
	}
	return rs.Colormap
}

// FeatureColormap returns the color map for features, falling back on the settings.
func (cfg *RenderConfig) FeatureColormap(rs RenderSettings) string {
	if cfg != nil && cfg.FeaturesCmap != "" {
		return cfg.FeaturesCmap
	}
	return rs.Colormap
}

// Background returns the scene background color, white if not set.
func (cfg *RenderConfig) Background() color.RGBA {
	if cfg == nil || cfg.Scene == nil || len(cfg.Scene.BackgroundColor) != 3 {
		return colors.FromRGB(255, 255, 255)
	}
	bc := cfg.Scene.BackgroundColor
	return colors.FromRGB(bc[0], bc[1], bc[2])
}

// IsOrtho returns whether the camera is orthographic.
func (cc *CameraConfig) IsOrtho() bool {
	if cc == nil {
		return false
	}
	switch strings.ToLower(cc.Type) {
	case "orthographic", "orthografic", "ortho":
		return true
	}
	return false
}

// position returns the configured camera position, if any.
func (cc *CameraConfig) position() (math32.Vector3, bool) {
	if cc == nil || len(cc.Position) != 3 {
		return math32.Vector3{}, false
	}
	return math32.Vec3(cc.Position[0], cc.Position[1], cc.Position[2]), true
}
