// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// DefaultPointSize is the point size used when [RenderSettings.PointSize] is not set.
const DefaultPointSize = 1

// RenderSettings are the display settings that can change between frames.
// They are passed by value into every build call and never retained.
type RenderSettings struct {

	// PointSize is the rendered size of point cloud points.
	PointSize float32

	// NormFeatures rescales the geometry into a sphere of radius
	// [NormalizeRadius] and feature arrows to a common length.
	NormFeatures bool

	// Colormap is the color map used for vertices and features
	// when the step config does not name one.
	Colormap string
}

// Defaults sets the default settings.
func (rs *RenderSettings) Defaults() {
	rs.PointSize = DefaultPointSize
	rs.NormFeatures = false
	rs.Colormap = ""
}

// pointSize returns the point size to use.
func (rs *RenderSettings) pointSize() float32 {
	if rs.PointSize <= 0 {
		return DefaultPointSize
	}
	return rs.PointSize
}
