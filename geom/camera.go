// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "cogentcore.org/core/math32"

// Camera defines the properties of the camera, for the external scene layer.
// It looks from Position at Target with the +Y axis up.
type Camera struct {

	// Ortho selects an orthographic camera, using the Left, Right, Top
	// and Bottom planes instead of FOV.
	Ortho bool

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	Near float32
	Far  float32

	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	Position math32.Vector3
	Target   math32.Vector3
}

// Defaults sets the default camera parameters, looking at the origin
// from 0,0,10.
func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.Position = math32.Vec3(0, 0, 10)
	cm.Target = math32.Vector3{}
}

// FitCamera returns a camera looking at the center of the bounds from the
// +Z side, far enough for the whole sphere to be visible. Values set in
// the config replace the fitted ones one by one. A zero radius is
// treated as 1.
func FitCamera(cc *CameraConfig, bounds math32.Sphere, aspect float32) Camera {
	cm := Camera{}
	cm.Defaults()
	if aspect > 0 {
		cm.Aspect = aspect
	}
	rad := bounds.Radius
	if rad <= 0 {
		rad = 1
	}
	ctr := bounds.Center
	cm.Target = ctr
	cm.Ortho = cc.IsOrtho()

	var dist float32
	if cm.Ortho {
		half := rad * 1.1
		cm.Top, cm.Bottom = half, -half
		cm.Right, cm.Left = half*cm.Aspect, -half*cm.Aspect
		dist = 2 * rad
	} else {
		if cc != nil && cc.FOV != nil && *cc.FOV > 0 {
			cm.FOV = *cc.FOV
		}
		dist = rad / math32.Sin(math32.DegToRad(cm.FOV*0.5))
	}
	cm.Position = ctr.Add(math32.Vec3(0, 0, dist))
	if pos, ok := cc.position(); ok {
		cm.Position = pos
		dist = pos.Sub(ctr).Length()
	}
	cm.Near = math32.Max((dist-rad)*0.5, dist*0.001)
	if cm.Near <= 0 {
		cm.Near = 0.01
	}
	cm.Far = (dist + rad) * 2
	if cc == nil {
		return cm
	}
	setIf(&cm.Near, cc.Near)
	setIf(&cm.Far, cc.Far)
	if cm.Ortho {
		setIf(&cm.Left, cc.Left)
		setIf(&cm.Right, cc.Right)
		setIf(&cm.Top, cc.Top)
		setIf(&cm.Bottom, cc.Bottom)
	}
	return cm
}

func setIf(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
