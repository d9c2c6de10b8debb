// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command geoviz inspects the geometry logged for a training run:
// it loads one step of a run and tag from a log directory, assembles
// its primitives and prints a summary of them, with the fitted camera.
package main

import (
	"context"
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/geoviz/geom"
	"cogentcore.org/geoviz/provider"
)

// Config is the configuration information for the geoviz cli.
type Config struct {

	// Root is the log directory, with one directory per run.
	Root string `default:"logs"`

	// Run is the name of the run.
	Run string `default:"demo"`

	// Tag is the name of the geometry tag within the run.
	Tag string `default:"points"`

	// Step is the step to inspect; -1 is the latest step.
	Step int `default:"-1"`

	// Normalize scales the geometry into a sphere of radius 100
	// and the feature arrows to a common length.
	Normalize bool

	// PointSize is the rendered size of point cloud points.
	PointSize float32 `default:"1"`

	// Colormap is the color map used when the tag config does not name one.
	Colormap string

	// Aspect is the aspect ratio of the view, for fitting the camera.
	Aspect float32 `default:"1.5"`

	// Demo writes demo point and mesh tags into the Run of the Root
	// directory before inspecting.
	Demo bool
}

func main() {
	opts := cli.DefaultOptions("geoviz", "Inspect the geometry logged for the steps of a training run.")
	cli.Run(opts, &Config{}, Inspect)
}

// Inspect loads, assembles and summarizes the configured step.
func Inspect(c *Config) error {
	if c.Demo {
		if err := WriteDemo(c.Root, c.Run); err != nil {
			return err
		}
	}
	sum, err := inspect(context.Background(), c)
	if err != nil {
		return err
	}
	return errors.Log(sum.Write(os.Stdout))
}

func inspect(ctx context.Context, c *Config) (*Summary, error) {
	mg := provider.NewManager(&provider.DirFetcher{Root: c.Root})
	p := mg.Provider(c.Run, c.Tag)
	if p == nil {
		return nil, fmt.Errorf("geoviz: both a run and a tag are needed")
	}
	ix, err := p.Index(ctx)
	if err != nil {
		return nil, err
	}
	id := c.Step
	if id < 0 {
		id = ix.Last()
		if id < 0 {
			return nil, fmt.Errorf("geoviz: no steps logged for %s/%s", c.Run, c.Tag)
		}
	}
	rs := geom.RenderSettings{PointSize: c.PointSize, NormFeatures: c.Normalize, Colormap: c.Colormap}
	bd, err := p.Get(ctx, id, rs)
	if err != nil {
		return nil, err
	}
	return Summarize(c.Run, c.Tag, ix.Steps[id], ix.Description, bd, rs, c.Aspect), nil
}
