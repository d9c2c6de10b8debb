// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"fmt"
	"slices"

	"cogentcore.org/geoviz/geom"
)

// Record is one metadata entry of a tag: a buffer of the given content
// type and shape, logged at a step. The config and description are the
// same for all records of a tag.
type Record struct {
	Step        int         `json:"step"`
	WallTime    float64     `json:"wall_time"`
	ContentType ContentType `json:"content_type"`
	DataShape   []int       `json:"data_shape"`
	Config      string      `json:"config,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Info aggregates the records of one step.
type Info struct {
	Step int

	// WallTime is the earliest wall time of the records of the step.
	WallTime float64

	Components Components

	// Shapes has the data shape of each present content type.
	Shapes map[ContentType][]int

	// WallTimes has the wall time of each present content type,
	// needed to fetch its buffer.
	WallTimes map[ContentType]float64
}

// Shape returns the data shape of the content type, nil if absent.
func (si *Info) Shape(ct ContentType) []int {
	return si.Shapes[ct]
}

// Index is the metadata of one run and tag, aggregated per step.
type Index struct {

	// Config is the parsed render config of the tag.
	Config *geom.RenderConfig

	// Description is the markdown description of the tag.
	Description string

	// Steps has the info of each step, by step number.
	Steps map[int]*Info

	// StepIDs are the step numbers in increasing order.
	StepIDs []int
}

// NewIndex aggregates the records of a tag. The config and description
// are taken from the first record; records with an undefined content
// type are ignored. An invalid config is an error.
func NewIndex(recs []Record) (*Index, error) {
	ix := &Index{Steps: map[int]*Info{}}
	if len(recs) == 0 {
		ix.Config = &geom.RenderConfig{}
		return ix, nil
	}
	cfg, err := geom.ParseConfig(recs[0].Config)
	if err != nil {
		return nil, fmt.Errorf("step.NewIndex: %w", err)
	}
	ix.Config = cfg
	ix.Description = recs[0].Description
	for _, rc := range recs {
		if !rc.ContentType.IsValid() {
			continue
		}
		si, ok := ix.Steps[rc.Step]
		if !ok {
			si = &Info{Step: rc.Step, WallTime: rc.WallTime, Shapes: map[ContentType][]int{}, WallTimes: map[ContentType]float64{}}
			ix.Steps[rc.Step] = si
			ix.StepIDs = append(ix.StepIDs, rc.Step)
		}
		si.WallTime = min(si.WallTime, rc.WallTime)
		si.Components.Set(rc.ContentType)
		si.Shapes[rc.ContentType] = rc.DataShape
		si.WallTimes[rc.ContentType] = rc.WallTime
	}
	slices.Sort(ix.StepIDs)
	return ix, nil
}

// Len returns the number of steps.
func (ix *Index) Len() int {
	return len(ix.StepIDs)
}

// Position returns the position of the step in StepIDs, or -1.
func (ix *Index) Position(step int) int {
	pos, ok := slices.BinarySearch(ix.StepIDs, step)
	if !ok {
		return -1
	}
	return pos
}

// Last returns the latest step, or -1 if there are none.
func (ix *Index) Last() int {
	if len(ix.StepIDs) == 0 {
		return -1
	}
	return ix.StepIDs[len(ix.StepIDs)-1]
}

// Changed returns whether the steps of ix differ from those of old,
// either in step numbers or in the content logged for them: the buffers
// cached for old are then stale.
func (ix *Index) Changed(old *Index) bool {
	if old == nil {
		return true
	}
	if !slices.Equal(ix.StepIDs, old.StepIDs) {
		return true
	}
	for id, si := range ix.Steps {
		os := old.Steps[id]
		if os.Components != si.Components {
			return true
		}
		for ct, wt := range si.WallTimes {
			if os.WallTimes[ct] != wt {
				return true
			}
		}
	}
	return false
}
