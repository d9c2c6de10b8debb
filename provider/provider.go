// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provider loads the logged geometry of a run and tag on demand
// and turns its steps into renderable bundles. It fetches the metadata
// and buffers through a [Fetcher], keeps the decoded steps around the
// current one in a sliding window, fetches each of them at most once at
// a time, and keeps showing the last good step when a step fails.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"cogentcore.org/geoviz/geom"
	"cogentcore.org/geoviz/step"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultWindow is the default number of steps kept in the cache
// on each side of the current step.
const DefaultWindow = 5

// ErrNoStep is returned for a step that is not logged for the tag.
var ErrNoStep = errors.New("provider: no such step")

// Provider loads the steps of one run and tag.
// It is safe for concurrent use.
type Provider struct {

	// Run is the name of the run.
	Run string

	// Tag is the name of the tag within the run.
	Tag string

	// Window is the number of steps kept in the cache on each
	// side of the current step.
	Window int

	fetcher Fetcher

	// group deduplicates in-flight fetches of the metadata and of each step;
	// see [Provider.shared].
	group singleflight.Group

	// mu protects the fields below.
	mu sync.Mutex

	index *step.Index

	// cache has the decoded data of the steps in the window.
	cache map[int]*step.Data

	// current is the step last requested through Get.
	current int

	// last is the last successfully assembled bundle, for Show.
	last *geom.Bundle
}

// NewProvider returns a new provider for the run and tag.
func NewProvider(f Fetcher, run, tag string) *Provider {
	return &Provider{
		Run:     run,
		Tag:     tag,
		Window:  DefaultWindow,
		fetcher: f,
		cache:   map[int]*step.Data{},
		current: -1,
	}
}

// Refresh fetches the metadata again and rebuilds the step index.
// The cached steps are dropped when the logged steps changed.
// Concurrent calls share one fetch.
func (p *Provider) Refresh(ctx context.Context) (*step.Index, error) {
	v, err := p.shared(ctx, "metadata", func(ctx context.Context) (any, error) {
		recs, err := p.fetcher.Metadata(ctx, p.Run, p.Tag)
		if err != nil {
			return nil, err
		}
		ix, err := step.NewIndex(recs)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		if ix.Changed(p.index) {
			clear(p.cache)
		}
		p.index = ix
		p.mu.Unlock()
		return ix, nil
	})
	if err != nil {
		return nil, fmt.Errorf("provider.Refresh %s/%s: %w", p.Run, p.Tag, err)
	}
	return v.(*step.Index), nil
}

// Index returns the step index, fetching the metadata the first time.
func (p *Provider) Index(ctx context.Context) (*step.Index, error) {
	p.mu.Lock()
	ix := p.index
	p.mu.Unlock()
	if ix != nil {
		return ix, nil
	}
	return p.Refresh(ctx)
}

// Cached returns the steps currently in the cache, in no particular order.
func (p *Provider) Cached() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]int, 0, len(p.cache))
	for id := range p.cache {
		ids = append(ids, id)
	}
	return ids
}

// Data returns the decoded buffers of the step, from the cache or
// fetched concurrently for all of its content types.
func (p *Provider) Data(ctx context.Context, id int) (*step.Data, *step.Info, error) {
	ix, err := p.Index(ctx)
	if err != nil {
		return nil, nil, err
	}
	si := ix.Steps[id]
	if si == nil {
		return nil, nil, fmt.Errorf("%w: %d in %s/%s", ErrNoStep, id, p.Run, p.Tag)
	}
	p.mu.Lock()
	d := p.cache[id]
	p.mu.Unlock()
	if d != nil {
		return d, si, nil
	}

	v, err := p.shared(ctx, "step/"+strconv.Itoa(id), func(ctx context.Context) (any, error) {
		cts := si.Components.Types()
		raws := make([][]byte, len(cts))
		g, gctx := errgroup.WithContext(ctx)
		for i, ct := range cts {
			g.Go(func() error {
				raw, err := p.fetcher.Buffer(gctx, p.Run, p.Tag, id, ct, si.WallTimes[ct])
				raws[i] = raw
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		d := &step.Data{}
		for i, ct := range cts {
			if err := d.Set(ct, raws[i]); err != nil {
				return nil, err
			}
		}
		p.mu.Lock()
		if p.index == ix {
			p.cache[id] = d
			p.evict()
		}
		p.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("provider.Data %s/%s step %d: %w", p.Run, p.Tag, id, err)
	}
	return v.(*step.Data), si, nil
}

// Get returns the bundle of the step, assembled with the given settings,
// and makes it the current step. Features are normalized when the
// settings ask for it.
func (p *Provider) Get(ctx context.Context, id int, rs geom.RenderSettings) (*geom.Bundle, error) {
	p.mu.Lock()
	p.current = id
	p.evict()
	p.mu.Unlock()

	d, si, err := p.Data(ctx, id)
	if err != nil {
		return nil, err
	}
	ix, err := p.Index(ctx)
	if err != nil {
		return nil, err
	}
	bd, err := geom.Assemble(d.Buffers(si), ix.Config, rs, rs.NormFeatures)
	if err != nil {
		return nil, fmt.Errorf("provider.Get %s/%s step %d: %w", p.Run, p.Tag, id, err)
	}
	return bd, nil
}

// Show returns the bundle of the step, like [Provider.Get]. When the step
// cannot be loaded or assembled, the error is logged and the last good
// bundle is returned instead, nil if there is none yet.
func (p *Provider) Show(ctx context.Context, id int, rs geom.RenderSettings) *geom.Bundle {
	bd, err := p.Get(ctx, id, rs)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		slog.Error("provider.Provider.Show", "run", p.Run, "tag", p.Tag, "step", id, "error", err)
		return p.last
	}
	p.last = bd
	return bd
}

// Prefetch loads the steps just before and after the given one into the cache.
func (p *Provider) Prefetch(ctx context.Context, id int) error {
	ix, err := p.Index(ctx)
	if err != nil {
		return err
	}
	pos := ix.Position(id)
	if pos < 0 {
		return fmt.Errorf("%w: %d in %s/%s", ErrNoStep, id, p.Run, p.Tag)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, np := range []int{pos - 1, pos + 1} {
		if np < 0 || np >= ix.Len() {
			continue
		}
		g.Go(func() error {
			_, _, err := p.Data(gctx, ix.StepIDs[np])
			return err
		})
	}
	return g.Wait()
}

// shared runs fn once for all the concurrent callers with the same key.
// fn runs without the cancellation of the caller that started it, so
// that it completes for the others; each caller stops waiting when its
// own ctx is done.
func (p *Provider) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	fctx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		return fn(fctx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// evict drops the cached steps outside of the window around the
// current step. It must be called with the mutex held.
func (p *Provider) evict() {
	if p.index == nil || p.current < 0 {
		return
	}
	cur := p.index.Position(p.current)
	if cur < 0 {
		return
	}
	for id := range p.cache {
		pos := p.index.Position(id)
		if pos < 0 || pos < cur-p.Window || pos > cur+p.Window {
			delete(p.cache, id)
		}
	}
}
