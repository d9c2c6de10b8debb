// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"cogentcore.org/geoviz/geom"
	"cogentcore.org/geoviz/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32Bytes(vals ...float32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

type fakeFetcher struct {
	mu        sync.Mutex
	recs      []step.Record
	bufs      map[string][]byte
	metaCalls int
	bufCalls  map[string]int

	// metaGate and bufGate, when set, block the metadata and
	// buffer fetches until closed.
	metaGate chan struct{}
	bufGate  chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{bufs: map[string][]byte{}, bufCalls: map[string]int{}}
}

func bufKey(id int, ct step.ContentType) string {
	return fmt.Sprintf("%d/%v", id, ct)
}

// addPoints logs a point cloud of n points along x at the step.
func (ff *fakeFetcher) addPoints(id, n int) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	vals := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		vals = append(vals, float32(i), 0, 0)
	}
	ff.recs = append(ff.recs, step.Record{Step: id, WallTime: float64(id), ContentType: step.Vertices, DataShape: []int{1, n, 3}})
	ff.bufs[bufKey(id, step.Vertices)] = float32Bytes(vals...)
}

func (ff *fakeFetcher) add(id int, ct step.ContentType, shape []int, raw []byte) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.recs = append(ff.recs, step.Record{Step: id, WallTime: float64(id), ContentType: ct, DataShape: shape})
	ff.bufs[bufKey(id, ct)] = raw
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ff *fakeFetcher) Metadata(ctx context.Context, run, tag string) ([]step.Record, error) {
	ff.mu.Lock()
	ff.metaCalls++
	recs := slices.Clone(ff.recs)
	ff.mu.Unlock()
	if err := wait(ctx, ff.metaGate); err != nil {
		return nil, err
	}
	return recs, nil
}

func (ff *fakeFetcher) Buffer(ctx context.Context, run, tag string, id int, ct step.ContentType, wallTime float64) ([]byte, error) {
	key := bufKey(id, ct)
	ff.mu.Lock()
	ff.bufCalls[key]++
	raw, ok := ff.bufs[key]
	ff.mu.Unlock()
	if err := wait(ctx, ff.bufGate); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no buffer %s", key)
	}
	return raw, nil
}

func (ff *fakeFetcher) calls(id int, ct step.ContentType) int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.bufCalls[bufKey(id, ct)]
}

func TestProviderGet(t *testing.T) {
	ff := newFakeFetcher()
	ff.addPoints(1, 3)
	ff.add(1, step.Features, []int{1, 3, 3}, float32Bytes(0, 1, 0, 0, 1, 0, 0, 2, 0))
	p := NewProvider(ff, "run", "tag")

	bd, err := p.Get(context.Background(), 1, geom.RenderSettings{})
	require.NoError(t, err)
	assert.Equal(t, geom.PointCloudKind, bd.Geometry.Kind())
	require.NotNil(t, bd.Features)
	assert.Equal(t, float32(2), bd.MaxFeatureLength)
	assert.Equal(t, float32(1), bd.Scale)

	// settings are applied per call, over the same cached data
	bd, err = p.Get(context.Background(), 1, geom.RenderSettings{NormFeatures: true, PointSize: 4})
	require.NoError(t, err)
	assert.NotEqual(t, float32(1), bd.Scale)
	assert.Equal(t, float32(4), bd.Geometry.(*geom.PointCloud).PointSize)
	assert.Equal(t, 1, ff.calls(1, step.Vertices))
	assert.Equal(t, 1, ff.calls(1, step.Features))

	_, err = p.Get(context.Background(), 2, geom.RenderSettings{})
	assert.ErrorIs(t, err, ErrNoStep)
}

func TestProviderDedup(t *testing.T) {
	ff := newFakeFetcher()
	ff.addPoints(1, 3)
	ff.metaGate = make(chan struct{})
	ff.bufGate = make(chan struct{})
	p := NewProvider(ff, "run", "tag")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = p.Data(context.Background(), 1)
		}()
	}
	// every caller joins the pending fetch before it completes
	time.Sleep(50 * time.Millisecond)
	close(ff.metaGate)
	time.Sleep(50 * time.Millisecond)
	close(ff.bufGate)
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	ff.mu.Lock()
	assert.Equal(t, 1, ff.metaCalls)
	ff.mu.Unlock()
	assert.Equal(t, 1, ff.calls(1, step.Vertices))
}

func TestProviderCancelOne(t *testing.T) {
	ff := newFakeFetcher()
	ff.addPoints(1, 3)
	p := NewProvider(ff, "run", "tag")
	_, err := p.Index(context.Background())
	require.NoError(t, err)
	ff.bufGate = make(chan struct{})

	actx, cancel := context.WithCancel(context.Background())
	var errA, errB error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, errA = p.Data(actx, 1)
	}()
	assert.Eventually(t, func() bool { return ff.calls(1, step.Vertices) == 1 }, time.Second, time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, errB = p.Data(context.Background(), 1)
	}()
	// the second caller joins the pending fetch, then the first one gives up
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(ff.bufGate)
	wg.Wait()

	assert.ErrorIs(t, errA, context.Canceled)
	assert.NoError(t, errB)
	assert.Equal(t, 1, ff.calls(1, step.Vertices))
	assert.Equal(t, []int{1}, p.Cached())
}

func TestProviderWindow(t *testing.T) {
	ff := newFakeFetcher()
	for id := 0; id < 40; id += 2 {
		ff.addPoints(id, 2)
	}
	p := NewProvider(ff, "run", "tag")
	ctx := context.Background()
	for id := 0; id < 40; id += 2 {
		_, err := p.Get(ctx, id, geom.RenderSettings{})
		require.NoError(t, err)
		cached := p.Cached()
		assert.LessOrEqual(t, len(cached), 2*DefaultWindow+1)
		for _, c := range cached {
			assert.LessOrEqual(t, id-c, 2*DefaultWindow, "step %d cached at step %d", c, id)
		}
	}
	assert.NotContains(t, p.Cached(), 0)

	// jumping back refetches
	_, err := p.Get(ctx, 0, geom.RenderSettings{})
	require.NoError(t, err)
	assert.Equal(t, 2, ff.calls(0, step.Vertices))
	assert.Equal(t, []int{0}, p.Cached())
}

func TestProviderPrefetch(t *testing.T) {
	ff := newFakeFetcher()
	for _, id := range []int{1, 5, 9, 13} {
		ff.addPoints(id, 2)
	}
	p := NewProvider(ff, "run", "tag")
	require.NoError(t, p.Prefetch(context.Background(), 5))
	cached := p.Cached()
	slices.Sort(cached)
	assert.Equal(t, []int{1, 9}, cached)

	assert.ErrorIs(t, p.Prefetch(context.Background(), 6), ErrNoStep)
}

func TestProviderShow(t *testing.T) {
	ff := newFakeFetcher()
	ff.addPoints(1, 3)
	ff.addPoints(2, 4)
	ff.add(2, step.VertColors, []int{1, 3, 3}, make([]byte, 9))
	p := NewProvider(ff, "run", "tag")
	ctx := context.Background()

	assert.Nil(t, p.Show(ctx, 2, geom.RenderSettings{}))

	good := p.Show(ctx, 1, geom.RenderSettings{})
	require.NotNil(t, good)
	assert.Same(t, good, p.Show(ctx, 2, geom.RenderSettings{}))
	assert.Same(t, good, p.Show(ctx, 3, geom.RenderSettings{}))

	_, err := p.Get(ctx, 2, geom.RenderSettings{})
	var ce *geom.CardinalityError
	assert.True(t, errors.As(err, &ce), "%v", err)
}

func TestProviderRefresh(t *testing.T) {
	ff := newFakeFetcher()
	ff.addPoints(1, 3)
	p := NewProvider(ff, "run", "tag")
	ctx := context.Background()
	_, err := p.Get(ctx, 1, geom.RenderSettings{})
	require.NoError(t, err)

	ix, err := p.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ix.StepIDs)
	assert.Equal(t, []int{1}, p.Cached())

	ff.addPoints(2, 3)
	ix, err = p.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ix.StepIDs)
	assert.Empty(t, p.Cached())
}

func TestProviderFetchError(t *testing.T) {
	ff := newFakeFetcher()
	ff.add(1, step.Vertices, []int{1, 1, 3}, nil)
	ff.mu.Lock()
	delete(ff.bufs, bufKey(1, step.Vertices))
	ff.mu.Unlock()
	p := NewProvider(ff, "run", "tag")
	_, err := p.Get(context.Background(), 1, geom.RenderSettings{})
	assert.ErrorContains(t, err, "no buffer 1/VERTICES")
	assert.Empty(t, p.Cached())
}

func TestManager(t *testing.T) {
	mg := NewManager(newFakeFetcher())
	assert.Nil(t, mg.Provider("", "tag"))
	assert.Nil(t, mg.Provider("run", ""))

	a := mg.Provider("run2", "tag")
	assert.Same(t, a, mg.Provider("run2", "tag"))
	assert.NotSame(t, a, mg.Provider("run2", "other"))
	mg.Provider("run1", "tag")
	assert.Equal(t, []string{"run1", "run2"}, mg.Runs())

	mg.Remove("run1", "tag")
	assert.Equal(t, []string{"run2"}, mg.Runs())
	mg.Remove("run2", "tag")
	assert.Equal(t, []string{"run2"}, mg.Runs())
	assert.NotSame(t, a, mg.Provider("run2", "tag"))
}

func TestDirFetcher(t *testing.T) {
	df := &DirFetcher{Root: t.TempDir()}
	recs := []step.Record{
		{Step: 3, WallTime: 1.5, ContentType: step.Vertices, DataShape: []int{1, 3, 3}, Config: `{"vertices_cmap": "rainbow"}`, Description: "points"},
		{Step: 3, WallTime: 1.5, ContentType: step.VertColors, DataShape: []int{1, 3, 3}, Config: `{"vertices_cmap": "rainbow"}`, Description: "points"},
	}
	require.NoError(t, df.SaveMetadata("run", "tag", recs))
	require.NoError(t, df.SaveBuffer("run", "tag", 3, step.Vertices, float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0)))
	require.NoError(t, df.SaveBuffer("run", "tag", 3, step.VertColors, []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}))

	ctx := context.Background()
	got, err := df.Metadata(ctx, "run", "tag")
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	p := NewProvider(df, "run", "tag")
	bd, err := p.Get(ctx, 3, geom.RenderSettings{})
	require.NoError(t, err)
	pc := bd.Geometry.(*geom.PointCloud)
	assert.Equal(t, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, []float32(pc.Geometry.Color))
	assert.Equal(t, "rainbow", bd.Config.VerticesCmap)

	_, err = df.Metadata(ctx, "run", "missing")
	assert.Error(t, err)
	_, err = df.Buffer(ctx, "run", "tag", 4, step.Vertices, 0)
	assert.Error(t, err)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = df.Metadata(cctx, "run", "tag")
	assert.ErrorIs(t, err, context.Canceled)
}
