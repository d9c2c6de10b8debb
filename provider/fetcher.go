// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/geoviz/step"
)

// Fetcher is the source of the logged geometry of runs and tags.
type Fetcher interface {

	// Metadata returns all the metadata records of the run and tag.
	Metadata(ctx context.Context, run, tag string) ([]step.Record, error)

	// Buffer returns the raw little-endian buffer of the content type
	// logged at the step, with the wall time of its record.
	Buffer(ctx context.Context, run, tag string, id int, ct step.ContentType, wallTime float64) ([]byte, error)
}

// MetadataFile is the name of the metadata file of a tag directory.
const MetadataFile = "metadata.json"

// DirFetcher is a [Fetcher] reading a log directory laid out as
//
//	<Root>/<run>/<tag>/metadata.json
//	<Root>/<run>/<tag>/<step>/<CONTENT_TYPE>.bin
//
// where metadata.json is a JSON array of [step.Record]. The wall time
// is not part of the buffer path: a step is logged once.
type DirFetcher struct {
	Root string
}

// TagDir returns the directory of the run and tag.
func (df *DirFetcher) TagDir(run, tag string) string {
	return filepath.Join(df.Root, run, tag)
}

// BufferPath returns the file of the content type buffer logged at the step.
func (df *DirFetcher) BufferPath(run, tag string, id int, ct step.ContentType) string {
	return filepath.Join(df.TagDir(run, tag), strconv.Itoa(id), ct.String()+".bin")
}

func (df *DirFetcher) Metadata(ctx context.Context, run, tag string) ([]step.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(df.TagDir(run, tag), MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("provider.DirFetcher.Metadata: %w", err)
	}
	defer f.Close()
	var recs []step.Record
	if err := jsonx.Read(&recs, f); err != nil {
		return nil, fmt.Errorf("provider.DirFetcher.Metadata: %s/%s: %w", run, tag, err)
	}
	return recs, nil
}

func (df *DirFetcher) Buffer(ctx context.Context, run, tag string, id int, ct step.ContentType, wallTime float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(df.BufferPath(run, tag, id, ct))
	if err != nil {
		return nil, fmt.Errorf("provider.DirFetcher.Buffer: %w", err)
	}
	return b, nil
}

// SaveMetadata writes the metadata records of the run and tag,
// creating the directory as needed.
func (df *DirFetcher) SaveMetadata(run, tag string, recs []step.Record) error {
	dir := df.TagDir(run, tag)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, MetadataFile))
	if err != nil {
		return err
	}
	if err := jsonx.WriteIndent(recs, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveBuffer writes the raw buffer of the content type logged at the step.
func (df *DirFetcher) SaveBuffer(run, tag string, id int, ct step.ContentType, raw []byte) error {
	fn := df.BufferPath(run, tag, id, ct)
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fn, raw, 0o644)
}
