// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package step describes the geometry logged for the steps of a training
// run: the content types of the buffers, the metadata records listing
// them, the index aggregating the records of a tag per step, and the
// decoding of the raw little-endian buffers into typed data ready for
// [geom.Assemble].
package step

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ContentType is the kind of buffer logged for a step.
// The values are those of the logging wire format.
type ContentType int32

const (
	Undefined ContentType = iota

	// Vertices are the float32 [batch, count, 3] vertex positions.
	Vertices

	// Faces are the uint32 [batch, faceCount, 3] triangle vertex indexes.
	Faces

	// Features are the float32 [batch, count, 3] per-vertex feature vectors.
	Features

	// VertColors are the uint8 [batch, count, 3] per-vertex colors.
	VertColors

	// FaceColors are the uint8 [batch, 3] per-sample mesh colors.
	FaceColors

	// FeatColors are the uint8 [batch, count, 3] per-feature colors.
	FeatColors

	contentTypesN
)

var contentTypeNames = [contentTypesN]string{
	"UNDEFINED", "VERTICES", "FACES", "FEATURES", "VERT_COLORS", "FACE_COLORS", "FEAT_COLORS",
}

// ContentTypes returns all the defined content types, in wire order.
func ContentTypes() []ContentType {
	return []ContentType{Vertices, Faces, Features, VertColors, FaceColors, FeatColors}
}

func (ct ContentType) String() string {
	if ct < 0 || ct >= contentTypesN {
		return "ContentType(" + strconv.Itoa(int(ct)) + ")"
	}
	return contentTypeNames[ct]
}

// IsValid returns whether ct is a defined content type other than [Undefined].
func (ct ContentType) IsValid() bool {
	return ct > Undefined && ct < contentTypesN
}

// ElementSize returns the size in bytes of one buffer element.
func (ct ContentType) ElementSize() int {
	switch ct {
	case Vertices, Features, Faces:
		return 4
	case VertColors, FaceColors, FeatColors:
		return 1
	}
	return 0
}

// ParseContentType returns the content type with the given name,
// case insensitively, or given as its wire number.
func ParseContentType(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		ct := ContentType(n)
		if !ct.IsValid() {
			return Undefined, fmt.Errorf("step.ParseContentType: %d is not a valid content type", n)
		}
		return ct, nil
	}
	up := strings.ToUpper(s)
	for i, nm := range contentTypeNames {
		if nm == up && ContentType(i).IsValid() {
			return ContentType(i), nil
		}
	}
	return Undefined, fmt.Errorf("step.ParseContentType: %q is not a valid content type", s)
}

// MarshalText encodes the content type as its name.
func (ct ContentType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalJSON accepts both the wire number and the name.
func (ct *ContentType) UnmarshalJSON(b []byte) error {
	var n int32
	if err := json.Unmarshal(b, &n); err == nil {
		*ct = ContentType(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("step.ContentType: %w", err)
	}
	v, err := ParseContentType(s)
	if err != nil {
		return err
	}
	*ct = v
	return nil
}

// Components is a bit set of the content types logged for a step,
// with bit 1<<ct set for each present content type.
type Components uint32

// Has returns whether the content type is present.
func (c Components) Has(ct ContentType) bool {
	return c&(1<<ct) != 0
}

// Set adds the content type.
func (c *Components) Set(ct ContentType) {
	*c |= 1 << ct
}

// Types returns the present content types, in wire order.
func (c Components) Types() []ContentType {
	var cts []ContentType
	for _, ct := range ContentTypes() {
		if c.Has(ct) {
			cts = append(cts, ct)
		}
	}
	return cts
}

func (c Components) String() string {
	cts := c.Types()
	nms := make([]string, len(cts))
	for i, ct := range cts {
		nms[i] = ct.String()
	}
	return strings.Join(nms, "|")
}
