// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "fmt"

// MissingDataError is returned when a required buffer is absent or empty.
type MissingDataError struct {
	Msg string
}

func (e *MissingDataError) Error() string {
	return "geom: missing data: " + e.Msg
}

// ShapeError is returned for a rank or dimension mismatch between
// a buffer and its declared shape.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "geom: shape: " + e.Msg
}

// CardinalityError is returned when the number of colors or features
// does not match the number of vertices or samples they belong to.
type CardinalityError struct {
	What string
	Got  int
	Want int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("geom: there must be one %s, but got %d instead of %d", e.What, e.Got, e.Want)
}

func shapeErrorf(format string, args ...any) error {
	return &ShapeError{Msg: fmt.Sprintf(format, args...)}
}
