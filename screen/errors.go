// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/errors.go
// Summary: Error kinds reported by screen construction and drawing.

package screen

import "errors"

var (
	// ErrBounds reports a coordinate outside the screen extents.
	ErrBounds = errors.New("screen: coordinates out of bounds")
	// ErrValue reports a semantically invalid field such as a zero dimension.
	ErrValue = errors.New("screen: invalid value")
)
