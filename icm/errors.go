// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import "errors"

// Error sentinels for the conditions the module detects.  All are reported
// synchronously at the call that triggers them, wrapped with specifics --
// use errors.Is to discriminate.
var (
	// ErrConfig is returned at construction for invalid dimensions,
	// including the hard constraint that EmbedDim <= ObsDim (the encoder
	// is compressive).
	ErrConfig = errors.New("icm: invalid configuration")

	// ErrShape is returned when an input vector's length does not match
	// the configured dimension.
	ErrShape = errors.New("icm: shape mismatch")

	// ErrActionIndex is returned when an action index is outside
	// [0, ActionDim).
	ErrActionIndex = errors.New("icm: action index out of range")
)
