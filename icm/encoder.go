// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"fmt"

	"github.com/emer/icm/actfn"
)

// FeatureEncoder maps raw observation vectors into a lower-dimensional
// embedding space shared by the forward and inverse models.  It is defined
// as a compressive encoder: EmbedDim > ObsDim is a configuration error.
// The output is a deliberately unconstrained real vector (no output
// nonlinearity), so the forward and inverse models operate in an
// unrestricted latent space.
type FeatureEncoder struct {
	Net
}

// NewFeatureEncoder returns a new encoder with initialized weights, or
// ErrConfig if embedDim > obsDim or any dimension is non-positive.
func NewFeatureEncoder(obsDim, hidDim, embedDim int, act actfn.Funcs) (*FeatureEncoder, error) {
	if embedDim > obsDim {
		return nil, fmt.Errorf("%w: embedding dim %d > observation dim %d -- encoder must be compressive", ErrConfig, embedDim, obsDim)
	}
	fe := &FeatureEncoder{}
	if err := fe.Config("Encoder", obsDim, hidDim, embedDim, act); err != nil {
		return nil, err
	}
	fe.InitWts()
	return fe, nil
}

// Encode returns the embedding for the given observation, which must be of
// the configured observation dimension.  Deterministic given fixed weights.
func (fe *FeatureEncoder) Encode(obs []float32) ([]float32, error) {
	if len(obs) != fe.NIn() {
		return nil, fmt.Errorf("%w: observation len %d != obs dim %d", ErrShape, len(obs), fe.NIn())
	}
	return fe.Forward(obs).Out, nil
}
