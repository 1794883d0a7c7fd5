// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"fmt"

	"github.com/emer/icm/actfn"
)

// ForwardModel is the latent-space world model: it predicts the embedding
// of the next state from the current embedding and the action taken,
// never touching raw observations.  Input is the concatenation of the
// pre-state embedding and the one-hot action vector; output is linear and
// unconstrained, matching the embedding's own range.
type ForwardModel struct {
	Net

	// dimension of the embedding space
	EmbedDim int

	// number of discrete actions
	ActionDim int
}

// NewForwardModel returns a new forward model with initialized weights,
// or ErrConfig for non-positive dimensions.
func NewForwardModel(embedDim, hidDim, actionDim int, act actfn.Funcs) (*ForwardModel, error) {
	fm := &ForwardModel{EmbedDim: embedDim, ActionDim: actionDim}
	if err := fm.Config("Forward", embedDim+actionDim, hidDim, embedDim, act); err != nil {
		return nil, err
	}
	fm.InitWts()
	return fm, nil
}

// PredictNext returns the predicted next-state embedding for the given
// pre-state embedding and one-hot action vector.
func (fm *ForwardModel) PredictNext(preEmb, actOneHot []float32) ([]float32, error) {
	if len(preEmb) != fm.EmbedDim {
		return nil, fmt.Errorf("%w: embedding len %d != embed dim %d", ErrShape, len(preEmb), fm.EmbedDim)
	}
	if len(actOneHot) != fm.ActionDim {
		return nil, fmt.Errorf("%w: one-hot len %d != action dim %d", ErrShape, len(actOneHot), fm.ActionDim)
	}
	in := make([]float32, 0, fm.EmbedDim+fm.ActionDim)
	in = append(in, preEmb...)
	in = append(in, actOneHot...)
	return fm.Forward(in).Out, nil
}
