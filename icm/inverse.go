// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"fmt"

	"github.com/emer/icm/actfn"
)

// InverseModel predicts which discrete action produced a transition, from
// the pre and post state embeddings.  This auxiliary task is what forces
// the shared encoder to represent the action-relevant features of the
// observation, rather than collapsing.  Output is unnormalized logits --
// the orchestrator applies log-softmax.  Discrete action spaces only.
type InverseModel struct {
	Net

	// dimension of the embedding space
	EmbedDim int

	// number of discrete actions
	ActionDim int
}

// NewInverseModel returns a new inverse model with initialized weights,
// or ErrConfig for non-positive dimensions.
func NewInverseModel(embedDim, hidDim, actionDim int, act actfn.Funcs) (*InverseModel, error) {
	im := &InverseModel{EmbedDim: embedDim, ActionDim: actionDim}
	if err := im.Config("Inverse", 2*embedDim, hidDim, actionDim, act); err != nil {
		return nil, err
	}
	im.InitWts()
	return im, nil
}

// ActionLogits returns the unnormalized action scores for the given pair
// of embeddings.
func (im *InverseModel) ActionLogits(preEmb, postEmb []float32) ([]float32, error) {
	if len(preEmb) != im.EmbedDim || len(postEmb) != im.EmbedDim {
		return nil, fmt.Errorf("%w: embedding lens %d, %d != embed dim %d", ErrShape, len(preEmb), len(postEmb), im.EmbedDim)
	}
	in := make([]float32, 0, 2*im.EmbedDim)
	in = append(in, preEmb...)
	in = append(in, postEmb...)
	return im.Forward(in).Out, nil
}
