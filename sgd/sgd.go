// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sgd implements the external optimizer for the icm module:
stochastic gradient descent with optional momentum.  The icm networks
never update their own weights -- the training loop calls ICM.DWt to
accumulate gradients and then Optimizer.Step to apply them, mirroring the
usual two-phase DWt / WtFmDWt discipline.
*/
package sgd

import "github.com/emer/icm/icm"

// Differentiable is any trainable module exposing its affine layers:
// the parameters and accumulated gradients the optimizer operates on.
// icm.ICM and the three individual networks all implement it.
type Differentiable interface {
	// Layers returns all the affine layers of this module
	Layers() []*icm.Affine
}

// MomentumParams implements standard momentum integration of gradients,
// as an accumulating running total with decay rate MDt.
type MomentumParams struct {

	// whether to use momentum
	On bool

	// rate of decay of the accumulated momentum average
	MDt float32 `def:"0.9" min:"0" max:"1"`
}

func (mp *MomentumParams) Defaults() {
	mp.On = true
	mp.MDt = 0.9
}

func (mp *MomentumParams) Update() {
}

// MomentFmDWt updates the momentum accumulator from the new gradient
// value and returns the effective weight change to apply.
func (mp *MomentumParams) MomentFmDWt(moment *float32, dwt float32) float32 {
	*moment = mp.MDt**moment + dwt
	return *moment
}

// Optimizer applies accumulated gradients via gradient descent with
// optional momentum.  One Optimizer can serve any number of modules --
// the momentum state lives with the layers, not here.
type Optimizer struct {

	// learning rate
	Lrate float32 `def:"0.01"`

	// momentum parameters
	Momentum MomentumParams `view:"inline"`
}

func (op *Optimizer) Defaults() {
	op.Lrate = 0.01
	op.Momentum.Defaults()
}

// Step applies the accumulated gradients of all the module's layers to
// their weights, and zeros the gradients, ready for the next
// accumulation.  This is the only place parameters change during
// training.
func (op *Optimizer) Step(m Differentiable) {
	for _, al := range m.Layers() {
		for i, dwt := range al.DWt.Values {
			if op.Momentum.On {
				dwt = op.Momentum.MomentFmDWt(&al.Moment.Values[i], dwt)
			}
			al.Wt.Values[i] -= op.Lrate * dwt
			al.DWt.Values[i] = 0
		}
		for i, dwt := range al.DBias.Values {
			if op.Momentum.On {
				dwt = op.Momentum.MomentFmDWt(&al.BiasMoment.Values[i], dwt)
			}
			al.Bias.Values[i] -= op.Lrate * dwt
			al.DBias.Values[i] = 0
		}
	}
}
