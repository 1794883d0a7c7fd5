// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
)

// WtInitParams are weight initialization parameters -- just the
// random distribution parameters for the initial weight values.
// Biases always start at zero.
type WtInitParams struct {
	erand.RndParams
}

func (wp *WtInitParams) Defaults() {
	wp.Mean = 0
	wp.Var = 0.1
	wp.Dist = erand.Uniform
}

// Affine is one fully-connected affine transform: Out = Wt * In + Bias.
// It holds the trainable parameters, the accumulated gradients from
// backpropagation (DWt, DBias), and the momentum run of the gradients used
// by the sgd optimizer.  Parameters are only changed by InitWts and by the
// optimizer applying DWt -- never during forward / backward computation.
type Affine struct {

	// name of this layer, for weight files and debugging
	Nm string

	// number of input units
	NIn int

	// number of output units
	NOut int

	// weight initialization parameters
	WtInit WtInitParams `view:"inline"`

	// weights, NOut x NIn: each output unit's receiving weights are one row
	Wt etensor.Float32 `view:"-"`

	// bias weights, NOut
	Bias etensor.Float32 `view:"-"`

	// accumulated weight gradients, same shape as Wt
	DWt etensor.Float32 `view:"-"`

	// accumulated bias gradients, same shape as Bias
	DBias etensor.Float32 `view:"-"`

	// momentum integration of DWt, used by the optimizer
	Moment etensor.Float32 `view:"-"`

	// momentum integration of DBias
	BiasMoment etensor.Float32 `view:"-"`
}

func (al *Affine) Defaults() {
	al.WtInit.Defaults()
}

// Config sets the name and dimensions and allocates all the tensors.
// Weights are not initialized -- call InitWts.
func (al *Affine) Config(name string, nin, nout int) {
	al.Nm = name
	al.NIn = nin
	al.NOut = nout
	al.Wt.SetShape([]int{nout, nin}, nil, []string{"Out", "In"})
	al.Bias.SetShape([]int{nout}, nil, []string{"Out"})
	al.DWt.SetShape([]int{nout, nin}, nil, []string{"Out", "In"})
	al.DBias.SetShape([]int{nout}, nil, []string{"Out"})
	al.Moment.SetShape([]int{nout, nin}, nil, []string{"Out", "In"})
	al.BiasMoment.SetShape([]int{nout}, nil, []string{"Out"})
}

// Name returns the layer name
func (al *Affine) Name() string { return al.Nm }

// InitWts initializes the weights from the WtInit random parameters,
// zeros the biases, and clears all gradient and momentum state.
func (al *Affine) InitWts() {
	for i := range al.Wt.Values {
		al.Wt.Values[i] = float32(al.WtInit.Gen(-1))
	}
	al.Bias.SetZeros()
	al.InitDWt()
	al.Moment.SetZeros()
	al.BiasMoment.SetZeros()
}

// InitDWt zeros the accumulated gradients.
func (al *Affine) InitDWt() {
	al.DWt.SetZeros()
	al.DBias.SetZeros()
}

// Fwd computes out = Wt * in + Bias.  out must be length NOut.
func (al *Affine) Fwd(in, out []float32) {
	for j := 0; j < al.NOut; j++ {
		wts := al.Wt.Values[j*al.NIn : (j+1)*al.NIn]
		sum := al.Bias.Values[j]
		for i, w := range wts {
			sum += w * in[i]
		}
		out[j] = sum
	}
}

// Bwd accumulates gradients for the given upstream gradient dout
// (dL/dOut) and the input that produced it, and computes the downstream
// gradient din = Wt^T * dout if din is non-nil.
func (al *Affine) Bwd(in, dout, din []float32) {
	if din != nil {
		for i := range din {
			din[i] = 0
		}
	}
	for j := 0; j < al.NOut; j++ {
		g := dout[j]
		al.DBias.Values[j] += g
		wts := al.Wt.Values[j*al.NIn : (j+1)*al.NIn]
		dwts := al.DWt.Values[j*al.NIn : (j+1)*al.NIn]
		for i := range wts {
			dwts[i] += g * in[i]
			if din != nil {
				din[i] += g * wts[i]
			}
		}
	}
}
