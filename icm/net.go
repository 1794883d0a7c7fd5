// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"fmt"

	"github.com/emer/icm/actfn"
)

// Net is a two-layer affine network with a hidden-layer nonlinearity and a
// linear (unconstrained) output -- the shared architecture of all three
// ICM networks.  Forward returns a Trace of the activations, which
// Backward then consumes -- state from one pass never leaks into the next,
// and multiple passes (e.g., encoding pre and post states through the same
// weights) can coexist before gradients are taken.
type Net struct {

	// name of this network
	Nm string

	// hidden nonlinearity, applied to Hid output only -- output of Out is
	// always linear
	Act actfn.Funcs

	// input -> hidden affine layer
	Hid Affine

	// hidden -> output affine layer
	Out Affine
}

// Trace records the activations of one forward pass through a Net.
type Trace struct {

	// copy of the input vector
	In []float32

	// hidden activations, after the nonlinearity
	HidAct []float32

	// output vector (linear)
	Out []float32
}

func (nt *Net) Defaults() {
	nt.Hid.Defaults()
	nt.Out.Defaults()
}

// Config sets the name, dimensions and hidden activation function and
// allocates the layers.  All dimensions must be positive.
func (nt *Net) Config(name string, nin, nhid, nout int, act actfn.Funcs) error {
	if nin <= 0 || nhid <= 0 || nout <= 0 {
		return fmt.Errorf("%w: %s dims must be positive: in: %d, hid: %d, out: %d", ErrConfig, name, nin, nhid, nout)
	}
	nt.Nm = name
	nt.Act = act
	nt.Defaults()
	nt.Hid.Config(name+"Hid", nin, nhid)
	nt.Out.Config(name+"Out", nhid, nout)
	return nil
}

// NIn returns the input dimension
func (nt *Net) NIn() int { return nt.Hid.NIn }

// NOut returns the output dimension
func (nt *Net) NOut() int { return nt.Out.NOut }

// Layers returns the two affine layers, for the optimizer and weight I/O.
func (nt *Net) Layers() []*Affine { return []*Affine{&nt.Hid, &nt.Out} }

// InitWts initializes all weights and clears gradient state.
func (nt *Net) InitWts() {
	nt.Hid.InitWts()
	nt.Out.InitWts()
}

// InitDWt zeros the accumulated gradients.
func (nt *Net) InitDWt() {
	nt.Hid.InitDWt()
	nt.Out.InitDWt()
}

// Forward runs one forward pass and returns a fresh Trace of the
// activations.  It is a pure function of the input and current weights.
// The input length must be NIn -- callers are responsible for checking.
func (nt *Net) Forward(in []float32) *Trace {
	tr := &Trace{
		In:     make([]float32, nt.Hid.NIn),
		HidAct: make([]float32, nt.Hid.NOut),
		Out:    make([]float32, nt.Out.NOut),
	}
	copy(tr.In, in)
	nt.Hid.Fwd(tr.In, tr.HidAct)
	for i, h := range tr.HidAct {
		tr.HidAct[i] = nt.Act.Eval(h)
	}
	nt.Out.Fwd(tr.HidAct, tr.Out)
	return tr
}

// Backward backpropagates the upstream gradient dout (dL/dOut) through the
// activations recorded in tr, accumulating parameter gradients into DWt /
// DBias, and returns the gradient with respect to the input.
func (nt *Net) Backward(tr *Trace, dout []float32) []float32 {
	dhid := make([]float32, nt.Hid.NOut)
	nt.Out.Bwd(tr.HidAct, dout, dhid)
	for i, h := range tr.HidAct {
		dhid[i] *= nt.Act.Deriv(h)
	}
	din := make([]float32, nt.Hid.NIn)
	nt.Hid.Bwd(tr.In, dhid, din)
	return din
}
