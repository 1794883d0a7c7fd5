// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/emer/icm/actfn"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// gradTol is the tolerance for comparing backprop gradients against
// central finite differences, in float32
const gradTol = float32(2.0e-3)

func TestNetForwardDeterministic(t *testing.T) {
	rand.Seed(10)
	nt := &Net{}
	if err := nt.Config("Test", 3, 5, 2, actfn.Tanh); err != nil {
		t.Fatal(err)
	}
	nt.InitWts()
	in := []float32{0.2, -0.7, 1.1}
	out1 := nt.Forward(in).Out
	out2 := nt.Forward(in).Out
	if len(out1) != 2 {
		t.Errorf("output len: %d != 2\n", len(out1))
	}
	for i := range out1 {
		if out1[i] != out2[i] {
			t.Errorf("forward not deterministic: idx: %d, %v != %v\n", i, out1[i], out2[i])
		}
	}
}

func TestNetConfigErr(t *testing.T) {
	nt := &Net{}
	if err := nt.Config("Test", 3, 0, 2, actfn.Tanh); err == nil {
		t.Errorf("expected config error for zero hidden dim\n")
	}
	if err := nt.Config("Test", -1, 4, 2, actfn.Tanh); err == nil {
		t.Errorf("expected config error for negative input dim\n")
	}
}

// TestNetGradients checks Backward's accumulated weight, bias, and input
// gradients against central finite differences, for the linear loss
// L = sum(c * out) with fixed random c (so dL/dOut = c).
func TestNetGradients(t *testing.T) {
	rand.Seed(11)
	nt := &Net{}
	if err := nt.Config("Test", 4, 6, 3, actfn.Tanh); err != nil {
		t.Fatal(err)
	}
	nt.InitWts()

	in := []float32{0.3, -0.5, 0.8, -0.1}
	c := []float32{0.7, -1.2, 0.4}

	loss := func(x []float32) float32 {
		out := nt.Forward(x).Out
		var l float32
		for i := range out {
			l += c[i] * out[i]
		}
		return l
	}

	tr := nt.Forward(in)
	din := nt.Backward(tr, c)

	const eps = float32(1.0e-2)
	for _, al := range nt.Layers() {
		for i := range al.Wt.Values {
			orig := al.Wt.Values[i]
			al.Wt.Values[i] = orig + eps
			lp := loss(in)
			al.Wt.Values[i] = orig - eps
			lm := loss(in)
			al.Wt.Values[i] = orig
			num := (lp - lm) / (2 * eps)
			dif := math32.Abs(al.DWt.Values[i] - num)
			if dif > gradTol {
				t.Errorf("%s DWt err: idx: %d, analytic: %v, numerical: %v, dif: %v\n", al.Nm, i, al.DWt.Values[i], num, dif)
			}
		}
		for i := range al.Bias.Values {
			orig := al.Bias.Values[i]
			al.Bias.Values[i] = orig + eps
			lp := loss(in)
			al.Bias.Values[i] = orig - eps
			lm := loss(in)
			al.Bias.Values[i] = orig
			num := (lp - lm) / (2 * eps)
			dif := math32.Abs(al.DBias.Values[i] - num)
			if dif > gradTol {
				t.Errorf("%s DBias err: idx: %d, analytic: %v, numerical: %v, dif: %v\n", al.Nm, i, al.DBias.Values[i], num, dif)
			}
		}
	}
	for i := range in {
		x := make([]float32, len(in))
		copy(x, in)
		x[i] = in[i] + eps
		lp := loss(x)
		x[i] = in[i] - eps
		lm := loss(x)
		num := (lp - lm) / (2 * eps)
		dif := math32.Abs(din[i] - num)
		if dif > gradTol {
			t.Errorf("din err: idx: %d, analytic: %v, numerical: %v, dif: %v\n", i, din[i], num, dif)
		}
	}
}

// TestNetBackwardAccum verifies that two Backward calls accumulate
// gradients additively.
func TestNetBackwardAccum(t *testing.T) {
	rand.Seed(12)
	nt := &Net{}
	if err := nt.Config("Test", 3, 4, 2, actfn.Tanh); err != nil {
		t.Fatal(err)
	}
	nt.InitWts()
	in := []float32{0.4, -0.2, 0.9}
	dout := []float32{1, -0.5}

	tr := nt.Forward(in)
	nt.Backward(tr, dout)
	once := make([]float32, len(nt.Hid.DWt.Values))
	copy(once, nt.Hid.DWt.Values)

	nt.Backward(tr, dout)
	for i := range once {
		dif := math32.Abs(nt.Hid.DWt.Values[i] - 2*once[i])
		if dif > difTol {
			t.Errorf("accum err: idx: %d, twice: %v, 2x once: %v\n", i, nt.Hid.DWt.Values[i], 2*once[i])
		}
	}
}
