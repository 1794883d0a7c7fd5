// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfn

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestTanh(t *testing.T) {
	tstx := []float32{-2, -1, -0.5, 0, 0.5, 1, 2}
	cory := []float32{-0.9640276, -0.7615942, -0.46211717, 0, 0.46211717, 0.7615942, 0.9640276}

	for i := range tstx {
		y := Tanh.Eval(tstx[i])
		dif := math32.Abs(y - cory[i])
		if dif > difTol {
			t.Errorf("Tanh err: idx: %v, x: %v, y: %v, cor y: %v, dif: %v\n", i, tstx[i], y, cory[i], dif)
		}
	}
}

func TestSig(t *testing.T) {
	tstx := []float32{-2, -1, 0, 1, 2}
	cory := []float32{0.11920292, 0.26894143, 0.5, 0.7310586, 0.8807971}

	for i := range tstx {
		y := Sig.Eval(tstx[i])
		dif := math32.Abs(y - cory[i])
		if dif > difTol {
			t.Errorf("Sig err: idx: %v, x: %v, y: %v, cor y: %v, dif: %v\n", i, tstx[i], y, cory[i], dif)
		}
	}
}

func TestRelu(t *testing.T) {
	tstx := []float32{-2, -0.001, 0, 0.001, 3}
	cory := []float32{0, 0, 0, 0.001, 3}

	for i := range tstx {
		y := Relu.Eval(tstx[i])
		if y != cory[i] {
			t.Errorf("Relu err: idx: %v, x: %v, y: %v, cor y: %v\n", i, tstx[i], y, cory[i])
		}
	}
}

// TestDerivs checks the output-based derivatives against central finite
// differences on the underlying function.
func TestDerivs(t *testing.T) {
	const eps = float32(1.0e-3)
	const dtol = float32(1.0e-3)
	fns := []Funcs{Tanh, Sig, Linear}
	tstx := []float32{-1.5, -0.3, 0.2, 0.9}
	for _, fn := range fns {
		for _, x := range tstx {
			y := fn.Eval(x)
			dy := fn.Deriv(y)
			num := (fn.Eval(x+eps) - fn.Eval(x-eps)) / (2 * eps)
			dif := math32.Abs(dy - num)
			if dif > dtol {
				t.Errorf("Deriv err: fn: %v, x: %v, deriv: %v, numerical: %v, dif: %v\n", fn, x, dy, num, dif)
			}
		}
	}
}
