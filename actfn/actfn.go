// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package actfn provides the hidden-layer activation functions used by the
icm networks, together with their derivatives as needed for
backpropagation.

Derivatives are computed from the activation output value, not the input,
which is cheaper for the standard sigmoidal functions (e.g., for tanh,
d/dx = 1 - y^2) and means the backward pass only needs the forward
activations, not the pre-activation net input.
*/
package actfn

import (
	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// Funcs are the available activation functions.  The zero value is Tanh,
// which is the default hidden nonlinearity for the icm networks.
type Funcs int

//go:generate stringer -type=Funcs

var KiT_Funcs = kit.Enums.AddEnum(FuncsN, kit.NotBitFlag, nil)

func (ev Funcs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Funcs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The activation functions
const (
	// Tanh is the hyperbolic tangent, range (-1, 1)
	Tanh Funcs = iota

	// Relu is the rectified linear unit: max(0, x)
	Relu

	// Sig is the logistic sigmoid, range (0, 1)
	Sig

	// Linear is the identity -- used for unconstrained linear outputs
	Linear

	FuncsN
)

// Eval returns the activation function value for given net input.
func (af Funcs) Eval(x float32) float32 {
	switch af {
	case Tanh:
		return math32.Tanh(x)
	case Relu:
		if x < 0 {
			return 0
		}
		return x
	case Sig:
		return 1 / (1 + math32.Exp(-x))
	default:
		return x
	}
}

// Deriv returns the derivative of the activation function as a function
// of its output value y = Eval(x).
func (af Funcs) Deriv(y float32) float32 {
	switch af {
	case Tanh:
		return 1 - y*y
	case Relu:
		if y > 0 {
			return 1
		}
		return 0
	case Sig:
		return y * (1 - y)
	default:
		return 1
	}
}
