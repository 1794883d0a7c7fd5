// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestHuberLoss(t *testing.T) {
	pred := []float32{0.5, -2.5, 0}
	targ := []float32{0, 0, 0}
	// residuals: 0.5 (quadratic), -2.5 (linear), 0
	// 0.5*0.25 + 1*(2.5-0.5) + 0 = 0.125 + 2 = 2.125; / 3
	cor := float32(2.125 / 3.0)
	l := HuberLoss(pred, targ, 1)
	if math32.Abs(l-cor) > difTol {
		t.Errorf("huber err: %v != cor %v\n", l, cor)
	}
	if HuberLoss(targ, targ, 1) != 0 {
		t.Errorf("huber of zero residual != 0\n")
	}
}

func TestHuberDeriv(t *testing.T) {
	pred := []float32{0.5, -2.5, 0}
	targ := []float32{0, 0, 0}
	dpred := make([]float32, 3)
	HuberDeriv(pred, targ, 1, dpred)
	cor := []float32{0.5 / 3, -1.0 / 3, 0}
	for i := range cor {
		if math32.Abs(dpred[i]-cor[i]) > difTol {
			t.Errorf("huber deriv err: idx: %d, %v != cor %v\n", i, dpred[i], cor[i])
		}
	}
}

func TestLogSoftMax(t *testing.T) {
	logits := []float32{1, 2, 3}
	logp := make([]float32, 3)
	LogSoftMax(logits, logp)
	var sum float32
	for _, lp := range logp {
		if lp > 0 {
			t.Errorf("log prob > 0: %v\n", lp)
		}
		sum += math32.Exp(lp)
	}
	if math32.Abs(sum-1) > 1.0e-5 {
		t.Errorf("softmax sum: %v != 1\n", sum)
	}
	// invariant to additive shifts, including large ones that would
	// overflow a naive implementation
	shifted := []float32{1001, 1002, 1003}
	logps := make([]float32, 3)
	LogSoftMax(shifted, logps)
	for i := range logp {
		if math32.Abs(logp[i]-logps[i]) > 1.0e-5 {
			t.Errorf("logsoftmax not shift invariant: idx: %d, %v != %v\n", i, logp[i], logps[i])
		}
	}
}
