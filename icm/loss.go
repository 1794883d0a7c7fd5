// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package icm

import (
	"github.com/chewxy/math32"
	"github.com/goki/mat32"
)

// HuberLoss returns the Huber (smooth-L1) loss between pred and targ,
// averaged over elements: quadratic for residuals within delta, linear
// beyond, so outlier transitions have bounded influence compared to a
// plain squared error.  pred and targ must be the same length.
func HuberLoss(pred, targ []float32, delta float32) float32 {
	var sum float32
	for i := range pred {
		r := pred[i] - targ[i]
		ar := math32.Abs(r)
		if ar <= delta {
			sum += 0.5 * r * r
		} else {
			sum += delta * (ar - 0.5*delta)
		}
	}
	return sum / float32(len(pred))
}

// HuberDeriv computes the derivative of HuberLoss with respect to pred
// into dpred: clamp(pred-targ, -delta, delta) / n.  The target is treated
// as a constant -- no derivative with respect to targ is produced.
func HuberDeriv(pred, targ []float32, delta float32, dpred []float32) {
	n := float32(len(pred))
	for i := range pred {
		r := pred[i] - targ[i]
		dpred[i] = mat32.Clamp(r, -delta, delta) / n
	}
}

// LogSoftMax computes numerically-stable log-softmax of logits into logp,
// subtracting the max logit before exponentiating.
func LogSoftMax(logits, logp []float32) {
	mx := logits[0]
	for _, l := range logits[1:] {
		mx = mat32.Max(mx, l)
	}
	var sum float32
	for i, l := range logits {
		logp[i] = l - mx
		sum += math32.Exp(logp[i])
	}
	lse := math32.Log(sum)
	for i := range logp {
		logp[i] -= lse
	}
}

// NLLLoss returns the negative log-likelihood of the true action under the
// given log-probabilities: the standard cross-entropy loss for a discrete
// target.
func NLLLoss(logp []float32, act int) float32 {
	return -logp[act]
}
