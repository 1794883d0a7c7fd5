// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package icm implements the intrinsic curiosity module (ICM) of Pathak et
al. (2017): a curiosity reward for reinforcement-learning agents in
continuous-observation, discrete-action environments, computed as the
prediction error of a learned forward-dynamics model in a compressed
feature space that is trained end-to-end through a self-supervised
inverse-dynamics task.

The ICM owns three two-layer networks sharing one encoder:

	obs -> Encoder -> embedding
	(pre embedding, one-hot action) -> ForwardModel -> predicted post embedding
	(pre embedding, post embedding) -> InverseModel -> action logits

Compute evaluates one transition and returns the embedding-prediction
(Huber) loss and the action-prediction (cross-entropy) loss.  DWt then
accumulates the gradients of actLoss + Beta * embedLoss into all three
networks, with the post-state embedding treated as a constant target for
the embedding loss (detached), so the encoder cannot minimize forward
error by collapsing the embedding.  The external optimizer (sgd package)
applies accumulated gradients between transitions -- Compute and DWt never
change any weights themselves.
*/
package icm

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/emer/icm/actfn"
)

// Params are the ICM construction parameters.  Use Defaults then override.
type Params struct {

	// dimension of raw observation vectors
	ObsDim int

	// dimension of the embedding space -- must be <= ObsDim
	EmbedDim int

	// number of discrete actions
	ActionDim int

	// number of hidden units in each of the three networks
	HidDim int

	// scaling factor from embedding loss to curiosity reward
	RewardScale float32 `def:"0.5"`

	// weight of the embedding loss in the combined gradient:
	// total = actLoss + Beta * embedLoss
	Beta float32 `def:"0.2"`

	// residual threshold where the Huber embedding loss switches from
	// quadratic to linear
	HuberDelta float32 `def:"1"`

	// hidden-layer activation function for all three networks
	HidAct actfn.Funcs `def:"Tanh"`
}

func (pr *Params) Defaults() {
	pr.RewardScale = 0.5
	pr.Beta = 0.2
	pr.HuberDelta = 1
	pr.HidAct = actfn.Tanh
}

// ICM is the intrinsic curiosity module orchestrator.  It owns one
// instance of each of the three networks -- the single Encoder is shared
// by the forward and inverse paths (essential: the representation must
// serve both prediction tasks at once).
type ICM struct {
	Params

	// shared observation encoder
	Encoder *FeatureEncoder

	// latent-space dynamics model
	Fwd *ForwardModel

	// action prediction model
	Inv *InverseModel

	// activation traces from the last Compute, consumed by DWt
	lt *lastTraces
}

// lastTraces caches one Compute call's forward-pass state for DWt.
type lastTraces struct {
	act     int
	preTr   *Trace
	postTr  *Trace
	fwdTr   *Trace
	invTr   *Trace
	probs   []float32 // softmax of inverse logits
	dpred   []float32 // Huber derivative wrt forward prediction (unscaled)
}

// New returns a new ICM for the given parameters, with initialized
// weights.  Fails fast with ErrConfig at construction for inconsistent
// dimensions -- never at first Compute.
func New(pr *Params) (*ICM, error) {
	ic := &ICM{Params: *pr}
	var err error
	if ic.Encoder, err = NewFeatureEncoder(pr.ObsDim, pr.HidDim, pr.EmbedDim, pr.HidAct); err != nil {
		return nil, err
	}
	if ic.Fwd, err = NewForwardModel(pr.EmbedDim, pr.HidDim, pr.ActionDim, pr.HidAct); err != nil {
		return nil, err
	}
	if ic.Inv, err = NewInverseModel(pr.EmbedDim, pr.HidDim, pr.ActionDim, pr.HidAct); err != nil {
		return nil, err
	}
	return ic, nil
}

// InitWts reinitializes all weights and clears gradient and trace state.
func (ic *ICM) InitWts() {
	ic.Encoder.InitWts()
	ic.Fwd.InitWts()
	ic.Inv.InitWts()
	ic.lt = nil
}

// InitDWt zeros the accumulated gradients in all three networks.
func (ic *ICM) InitDWt() {
	ic.Encoder.InitDWt()
	ic.Fwd.InitDWt()
	ic.Inv.InitDWt()
}

// Layers returns all six affine layers, for the optimizer and weight I/O.
func (ic *ICM) Layers() []*Affine {
	ls := make([]*Affine, 0, 6)
	ls = append(ls, ic.Encoder.Layers()...)
	ls = append(ls, ic.Fwd.Layers()...)
	ls = append(ls, ic.Inv.Layers()...)
	return ls
}

// oneHot returns a fresh one-hot action vector -- constructed per call,
// never cached or mutated across calls.
func (ic *ICM) oneHot(act int) []float32 {
	oh := make([]float32, ic.ActionDim)
	oh[act] = 1
	return oh
}

// Compute evaluates one transition (pre state, action, post state) and
// returns the embedding-prediction loss and the action-prediction loss.
// It performs no parameter updates -- combining the losses and triggering
// the optimizer is the caller's responsibility.  The caller is also
// responsible for the transition's coherence (post must be the result of
// act in pre) -- no validation of that coupling is possible here.
// Deterministic: identical inputs with unchanged weights produce
// identical losses.
func (ic *ICM) Compute(act int, pre, post []float32) (embedLoss, actLoss float32, err error) {
	if act < 0 || act >= ic.ActionDim {
		return 0, 0, fmt.Errorf("%w: action %d not in [0, %d)", ErrActionIndex, act, ic.ActionDim)
	}
	if len(pre) != ic.ObsDim || len(post) != ic.ObsDim {
		return 0, 0, fmt.Errorf("%w: state lens %d, %d != obs dim %d", ErrShape, len(pre), len(post), ic.ObsDim)
	}

	preTr := ic.Encoder.Forward(pre)
	postTr := ic.Encoder.Forward(post)
	oh := ic.oneHot(act)

	fwdIn := make([]float32, 0, ic.EmbedDim+ic.ActionDim)
	fwdIn = append(fwdIn, preTr.Out...)
	fwdIn = append(fwdIn, oh...)
	fwdTr := ic.Fwd.Forward(fwdIn)

	invIn := make([]float32, 0, 2*ic.EmbedDim)
	invIn = append(invIn, preTr.Out...)
	invIn = append(invIn, postTr.Out...)
	invTr := ic.Inv.Forward(invIn)

	logp := make([]float32, ic.ActionDim)
	LogSoftMax(invTr.Out, logp)
	actLoss = NLLLoss(logp, act)

	embedLoss = HuberLoss(fwdTr.Out, postTr.Out, ic.HuberDelta)

	lt := &lastTraces{act: act, preTr: preTr, postTr: postTr, fwdTr: fwdTr, invTr: invTr}
	lt.probs = make([]float32, ic.ActionDim)
	for i, lp := range logp {
		lt.probs[i] = math32.Exp(lp)
	}
	lt.dpred = make([]float32, ic.EmbedDim)
	HuberDeriv(fwdTr.Out, postTr.Out, ic.HuberDelta, lt.dpred)
	ic.lt = lt

	return embedLoss, actLoss, nil
}

// DWt accumulates the gradients of actLoss + Beta * embedLoss from the
// last Compute into the DWt / DBias buffers of all three networks.  The
// post-state embedding is a detached target for the embedding loss: its
// gradient flows into the encoder only through the inverse model, never
// through the forward-loss target path.  Each Compute permits exactly one
// DWt -- calling DWt without a fresh preceding Compute is an error, to
// prevent double-counting gradients.
func (ic *ICM) DWt() error {
	if ic.lt == nil {
		return fmt.Errorf("icm: DWt requires a preceding Compute")
	}
	lt := ic.lt
	ic.lt = nil

	dPre := make([]float32, ic.EmbedDim)
	dPost := make([]float32, ic.EmbedDim)
	ic.dwtInverse(lt, dPre, dPost)
	ic.dwtForward(lt, dPre)

	ic.Encoder.Backward(lt.preTr, dPre)
	ic.Encoder.Backward(lt.postTr, dPost)
	return nil
}

// dwtInverse backpropagates the cross-entropy action loss through the
// inverse model, adding the resulting embedding gradients into dPre and
// dPost.  For log-softmax + NLL the logit gradient is probs - onehot.
func (ic *ICM) dwtInverse(lt *lastTraces, dPre, dPost []float32) {
	dlogits := make([]float32, ic.ActionDim)
	copy(dlogits, lt.probs)
	dlogits[lt.act] -= 1

	din := ic.Inv.Backward(lt.invTr, dlogits)
	for i := 0; i < ic.EmbedDim; i++ {
		dPre[i] += din[i]
		dPost[i] += din[ic.EmbedDim+i]
	}
}

// dwtForward backpropagates Beta times the Huber embedding loss through
// the forward model, adding the pre-embedding gradient into dPre.  The
// one-hot portion of the input gradient is discarded, and nothing is
// added for the post path: the target embedding is detached.
func (ic *ICM) dwtForward(lt *lastTraces, dPre []float32) {
	dout := make([]float32, ic.EmbedDim)
	for i, d := range lt.dpred {
		dout[i] = ic.Beta * d
	}
	din := ic.Fwd.Backward(lt.fwdTr, dout)
	for i := 0; i < ic.EmbedDim; i++ {
		dPre[i] += din[i]
	}
}

// Reward returns the curiosity reward for a given embedding loss, scaled
// by the configured RewardScale.  The caller adds this to the extrinsic
// environment reward.
func (ic *ICM) Reward(embedLoss float32) float32 {
	return ic.RewardScale * embedLoss
}

// CollectDWts appends the accumulated gradients of all layers into the
// given buffer, reusing its capacity -- for sharing gradients across
// replicas (e.g., mpi allreduce) before the optimizer step.
func (ic *ICM) CollectDWts(dwts *[]float32) {
	*dwts = (*dwts)[:0]
	for _, al := range ic.Layers() {
		*dwts = append(*dwts, al.DWt.Values...)
		*dwts = append(*dwts, al.DBias.Values...)
	}
}

// SetDWts sets the accumulated gradients of all layers from the given
// buffer (as produced by CollectDWts, e.g. after summing across navg
// replicas), dividing by navg.
func (ic *ICM) SetDWts(dwts []float32, navg int) {
	nf := float32(navg)
	idx := 0
	for _, al := range ic.Layers() {
		for i := range al.DWt.Values {
			al.DWt.Values[i] = dwts[idx] / nf
			idx++
		}
		for i := range al.DBias.Values {
			al.DBias.Values[i] = dwts[idx] / nf
			idx++
		}
	}
}
