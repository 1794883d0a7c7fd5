// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package icm is the overall repository for the intrinsic curiosity module
(ICM), implemented in the Go language (golang) using the emergent framework
infrastructure.

The ICM produces a scalar curiosity reward for a reinforcement-learning
agent from the prediction error of a learned forward-dynamics model,
operating in a compressed feature space that is itself learned end-to-end
through a self-supervised inverse-dynamics (action prediction) task.

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* icm: the core module: FeatureEncoder, ForwardModel, InverseModel, and the
ICM orchestrator that computes the embedding-prediction and action-prediction
losses for each environment transition, and accumulates their gradients.

* actfn: hidden-layer activation functions (tanh, relu, sigmoid, linear)
with derivatives, used by icm backpropagation.

* sgd: the external stochastic-gradient-descent optimizer with momentum,
which applies accumulated gradients between transitions.

* examples: compile into runnable programs -- examples/gridnav trains a
grid-world navigation agent with curiosity-augmented Q-learning, and is a
good starting point for hooking the ICM into your own training loop.
*/
package icm
