// SPDX-License-Identifier: MIT

// Package mixer is a forward-only residual connection that mixes several
// parallel streams of hidden state through a doubly stochastic matrix.
//
// A hidden state x has shape Streams×Dim. One Residual step computes
//
//	H   = sinkhorn.Project(HRes, Iterations)
//	out = x + (AlphaRes·(H×x) + BiasRes) + (AlphaPost·HPost ⊗ layerOut + BiasPost)
//
// where layerOut is the output of the wrapped layer applied to Aggregate(x).
// Because H is (approximately) doubly stochastic, stacking many blocks keeps
// the mixed signal bounded, which is what the simulation package measures on
// random matrices.
//
// Parameters are plain exported fields; there is no training here.
package mixer
