// SPDX-License-Identifier: MIT

// Package metrics computes stability metrics of square mixing matrices.
//
// What & Why:
//   - ForwardGain is the worst-case signal amplification in the forward pass
//     (max |row sum|), BackwardGain the worst-case gradient amplification
//     (max |column sum|).
//   - SpectralNorm estimates the largest singular value by power iteration.
//   - The eigenvalue metrics and DistanceFromUniform describe how products of
//     doubly stochastic matrices collapse toward the averaging matrix 1/n.
//
// For a doubly stochastic matrix both gains equal 1 and the spectral norm is
// at most 1; for unconstrained matrices all of them grow without bound under
// composition.
//
// Every function is pure: inputs are never mutated and no state is cached.
// ComputeAll bundles all metrics into a fixed Record.
package metrics
