// SPDX-License-Identifier: MIT

// Package simulation propagates random mixing matrices through a deep stack
// of residual layers and records per-layer and composite stability metrics.
//
// Three policies generate the per-layer matrix H(l):
//
//	Baseline             identity (plain residual connection)
//	Unconstrained        n×n standard normal draw
//	ManifoldConstrained  the same draw projected by sinkhorn.Project
//
// The composite after layer L is H(L) × H(L-1) × … × H(0), newest layer on
// the left. Unconstrained composites explode exponentially with depth, while
// doubly stochastic composites stay bounded because the set is closed under
// multiplication.
//
// Determinism:
//   - All randomness flows through an explicit *rand.Rand built by NewRNG.
//     Identical parameters and seed produce bit-identical results.
//   - Compare seeds every policy run independently from the same seed, so
//     sequential and parallel comparisons agree exactly.
//
// Concurrency:
//   - Simulate is synchronous. Compare may fan out with WithParallel; each
//     goroutine owns its random stream and matrices.
package simulation
