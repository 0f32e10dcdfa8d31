// Package sinkhorn projects real square matrices onto (approximately) doubly
// stochastic form with the Sinkhorn-Knopp algorithm.
//
// A doubly stochastic matrix has non-negative entries and every row and
// column summing to 1; the set of such matrices is the Birkhoff polytope,
// which is closed under multiplication. That closure is what bounds the
// composite gain of deep products of projected mixing matrices.
//
// Algorithm:
//
//	P = exp(M - max(M))                       // positive, overflow-safe
//	repeat k times:
//	    P[i,:] /= max(Σ_j P[i,j], eps)        // rows
//	    P[:,j] /= max(Σ_i P[i,j], eps)        // columns
//
// With k = 0 the exponentiated matrix is returned without any normalization.
// Outputs are only approximately doubly stochastic for finite k; use
// IsDoublyStochastic and ProjectionError to quantify the residual.
//
//	P, err := sinkhorn.Project(M, 20, sinkhorn.DefaultEpsilon)
//	ok, _ := sinkhorn.IsDoublyStochastic(P, sinkhorn.DefaultTolerance)
package sinkhorn
