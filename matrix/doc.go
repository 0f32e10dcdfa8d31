// Package matrix offers the small dense linear-algebra layer used by the
// stability lab: a row-major Dense type, central validators, and the pure
// kernels the projection, metrics and simulation packages are built from.
//
// The package provides:
//
//   - Dense storage with bounds-checked At/Set and a finite-only numeric
//     policy on Set.
//   - Deterministic kernels (Mul, Sub, Scale, Transpose, MatVec, reductions,
//     element-wise maps) with a flat-slice fast path for *Dense operands.
//   - Eigenvalues for general (non-symmetric) real square matrices, and
//     SymmetricEigenvalues (cyclic Jacobi) for Gram matrices.
//
// Every kernel allocates its result; operands are never mutated. Matrices are
// expected to be small (n ≤ 16), so no blocking or pooling is attempted.
package matrix
