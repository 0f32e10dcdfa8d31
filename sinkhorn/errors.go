// SPDX-License-Identifier: MIT

package sinkhorn

import "errors"

var (
	// ErrNegativeIterations is returned when a negative iteration count is requested.
	ErrNegativeIterations = errors.New("sinkhorn: iterations must be >= 0")

	// ErrBadEpsilon is returned when the normalization floor is not a finite positive number.
	ErrBadEpsilon = errors.New("sinkhorn: epsilon must be finite and > 0")

	// ErrBadTolerance is returned when a stochasticity tolerance is negative or not finite.
	ErrBadTolerance = errors.New("sinkhorn: tolerance must be finite and >= 0")
)
