// SPDX-License-Identifier: MIT

package simulation

import "errors"

var (
	// ErrUnknownPolicy indicates a policy value or name outside the closed set.
	ErrUnknownPolicy = errors.New("simulation: unknown policy")

	// ErrNilRNG is returned when a random policy is asked to draw without a stream.
	ErrNilRNG = errors.New("simulation: nil random stream")

	// ErrInvalidStreams is returned for a non-positive matrix size.
	ErrInvalidStreams = errors.New("simulation: streams must be >= 1")

	// ErrInvalidDepth is returned for a non-positive depth.
	ErrInvalidDepth = errors.New("simulation: depth must be >= 1")

	// ErrNegativeIterations is returned for a negative Sinkhorn iteration count.
	ErrNegativeIterations = errors.New("simulation: sinkhorn iterations must be >= 0")
)
