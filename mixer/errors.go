// SPDX-License-Identifier: MIT

package mixer

import "errors"

var (
	// ErrInvalidShape is returned when dim or streams are not positive.
	ErrInvalidShape = errors.New("mixer: dim and streams must be >= 1")

	// ErrNilLayer is returned when a Block lacks its layer or its residual.
	ErrNilLayer = errors.New("mixer: block has nil layer or residual")

	// ErrNilRNG is returned when parameters must be drawn without a random stream.
	ErrNilRNG = errors.New("mixer: nil random stream")
)
