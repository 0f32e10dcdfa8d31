// SPDX-License-Identifier: MIT

package metrics

import "errors"

// ErrNegativeIterations is returned when the power iteration count is negative.
var ErrNegativeIterations = errors.New("metrics: power iterations must be >= 0")
