// SPDX-License-Identifier: MIT

// Package simulation - random stream utilities.
//
// Every random draw of a run flows through a *rand.Rand created here. There
// is no fallback to an ambient or time-seeded source.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each simulation owns its stream;
//     use DeriveRNG to split independent streams for workers.
package simulation

import "math/rand"

// NewRNG returns a deterministic stream seeded with seed verbatim.
// Complexity: O(1).
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed with
// a SplitMix64 finalizer, so neighbouring stream ids give unrelated seeds.
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRNG returns an independent stream for (seed, stream).
// Unlike NewRNG it never shares a sequence with the parent seed.
func DeriveRNG(seed int64, stream uint64) *rand.Rand {
	return NewRNG(DeriveSeed(seed, stream))
}
