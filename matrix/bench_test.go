// Package matrix_test provides benchmarks for the kernels on the simulation
// hot path, using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/mhc/matrix"
)

// benchSizes are the stream counts the stability lab works with.
var benchSizes = []int{2, 4, 8, 16}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkC []complex128
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := RandomDense(b, n, n, 1337)
			B := RandomDense(b, n, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkEigenvalues(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := RandomDense(b, n, n, 11)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v, err := matrix.Eigenvalues(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkC = v
			}
		})
	}
}
