// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package naive implements distance covariance by direct double-centering
// of the full O(n²) pairwise distance matrices, with no telescoping
// reductions and no Frobenius shortcut. It exists only as a test oracle:
// the root package's tests check its general, one-binary and both-binary
// dCov² (and dCov) results against what this package computes on the same
// input.
package naive

// DCovSq returns the O(n²) reference value of dCov²(v1,v2): build both
// pairwise absolute-difference matrices, double-center each by subtracting
// row means, column means, and adding back the grand mean, then average
// the entrywise product of the centered matrices.
func DCovSq(v1, v2 []float64) float64 {
	n := len(v1)
	a := distMatrix(v1)
	b := distMatrix(v2)
	centerMatrix(a)
	centerMatrix(b)

	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += a[i][j] * b[i][j]
		}
	}
	return sum / float64(n*n)
}

// VarSq returns the O(n²) reference value of dVar²(v), i.e. DCovSq(v, v).
func VarSq(v []float64) float64 {
	return DCovSq(v, v)
}

func distMatrix(v []float64) [][]float64 {
	n := len(v)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			d := v[i] - v[j]
			if d < 0 {
				d = -d
			}
			m[i][j] = d
		}
	}
	return m
}

func centerMatrix(m [][]float64) {
	n := len(m)
	rowMean := make([]float64, n)
	colMean := make([]float64, n)
	var grand float64

	for i := 0; i < n; i++ {
		var rs float64
		for j := 0; j < n; j++ {
			rs += m[i][j]
			colMean[j] += m[i][j]
		}
		rowMean[i] = rs / float64(n)
		grand += rs
	}
	grand /= float64(n * n)
	for j := range colMean {
		colMean[j] /= float64(n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m[i][j] = m[i][j] - rowMean[i] - colMean[j] + grand
		}
	}
}
