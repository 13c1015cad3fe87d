// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grandmean computes the row sums of a 1-D pairwise absolute
// difference matrix, M[i][j] = |v_i - v_j|, in O(n) instead of the O(n²) a
// naive row-by-row sum would need. It leverages the telescoping identity
// that holds once v is sorted ascending:
//
//	a_i = ((2i-n+1)*v_i - S_{<i} + S_{>i}) / n
//
// where S_{<i} and S_{>i} are the prefix and suffix sums of the sorted
// values around index i. A single ascending sweep, paired with a
// descending sweep over the same loop, fills in both a[i] and the mirrored
// a[n-1-i] each iteration.
package grandmean

// Ordered returns the grand means of vSorted, which must already be sorted
// ascending, indexed in that same sorted order.
func Ordered(vSorted []float64) []float64 {
	out := make([]float64, len(vSorted))
	accumulate(vSorted, nil, out)
	return out
}

// Unordered returns the grand means of v in v's own original index space.
// perm must be the permutation that sorts v ascending (perm[i] is the
// original index of the i-th smallest element); Order.By's Perm or
// V1Order field supplies it.
func Unordered(v []float64, perm []int) []float64 {
	out := make([]float64, len(v))
	accumulate(v, perm, out)
	return out
}

// accumulate implements the shared telescoping sweep. When perm is nil, v is
// assumed already sorted and out is indexed in that order; when perm is
// given, v is in its original order and out[perm[i]] receives the
// contribution for sorted rank i, so out ends up in v's original index
// space.
func accumulate(v []float64, perm []int, out []float64) {
	n := len(v)
	at := func(i int) int {
		if perm == nil {
			return i
		}
		return perm[i]
	}

	var ascSum, descSum float64
	for i := 0; i < n; i++ {
		lo, hi := at(i), at(n-1-i)
		out[lo] += (float64(2*i-n+1))*v[lo] - ascSum
		out[hi] += descSum
		descSum += v[hi]
		ascSum += v[lo]
	}
	for i := range out {
		out[i] /= float64(n)
	}
}

// OrderedWeighted computes m = M·w/n for vSorted (ascending) and a weight
// vector w indexed in the same order, in O(n) via the analogous
// telescoping identity
//
//	m_i = (v_i*(2*W_{<i} - W_total + w_i) - S_{w,<i} + S_{w,>i}) / n
//
// where W_{<i} and S_{w,<i} are the prefix sums of w and v*w.
func OrderedWeighted(vSorted, w []float64) []float64 {
	n := len(vSorted)
	m := make([]float64, n)

	var wTotal, swTotal float64
	for i := range vSorted {
		wTotal += w[i]
		swTotal += vSorted[i] * w[i]
	}

	var wPrefix, swPrefix float64
	for i := 0; i < n; i++ {
		vw := vSorted[i] * w[i]
		swSuffix := swTotal - swPrefix - vw
		m[i] = (vSorted[i]*(2*wPrefix-wTotal+w[i]) - swPrefix + swSuffix) / float64(n)
		wPrefix += w[i]
		swPrefix += vw
	}
	return m
}
