// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package order produces the joint permutation of two equal-length float64
// sequences that sorts the second one ascending, the way
// gonum.org/v1/gonum's floats.Argsort tracks a permutation alongside a sort
// but generalized to moving a second, co-indexed slice along for the ride.
package order

import (
	"sort"

	"github.com/mg-gebert/dist-corr/internal/workers"
)

// Result is the outcome of ordering v1 with respect to v2: v1Perm and
// v2Sorted are v1 and v2 reordered by the same permutation, chosen so that
// v2Sorted is weakly ascending. Perm is that permutation (v2Sorted[i] ==
// v2[Perm[i]]). V1Order, present only when requested, is the permutation
// that additionally sorts V1Perm ascending.
type Result struct {
	V1Perm   []float64
	V2Sorted []float64
	Perm     []int
	V1Order  []int
}

// By sorts v1 and v2 jointly by v2 ascending and optionally computes the
// permutation that would additionally sort the resulting v1Perm. Behavior on
// NaN inputs is undefined: v1 and v2 are assumed finite, and the facade's
// precondition checks do not test for NaN.
func By(v1, v2 []float64, wantV1Order bool) Result {
	n := len(v2)
	perm := identity(n)
	sortPerm(perm, func(a, b int) bool { return v2[a] < v2[b] })

	v1Perm := make([]float64, n)
	v2Sorted := make([]float64, n)
	for i, p := range perm {
		v1Perm[i] = v1[p]
		v2Sorted[i] = v2[p]
	}

	var v1Order []int
	if wantV1Order {
		v1Order = identity(n)
		sortPerm(v1Order, func(a, b int) bool { return v1Perm[a] < v1Perm[b] })
	}

	return Result{V1Perm: v1Perm, V2Sorted: v2Sorted, Perm: perm, V1Order: v1Order}
}

// Simple is By without computing V1Order, for callers (the one-binary fast
// path) that only ever need (v1Perm, v2Sorted).
func Simple(v1, v2 []float64) (v1Perm, v2Sorted []float64) {
	r := By(v1, v2, false)
	return r.V1Perm, r.V2Sorted
}

// SortInPlace sorts v ascending, using the same size-gated parallel
// strategy as By.
func SortInPlace(v []float64) {
	n := len(v)
	if !workers.Concurrent(n) {
		sort.Float64s(v)
		return
	}

	mid := n / 2
	left := append([]float64(nil), v[:mid]...)
	right := append([]float64(nil), v[mid:]...)
	_ = workers.Fork2(
		func() error { sort.Float64s(left); return nil },
		func() error { sort.Float64s(right); return nil },
	)
	mergeFloats(v, left, right)
}

func mergeFloats(dst, left, right []float64) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// sortPerm sorts idx in place by less, splitting the work across two
// goroutines for large inputs: each half is sorted independently and then
// merged, so the result is deterministic on distinct keys regardless of
// how the work was split.
func sortPerm(idx []int, less func(a, b int) bool) {
	n := len(idx)
	if !workers.Concurrent(n) {
		sort.Slice(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
		return
	}

	mid := n / 2
	left := append([]int(nil), idx[:mid]...)
	right := append([]int(nil), idx[mid:]...)
	_ = workers.Fork2(
		func() error {
			sort.Slice(left, func(i, j int) bool { return less(left[i], left[j]) })
			return nil
		},
		func() error {
			sort.Slice(right, func(i, j int) bool { return less(right[i], right[j]) })
			return nil
		},
	)
	merge(idx, left, right, less)
}

func merge(dst, left, right []int, less func(a, b int) bool) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if less(right[j], left[i]) {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
