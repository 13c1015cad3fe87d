// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package order

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func isNonDecreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}

func TestByOrdersV2Ascending(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 10; trial++ {
		n := 1 + trial*3
		v1 := make([]float64, n)
		v2 := make([]float64, n)
		for i := range v1 {
			v1[i] = rng.Float64() * 100
			v2[i] = rng.Float64() * 100
		}

		r := By(v1, v2, true)
		if !isNonDecreasing(r.V2Sorted) {
			t.Fatalf("trial %d: V2Sorted not ascending: %v", trial, r.V2Sorted)
		}
		for i, p := range r.Perm {
			if r.V1Perm[i] != v1[p] || r.V2Sorted[i] != v2[p] {
				t.Fatalf("trial %d: Perm inconsistent with V1Perm/V2Sorted at %d", trial, i)
			}
		}

		v1PermSortedByOrder := make([]float64, n)
		for i, p := range r.V1Order {
			v1PermSortedByOrder[i] = r.V1Perm[p]
		}
		if !isNonDecreasing(v1PermSortedByOrder) {
			t.Fatalf("trial %d: V1Order does not sort V1Perm ascending", trial)
		}
	}
}

func TestSimpleMatchesBy(t *testing.T) {
	v1 := []float64{5, 3, 1, 4, 2}
	v2 := []float64{2, 4, 1, 3, 5}

	v1Perm, v2Sorted := Simple(v1, v2)
	r := By(v1, v2, false)

	for i := range v1Perm {
		if v1Perm[i] != r.V1Perm[i] || v2Sorted[i] != r.V2Sorted[i] {
			t.Fatalf("Simple and By disagree at index %d", i)
		}
	}
}

func TestSortInPlace(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 13))
	v := make([]float64, 500)
	for i := range v {
		v[i] = rng.Float64()*200 - 100
	}
	want := append([]float64(nil), v...)
	sort.Float64s(want)

	SortInPlace(v)
	for i := range v {
		if v[i] != want[i] {
			t.Fatalf("SortInPlace mismatch at %d: got %v, want %v", i, v[i], want[i])
		}
	}
}
