// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frobenius computes the Frobenius inner product of two 1-D
// pairwise absolute-difference matrices,
//
//	F = Σ_{i≠j} |s0_i - s0_j| * |s1_i - s1_j|
//
// in O(n log n) instead of the O(n²) a direct double sum would need
// (Huo & Székely, 2016; Chaudhuri & Hu, 2019). It never materializes
// either matrix.
//
// The algorithm is an iterated bottom-up merge sort of the index
// permutation by s0, descending, carried out on top of s1's already
// ascending order. At each merge step, whenever an element from the right
// run is emitted ahead of the left run's current head, it "dominates" the
// remaining, not-yet-emitted tail of the left run in both s0 and s1
// simultaneously; that tail's count and its sums of s1, s0 and s0*s1 are
// read off a prefix-sum array computed once per level and folded into a
// per-index accumulator. The accumulators, read once at the end, give F in
// closed form.
//
// Building that prefix-sum array is itself a linear scan; for large
// inputs it is done as a parallel two-pass scan (local chunk sums, then
// an offset pass) rather than one sequential pass over the whole level.
package frobenius

import "github.com/mg-gebert/dist-corr/internal/workers"

// accum holds, for one index, the count and sums of s1, s0, and s0*s1 over
// every other index it dominates: indices that sit earlier in s1's
// ascending order and have a strictly smaller s0, i.e. the not-yet-emitted
// tail of the left run at the moment this index was emitted from the right
// run.
type accum struct {
	num                   int
	sumS1, sumS0, sumProd float64
}

// prefix is a running (Σs1, Σs0, Σs1*s0) triple over a merge permutation,
// used to read off, in O(1), the sums over any contiguous run of that
// permutation as a difference of two prefix entries.
type prefix struct {
	sumS1, sumS0, sumProd float64
}

// addPrefix returns the elementwise sum of two prefix triples.
func addPrefix(a, b prefix) prefix {
	return prefix{a.sumS1 + b.sumS1, a.sumS0 + b.sumS0, a.sumProd + b.sumProd}
}

// Compute returns F for samples0 (v1 permuted alongside samples1) and
// samples1 (v2 sorted ascending). samples1 must be non-decreasing on
// entry; Compute panics if it is not, since that signals an internal
// invariant violation (the caller failed to order the inputs via
// internal/order first) rather than a problem with user data.
func Compute(samples0, samples1 []float64) float64 {
	n := len(samples0)
	if n != len(samples1) {
		panic("frobenius: samples0 and samples1 have different lengths")
	}
	if !nonDecreasing(samples1) {
		panic("frobenius: samples1 is not sorted ascending")
	}
	if n <= 1 {
		return 0
	}

	accums := make([]accum, n)
	mid := (n + 1) / 2

	before := identity(n)
	beforeLeft := append([]int(nil), before[:mid]...)
	beforeRight := append([]int(nil), before[mid:]...)
	afterLeft := make([]int, mid)
	afterRight := make([]int, n-mid)
	accumsLeft := make([]accum, n)
	accumsRight := make([]accum, n)

	runLeft := func() error {
		mergeSort(samples0, samples1, beforeLeft, afterLeft, mid, 1, accumsLeft)
		return nil
	}
	runRight := func() error {
		mergeSort(samples0, samples1, beforeRight, afterRight, n-mid, 1, accumsRight)
		return nil
	}
	if workers.Concurrent(n) {
		_ = workers.Fork2(runLeft, runRight)
	} else {
		_ = runLeft()
		_ = runRight()
	}

	copy(before[:mid], beforeLeft)
	copy(before[mid:], beforeRight)
	copy(accums[:mid], accumsLeft[:mid])
	copy(accums[mid:], accumsRight[mid:])

	// One final sequential merge over the whole array combines the two
	// halves, contributing the cross-half pairs the split loops above
	// could not see.
	mergeSort(samples0, samples1, before, make([]int, n), n, mid, accums)

	var sumS0, sumS1, sumProd float64
	for i := 0; i < n; i++ {
		sumS0 += samples0[i]
		sumS1 += samples1[i]
		sumProd += samples0[i] * samples1[i]
	}
	covTerm := float64(n)*sumProd - sumS0*sumS1

	var sum float64
	for i, a := range accums {
		sum += 4 * (float64(a.num)*samples0[i]*samples1[i] + a.sumProd - a.sumS1*samples0[i] - a.sumS0*samples1[i])
	}
	return sum - 2*covTerm
}

// mergeSort runs the bottom-up merge levels ℓ = startLevel, 2·startLevel,
// … < n over before/after (each of length n), folding dominance
// contributions into accums as described in the package doc. before is
// left holding the final, fully s0-descending-sorted permutation; accums
// accumulates into whatever it already held, so repeated calls over
// overlapping ranges (the two halves, then the final full pass) compose
// correctly.
func mergeSort(s0, s1 []float64, before, after []int, n, startLevel int, accums []accum) {
	if n == 0 {
		return
	}
	csums := make([]prefix, n+1)
	for level := startLevel; level < n; level *= 2 {
		fillPrefixSums(s0, s1, before, n, csums)

		for j := 0; j < n; j += 2 * level {
			hi := j + 2*level
			if hi > n {
				hi = n
			}
			run := before[j:hi]
			dst := after[j:hi]

			e1 := j + level
			if e1 > n {
				e1 = n
			}
			e1Rel := e1 - j
			e2Rel := hi - j

			st1, st2, k := 0, level, 0
			for e1Rel > st1 && e2Rel > st2 {
				idx1, idx2 := run[st1], run[st2]
				if s0[idx1] >= s0[idx2] {
					dst[k] = idx1
					st1++
				} else {
					dst[k] = idx2
					st2++

					a := &accums[idx2]
					a.num += e1Rel - st1
					a.sumS1 += csums[e1].sumS1 - csums[j+st1].sumS1
					a.sumS0 += csums[e1].sumS0 - csums[j+st1].sumS0
					a.sumProd += csums[e1].sumProd - csums[j+st1].sumProd
				}
				k++
			}
			if e1Rel > st1 {
				copy(dst[k:], run[st1:e1Rel])
			} else if e2Rel > st2 {
				copy(dst[k:], run[st2:e2Rel])
			}
		}

		copy(before, after)
	}
}

// fillPrefixSums fills csums[1:n+1] with the running (Σs1, Σs0, Σs1*s0)
// triple over before[0:n], csums[0] being the implicit zero base. For
// large n it is computed as a two-pass parallel scan instead of a single
// sequential pass: each chunk first accumulates its own local, chunk-
// relative running sums (fillPrefixSumsLocal), the small sequence of
// per-chunk totals is then turned into per-chunk base offsets
// sequentially, and a second parallel pass adds each chunk's base offset
// to the entries it already wrote.
func fillPrefixSums(s0, s1 []float64, before []int, n int, csums []prefix) {
	if !workers.Concurrent(n) {
		fillPrefixSumsLocal(s0, s1, before, 0, n, csums)
		return
	}

	nChunks := workers.Chunks()
	if nChunks > n {
		nChunks = n
	}
	chunk := (n + nChunks - 1) / nChunks
	totals := make([]prefix, nChunks)

	workers.ForEachChunk(n, nChunks, func(lo, hi int) {
		totals[lo/chunk] = fillPrefixSumsLocal(s0, s1, before, lo, hi, csums)
	})

	offsets := make([]prefix, nChunks)
	for i := 1; i < nChunks; i++ {
		offsets[i] = addPrefix(offsets[i-1], totals[i-1])
	}

	workers.ForEachChunk(n, nChunks, func(lo, hi int) {
		off := offsets[lo/chunk]
		if off == (prefix{}) {
			return
		}
		for i := lo + 1; i <= hi; i++ {
			csums[i] = addPrefix(csums[i], off)
		}
	})
}

// fillPrefixSumsLocal accumulates csums[lo+1:hi+1] as the running sum over
// before[lo:hi], relative to zero at index lo, and returns that chunk's
// total.
func fillPrefixSumsLocal(s0, s1 []float64, before []int, lo, hi int, csums []prefix) prefix {
	var cur prefix
	for i := lo; i < hi; i++ {
		idx := before[i]
		cur.sumS1 += s1[idx]
		cur.sumS0 += s0[idx]
		cur.sumProd += s1[idx] * s0[idx]
		csums[i+1] = cur
	}
	return cur
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func nonDecreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}
