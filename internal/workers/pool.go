// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workers provides the fork/join primitives internal/order and
// internal/frobenius use to parallelize independent sorts and reductions
// across a bounded set of goroutines.
// There is no persistent pool: every call spins up goroutines scoped to
// that call and they are joined before it returns, matching the rest of
// this module's "no persistent state" lifecycle.
package workers

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinParallelN is the smallest problem size for which the parallel paths in
// this package are used. Below it, goroutine scheduling overhead dominates
// the O(n) or O(n log n) work being split, the same threshold reasoning
// gonum's fd.Jacobian applies via its evals-vs-nWorkers comparison.
const MinParallelN = 4096

// Concurrent reports whether a computation over n elements should use the
// parallel code path: n must be at least MinParallelN and more than one
// logical CPU must be available.
func Concurrent(n int) bool {
	return n >= MinParallelN && runtime.GOMAXPROCS(0) > 1
}

// Chunks returns the number of pieces a large parallel computation should
// be split into, based on the available logical CPUs.
func Chunks() int {
	return runtime.GOMAXPROCS(0)
}

// Fork2 runs f1 and f2 concurrently and waits for both to finish, returning
// the first error either reported (if any). It is the two-way fork/join
// used to split independent halves of a sort or reduction across two
// goroutines.
func Fork2(f1, f2 func() error) error {
	var g errgroup.Group
	g.Go(f1)
	g.Go(f2)
	return g.Wait()
}

// ForEachChunk splits [0,n) into roughly nChunks contiguous ranges and
// invokes do(lo, hi) for each range concurrently, waiting for all of them
// to complete. It is used to parallelize a per-level prefix-sum pass over
// an index permutation once the permutation itself is long enough.
func ForEachChunk(n, nChunks int, do func(lo, hi int)) {
	if nChunks < 1 {
		nChunks = 1
	}
	if nChunks > n {
		nChunks = n
	}
	if nChunks <= 1 {
		do(0, n)
		return
	}
	chunk := (n + nChunks - 1) / nChunks
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			do(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
