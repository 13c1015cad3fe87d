// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package distcorr computes distance covariance, distance variance, and
// distance correlation (Székely, Rizzo & Bakirov, 2007) between two
// equal-length sequences of float64 values.
//
// Unlike Pearson correlation, distance correlation is zero if and only if
// the two sequences are independent. A naive evaluation is O(n²) because it
// must materialize the n×n pairwise-distance matrix for each input; this
// package instead uses the O(n log n) algorithm of Huo & Székely (2016) and
// Chaudhuri & Hu (2019), which never materializes that matrix, plus
// closed-form O(n) and O(1) paths when one or both sequences are binary
// (restricted to the values 0 and 1).
package distcorr // import "github.com/mg-gebert/dist-corr"
