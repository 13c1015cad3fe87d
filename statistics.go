// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distcorr

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// varSq computes dVar²(v) given v (in any consistent order) and its grand
// means a:
//
//	dVar²(v) = (2n·Σv² − 2·(Σv)²)/n² − (2/n)·Σa² + (Σa)²/n²
//
// Negative results from catastrophic cancellation on near-constant inputs
// are clamped to 0 and logged rather than returned, since a true dVar² is
// never negative.
func varSq(v, a []float64) float64 {
	n := len(v)
	nf := float64(n)

	sum := floats.Sum(v)
	sumSq := floats.Dot(v, v)
	sumA := floats.Sum(a)
	sumASq := floats.Dot(a, a)

	nSq := nf * nf
	dVarSq := (2*nf*sumSq-2*sum*sum)/nSq - 2*sumASq/nf + sumA*sumA/nSq
	return clampNonNegative(dVarSq, "dVar^2")
}

// covSq computes dCov²(v1,v2) given the Frobenius inner product f of their
// distance matrices and their respective grand means a1, a2:
//
//	dCov²(v1,v2) = F/n² − (2/n)·Σ(a1_i·a2_i) + (Σa1)(Σa2)/n²
func covSq(f float64, a1, a2 []float64) float64 {
	n := len(a1)
	nf := float64(n)
	nSq := nf * nf

	dot := floats.Dot(a1, a2)
	sum1 := floats.Sum(a1)
	sum2 := floats.Sum(a2)

	dCovSq := f/nSq - 2*dot/nf + sum1*sum2/nSq
	return clampNonNegative(dCovSq, "dCov^2")
}

// corrFromSquares assembles dCor from dCov², dVar²(v1), and dVar²(v2),
// using the standard definition dCor² = dCov²/√(dVar1²·dVar2²): when the
// denominator is not strictly positive (e.g. one of the inputs is
// constant), dCor is defined to be 0.
func corrFromSquares(dCovSq, dVar1Sq, dVar2Sq float64) float64 {
	denom := math.Sqrt(dVar1Sq * dVar2Sq)
	if denom <= 0 {
		return 0
	}
	dCorSq := dCovSq / denom
	if dCorSq <= 0 {
		return 0
	}
	return math.Sqrt(dCorSq)
}

func clampNonNegative(x float64, what string) float64 {
	if x < 0 {
		slog.Debug("distcorr: clamped negative intermediate to 0", "quantity", what, "value", x)
		return 0
	}
	return x
}

func clampUnit(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
