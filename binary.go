// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distcorr

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mg-gebert/dist-corr/internal/grandmean"
	"github.com/mg-gebert/dist-corr/internal/order"
)

// binaryCounts tallies the four cells of the 2x2 contingency table between
// two binary (0/1) sequences of equal length.
type binaryCounts struct {
	n00, n01, n10, n11 float64
}

func countBinary(v1, v2 []float64) binaryCounts {
	var c binaryCounts
	for i := range v1 {
		switch {
		case v1[i] == 0 && v2[i] == 0:
			c.n00++
		case v1[i] == 0 && v2[i] == 1:
			c.n01++
		case v1[i] == 1 && v2[i] == 0:
			c.n10++
		default:
			c.n11++
		}
	}
	return c
}

// bothBinaryDCor computes dCor for two binary sequences directly from
// their 2x2 contingency table, in closed form: the absolute value of the
// Matthews correlation coefficient of that table.
func bothBinaryDCor(v1, v2 []float64) float64 {
	c := countBinary(v1, v2)
	num := c.n11*c.n00 - c.n10*c.n01
	denom := (c.n11 + c.n10) * (c.n11 + c.n01) * (c.n00 + c.n01) * (c.n00 + c.n10)
	if denom <= 0 {
		return 0
	}
	return math.Abs(num) / math.Sqrt(denom)
}

// bothBinaryDCovSq computes dCov² for two binary sequences:
//
//	dCov² = (2·(n11·n00 − n10·n01)/n²)²
//
// dCov itself is √ of this, consistent with the general-path convention
// that dCov = √dCov². See DESIGN.md for how the squared and unsquared
// forms of this closed form were told apart.
func bothBinaryDCovSq(v1, v2 []float64) float64 {
	n := float64(len(v1))
	c := countBinary(v1, v2)
	x := 2 * (c.n11*c.n00 - c.n10*c.n01) / (n * n)
	return x * x
}

// binaryDCovUnsquared is the unsquared dCov of two binary sequences,
// √bothBinaryDCovSq without the intermediate rounding of squaring and
// re-rooting. Passing the same vector for both arguments gives its
// (unsquared) dVar, the form used for the binary side of the one-binary
// dCor denominator.
func binaryDCovUnsquared(v1, v2 []float64) float64 {
	n := float64(len(v1))
	c := countBinary(v1, v2)
	return 2 * math.Abs(c.n11*c.n00-c.n10*c.n01) / (n * n)
}

// recodeSigned maps a binary {0,1} vector to its centered {-1,+1} form,
// v' = 2v - 1.
func recodeSigned(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 2*x - 1
	}
	return out
}

// bothBinaryDCovSigned is the contingency-table dCov formula (see
// bothBinaryDCovSq) expressed instead directly from the {-1,+1}-recoded
// sums: dCov = 0.5·|E[XY] − E[X]·E[Y]| for the signed recodings X, Y.
// It is an alternate derivation of the same quantity binaryDCovUnsquared
// computes, kept to cross-check the two forms against each other.
func bothBinaryDCovSigned(v1, v2 []float64) float64 {
	n := float64(len(v1))
	x := recodeSigned(v1)
	y := recodeSigned(v2)

	exy := floats.Dot(x, y) / n
	ex := floats.Sum(x) / n
	ey := floats.Sum(y) / n

	return 0.5 * math.Abs(exy-ex*ey)
}

// oneBinaryDCovSq computes dCov² for a binary vBin against an arbitrary
// real-valued vArb:
//
//	dCov² = −0.5·⟨v1′,m_w⟩/n + (Σv1′)·⟨v1′,m⟩/n² − 0.5·(Σv1′)²·(Σm)/n³
//
// where v1′ = 2·vBin − 1, m is the grand means of vArb sorted ascending,
// and m_w is the weighted grand means of that same sorted vArb with v1′
// (permuted alongside it) as weights.
func oneBinaryDCovSq(vBin, vArb []float64) float64 {
	n := float64(len(vBin))

	vBinPerm, vArbSorted := order.Simple(vBin, vArb)
	signed := recodeSigned(vBinPerm)

	m := grandmean.Ordered(vArbSorted)
	mw := grandmean.OrderedWeighted(vArbSorted, signed)

	sumSigned := floats.Sum(signed)
	dotSignedM := floats.Dot(signed, m)
	dotSignedMw := floats.Dot(signed, mw)
	sumM := floats.Sum(m)

	return -0.5*dotSignedMw/n + sumSigned*dotSignedM/(n*n) - 0.5*sumSigned*sumSigned*sumM/(n*n*n)
}

// oneBinaryDCor computes dCor between a binary vBin and an arbitrary
// real-valued vArb, sharing the O(n) grand-mean reductions with
// oneBinaryDCovSq but never materializing or sweeping a pairwise
// distance matrix.
func oneBinaryDCor(vBin, vArb []float64) float64 {
	dCovSq := clampNonNegative(oneBinaryDCovSq(vBin, vArb), "dCov^2 (one-binary)")
	dVarBin := binaryDCovUnsquared(vBin, vBin)
	dVarArb := dVarArbitrary(vArb)
	denom := dVarBin * dVarArb
	if denom <= 0 {
		return 0
	}
	ratio := dCovSq / denom
	if ratio <= 0 {
		return 0
	}
	return math.Sqrt(ratio)
}

// dVarArbitrary is the unsquared distance standard deviation of an
// arbitrary real-valued vector, used as the non-binary side of the
// one-binary dCor denominator.
func dVarArbitrary(v []float64) float64 {
	sorted := append([]float64(nil), v...)
	order.SortInPlace(sorted)
	a := grandmean.Ordered(sorted)
	return math.Sqrt(varSq(v, a))
}
