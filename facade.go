// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distcorr

import (
	"math"

	"github.com/mg-gebert/dist-corr/internal/frobenius"
	"github.com/mg-gebert/dist-corr/internal/grandmean"
	"github.com/mg-gebert/dist-corr/internal/order"
)

// DistCorrelation is an empty handle anchoring the distance-correlation
// operations as methods, the way gonum's stat package occasionally groups
// related functions under a zero-size type for discoverability. It carries
// no state: every call is a pure function of its arguments.
type DistCorrelation struct{}

// DistCovariance is the distance-covariance/-variance counterpart of
// DistCorrelation.
type DistCovariance struct{}

// Compute returns the distance correlation between v1 and v2, treating
// both as general real-valued sequences. The result is clamped to [0,1].
func (DistCorrelation) Compute(v1, v2 []float64) (float64, error) {
	if err := checkCompute(v1, v2); err != nil {
		return 0, err
	}
	_, dCor := generalStats(v1, v2)
	return clampUnit(dCor), nil
}

// ComputeBinary returns the distance correlation between v1 and v2,
// dispatching to the closed-form binary or semi-binary fast paths when
// v1Binary and/or v2Binary are set. If v1Binary or v2Binary is true,
// every element of the corresponding vector must be exactly 0.0 or 1.0.
func (DistCorrelation) ComputeBinary(v1, v2 []float64, v1Binary, v2Binary bool) (float64, error) {
	if err := checkComputeBinary(v1, v2, v1Binary, v2Binary); err != nil {
		return 0, err
	}
	if !v1Binary && v2Binary {
		return (DistCorrelation{}).ComputeBinary(v2, v1, true, false)
	}

	var dCor float64
	switch {
	case v1Binary && v2Binary:
		dCor = bothBinaryDCor(v1, v2)
	case v1Binary:
		dCor = oneBinaryDCor(v1, v2)
	default:
		_, dCor = generalStats(v1, v2)
	}
	return clampUnit(dCor), nil
}

// Compute returns the distance covariance between v1 and v2, treating both
// as general real-valued sequences.
func (DistCovariance) Compute(v1, v2 []float64) (float64, error) {
	if err := checkCompute(v1, v2); err != nil {
		return 0, err
	}
	dCovSq, _ := generalStats(v1, v2)
	return math.Sqrt(dCovSq), nil
}

// ComputeBinary returns the distance covariance between v1 and v2,
// dispatching the same way ComputeBinary on DistCorrelation does.
func (DistCovariance) ComputeBinary(v1, v2 []float64, v1Binary, v2Binary bool) (float64, error) {
	if err := checkComputeBinary(v1, v2, v1Binary, v2Binary); err != nil {
		return 0, err
	}
	if !v1Binary && v2Binary {
		return (DistCovariance{}).ComputeBinary(v2, v1, true, false)
	}

	var dCovSq float64
	switch {
	case v1Binary && v2Binary:
		dCovSq = bothBinaryDCovSq(v1, v2)
	case v1Binary:
		dCovSq = clampNonNegative(oneBinaryDCovSq(v1, v2), "dCov^2 (one-binary)")
	default:
		dCovSq, _ = generalStats(v1, v2)
	}
	return math.Sqrt(dCovSq), nil
}

// ComputeVar returns the distance variance of v: a convenience equivalent
// to DistCovariance.Compute(v, v) computed via the sorted-v route
// directly, without ever building the Frobenius inner product a general
// two-vector call would need.
func (DistCovariance) ComputeVar(v []float64) (float64, error) {
	if len(v) == 0 {
		return 0, errEmptyInput()
	}
	return dVarArbitrary(v), nil
}

// generalStats runs the full general-path pipeline — order by v2,
// compute both sides' grand means, compute the Frobenius inner product,
// then combine — and returns both dCov² and dCor for v1, v2.
func generalStats(v1, v2 []float64) (dCovSq, dCor float64) {
	r := order.By(v1, v2, true)

	a1 := grandmean.Unordered(r.V1Perm, r.V1Order)
	a2 := grandmean.Ordered(r.V2Sorted)

	f := frobenius.Compute(r.V1Perm, r.V2Sorted)

	dCovSq = covSq(f, a1, a2)
	dVar1Sq := varSq(r.V1Perm, a1)
	dVar2Sq := varSq(r.V2Sorted, a2)
	dCor = corrFromSquares(dCovSq, dVar1Sq, dVar2Sq)
	return dCovSq, dCor
}

func checkCompute(v1, v2 []float64) error {
	if len(v1) != len(v2) {
		return errLengthMismatch(len(v1), len(v2))
	}
	if len(v1) == 0 {
		return errEmptyInput()
	}
	return nil
}

func checkComputeBinary(v1, v2 []float64, v1Binary, v2Binary bool) error {
	if err := checkCompute(v1, v2); err != nil {
		return err
	}
	if v1Binary {
		if err := checkBinaryDomain("v1", v1); err != nil {
			return err
		}
	}
	if v2Binary {
		if err := checkBinaryDomain("v2", v2); err != nil {
			return err
		}
	}
	return nil
}

func checkBinaryDomain(which string, v []float64) error {
	for i, x := range v {
		if x != 0 && x != 1 {
			return errNonBinaryInput(which, i, x)
		}
	}
	return nil
}
