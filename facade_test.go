// Copyright ©2024 The dist-corr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distcorr

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/mg-gebert/dist-corr/internal/naive"
)

const facadeTol = 1e-6

func TestComputeLengthMismatch(t *testing.T) {
	_, err := (DistCorrelation{}).Compute([]float64{1, 2}, []float64{1, 2, 3})
	if err == nil {
		t.Fatal("Compute with mismatched lengths returned nil error")
	}
	var distErr *Error
	if !asError(err, &distErr) || distErr.Kind != LengthMismatch {
		t.Fatalf("Compute with mismatched lengths returned %v, want *Error{Kind: LengthMismatch}", err)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	_, err := (DistCovariance{}).Compute(nil, nil)
	var distErr *Error
	if !asError(err, &distErr) || distErr.Kind != EmptyInput {
		t.Fatalf("Compute with empty input returned %v, want *Error{Kind: EmptyInput}", err)
	}
}

func TestComputeBinaryRejectsNonBinaryValues(t *testing.T) {
	_, err := (DistCorrelation{}).ComputeBinary([]float64{0, 1, 2}, []float64{0, 1, 1}, true, false)
	var distErr *Error
	if !asError(err, &distErr) || distErr.Kind != NonBinaryInput {
		t.Fatalf("ComputeBinary with a 2 in a binary column returned %v, want *Error{Kind: NonBinaryInput}", err)
	}
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}

func TestComputeSymmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(55, 66))
	v1 := make([]float64, 30)
	v2 := make([]float64, 30)
	for i := range v1 {
		v1[i] = rng.Float64()*10 - 5
		v2[i] = rng.Float64()*10 - 5
	}

	ab, err := (DistCorrelation{}).Compute(v1, v2)
	if err != nil {
		t.Fatalf("Compute(v1,v2) error: %v", err)
	}
	ba, err := (DistCorrelation{}).Compute(v2, v1)
	if err != nil {
		t.Fatalf("Compute(v2,v1) error: %v", err)
	}
	if !scalar.EqualWithinAbsOrRel(ab, ba, facadeTol, facadeTol) {
		t.Errorf("Compute not symmetric: %v vs %v", ab, ba)
	}
}

func TestComputeRangeOnIndependentSamples(t *testing.T) {
	rng := rand.New(rand.NewPCG(77, 88))
	for trial := 0; trial < 10; trial++ {
		n := 10 + trial
		v1 := make([]float64, n)
		v2 := make([]float64, n)
		for i := range v1 {
			v1[i] = rng.Float64()*10 - 5
			v2[i] = rng.Float64()*10 - 5
		}

		dCor, err := (DistCorrelation{}).Compute(v1, v2)
		if err != nil {
			t.Fatalf("trial %d: Compute error: %v", trial, err)
		}
		if dCor < 0 || dCor > 1 {
			t.Errorf("trial %d: dCor = %v, out of [0,1]", trial, dCor)
		}
	}
}

func TestComputeAgainstNaiveViaSqrt(t *testing.T) {
	rng := rand.New(rand.NewPCG(111, 222))
	for trial := 0; trial < 10; trial++ {
		n := 5 + trial*3
		v1 := make([]float64, n)
		v2 := make([]float64, n)
		for i := range v1 {
			v1[i] = rng.Float64()*20 - 10
			v2[i] = rng.Float64()*20 - 10
		}

		got, err := (DistCovariance{}).Compute(v1, v2)
		if err != nil {
			t.Fatalf("trial %d: Compute error: %v", trial, err)
		}
		want := math.Sqrt(naive.DCovSq(v1, v2))
		if !scalar.EqualWithinAbsOrRel(got, want, facadeTol, facadeTol) {
			t.Errorf("trial %d: dCov = %v, want %v (naive)", trial, got, want)
		}
	}
}

func TestComputeVarMatchesComputeSelf(t *testing.T) {
	v := []float64{2, -1, 7, 3, -4, 0, 9, 5}

	dVar, err := (DistCovariance{}).ComputeVar(v)
	if err != nil {
		t.Fatalf("ComputeVar error: %v", err)
	}
	dCovSelf, err := (DistCovariance{}).Compute(v, v)
	if err != nil {
		t.Fatalf("Compute(v,v) error: %v", err)
	}
	if !scalar.EqualWithinAbsOrRel(dVar, dCovSelf, facadeTol, facadeTol) {
		t.Errorf("ComputeVar(v) = %v, Compute(v,v) = %v, want equal", dVar, dCovSelf)
	}
}

func TestComputeBinaryBothBinaryDispatch(t *testing.T) {
	v1 := []float64{1, 0, 1, 1, 0, 0, 1, 0}
	v2 := []float64{1, 1, 0, 1, 0, 1, 1, 0}

	dCor, err := (DistCorrelation{}).ComputeBinary(v1, v2, true, true)
	if err != nil {
		t.Fatalf("ComputeBinary(both binary) error: %v", err)
	}
	want := bothBinaryDCor(v1, v2)
	if dCor != want {
		t.Errorf("ComputeBinary(both binary) = %v, want %v (direct)", dCor, want)
	}
}

func TestComputeBinaryGeneralFallback(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 99))
	v1 := make([]float64, 12)
	v2 := make([]float64, 12)
	for i := range v1 {
		v1[i] = rng.Float64()*10 - 5
		v2[i] = rng.Float64()*10 - 5
	}

	got, err := (DistCorrelation{}).ComputeBinary(v1, v2, false, false)
	if err != nil {
		t.Fatalf("ComputeBinary(false,false) error: %v", err)
	}
	want, err := (DistCorrelation{}).Compute(v1, v2)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if got != want {
		t.Errorf("ComputeBinary(false,false) = %v, Compute = %v, want equal", got, want)
	}
}

func TestComputeBinaryErrorIdentifiesOffendingColumn(t *testing.T) {
	_, err := (DistCovariance{}).ComputeBinary([]float64{0, 1, 1}, []float64{0, 0.5, 1}, false, true)
	var distErr *Error
	if !asError(err, &distErr) {
		t.Fatalf("ComputeBinary returned %v, want *Error", err)
	}
	want := &Error{Kind: NonBinaryInput, Msg: "v2[1]=0.5 is not 0.0 or 1.0"}
	if diff := cmp.Diff(want, distErr); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{LengthMismatch, "length-mismatch"},
		{EmptyInput, "empty-input"},
		{NonBinaryInput, "non-binary-input"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}
