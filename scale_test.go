// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestScaledTPM(t *testing.T) {
	abundance := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 1,
		2, 4,
	})
	length := mat.NewDense(3, 2, []float64{
		100, 110,
		200, 190,
		150, 160,
	})
	counts := mat.NewDense(3, 2, []float64{
		10, 12,
		20, 8,
		15, 30,
	})
	ids := []string{"T1", "T2", "T3"}

	derived, err := scaleCounts(abundance, length, counts, ids, ScaledTPM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j := 0; j < 2; j++ {
		lib := floats.Sum(mat.Col(nil, j, counts))
		got := floats.Sum(mat.Col(nil, j, derived))
		if math.Abs(got-lib) > 1e-12 {
			t.Errorf("unexpected library size for sample %d: got:%v want:%v", j, got, lib)
		}
		// Derived counts are proportional to abundance within a sample.
		want := derived.At(0, j) / abundance.At(0, j)
		for i := 1; i < 3; i++ {
			ratio := derived.At(i, j) / abundance.At(i, j)
			if math.Abs(ratio-want) > 1e-12 {
				t.Errorf("unexpected abundance ratio at %d,%d: got:%v want:%v", i, j, ratio, want)
			}
		}
	}
}

func TestLengthScaledTPM(t *testing.T) {
	abundance := mat.NewDense(2, 1, []float64{1, 3})
	length := mat.NewDense(2, 1, []float64{100, 200})
	counts := mat.NewDense(2, 1, []float64{10, 20})
	ids := []string{"T1", "T2"}

	derived, err := scaleCounts(abundance, length, counts, ids, LengthScaledTPM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Length scaled values 100 and 600 share the library of 30.
	want := []float64{30.0 / 7.0, 180.0 / 7.0}
	for i, w := range want {
		if got := derived.At(i, 0); math.Abs(got-w) > 1e-12 {
			t.Errorf("unexpected derived count for %s: got:%v want:%v", ids[i], got, w)
		}
	}
}

func TestLengthScaledTPMMeanLength(t *testing.T) {
	// The second sample has no valid length for T1, so the row factor
	// is the mean over positive lengths only.
	abundance := mat.NewDense(2, 2, []float64{
		1, 1,
		1, 1,
	})
	length := mat.NewDense(2, 2, []float64{
		100, 0,
		200, 200,
	})
	counts := mat.NewDense(2, 2, []float64{
		10, 10,
		20, 20,
	})
	ids := []string{"T1", "T2"}

	derived, err := scaleCounts(abundance, length, counts, ids, LengthScaledTPM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Row factors 100 and 200 against a library of 30 per sample.
	for j := 0; j < 2; j++ {
		if got, want := derived.At(0, j), 10.0; math.Abs(got-want) > 1e-12 {
			t.Errorf("unexpected derived count for T1 in sample %d: got:%v want:%v", j, got, want)
		}
		if got, want := derived.At(1, j), 20.0; math.Abs(got-want) > 1e-12 {
			t.Errorf("unexpected derived count for T2 in sample %d: got:%v want:%v", j, got, want)
		}
	}
}

func TestLengthScaledTPMZeroLength(t *testing.T) {
	abundance := mat.NewDense(2, 1, []float64{1, 3})
	length := mat.NewDense(2, 1, []float64{0, 200})
	counts := mat.NewDense(2, 1, []float64{10, 20})

	_, err := scaleCounts(abundance, length, counts, []string{"T1", "T2"}, LengthScaledTPM)
	if !errors.Is(err, ErrZeroLength) {
		t.Errorf("unexpected error: %v", err)
	}

	// A row with no length anywhere is tolerated while unexpressed.
	abundance.Set(0, 0, 0)
	derived, err := scaleCounts(abundance, length, counts, []string{"T1", "T2"}, LengthScaledTPM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := derived.At(0, 0); got != 0 {
		t.Errorf("unexpected derived count for unexpressed T1: got:%v want:0", got)
	}
	if got, want := derived.At(1, 0), 30.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("unexpected derived count for T2: got:%v want:%v", got, want)
	}
}

func TestScaleZeroColumn(t *testing.T) {
	abundance := mat.NewDense(2, 2, []float64{
		1, 0,
		3, 0,
	})
	length := mat.NewDense(2, 2, []float64{
		100, 100,
		200, 200,
	})
	counts := mat.NewDense(2, 2, []float64{
		10, 0,
		20, 0,
	})

	derived, err := scaleCounts(abundance, length, counts, []string{"T1", "T2"}, ScaledTPM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		got := derived.At(i, 1)
		if got != 0 || math.IsNaN(got) {
			t.Errorf("unexpected derived count in zero sample: got:%v want:0", got)
		}
	}
}

func TestParseScaling(t *testing.T) {
	for _, want := range []Scaling{NoScaling, ScaledTPM, LengthScaledTPM} {
		got, err := ParseScaling(string(want))
		if err != nil {
			t.Errorf("unexpected error parsing %q: %v", want, err)
		}
		if got != want {
			t.Errorf("unexpected policy: got:%q want:%q", got, want)
		}
	}
	_, err := ParseScaling("dtuScaledTPM")
	if err == nil {
		t.Error("expected error for unknown policy")
	}
}
