// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scaling identifies a policy for deriving count matrices from
// abundances.
type Scaling string

const (
	// NoScaling leaves estimated counts untouched.
	NoScaling Scaling = "no"

	// ScaledTPM derives counts from abundances scaled to the sample
	// library size.
	ScaledTPM Scaling = "scaledTPM"

	// LengthScaledTPM derives counts from abundances scaled by the mean
	// effective length of the feature across samples and then to the
	// sample library size.
	LengthScaledTPM Scaling = "lengthScaledTPM"
)

// ParseScaling returns the Scaling named by name. Valid names are "no",
// "scaledTPM" and "lengthScaledTPM".
func ParseScaling(name string) (Scaling, error) {
	switch s := Scaling(name); s {
	case NoScaling, ScaledTPM, LengthScaledTPM:
		return s, nil
	}
	return "", fmt.Errorf("txsum: unknown counts from abundance policy %q", name)
}

// scaleCounts returns a count matrix derived from abundance under the
// given policy, which must not be NoScaling. Each column of the result
// sums to the corresponding column sum of counts, preserving the
// sample's library size. ids labels the matrix rows for error
// reporting.
//
// Under LengthScaledTPM each row of the abundance matrix is first
// multiplied by the row's mean effective length over samples with
// positive length. A row with no positive length anywhere must be
// entirely unexpressed; otherwise the derivation fails with an error
// wrapping ErrZeroLength.
func scaleCounts(abundance, length, counts *mat.Dense, ids []string, policy Scaling) (*mat.Dense, error) {
	rows, cols := abundance.Dims()
	derived := mat.NewDense(rows, cols, nil)
	derived.Copy(abundance)

	if policy == LengthScaledTPM {
		for i := 0; i < rows; i++ {
			var sum float64
			var n int
			for j := 0; j < cols; j++ {
				if l := length.At(i, j); l > 0 {
					sum += l
					n++
				}
			}
			if n == 0 {
				for j := 0; j < cols; j++ {
					if abundance.At(i, j) != 0 {
						return nil, fmt.Errorf("%w for %q", ErrZeroLength, ids[i])
					}
				}
				continue
			}
			floats.Scale(sum/float64(n), derived.RawRowView(i))
		}
	}

	for j := 0; j < cols; j++ {
		lib := floats.Sum(mat.Col(nil, j, counts))
		sum := floats.Sum(mat.Col(nil, j, derived))
		if sum == 0 {
			continue
		}
		f := lib / sum
		for i := 0; i < rows; i++ {
			derived.Set(i, j, derived.At(i, j)*f)
		}
	}
	return derived, nil
}
