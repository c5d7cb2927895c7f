// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/txsum"
)

// Summary is the JSON document describing an import run.
type Summary struct {
	// Type is the quantification tool that produced the input.
	Type string

	// Level is "transcript" or "gene".
	Level string

	// Samples is the sample names labelling matrix columns.
	Samples []string

	// Features is the number of matrix rows.
	Features int

	// Unmapped is the number of transcripts excluded by gene
	// summarization for want of a gene association.
	Unmapped int

	// CountsFromAbundance is the scaling policy the count
	// matrix was derived under.
	CountsFromAbundance string

	// LibrarySize is the column sums of the count matrix.
	LibrarySize []float64

	// QC is the singular value summary of the log scaled count
	// matrix. It is present when qc analysis was requested.
	QC *QC `json:",omitempty"`
}

// QC describes the singular value spectrum of the log1p transformed
// count matrix.
type QC struct {
	// Rows and Cols are the dimensions of the analysed matrix.
	Rows, Cols int

	// OptimalRank and FractionalRank are the calculated ranks
	// of the matrix. OptimalRank is calculated according to the
	// method of Matan Gavish and David L. Donoho
	// https://arxiv.org/abs/1305.5870. FractionalRank is the
	// rank calculated using the user-provided fraction parameter.
	OptimalRank, FractionalRank int

	// Threshold is the applied optimal singular value threshold.
	Threshold float64

	// Sigma is the complete set of singular values.
	Sigma []float64
}

// countsQC performs an SVD of the log1p transformed count matrix,
// obtaining an optimal truncation rank for the spectrum, and plots the
// singular values and per-sample count profiles to dir.
func countsQC(data *txsum.Data, cut, frac float64, dir string) (*QC, error) {
	rows, cols := data.Counts.Dims()
	m := mat.NewDense(rows, cols, nil)
	m.Apply(func(_, _ int, v float64) float64 { return math.Log1p(v) }, data.Counts)

	var svd mat.SVD
	ok := svd.Factorize(m, mat.SVDNone)
	if !ok {
		return nil, errors.New("could not factorise count matrix")
	}
	sigma := svd.Values(nil)

	sum := make([]float64, len(sigma))
	floats.CumSum(sum, sigma)
	var rFrac int
	var f float64
	max := sum[len(sum)-1]
	if max != 0 {
		floats.Scale(1/max, sum)
		rFrac = idxAbove(frac, sum)
		switch {
		case rFrac < len(sigma):
			f = sigma[rFrac]
		case len(sigma) != 0:
			f = sigma[0]
		}
	}

	sigmaCut := sigma[:idxBelow(cut, sigma)]
	t := tau(rows, cols, sigmaCut)
	rOpt := idxBelow(t, sigmaCut)

	err := plotSigma(filepath.Join(dir, "singular_values.png"), sigmaCut, t, f)
	if err != nil {
		return nil, err
	}
	err = plotCounts(filepath.Join(dir, "counts.png"), data)
	if err != nil {
		return nil, err
	}

	return &QC{Rows: rows, Cols: cols, OptimalRank: rOpt, FractionalRank: rFrac, Threshold: t, Sigma: sigma}, nil
}

func idxAbove(thresh float64, s []float64) int {
	for i, v := range s {
		if v > thresh {
			return i
		}
	}
	return len(s)
}

func idxBelow(thresh float64, s []float64) int {
	for i, v := range s {
		if v < thresh {
			return i
		}
	}
	return len(s)
}

// tau returns the optimal hard threshold for the given singular
// values, https://arxiv.org/abs/1305.5870 Eq. 4.
func tau(rows, cols int, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append(values[:0:0], values...)
	sort.Float64s(sorted)
	return omega(rows, cols) * stat.Quantile(0.5, 1, sorted, nil)
}

// https://arxiv.org/abs/1305.5870 Eq. 5.
func omega(rows, cols int) float64 {
	beta := float64(rows) / float64(cols)
	if beta > 1 {
		beta = 1 / beta
	}
	beta2 := beta * beta
	return 0.56*beta2*beta - 0.95*beta2 + 1.82*beta + 1.43
}
