// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kortschak/txsum/quant"
)

// Assemble collates per-sample transcript quantifications into a Data
// bundle. The row set and order of the matrices follow the first
// sample, and every sample must quantify exactly the same transcript
// set; a disagreeing sample is a MismatchError and a transcript
// repeated within a sample is a DuplicateError. names provides sample
// names for the columns in order; if names is nil the samples are named
// sample1, sample2 and so on.
func Assemble(samples [][]quant.Record, names []string) (*Data, error) {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, ErrNoData
	}
	if names == nil {
		names = make([]string, len(samples))
		for i := range names {
			names[i] = fmt.Sprintf("sample%d", i+1)
		}
	}
	if len(names) != len(samples) {
		return nil, fmt.Errorf("txsum: %d names for %d samples", len(names), len(samples))
	}

	first := samples[0]
	ids := make([]string, len(first))
	idx := make(map[string]int, len(first))
	for i, r := range first {
		if _, ok := idx[r.ID]; ok {
			return nil, &DuplicateError{Sample: names[0], ID: r.ID}
		}
		idx[r.ID] = i
		ids[i] = r.ID
	}

	d := &Data{
		IDs:                 ids,
		Names:               append(names[:0:0], names...),
		Abundance:           mat.NewDense(len(ids), len(samples), nil),
		Counts:              mat.NewDense(len(ids), len(samples), nil),
		Length:              mat.NewDense(len(ids), len(samples), nil),
		CountsFromAbundance: NoScaling,
	}
	for j, sample := range samples {
		seen := make(map[string]bool, len(sample))
		var extra []string
		for _, r := range sample {
			if seen[r.ID] {
				return nil, &DuplicateError{Sample: names[j], ID: r.ID}
			}
			seen[r.ID] = true
			i, ok := idx[r.ID]
			if !ok {
				extra = append(extra, r.ID)
				continue
			}
			d.Abundance.Set(i, j, r.Abundance)
			d.Counts.Set(i, j, r.Counts)
			d.Length.Set(i, j, r.Length)
		}
		if len(extra) != 0 || len(sample) != len(ids) {
			var missing []string
			for _, id := range ids {
				if !seen[id] {
					missing = append(missing, id)
				}
			}
			return nil, &MismatchError{Sample: names[j], Missing: missing, Extra: extra}
		}
	}
	return d, nil
}
