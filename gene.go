// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// stripID returns id with optional trailing annotation removed. When
// bar is true text from the first '|' is dropped, and when version is
// true a trailing .N version is dropped.
func stripID(id string, version, bar bool) string {
	if bar {
		if i := strings.IndexByte(id, '|'); i >= 0 {
			id = id[:i]
		}
	}
	if version {
		if i := strings.IndexByte(id, '.'); i >= 0 {
			id = id[:i]
		}
	}
	return id
}

// SummarizeToGene aggregates the transcript-level bundle d to gene
// level using the associations in m. Gene rows are ordered by first
// appearance of the gene in m and sample columns are unchanged.
//
// A gene's counts and abundances are the sums over its transcripts. Its
// effective length is the abundance-weighted mean of its transcripts'
// effective lengths, falling back to the unweighted mean in samples
// where the gene is entirely unexpressed. If d carries a counts-from-
// abundance policy, the policy is re-applied to the gene-level
// matrices from the original estimated counts. Transcripts absent from
// m are recorded in the returned bundle's Unmapped field and excluded
// from all matrices.
func (d *Data) SummarizeToGene(m *GeneMap) (*Data, error) {
	if m == nil || m.Len() == 0 {
		return nil, ErrNoData
	}
	lookup, err := d.lookupIn(m)
	if err != nil {
		return nil, err
	}

	rows := make(map[string][]int)
	var unmapped []string
	for i, id := range d.IDs {
		g, ok := lookup[id]
		if !ok {
			unmapped = append(unmapped, id)
			continue
		}
		rows[g] = append(rows[g], i)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	genes := make([]string, 0, len(rows))
	for _, g := range m.order {
		if _, ok := rows[g]; ok {
			genes = append(genes, g)
		}
	}

	counts := d.Counts
	if d.raw != nil {
		counts = d.raw
	}
	_, cols := counts.Dims()
	out := &Data{
		IDs:                 genes,
		Names:               append(d.Names[:0:0], d.Names...),
		Abundance:           mat.NewDense(len(genes), cols, nil),
		Counts:              mat.NewDense(len(genes), cols, nil),
		Length:              mat.NewDense(len(genes), cols, nil),
		CountsFromAbundance: NoScaling,
		Unmapped:            unmapped,
	}
	var lens []float64
	for i, g := range genes {
		tx := rows[g]
		for j := 0; j < cols; j++ {
			var ab, ct, wl float64
			for _, r := range tx {
				a := d.Abundance.At(r, j)
				ab += a
				ct += counts.At(r, j)
				wl += d.Length.At(r, j) * a
			}
			out.Abundance.Set(i, j, ab)
			out.Counts.Set(i, j, ct)
			if ab != 0 {
				out.Length.Set(i, j, wl/ab)
				continue
			}
			lens = lens[:0]
			for _, r := range tx {
				lens = append(lens, d.Length.At(r, j))
			}
			out.Length.Set(i, j, stat.Mean(lens, nil))
		}
	}

	if d.CountsFromAbundance != NoScaling {
		derived, err := scaleCounts(out.Abundance, out.Length, out.Counts, out.IDs, d.CountsFromAbundance)
		if err != nil {
			return nil, err
		}
		out.raw = out.Counts
		out.Counts = derived
		out.CountsFromAbundance = d.CountsFromAbundance
	}
	return out, nil
}

// lookupIn returns the transcript to gene lookup table for d in m,
// applying d's identifier stripping to the transcript names of m.
// Associations that collide after stripping must agree on the gene.
func (d *Data) lookupIn(m *GeneMap) (map[string]string, error) {
	if !d.stripVersion && !d.stripBar {
		return m.gene, nil
	}
	lookup := make(map[string]string, len(m.gene))
	for _, t := range m.tx {
		g := m.gene[t]
		t = stripID(t, d.stripVersion, d.stripBar)
		if prev, ok := lookup[t]; ok {
			if prev != g {
				return nil, &ConflictError{ID: t, Genes: [2]string{prev, g}}
			}
			continue
		}
		lookup[t] = g
	}
	return lookup, nil
}
