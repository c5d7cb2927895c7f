// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/kortschak/txsum/quant"
)

// Data is a bundle of transcript or gene expression matrices across a
// set of samples. Matrix rows correspond to the identifiers in IDs and
// columns to the sample names in Names.
type Data struct {
	// IDs labels the matrix rows with transcript or, after
	// summarization, gene identifiers.
	IDs []string

	// Names labels the matrix columns with sample names.
	Names []string

	// Abundance, Counts and Length are len(IDs)×len(Names) matrices
	// holding abundances in transcripts per million, estimated counts
	// and effective lengths.
	Abundance *mat.Dense
	Counts    *mat.Dense
	Length    *mat.Dense

	// CountsFromAbundance records the scaling policy that
	// Counts was derived under.
	CountsFromAbundance Scaling

	// Unmapped lists transcripts dropped by gene summarization
	// because the gene map holds no association for them.
	Unmapped []string

	// raw holds the estimated count matrix backing a derived Counts,
	// letting summarization of a scaled bundle re-derive from the
	// original counts.
	raw *mat.Dense

	stripVersion, stripBar bool
}

// Options control Import.
type Options struct {
	// Names names the imported samples in order. When Names is nil the
	// samples are named sample1, sample2 and so on.
	Names []string

	// GeneMap supplies transcript to gene associations for gene-level
	// summarization. It is required unless TxOut is set.
	GeneMap *GeneMap

	// TxOut retains transcript-level matrices instead of summarizing
	// to gene level.
	TxOut bool

	// CountsFromAbundance selects the policy used to derive the count
	// matrix from abundances. The zero value is NoScaling.
	CountsFromAbundance Scaling

	// IgnoreVersion strips trailing .N versions from transcript
	// identifiers in both the quantifications and the gene map.
	IgnoreVersion bool

	// IgnoreAfterBar strips text from the first '|' in transcript
	// identifiers in both the quantifications and the gene map.
	IgnoreAfterBar bool

	// Layout describes the table columns when the format is
	// quant.Custom.
	Layout *quant.Layout
}

// Import reads the named per-sample quantification files, all written
// by the tool identified by format, and returns the assembled
// expression bundle. Files are read concurrently and may be plain,
// gzip compressed or snappy compressed. Sample set disagreements,
// repeated transcripts and gene map conflicts are reported as
// MismatchError, DuplicateError and ConflictError values.
func Import(paths []string, format quant.Format, opt Options) (*Data, error) {
	if len(paths) == 0 {
		return nil, ErrNoData
	}
	scaling := opt.CountsFromAbundance
	if scaling == "" {
		scaling = NoScaling
	}
	switch scaling {
	case NoScaling, ScaledTPM, LengthScaledTPM:
	default:
		return nil, fmt.Errorf("txsum: unknown counts from abundance policy %q", scaling)
	}
	if !opt.TxOut && opt.GeneMap == nil {
		return nil, errors.New("txsum: gene summarization requires a gene map")
	}

	samples := make([][]quant.Record, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		go func() {
			defer wg.Done()
			samples[i], errs[i] = readQuant(path, format, opt.Layout)
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("txsum: %s: %w", paths[i], err)
		}
	}

	if opt.IgnoreVersion || opt.IgnoreAfterBar {
		for _, sample := range samples {
			for i, r := range sample {
				sample[i].ID = stripID(r.ID, opt.IgnoreVersion, opt.IgnoreAfterBar)
			}
		}
	}

	d, err := Assemble(samples, opt.Names)
	if err != nil {
		return nil, err
	}
	d.stripVersion = opt.IgnoreVersion
	d.stripBar = opt.IgnoreAfterBar
	d.CountsFromAbundance = scaling

	if opt.TxOut {
		if scaling != NoScaling {
			derived, err := scaleCounts(d.Abundance, d.Length, d.Counts, d.IDs, scaling)
			if err != nil {
				return nil, err
			}
			d.raw = d.Counts
			d.Counts = derived
		}
		return d, nil
	}
	return d.SummarizeToGene(opt.GeneMap)
}

// readQuant reads all transcript records from the quantification file
// at path.
func readQuant(path string, format quant.Format, lay *quant.Layout) ([]quant.Record, error) {
	f, err := quant.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var dec *quant.Decoder
	if format == quant.Custom {
		if lay == nil {
			return nil, errors.New("custom format requires a column layout")
		}
		dec, err = quant.NewCustomDecoder(f, *lay)
	} else {
		dec, err = quant.NewDecoder(f, format)
	}
	if err != nil {
		return nil, err
	}
	var recs []quant.Record
	for {
		r, err := dec.Unmarshal()
		if err != nil {
			if err == io.EOF {
				return recs, nil
			}
			return nil, err
		}
		recs = append(recs, r)
	}
}
