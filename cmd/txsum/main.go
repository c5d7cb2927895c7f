// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// txsum collates per-sample transcript quantifications made by kallisto,
// salmon, sailfish or RSEM into expression matrices and writes them as
// tsv tables with samples in columns. Transcript abundances, estimated
// counts and effective lengths are either kept at transcript level or
// summarized to gene level using a transcript to gene table. Count
// matrices may be re-derived from abundances under the scaledTPM or
// lengthScaledTPM policies for use with count-based differential
// expression tools. Transcripts without a gene association are logged
// to stderr and excluded from gene level matrices.
//
// The transcript to gene table is a two column tab or comma separated
// file of transcript and gene identifier pairs; lines beginning with
// '#' are ignored. The txlinks command can produce this table from
// Ensembl RDF data.
//
// All input files may be plain, gzip compressed (.gz) or framed snappy
// compressed (.sz). The output matrices are written uncompressed to the
// output directory, optionally accompanied by NumPy .npy renderings of
// the same matrices. A summary document describing the import is
// written to the specified summary file in JSON format, including the
// singular value spectrum of the log scaled count matrix when qc is
// requested.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kortschak/txsum"
	"github.com/kortschak/txsum/quant"
)

func main() {
	var (
		confPath  = flag.String("config", "", "specify a JSON run configuration (set flags take precedence)")
		typ       = flag.String("type", "", "specify the quantification tool: kallisto, salmon, sailfish, rsem or custom (required)")
		names     = flag.String("names", "", "specify comma separated sample names (default sample1,sample2,...)")
		mapPath   = flag.String("map", "", "specify the transcript to gene table (.tsv/.csv[.gz/.sz])")
		txOut     = flag.Bool("tx", false, "keep transcript level matrices; do not summarize to gene level")
		scale     = flag.String("scale", "no", "specify the counts from abundance policy: no, scaledTPM or lengthScaledTPM")
		noVersion = flag.Bool("ignore-version", false, "strip .N version suffixes from transcript identifiers")
		noBar     = flag.Bool("ignore-after-bar", false, "strip text after | from transcript identifiers")
		outDir    = flag.String("o", ".", "specify the output directory")
		summary   = flag.String("summary", "", "write a JSON import summary to this file")
		npy       = flag.Bool("npy", false, "write matrices in NumPy .npy format as well as tsv")
		qc        = flag.Bool("qc", false, "perform an SVD of the count matrix and write singular value plots")
		cut       = flag.Float64("cut", 1, "minimum valid singular value")
		frac      = flag.Float64("frac", 0.75, "include singular values up to this cumulative fraction")
		idCol     = flag.String("id-col", "", "specify the identifier column of a custom table")
		abCol     = flag.String("abundance-col", "", "specify the abundance column of a custom table")
		countCol  = flag.String("counts-col", "", "specify the counts column of a custom table")
		lenCol    = flag.String("length-col", "", "specify the effective length column of a custom table")
		help      = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s collates per-sample transcript quantifications made by kallisto,
salmon, sailfish or RSEM into expression matrices and writes them as
tsv tables with samples in columns. Transcript abundances, estimated
counts and effective lengths are either kept at transcript level or
summarized to gene level using a transcript to gene table. Count
matrices may be re-derived from abundances under the scaledTPM or
lengthScaledTPM policies for use with count-based differential
expression tools. Transcripts without a gene association are logged
to stderr and excluded from gene level matrices.

The transcript to gene table is a two column tab or comma separated
file of transcript and gene identifier pairs; lines beginning with
'#' are ignored. The txlinks command can produce this table from
Ensembl RDF data.

All input files may be plain, gzip compressed (.gz) or framed snappy
compressed (.sz). The output matrices are written uncompressed to the
output directory, optionally accompanied by NumPy .npy renderings of
the same matrices. A summary document describing the import is
written to the specified summary file in JSON format, including the
singular value spectrum of the log scaled count matrix when qc is
requested.

Copyright ©2021 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	var cfg Config
	if *confPath != "" {
		c, err := readConfig(*confPath)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		cfg = *c
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["type"] {
		cfg.Type = *typ
	}
	if set["names"] {
		cfg.Names = strings.Split(*names, ",")
	}
	if set["map"] {
		cfg.Map = *mapPath
	}
	if set["tx"] {
		cfg.TxOut = *txOut
	}
	if set["scale"] {
		cfg.Scale = *scale
	}
	if set["ignore-version"] {
		cfg.IgnoreVersion = *noVersion
	}
	if set["ignore-after-bar"] {
		cfg.IgnoreAfterBar = *noBar
	}
	if set["o"] {
		cfg.OutDir = *outDir
	}
	if set["summary"] {
		cfg.Summary = *summary
	}
	if set["npy"] {
		cfg.Npy = *npy
	}
	if set["qc"] {
		cfg.QC = *qc
	}
	if set["cut"] {
		cfg.Cut = *cut
	}
	if set["frac"] {
		cfg.Frac = *frac
	}
	if set["id-col"] {
		cfg.Layout.ID = *idCol
	}
	if set["abundance-col"] {
		cfg.Layout.Abundance = *abCol
	}
	if set["counts-col"] {
		cfg.Layout.Counts = *countCol
	}
	if set["length-col"] {
		cfg.Layout.Length = *lenCol
	}
	if files := flag.Args(); len(files) != 0 {
		cfg.Files = files
	}
	if cfg.Scale == "" {
		cfg.Scale = "no"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Cut == 0 {
		cfg.Cut = 1
	}
	if cfg.Frac == 0 {
		cfg.Frac = 0.75
	}

	if cfg.Type == "" || len(cfg.Files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)

	format, err := quant.ParseFormat(cfg.Type)
	if err != nil {
		log.Fatalf("failed to parse quantification type: %v", err)
	}
	scaling, err := txsum.ParseScaling(cfg.Scale)
	if err != nil {
		log.Fatalf("failed to parse scaling policy: %v", err)
	}
	opt := txsum.Options{
		Names:               cfg.Names,
		TxOut:               cfg.TxOut,
		CountsFromAbundance: scaling,
		IgnoreVersion:       cfg.IgnoreVersion,
		IgnoreAfterBar:      cfg.IgnoreAfterBar,
	}
	if format == quant.Custom {
		opt.Layout = &quant.Layout{
			ID:        cfg.Layout.ID,
			Abundance: cfg.Layout.Abundance,
			Counts:    cfg.Layout.Counts,
			Length:    cfg.Layout.Length,
		}
	}

	if cfg.Map != "" {
		log.Println("[loading transcript to gene table]")
		f, err := quant.Open(cfg.Map)
		if err != nil {
			log.Fatalf("failed to open transcript to gene table: %v", err)
		}
		opt.GeneMap, err = txsum.ReadGeneMap(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read transcript to gene table: %v", err)
		}
	}

	log.Println("[importing quantifications]")
	data, err := txsum.Import(cfg.Files, format, opt)
	if err != nil {
		log.Fatalf("failed to import quantifications: %v", err)
	}
	for _, id := range data.Unmapped {
		log.Printf("no gene association for %s", id)
	}

	err = os.MkdirAll(cfg.OutDir, 0o755)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("[writing matrices]")
	for _, m := range []struct {
		name string
		data *mat.Dense
	}{
		{"abundance", data.Abundance},
		{"counts", data.Counts},
		{"length", data.Length},
	} {
		err = writeMatrix(filepath.Join(cfg.OutDir, m.name+".tsv"), data.IDs, data.Names, m.data)
		if err != nil {
			log.Fatalf("failed to write %s matrix: %v", m.name, err)
		}
		if cfg.Npy {
			err = writeNumpy(filepath.Join(cfg.OutDir, m.name+".npy"), m.data)
			if err != nil {
				log.Fatalf("failed to write %s matrix: %v", m.name, err)
			}
		}
	}

	level := "gene"
	if cfg.TxOut {
		level = "transcript"
	}
	_, cols := data.Counts.Dims()
	lib := make([]float64, cols)
	for j := range lib {
		lib[j] = floats.Sum(mat.Col(nil, j, data.Counts))
	}
	sum := &Summary{
		Type:                cfg.Type,
		Level:               level,
		Samples:             data.Names,
		Features:            len(data.IDs),
		Unmapped:            len(data.Unmapped),
		CountsFromAbundance: string(data.CountsFromAbundance),
		LibrarySize:         lib,
	}

	if cfg.QC {
		log.Println("[analysing count matrix]")
		plots := filepath.Join(cfg.OutDir, "plots")
		err = os.MkdirAll(plots, 0o755)
		if err != nil {
			log.Fatal(err)
		}
		sum.QC, err = countsQC(data, cfg.Cut, cfg.Frac, plots)
		if err != nil {
			log.Fatalf("failed to analyse count matrix: %v", err)
		}
	}

	if cfg.Summary != "" {
		err = writeSummary(cfg.Summary, sum)
		if err != nil {
			log.Fatalf("failed to write summary: %v", err)
		}
	}
}
