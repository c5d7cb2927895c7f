// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io/ioutil"
)

// Config holds a txsum run configuration. The fields correspond to the
// command line flags and positional arguments; flags set on the command
// line take precedence over values read from a configuration file.
type Config struct {
	// Files is the per-sample quantification files to import.
	Files []string

	// Type is the quantification tool that produced the files.
	Type string

	// Names is the sample names, in file order.
	Names []string

	// Map is the path of the transcript to gene table.
	Map string

	// TxOut retains transcript level matrices.
	TxOut bool

	// Scale is the counts from abundance policy.
	Scale string

	// IgnoreVersion and IgnoreAfterBar strip transcript
	// identifier decorations before gene matching.
	IgnoreVersion  bool
	IgnoreAfterBar bool

	// OutDir is the directory matrices are written to.
	OutDir string

	// Summary is the path the JSON import summary is written to.
	Summary string

	// Npy additionally writes matrices in NumPy .npy format.
	Npy bool

	// QC performs an SVD of the count matrix, writing singular
	// value plots and extending the summary.
	QC bool

	// Cut and Frac are the singular value threshold parameters.
	Cut  float64
	Frac float64

	// Layout names the columns of a custom quantification table.
	Layout LayoutConfig
}

// LayoutConfig names the columns of a custom quantification table.
type LayoutConfig struct {
	ID        string
	Abundance string
	Counts    string
	Length    string
}

// readConfig reads a JSON formatted Config from path.
func readConfig(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	err = json.Unmarshal(b, &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
