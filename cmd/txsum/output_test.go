// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kshedden/gonpy"
	"github.com/pkg/diff"
	"github.com/pkg/diff/write"
)

func TestWriteMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.tsv")
	data := mat.NewDense(2, 2, []float64{30, 20.25, 15, 0.001})
	err := writeMatrix(path, []string{"G1", "G2"}, []string{"liver", "kidney"}, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\tliver\tkidney\nG1\t30\t20.25\nG2\t15\t0.001\n"
	if string(got) != want {
		var buf bytes.Buffer
		err = diff.Text("got", "want", string(got), want, &buf, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected matrix table:\n%s", &buf)
	}

	// Written values survive a parse round trip exactly.
	lines := strings.Split(strings.TrimSuffix(string(got), "\n"), "\n")
	for i, line := range lines[1:] {
		for j, cell := range strings.Split(line, "\t")[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %v", cell, err)
			}
			if v != data.At(i, j) {
				t.Errorf("unexpected value at %d,%d: got:%v want:%v", i, j, v, data.At(i, j))
			}
		}
	}
}

func TestWriteNumpy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.npy")
	data := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	err := writeNumpy(path, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		t.Fatalf("unexpected error reading array: %v", err)
	}
	if want := []int{2, 3}; !reflect.DeepEqual(r.Shape, want) {
		t.Errorf("unexpected shape: got:%v want:%v", r.Shape, want)
	}
	got, err := r.GetFloat64()
	if err != nil {
		t.Fatalf("unexpected error reading array: %v", err)
	}
	if want := []float64{1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected values: got:%v want:%v", got, want)
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	s := &Summary{
		Type:                "salmon",
		Level:               "gene",
		Samples:             []string{"liver", "kidney"},
		Features:            2,
		CountsFromAbundance: "no",
		LibrarySize:         []float64{45, 50},
	}
	err := writeSummary(path, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{
	"Type": "salmon",
	"Level": "gene",
	"Samples": [
		"liver",
		"kidney"
	],
	"Features": 2,
	"Unmapped": 0,
	"CountsFromAbundance": "no",
	"LibrarySize": [
		45,
		50
	]
}`
	if string(got) != want {
		var buf bytes.Buffer
		err = diff.Text("got", "want", string(got), want, &buf, write.TerminalColor())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		t.Errorf("unexpected summary document:\n%s", &buf)
	}
}
