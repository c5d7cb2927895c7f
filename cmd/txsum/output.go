// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/kshedden/gonpy"
)

// writeMatrix writes data as a tsv table to path with the given row and
// column labels. The first header field is empty.
func writeMatrix(path string, rows, cols []string, data *mat.Dense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	for _, name := range cols {
		w.WriteByte('\t')
		w.WriteString(name)
	}
	w.WriteByte('\n')
	for i, id := range rows {
		w.WriteString(id)
		for j := range cols {
			fmt.Fprintf(w, "\t%v", data.At(i, j))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// nopCloser wraps a bufio.Writer for gonpy, which requires an
// io.WriteCloser.
type nopCloser struct {
	*bufio.Writer
}

func (nopCloser) Close() error { return nil }

// writeNumpy writes data to path as a row major float64 NumPy array.
func writeNumpy(path string, data *mat.Dense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return err
	}
	rows, cols := data.Dims()
	npw.Shape = []int{rows, cols}
	raw := data.RawMatrix()
	vals := raw.Data
	if raw.Stride != cols {
		vals = make([]float64, 0, rows*cols)
		for i := 0; i < rows; i++ {
			vals = append(vals, data.RawRowView(i)...)
		}
	}
	err = npw.WriteFloat64(vals)
	if err != nil {
		return err
	}
	return w.Flush()
}

// writeSummary writes s to path as tab indented JSON.
func writeSummary(path string, s *Summary) error {
	b, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0o644)
}
