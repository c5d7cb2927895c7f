// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// GeneMap is a table of transcript to gene associations.
type GeneMap struct {
	tx    []string          // transcripts in first-seen order
	gene  map[string]string // gene for each transcript
	order []string          // genes in first-seen order
}

// NewGeneMap returns a GeneMap associating each transcript in tx with
// the gene at the same index in genes. Repeated identical associations
// are collapsed, and a transcript associated with two distinct genes is
// a ConflictError.
func NewGeneMap(tx, genes []string) (*GeneMap, error) {
	if len(tx) != len(genes) {
		return nil, fmt.Errorf("txsum: transcript and gene counts differ: %d != %d", len(tx), len(genes))
	}
	if len(tx) == 0 {
		return nil, ErrNoData
	}
	m := &GeneMap{gene: make(map[string]string, len(tx))}
	seen := make(map[string]bool)
	for i, t := range tx {
		g := genes[i]
		if prev, ok := m.gene[t]; ok {
			if prev != g {
				return nil, &ConflictError{ID: t, Genes: [2]string{prev, g}}
			}
			continue
		}
		m.tx = append(m.tx, t)
		m.gene[t] = g
		if !seen[g] {
			seen[g] = true
			m.order = append(m.order, g)
		}
	}
	return m, nil
}

// ReadGeneMap reads a transcript to gene table from r. The first column
// holds transcript identifiers and the second gene identifiers; columns
// beyond the second are ignored. Fields are tab or comma separated,
// sniffed from the first data line, and lines beginning with '#' are
// ignored.
func ReadGeneMap(r io.Reader) (*GeneMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := csv.NewReader(bytes.NewReader(data))
	c.Comma = delimFor(data)
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.ReuseRecord = true
	var tx, genes []string
	for {
		row, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("txsum: incomplete gene map line: %q", row)
		}
		tx = append(tx, row[0])
		genes = append(genes, row[1])
	}
	return NewGeneMap(tx, genes)
}

// delimFor returns the field delimiter used by the first data line of
// the table in data, preferring tab when both tab and comma occur.
func delimFor(data []byte) rune {
	for len(data) != 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.IndexByte(line, '\t') >= 0 {
			return '\t'
		}
		return ','
	}
	return '\t'
}

// Len returns the number of transcripts in the map.
func (m *GeneMap) Len() int { return len(m.tx) }

// Gene returns the gene associated with the given transcript.
func (m *GeneMap) Gene(tx string) (gene string, ok bool) {
	gene, ok = m.gene[tx]
	return gene, ok
}

// Genes returns the distinct genes of the map in first-seen order.
func (m *GeneMap) Genes() []string {
	return append(m.order[:0:0], m.order...)
}
