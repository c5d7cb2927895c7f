// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decoder reads transcript quantification records from a tab separated
// table with a header line, one transcript per row. Lines beginning
// with '#' are ignored.
type Decoder struct {
	r *csv.Reader

	id, abundance, counts, length field
}

type field struct {
	col  int
	name string
}

// NewDecoder returns a Decoder reading records in the given format from
// r. The table's header line is read and validated before NewDecoder
// returns. Custom format tables have no fixed layout; use
// NewCustomDecoder for these.
func NewDecoder(r io.Reader, f Format) (*Decoder, error) {
	lay, ok := layouts[f]
	if !ok {
		if f == Custom {
			return nil, errors.New("quant: no column layout for custom format")
		}
		return nil, fmt.Errorf("%w %v", ErrUnknownFormat, f)
	}
	return NewCustomDecoder(r, lay)
}

// NewCustomDecoder returns a Decoder reading records from r with
// columns named according to lay.
func NewCustomDecoder(r io.Reader, lay Layout) (*Decoder, error) {
	if lay.ID == "" || lay.Abundance == "" || lay.Counts == "" || lay.Length == "" {
		return nil, fmt.Errorf("quant: incomplete column layout: %+v", lay)
	}
	c := csv.NewReader(r)
	c.Comma = '\t'
	c.Comment = '#'
	c.ReuseRecord = true
	header, err := c.Read()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	d := &Decoder{r: c}
	d.id, err = column(header, lay.ID)
	if err != nil {
		return nil, err
	}
	d.abundance, err = column(header, lay.Abundance)
	if err != nil {
		return nil, err
	}
	d.counts, err = column(header, lay.Counts)
	if err != nil {
		return nil, err
	}
	d.length, err = column(header, lay.Length)
	if err != nil {
		if lay.AltLength == "" {
			return nil, err
		}
		d.length, err = column(header, lay.AltLength)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func column(header []string, name string) (field, error) {
	for i, h := range header {
		if h == name {
			return field{col: i, name: name}, nil
		}
	}
	return field{}, fmt.Errorf("quant: no %q column in header %q", name, header)
}

// Unmarshal returns the next transcript record from the decoder's
// table. It returns io.EOF when no records remain.
func (d *Decoder) Unmarshal() (Record, error) {
	row, err := d.r.Read()
	if err != nil {
		return Record{}, err
	}
	rec := Record{ID: row[d.id.col]}
	rec.Abundance, err = value(row, d.abundance, rec.ID)
	if err != nil {
		return Record{}, err
	}
	rec.Counts, err = value(row, d.counts, rec.ID)
	if err != nil {
		return Record{}, err
	}
	rec.Length, err = value(row, d.length, rec.ID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func value(row []string, f field, id string) (float64, error) {
	v, err := strconv.ParseFloat(row[f.col], 64)
	if err != nil {
		return 0, fmt.Errorf("quant: invalid %s for %q: %v", f.name, id, err)
	}
	return v, nil
}
