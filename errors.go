// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when an import or summarization would
	// produce a matrix with no rows or no columns.
	ErrNoData = errors.New("txsum: no data")

	// ErrZeroLength is returned by length-scaled count derivation when
	// an expressed row has no positive effective length in any sample.
	ErrZeroLength = errors.New("txsum: no positive effective length")
)

// MismatchError describes a sample whose transcript set disagrees with
// the set quantified by the first sample of an import.
type MismatchError struct {
	// Sample is the name of the disagreeing sample.
	Sample string

	// Missing lists transcripts quantified by the first
	// sample but absent from Sample.
	Missing []string

	// Extra lists transcripts quantified by Sample but
	// absent from the first sample.
	Extra []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("txsum: transcript set mismatch in %s: missing=%v extra=%v", e.Sample, e.Missing, e.Extra)
}

// DuplicateError describes a transcript quantified more than once
// within a single sample.
type DuplicateError struct {
	Sample string
	ID     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("txsum: duplicate transcript %q in %s", e.ID, e.Sample)
}

// ConflictError describes a transcript associated with more than one
// gene by a gene map.
type ConflictError struct {
	ID    string
	Genes [2]string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("txsum: transcript %q maps to both %q and %q", e.ID, e.Genes[0], e.Genes[1])
}
