// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package txsum

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var readGeneMapTests = []struct {
	name  string
	data  string
	genes []string
	pairs map[string]string
}{
	{
		name: "tab separated",
		data: `ENST00000361390	ENSG00000198888
ENST00000361453	ENSG00000198763
ENST00000361624	ENSG00000198804
`,
		genes: []string{"ENSG00000198888", "ENSG00000198763", "ENSG00000198804"},
		pairs: map[string]string{
			"ENST00000361390": "ENSG00000198888",
			"ENST00000361453": "ENSG00000198763",
			"ENST00000361624": "ENSG00000198804",
		},
	},
	{
		name: "comma separated",
		data: `T1,G1
T2,G1
T3,G2
`,
		genes: []string{"G1", "G2"},
		pairs: map[string]string{"T1": "G1", "T2": "G1", "T3": "G2"},
	},
	{
		name: "comments and extra columns",
		data: `# derived from refGene
T1	G1	geneA
T2	G1	geneA
# a trailing comment
T3	G2	geneB
`,
		genes: []string{"G1", "G2"},
		pairs: map[string]string{"T1": "G1", "T2": "G1", "T3": "G2"},
	},
	{
		name: "repeated association",
		data: `T1	G1
T1	G1
T2	G2
`,
		genes: []string{"G1", "G2"},
		pairs: map[string]string{"T1": "G1", "T2": "G2"},
	},
}

func TestReadGeneMap(t *testing.T) {
	for _, test := range readGeneMapTests {
		m, err := ReadGeneMap(strings.NewReader(test.data))
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.name, err)
			continue
		}
		if got := m.Genes(); !reflect.DeepEqual(got, test.genes) {
			t.Errorf("unexpected gene order for %q: got:%v want:%v", test.name, got, test.genes)
		}
		if m.Len() != len(test.pairs) {
			t.Errorf("unexpected length for %q: got:%d want:%d", test.name, m.Len(), len(test.pairs))
		}
		for tx, want := range test.pairs {
			got, ok := m.Gene(tx)
			if !ok || got != want {
				t.Errorf("unexpected gene for %q in %q: got:%q want:%q", tx, test.name, got, want)
			}
		}
		if _, ok := m.Gene("unknown"); ok {
			t.Errorf("unexpected association for unknown transcript in %q", test.name)
		}
	}
}

func TestReadGeneMapConflict(t *testing.T) {
	_, err := ReadGeneMap(strings.NewReader("T1\tG1\nT1\tG2\n"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &ConflictError{ID: "T1", Genes: [2]string{"G1", "G2"}}
	if !reflect.DeepEqual(conflict, want) {
		t.Errorf("unexpected error detail: got:%+v want:%+v", conflict, want)
	}
}

func TestReadGeneMapIncomplete(t *testing.T) {
	_, err := ReadGeneMap(strings.NewReader("T1\tG1\nT2\n"))
	if err == nil {
		t.Error("expected error for incomplete line")
	}
}

func TestReadGeneMapEmpty(t *testing.T) {
	for _, data := range []string{"", "# only a comment\n"} {
		_, err := ReadGeneMap(strings.NewReader(data))
		if !errors.Is(err, ErrNoData) {
			t.Errorf("unexpected error for %q: %v", data, err)
		}
	}
}

func TestNewGeneMapLengths(t *testing.T) {
	_, err := NewGeneMap([]string{"T1", "T2"}, []string{"G1"})
	if err == nil {
		t.Error("expected error for mismatched input lengths")
	}
}
