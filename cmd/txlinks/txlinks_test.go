// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kortschak/gogo"
)

var linksTests = []struct {
	name       string
	statements string
	want       []link
}{
	{
		name: "ensembl",
		statements: `<http://rdf.ebi.ac.uk/resource/ensembl.transcript/ENST00000000002> <http://purl.obolibrary.org/obo/SO_transcribed_from> <http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000001> .
<http://rdf.ebi.ac.uk/resource/ensembl.transcript/ENST00000000001> <http://purl.obolibrary.org/obo/SO_transcribed_from> <http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000001> .
<http://rdf.ebi.ac.uk/resource/ensembl.transcript/ENST00000000001> <http://purl.obolibrary.org/obo/SO_transcribed_from> <http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000001> .
<http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000001> <http://www.w3.org/2000/01/rdf-schema#label> "novel transcript"^^<http://www.w3.org/2001/XMLSchema#string> .
<http://rdf.ebi.ac.uk/resource/ensembl.transcript/ENST00000000003> <http://purl.obolibrary.org/obo/SO_transcribed_from> <http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000002> .
`,
		want: []link{
			{tx: "ENST00000000001", gene: "ENSG00000000001"},
			{tx: "ENST00000000002", gene: "ENSG00000000001"},
			{tx: "ENST00000000003", gene: "ENSG00000000002"},
		},
	},
	{
		name: "compact",
		statements: `<transcript:ENST00000000005> <obo:SO_transcribed_from> <ensembl:ENSG00000000004> .
<transcript:ENST00000000004> <obo:SO_transcribed_from> <ensembl:ENSG00000000004> .
`,
		want: []link{
			{tx: "ENST00000000004", gene: "ENSG00000000004"},
			{tx: "ENST00000000005", gene: "ENSG00000000004"},
		},
	},
	{
		name:       "none",
		statements: `<http://rdf.ebi.ac.uk/resource/ensembl/ENSG00000000001> <http://www.w3.org/2000/01/rdf-schema#label> "novel transcript"^^<http://www.w3.org/2001/XMLSchema#string> .`,
		want:       nil,
	},
}

func TestLinks(t *testing.T) {
	for _, test := range linksTests {
		g := gogo.NewGraph()
		err := addStatements(g, strings.NewReader(test.statements))
		if err != nil {
			t.Errorf("unexpected error decoding statements for %q: %v", test.name, err)
			continue
		}
		got := links(g)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("unexpected links for %q:\ngot: %v\nwant:%v", test.name, got, test.want)
		}
	}
}
