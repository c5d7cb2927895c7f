// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// txlinks extracts transcript to gene links from Ensembl RDF data and
// outputs them as a table for use with the txsum -map flag.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"
	"github.com/kortschak/txsum/quant"
)

func main() {
	var (
		orgPath = flag.String("org", "", "specify the Ensembl organism data (.nt/.nq[.gz/.sz] - required)")
		dotOut  = flag.Bool("dot", false, "output the transcript gene graph in DOT format")
		help    = flag.Bool("help", false, "print help text")
	)

	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s extracts transcript to gene links from Ensembl organism data. It
outputs a two column tab separated table of transcript and gene
identifier pairs, ordered by gene and then transcript, suitable for
use with the txsum -map flag.

Input data can be obtained from ftp://ftp.ensembl.org/pub/current_rdf
in Turtle format. These files must first be converted to N-Triples.

Input may be plain, gzip compressed or framed snappy compressed and
the output is written uncompressed to standard output.

Copyright ©2021 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *orgPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	g := gogo.NewGraph()
	f, err := quant.Open(*orgPath)
	if err != nil {
		log.Fatal(err)
	}
	err = addStatements(g, f)
	if err != nil {
		log.Fatalf("error during decoding: %v", err)
	}
	f.Close()

	if *dotOut {
		b, err := marshalDOT(g)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s\n", b)
		return
	}

	w := bufio.NewWriter(os.Stdout)
	for _, l := range links(g) {
		fmt.Fprintf(w, "%s\t%s\n", l.tx, l.gene)
	}
	err = w.Flush()
	if err != nil {
		log.Fatal(err)
	}
}

// addStatements decodes the RDF statements from r, keeping the
// transcription relationships with identifiers rewritten to compact
// form, and adds them to g.
func addStatements(g *gogo.Graph, r io.Reader) error {
	dec := rdf.NewDecoder(r)
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err != io.EOF {
				return err
			}
			return nil
		}

		switch s.Predicate.Value {
		case "<obo:SO_transcribed_from>":
		case "<http://purl.obolibrary.org/obo/SO_transcribed_from>":
			s.Subject.Value = "<transcript:" + strings.TrimPrefix(s.Subject.Value, "<http://rdf.ebi.ac.uk/resource/ensembl.transcript/")
			s.Predicate.Value = "<obo:SO_transcribed_from>"
			s.Object.Value = "<ensembl:" + strings.TrimPrefix(s.Object.Value, "<http://rdf.ebi.ac.uk/resource/ensembl/")
		default:
			continue
		}

		s.Subject.UID = 0
		s.Predicate.UID = 0
		s.Object.UID = 0

		g.AddStatement(s)
	}
}

type link struct {
	tx, gene string
}

// links returns the transcript to gene pairs held in g, ordered by
// gene and then transcript.
func links(g *gogo.Graph) []link {
	var linked []link
	nodes := g.Nodes()
	for nodes.Next() {
		gene := nodes.Node().(rdf.Term)
		if !strings.HasPrefix(gene.Value, "<ensembl:") {
			continue
		}

		// We are emitting directly, so we need to ensure
		// transcript uniqueness for each gene.
		seen := make(map[int64]bool)

		terms := g.Query(gene).In(func(s *rdf.Statement) bool {
			// <transcript:Y> <obo:SO_transcribed_from> <ensembl:X> .
			if seen[s.Subject.UID] {
				return false
			}
			ok := s.Predicate.Value == "<obo:SO_transcribed_from>"
			if ok {
				seen[s.Subject.UID] = true
			}
			return ok
		}).Result()

		for _, t := range terms {
			linked = append(linked, link{
				tx:   strip(t.Value, "<transcript:", ">"),
				gene: strip(gene.Value, "<ensembl:", ">"),
			})
		}
	}
	sort.Slice(linked, func(i, j int) bool {
		if linked[i].gene != linked[j].gene {
			return linked[i].gene < linked[j].gene
		}
		return linked[i].tx < linked[j].tx
	})
	return linked
}

func strip(s, prefix, suffix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, prefix), suffix)
}
