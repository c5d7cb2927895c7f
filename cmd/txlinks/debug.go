// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/formats/rdf"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/kortschak/gogo"
)

// marshalDOT renders the transcription graph held in g in DOT format
// for visual inspection of the extracted links.
func marshalDOT(g *gogo.Graph) ([]byte, error) {
	return dot.MarshalMulti(dotGraph{g}, "txlinks", "", "\t")
}

type dotGraph struct {
	*gogo.Graph
}

func (g dotGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attr{{Key: "rankdir", Value: "BT"}}, attr{}, attr{}
}

type attr []encoding.Attribute

func (a attr) Attributes() []encoding.Attribute {
	return a
}

func (g dotGraph) Nodes() graph.Nodes {
	return termNodes(g.Graph.Nodes())
}

func (g dotGraph) From(uid int64) graph.Nodes {
	return termNodes(g.Graph.From(uid))
}

func termNodes(it graph.Nodes) graph.Nodes {
	var dotNodes []graph.Node
	for it.Next() {
		dotNodes = append(dotNodes, termNode{it.Node().(rdf.Term)})
	}
	if len(dotNodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(dotNodes)
}

func (g dotGraph) Lines(uid, vid int64) graph.Lines {
	it := g.Graph.Lines(uid, vid)
	lines := make([]graph.Line, 0, it.Len())
	for it.Next() {
		lines = append(lines, dotLine{
			Statement: it.Line().(*rdf.Statement),
			attrs: []encoding.Attribute{
				{Key: "label", Value: "transcribed_from"},
			},
		})
	}
	return iterator.NewOrderedLines(lines)
}

// termNode implements graph.Node and dot.Node to allow the
// RDF term value to be given to the DOT encoder.
type termNode struct {
	rdf.Term
}

func (n termNode) DOTID() string { return n.Term.Value }
func (n termNode) Attributes() []encoding.Attribute {
	label := strip(n.Term.Value, "<", ">")
	if i := strings.Index(label, ":"); i >= 0 {
		label = label[i+1:]
	}
	return []encoding.Attribute{{Key: "label", Value: label}}
}

// dotLine implements graph.Line and encoding.Attributer to
// allow the line's RDF term value to be given to the DOT
// encoder.
//
// Because the graph here is directed and we are not performing
// any line reversals, it is safe not to implement the
// ReversedLine method on dotLine; it will never be called.
type dotLine struct {
	*rdf.Statement
	attrs []encoding.Attribute
}

func (l dotLine) From() graph.Node                 { return l.Subject }
func (l dotLine) To() graph.Node                   { return l.Object }
func (l dotLine) Attributes() []encoding.Attribute { return l.attrs }
