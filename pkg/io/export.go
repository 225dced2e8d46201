package io

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/lattice"
)

// Document is the wire form of a lattice graph.
type Document struct {
	NumSites      int            `json:"n_sites,omitempty" bson:"n_sites,omitempty" yaml:"n_sites,omitempty"`
	Edges         [][]int        `json:"edges,omitempty" bson:"edges,omitempty" yaml:"edges,omitempty"`
	Automorphisms [][]int        `json:"automorphisms,omitempty" bson:"automorphisms,omitempty" yaml:"automorphisms,omitempty"`
	Bipartite     *bool          `json:"bipartite,omitempty" bson:"bipartite,omitempty" yaml:"bipartite,omitempty"`
	Hypercube     *lattice.Shape `json:"hypercube,omitempty" bson:"hypercube,omitempty" yaml:"hypercube,omitempty"`
}

// FromGraph returns the wire form of g. Its JSON encoding is deterministic,
// so it doubles as a content key.
func FromGraph(g *lattice.Graph) Document {
	doc := Document{
		NumSites: g.NumSites(),
		Edges:    lattice.Tuples(g.Edges(), g.Colors()),
	}
	if shape, ok := g.Shape(); ok {
		doc.Hypercube = &shape
		return doc
	}
	doc.Automorphisms = g.SymmetryTable()
	if b, ok := g.DeclaredBipartite(); ok {
		doc.Bipartite = &b
	}
	return doc
}

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g *lattice.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *lattice.Graph, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
