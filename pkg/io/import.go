package io

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/lattice"
)

// Graph builds the lattice graph the document describes. A hypercube block
// takes precedence over the custom fields; see the package documentation.
// Rejected content is reported with the MALFORMED_INPUT code.
func (d Document) Graph() (*lattice.Graph, error) {
	specs, err := lattice.SpecsFromTuples(d.Edges)
	if err != nil {
		return nil, err
	}

	if s := d.Hypercube; s != nil {
		return lattice.HypercubeFromSpecs(*s, specs)
	}

	return lattice.Custom(specs, lattice.CustomOptions{
		NumSites:      d.NumSites,
		Automorphisms: d.Automorphisms,
		Bipartite:     d.Bipartite,
	})
}

// ReadJSON decodes a JSON graph document from r and builds the graph.
// Unknown fields are rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*lattice.Graph, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Graph()
}

// DecodeDocument decodes a JSON graph document from r without building it.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	return doc, nil
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*lattice.Graph, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
