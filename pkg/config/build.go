package config

import (
	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
	"github.com/matzehuels/latticekit/pkg/lattice"
)

// Build constructs the graph and, when a [hilbert] table is present, the
// space on it. The space is nil otherwise.
func (c *Config) Build() (*lattice.Graph, *hilbert.Space, error) {
	g, err := c.Graph.Build()
	if err != nil {
		return nil, nil, err
	}
	if c.Hilbert == nil {
		return g, nil, nil
	}
	sp, err := c.Hilbert.Build(g)
	if err != nil {
		return nil, nil, err
	}
	return g, sp, nil
}

// Shape returns the hypercube parameters. Boundaries are periodic unless pbc
// is set to false.
func (c GraphConfig) Shape() lattice.Shape {
	pbc := true
	if c.PBC != nil {
		pbc = *c.PBC
	}
	return lattice.Shape{Length: c.Length, Dimension: c.Dimension, PBC: pbc}
}

// Build constructs the graph.
func (c GraphConfig) Build() (*lattice.Graph, error) {
	specs, err := lattice.SpecsFromTuples(c.Edges)
	if err != nil {
		return nil, err
	}
	if c.Name == "custom" {
		return lattice.Custom(specs, lattice.CustomOptions{
			NumSites:      c.NumSites,
			Automorphisms: c.Automorphisms,
			Bipartite:     c.Bipartite,
		})
	}

	s := c.Shape()
	if !c.AxisColors {
		return lattice.HypercubeFromSpecs(s, specs)
	}
	if len(specs) > 0 {
		return nil, errs.Malformed(lattice.ErrEdgeMismatch, "axis_colors and edges are mutually exclusive")
	}
	colors, err := s.AxisColors()
	if err != nil {
		return nil, err
	}
	return lattice.ColoredHypercube(s.Length, s.Dimension, s.PBC, colors)
}

// Build constructs the space on g.
func (c HilbertConfig) Build(g hilbert.Lattice) (*hilbert.Space, error) {
	switch c.Name {
	case "spin":
		var opts []hilbert.SpinOption
		if c.TotalSz != nil {
			opts = append(opts, hilbert.WithTotalSz(*c.TotalSz))
		}
		return hilbert.Spin(g, c.S, opts...)
	case "boson":
		var opts []hilbert.BosonOption
		if c.NBosons != nil {
			opts = append(opts, hilbert.WithTotalBosons(*c.NBosons))
		}
		return hilbert.Boson(g, c.NMax, opts...)
	case "custom":
		return hilbert.CustomSpace(g, c.LocalStates)
	default:
		return hilbert.Qubit(g)
	}
}
