package lattice

import (
	"slices"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// Minimum side lengths. A periodic chain of length 1 or 2 would produce a
// self-loop or a duplicate edge along each axis.
const (
	MinLength         = 1
	MinPeriodicLength = 3
)

// Shape parametrizes a hypercubic lattice: side length, dimension and
// periodic boundary conditions (applied to every axis).
type Shape struct {
	Length    int  `json:"length" bson:"length"`
	Dimension int  `json:"dimension" bson:"dimension"`
	PBC       bool `json:"pbc" bson:"pbc"`
}

// Validate checks the shape and returns its site count L^D.
func (s Shape) Validate() (int, error) {
	if s.Dimension < 1 {
		return 0, errs.Malformed(ErrInvalidDimension, "dimension %d (must be >= 1)", s.Dimension)
	}
	if s.Length < MinLength {
		return 0, errs.Malformed(ErrLatticeTooShort, "length %d (must be >= %d)", s.Length, MinLength)
	}
	if s.PBC && s.Length < MinPeriodicLength {
		return 0, errs.Malformed(ErrLatticeTooShort,
			"periodic length %d (must be >= %d)", s.Length, MinPeriodicLength)
	}

	if s.Length == 1 {
		return 1, nil
	}
	n := 1
	for range s.Dimension {
		if n > MaxSites/s.Length {
			return 0, errs.Malformed(ErrTooManySites,
				"%d^%d sites exceeds the limit of %d", s.Length, s.Dimension, MaxSites)
		}
		n *= s.Length
	}
	return n, nil
}

// NumSites returns L^D. It assumes the shape is valid.
func (s Shape) NumSites() int {
	if s.Length == 1 {
		return 1
	}
	n := 1
	for range s.Dimension {
		n *= s.Length
	}
	return n
}

// Coordinates returns the lattice coordinates of site. Sites are linearized
// as site = sum_k x_k * L^k, so axis 0 varies fastest.
func (s Shape) Coordinates(site int) ([]int, error) {
	if site < 0 || site >= s.NumSites() {
		return nil, errs.Malformed(ErrInvalidSite, "site %d outside [0, %d)", site, s.NumSites())
	}
	coords := make([]int, s.Dimension)
	for k := range coords {
		coords[k] = site % s.Length
		site /= s.Length
	}
	return coords, nil
}

// Site is the inverse of Coordinates.
func (s Shape) Site(coords []int) (int, error) {
	if len(coords) != s.Dimension {
		return 0, errs.Malformed(ErrInvalidSite, "got %d coordinates for a %d-dimensional lattice",
			len(coords), s.Dimension)
	}
	site, stride := 0, 1
	for k, x := range coords {
		if x < 0 || x >= s.Length {
			return 0, errs.Malformed(ErrInvalidSite, "coordinate %d on axis %d outside [0, %d)", x, k, s.Length)
		}
		site += x * stride
		stride *= s.Length
	}
	return site, nil
}

// Hypercube builds a D-dimensional hypercubic lattice of side length L with
// nearest-neighbour edges. With pbc, the last site along each axis is joined
// back to the first.
func Hypercube(length, nDim int, pbc bool) (*Graph, error) {
	shape := Shape{Length: length, Dimension: nDim, PBC: pbc}
	n, err := shape.Validate()
	if err != nil {
		return nil, err
	}
	edges, err := BuildEdgeList(shape.pairs(n))
	if err != nil {
		return nil, err
	}
	return &Graph{
		kind:  KindHypercube,
		n:     n,
		edges: edges,
		shape: &shape,
	}, nil
}

// ColoredHypercube builds a hypercube whose edges carry the given colors. The
// map must cover every generated edge exactly once: a missing edge, an edge
// the lattice does not have, or a negative color fails with MALFORMED_INPUT.
func ColoredHypercube(length, nDim int, pbc bool, colors ColorMap) (*Graph, error) {
	g, err := Hypercube(length, nDim, pbc)
	if err != nil {
		return nil, err
	}

	for _, e := range g.edges {
		c, ok := colors[e]
		if !ok {
			return nil, errs.Malformed(ErrColorCoverage, "lattice edge %s has no color", e)
		}
		if c < 0 {
			return nil, errs.Malformed(ErrInvalidColor, "edge %s has color %d", e, c)
		}
	}
	if len(colors) != len(g.edges) {
		for e := range colors {
			if _, ok := g.edgeIndex(e); !ok {
				return nil, errs.Malformed(ErrColorCoverage, "colored edge %s is not a lattice edge", e)
			}
		}
	}

	g.colors = colors.Clone()
	return g, nil
}

// HypercubeFromSpecs builds the hypercube of shape s from an accompanying
// edge sequence, as found in descriptions that list a shape together with
// its edges. Colored specs color the lattice as in ColoredHypercube. Plain
// pairs must list exactly the generated edge set. No specs at all builds the
// plain hypercube.
func HypercubeFromSpecs(s Shape, specs []EdgeSpec) (*Graph, error) {
	if len(specs) == 0 {
		return Hypercube(s.Length, s.Dimension, s.PBC)
	}
	edges, colors, err := Canonicalize(specs)
	if err != nil {
		return nil, err
	}
	if colors != nil {
		return ColoredHypercube(s.Length, s.Dimension, s.PBC, colors)
	}
	g, err := Hypercube(s.Length, s.Dimension, s.PBC)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(edges, g.edges) {
		return nil, errs.Malformed(ErrEdgeMismatch,
			"%d listed edges do not match the %d edges of the %dx%d lattice",
			len(edges), len(g.edges), s.Length, s.Dimension)
	}
	return g, nil
}

// pairs emits the nearest-neighbour pairs of the lattice, axis by axis, in
// site order within each axis.
func (s Shape) pairs(n int) [][2]int {
	if s.Length == 1 {
		return nil
	}
	pairs := make([][2]int, 0, n*s.Dimension)
	for k := range s.Dimension {
		pairs = append(pairs, s.axisPairs(n, k)...)
	}
	return pairs
}

func (s Shape) axisPairs(n, axis int) [][2]int {
	stride := 1
	for range axis {
		stride *= s.Length
	}
	pairs := make([][2]int, 0, n)
	for site := range n {
		x := (site / stride) % s.Length
		switch {
		case x+1 < s.Length:
			pairs = append(pairs, [2]int{site, site + stride})
		case s.PBC:
			pairs = append(pairs, [2]int{site, site - x*stride})
		}
	}
	return pairs
}

// AxisColors returns the color map that gives every edge of the lattice the
// index of the axis it runs along.
func (s Shape) AxisColors() (ColorMap, error) {
	n, err := s.Validate()
	if err != nil {
		return nil, err
	}
	colors := make(ColorMap, n*s.Dimension)
	for k := range s.Dimension {
		for _, p := range s.axisPairs(n, k) {
			colors[MakeEdge(p[0], p[1])] = k
		}
	}
	return colors, nil
}
