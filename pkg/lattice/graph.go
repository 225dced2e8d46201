package lattice

import (
	"slices"
	"sync"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// MaxSites bounds the number of sites of any graph, generated or custom. It
// keeps L^D from overflowing and keeps per-site tables addressable.
const MaxSites = 1 << 24

// Kind distinguishes how a graph was constructed, and therefore where its
// symmetry table comes from.
type Kind int

const (
	// KindCustom is an arbitrary graph whose automorphisms and bipartite flag
	// were declared by the caller and are trusted, not derived.
	KindCustom Kind = iota
	// KindHypercube is a generated lattice whose symmetries are derived from
	// its shape.
	KindHypercube
)

// String returns "custom" or "hypercube".
func (k Kind) String() string {
	if k == KindHypercube {
		return "hypercube"
	}
	return "custom"
}

// Graph is an immutable, validated lattice graph over sites [0, NumSites).
//
// A Graph is fully validated by its constructor and has no mutation API.
// Derived properties (adjacency, distances, bipartiteness, connectivity,
// symmetry table) are computed on first use and cached for the lifetime of
// the graph, so a *Graph may be shared by concurrent readers.
//
// The zero value is not usable - use Custom, Hypercube or ColoredHypercube.
type Graph struct {
	kind          Kind
	n             int
	edges         []Edge
	colors        ColorMap
	automorphisms [][]int
	bipartite     *bool
	shape         *Shape

	adjOnce  sync.Once
	adj      [][]int
	bipOnce  sync.Once
	bip      bool
	connOnce sync.Once
	conn     bool
	distOnce sync.Once
	dist     [][]int
	symOnce  sync.Once
	sym      [][]int
}

// CustomOptions carries the caller-declared properties of a custom graph.
type CustomOptions struct {
	// NumSites declares the site count. Zero means infer it as the largest
	// site index appearing in an edge plus one; a positive value may exceed
	// that to declare isolated sites, but must not fall below it.
	NumSites int

	// Automorphisms is the declared symmetry table, one site permutation per
	// entry. It is stored as given and returned by SymmetryTable; no check is
	// made that the entries are automorphisms (see CheckAutomorphism).
	Automorphisms [][]int

	// Bipartite is the declared bipartite flag, reported by DeclaredBipartite.
	// IsBipartite always computes the answer from the edges.
	Bipartite *bool
}

// Custom builds an arbitrary graph from a tagged edge sequence. The edges are
// canonicalized per Canonicalize; the declared properties in opts are trusted.
func Custom(specs []EdgeSpec, opts CustomOptions) (*Graph, error) {
	edges, colors, err := Canonicalize(specs)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, e := range edges {
		n = max(n, e.Hi+1)
	}
	switch {
	case opts.NumSites < 0:
		return nil, errs.Malformed(ErrInvalidSite, "negative site count %d", opts.NumSites)
	case opts.NumSites > 0 && opts.NumSites < n:
		return nil, errs.Malformed(ErrInvalidSite,
			"declared %d sites but edges reference site %d", opts.NumSites, n-1)
	case opts.NumSites > 0:
		n = opts.NumSites
	}
	if n > MaxSites {
		return nil, errs.Malformed(ErrTooManySites, "%d sites exceeds the limit of %d", n, MaxSites)
	}

	g := &Graph{
		kind:   KindCustom,
		n:      n,
		edges:  edges,
		colors: colors,
	}
	if len(opts.Automorphisms) > 0 {
		g.automorphisms = make([][]int, len(opts.Automorphisms))
		for i, p := range opts.Automorphisms {
			g.automorphisms[i] = slices.Clone(p)
		}
	}
	if opts.Bipartite != nil {
		b := *opts.Bipartite
		g.bipartite = &b
	}
	return g, nil
}

// Kind reports how the graph was constructed.
func (g *Graph) Kind() Kind { return g.kind }

// NumSites returns the number of sites N; sites are indexed [0, N).
func (g *Graph) NumSites() int { return g.n }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges returns a copy of the edge list, sorted ascending by (Lo, Hi).
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// IsColored reports whether the graph carries an edge color map.
func (g *Graph) IsColored() bool { return g.colors != nil }

// Colors returns a copy of the edge color map, or nil if the graph is uncolored.
func (g *Graph) Colors() ColorMap { return g.colors.Clone() }

// Color returns the color of e and whether the graph has a color for it.
func (g *Graph) Color(e Edge) (int, bool) {
	c, ok := g.colors[e]
	return c, ok
}

// DeclaredBipartite returns the caller-declared bipartite flag and whether one
// was declared. Generated lattices never carry a declared flag.
func (g *Graph) DeclaredBipartite() (value, declared bool) {
	if g.bipartite == nil {
		return false, false
	}
	return *g.bipartite, true
}

// Shape returns the hypercube parameters for a generated lattice. The second
// result is false for custom graphs.
func (g *Graph) Shape() (Shape, bool) {
	if g.shape == nil {
		return Shape{}, false
	}
	return *g.shape, true
}
