// Package lattice builds validated, immutable graphs of physical lattices and
// derives their structural properties.
//
// # Construction
//
// There are two construction modes. [Custom] builds an arbitrary graph from a
// tagged edge sequence and stores the caller's declared automorphisms and
// bipartite flag without checking them. [Hypercube] and [ColoredHypercube]
// generate a D-dimensional hypercubic lattice of side length L, optionally
// periodic, whose symmetry group is derived from its shape.
//
//	g, err := lattice.Hypercube(4, 2, true)
//	if err != nil {
//	    return err // errors.Is(err, errors.ErrCodeMalformedInput)
//	}
//	fmt.Println(g.NumSites(), g.NumEdges()) // 16 32
//
// Edges are canonical (Lo <= Hi), sorted by (Lo, Hi) and unique. Every input
// rejected by this package carries the MALFORMED_INPUT code and wraps one of
// the package's sentinel errors.
//
// # Site numbering
//
// Hypercube sites are linearized as site = x_0 + x_1*L + ... + x_{D-1}*L^{D-1},
// so axis 0 varies fastest. [Shape.Coordinates] and [Shape.Site] convert
// between the two forms.
//
// # Analysis
//
// Adjacency lists, bipartiteness, connectivity, all-pairs distances and the
// symmetry table are computed on first use and cached. A *Graph never
// changes after construction, so it may be shared between goroutines.
package lattice
