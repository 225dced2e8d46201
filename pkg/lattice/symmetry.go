package lattice

import (
	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// SymmetryTable returns the graph's symmetry group as a list of site
// permutations; entry p maps site i to p[i].
//
// For a custom graph this is the declared automorphism list, returned as
// given (possibly empty). For a hypercube it is derived from the shape: every
// reflection x -> L-1-x on any subset of axes, composed with every
// translation along the axes when boundaries are periodic. The identity is
// always entry 0 and pure translations follow it. The table is cached and
// shared; treat it as read-only.
func (g *Graph) SymmetryTable() [][]int {
	g.symOnce.Do(func() {
		if g.kind == KindHypercube && g.shape != nil {
			g.sym = g.shape.symmetries(g.n)
		} else {
			g.sym = g.automorphisms
		}
	})
	return g.sym
}

// NumSymmetries returns len(SymmetryTable()) without building the table for a
// hypercube.
func (g *Graph) NumSymmetries() int {
	if g.kind == KindHypercube && g.shape != nil {
		return g.shape.numSymmetries(g.n)
	}
	return len(g.automorphisms)
}

// CheckAutomorphism verifies that perm is a permutation of the sites that maps
// the edge set onto itself and, for a colored graph, preserves every color.
func (g *Graph) CheckAutomorphism(perm []int) error {
	if len(perm) != g.n {
		return errs.Malformed(ErrNotAutomorphism, "permutation has %d entries, graph has %d sites", len(perm), g.n)
	}
	seen := make([]bool, g.n)
	for i, p := range perm {
		if p < 0 || p >= g.n {
			return errs.Malformed(ErrNotAutomorphism, "site %d maps to %d, outside [0, %d)", i, p, g.n)
		}
		if seen[p] {
			return errs.Malformed(ErrNotAutomorphism, "site %d is the image of more than one site", p)
		}
		seen[p] = true
	}

	// A bijection on sites maps distinct edges to distinct edges, so
	// membership of every image is enough for the edge set to map onto itself.
	for _, e := range g.edges {
		img := MakeEdge(perm[e.Lo], perm[e.Hi])
		if _, ok := g.edgeIndex(img); !ok {
			return errs.Malformed(ErrNotAutomorphism, "edge %s maps to %s, which is not an edge", e, img)
		}
		if g.colors != nil && g.colors[img] != g.colors[e] {
			return errs.Malformed(ErrNotAutomorphism, "edge %s (color %d) maps to %s (color %d)",
				e, g.colors[e], img, g.colors[img])
		}
	}
	return nil
}

// numSymmetries counts the dihedral group of each axis: 2L elements for a
// periodic axis, 2 for an open one. A single site has only the identity.
func (s Shape) numSymmetries(n int) int {
	if s.Length == 1 {
		return 1
	}
	count := 1 << s.Dimension
	if s.PBC {
		count *= n
	}
	return count
}

// symmetries enumerates reflection masks in the outer loop and translation
// vectors, in lexicographic order with axis 0 fastest, in the inner loop.
// For L >= 2 every combination is a distinct permutation (periodic axes need
// L >= 3), so only the single-site lattice needs special handling.
func (s Shape) symmetries(n int) [][]int {
	if s.Length == 1 {
		return [][]int{{0}}
	}
	shifts := 1
	if s.PBC {
		shifts = n
	}

	coords := make([][]int, n)
	for site := range n {
		coords[site], _ = s.Coordinates(site)
	}

	table := make([][]int, 0, s.numSymmetries(n))
	for mask := range 1 << s.Dimension {
		for t := range shifts {
			shift := coords[t]
			perm := make([]int, n)
			for site, x := range coords {
				img, stride := 0, 1
				for k, xk := range x {
					if mask&(1<<k) != 0 {
						xk = s.Length - 1 - xk
					}
					img += ((xk + shift[k]) % s.Length) * stride
					stride *= s.Length
				}
				perm[site] = img
			}
			table = append(table, perm)
		}
	}
	return table
}
