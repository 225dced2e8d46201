package lattice

import "errors"

// Sentinel causes attached to MALFORMED_INPUT errors. Every error returned by
// this package carries the code errors.ErrCodeMalformedInput and wraps exactly
// one of these, so callers may branch on either.
var (
	// ErrDuplicateEdge is returned when an edge appears twice in an input
	// sequence, in either orientation. For colored input the color values are
	// irrelevant: the same (lo, hi) pair twice is a duplicate.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrMixedEdgeShapes is returned when an edge sequence mixes uncolored
	// pairs with colored triples. The first element fixes the shape.
	ErrMixedEdgeShapes = errors.New("mixed edge shapes")

	// ErrInvalidSite is returned for negative site indices, site indices at or
	// beyond the declared site count, or malformed coordinate vectors.
	ErrInvalidSite = errors.New("invalid site index")

	// ErrInvalidColor is returned for negative edge colors.
	ErrInvalidColor = errors.New("invalid edge color")

	// ErrColorCoverage is returned when a color map supplied for a generated
	// lattice does not cover exactly its generated edge set.
	ErrColorCoverage = errors.New("color map does not match edge set")

	// ErrEdgeMismatch is returned when an uncolored edge list given alongside
	// a hypercube shape differs from the generated edge set.
	ErrEdgeMismatch = errors.New("edge list does not match lattice")

	// ErrLatticeTooShort is returned for a side length below the minimum:
	// 1 for open boundaries, 3 for periodic ones.
	ErrLatticeTooShort = errors.New("lattice side length too short")

	// ErrInvalidDimension is returned for a hypercube dimension below 1.
	ErrInvalidDimension = errors.New("invalid lattice dimension")

	// ErrTooManySites is returned when a graph would exceed MaxSites.
	ErrTooManySites = errors.New("too many sites")

	// ErrNotAutomorphism is returned by CheckAutomorphism for a permutation
	// that does not map the edge set onto itself.
	ErrNotAutomorphism = errors.New("not an automorphism")
)
