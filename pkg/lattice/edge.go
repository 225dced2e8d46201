package lattice

import (
	"cmp"
	"fmt"
	"slices"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// Edge is an undirected connection between two sites, stored canonically with
// Lo <= Hi. Two edges are equal iff their (Lo, Hi) pairs are equal.
type Edge struct {
	Lo int `json:"lo" bson:"lo"`
	Hi int `json:"hi" bson:"hi"`
}

// MakeEdge returns the canonical edge between a and b. It never fails.
func MakeEdge(a, b int) Edge {
	if a < b {
		return Edge{Lo: a, Hi: b}
	}
	return Edge{Lo: b, Hi: a}
}

// String renders the edge as "lo-hi".
func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.Lo, e.Hi) }

// Compare orders edges by (Lo, Hi). It is suitable for slices.SortFunc.
func (e Edge) Compare(o Edge) int {
	if c := cmp.Compare(e.Lo, o.Lo); c != 0 {
		return c
	}
	return cmp.Compare(e.Hi, o.Hi)
}

// ColorMap assigns a non-negative color to each edge.
type ColorMap map[Edge]int

// Edges returns the map's domain sorted by (Lo, Hi).
func (m ColorMap) Edges() []Edge {
	edges := make([]Edge, 0, len(m))
	for e := range m {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, Edge.Compare)
	return edges
}

// Clone returns a shallow copy of the map, or nil for a nil map.
func (m ColorMap) Clone() ColorMap {
	if m == nil {
		return nil
	}
	out := make(ColorMap, len(m))
	for e, c := range m {
		out[e] = c
	}
	return out
}

// BuildEdgeList canonicalizes pairs into a sorted, duplicate-free edge list.
// It sorts first and then scans adjacent entries, so a duplicate in either
// orientation is reported as ErrDuplicateEdge.
func BuildEdgeList(pairs [][2]int) ([]Edge, error) {
	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		if err := checkSites(p[0], p[1]); err != nil {
			return nil, err
		}
		edges = append(edges, MakeEdge(p[0], p[1]))
	}

	slices.SortFunc(edges, Edge.Compare)
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return nil, errs.Malformed(ErrDuplicateEdge, "edge %s listed more than once", edges[i])
		}
	}
	return edges, nil
}

// BuildColorMap canonicalizes (i, j, color) triples into a ColorMap. Inserting
// an edge that is already present fails with ErrDuplicateEdge regardless of
// whether the two colors agree.
func BuildColorMap(triples [][3]int) (ColorMap, error) {
	colors := make(ColorMap, len(triples))
	for _, t := range triples {
		if err := checkSites(t[0], t[1]); err != nil {
			return nil, err
		}
		if t[2] < 0 {
			return nil, errs.Malformed(ErrInvalidColor, "edge %d-%d has color %d", t[0], t[1], t[2])
		}
		e := MakeEdge(t[0], t[1])
		if _, exists := colors[e]; exists {
			return nil, errs.Malformed(ErrDuplicateEdge, "edge %s colored more than once", e)
		}
		colors[e] = t[2]
	}
	return colors, nil
}

func checkSites(a, b int) error {
	if a < 0 || b < 0 {
		return errs.Malformed(ErrInvalidSite, "edge %d-%d has a negative site index", a, b)
	}
	return nil
}

// =============================================================================
// Tagged edge input
// =============================================================================

// EdgeSpec is one raw edge description: either an uncolored pair built with
// Pair or a colored triple built with Colored. The zero value is the pair 0-0.
type EdgeSpec struct {
	I, J    int
	Color   int
	colored bool
}

// Pair describes an uncolored edge between i and j.
func Pair(i, j int) EdgeSpec { return EdgeSpec{I: i, J: j} }

// Colored describes an edge between i and j carrying the given color.
func Colored(i, j, color int) EdgeSpec { return EdgeSpec{I: i, J: j, Color: color, colored: true} }

// IsColored reports whether the spec was built with Colored.
func (s EdgeSpec) IsColored() bool { return s.colored }

// Canonicalize turns a tagged edge sequence into a sorted edge list and, when
// the sequence is colored, the matching ColorMap.
//
// The first element decides the interpretation of the whole sequence; a later
// element of the other shape fails with ErrMixedEdgeShapes. An empty sequence
// is treated as uncolored and yields an empty edge list and a nil map.
func Canonicalize(specs []EdgeSpec) ([]Edge, ColorMap, error) {
	if len(specs) == 0 || !specs[0].colored {
		pairs := make([][2]int, len(specs))
		for i, s := range specs {
			if s.colored {
				return nil, nil, errs.Malformed(ErrMixedEdgeShapes,
					"element %d is a colored triple in an uncolored edge list", i)
			}
			pairs[i] = [2]int{s.I, s.J}
		}
		edges, err := BuildEdgeList(pairs)
		return edges, nil, err
	}

	triples := make([][3]int, len(specs))
	for i, s := range specs {
		if !s.colored {
			return nil, nil, errs.Malformed(ErrMixedEdgeShapes,
				"element %d is an uncolored pair in a colored edge list", i)
		}
		triples[i] = [3]int{s.I, s.J, s.Color}
	}
	colors, err := BuildColorMap(triples)
	if err != nil {
		return nil, nil, err
	}
	return colors.Edges(), colors, nil
}

// SpecsFromTuples converts untyped integer tuples, as decoded from JSON, TOML
// or YAML, into tagged edge specs. The length of the first tuple commits the
// sequence to pairs (2) or colored triples (3); any tuple of a different
// length afterwards is rejected.
func SpecsFromTuples(tuples [][]int) ([]EdgeSpec, error) {
	if len(tuples) == 0 {
		return nil, nil
	}
	width := len(tuples[0])
	if width != 2 && width != 3 {
		return nil, errs.Malformed(ErrMixedEdgeShapes,
			"edge 0 has %d elements, want 2 (i, j) or 3 (i, j, color)", width)
	}

	specs := make([]EdgeSpec, len(tuples))
	for k, t := range tuples {
		if len(t) != width {
			return nil, errs.Malformed(ErrMixedEdgeShapes,
				"edge %d has %d elements, but edge 0 fixed the shape at %d", k, len(t), width)
		}
		if width == 2 {
			specs[k] = Pair(t[0], t[1])
		} else {
			specs[k] = Colored(t[0], t[1], t[2])
		}
	}
	return specs, nil
}

// Tuples is the inverse of SpecsFromTuples for a built edge list: it emits
// pairs when colors is nil and triples otherwise.
func Tuples(edges []Edge, colors ColorMap) [][]int {
	out := make([][]int, len(edges))
	for i, e := range edges {
		if colors == nil {
			out[i] = []int{e.Lo, e.Hi}
		} else {
			out[i] = []int{e.Lo, e.Hi, colors[e]}
		}
	}
	return out
}
