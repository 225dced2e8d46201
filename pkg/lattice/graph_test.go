package lattice_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/latticekit/pkg/lattice"
)

func TestHypercube_PeriodicRing(t *testing.T) {
	g, err := lattice.Hypercube(4, 1, true)
	require.NoError(t, err)

	assert.Equal(t, lattice.KindHypercube, g.Kind())
	assert.Equal(t, 4, g.NumSites())
	assert.Equal(t, []lattice.Edge{{0, 1}, {0, 3}, {1, 2}, {2, 3}}, g.Edges())
	assert.True(t, g.IsBipartite())
	assert.True(t, g.IsConnected())
	assert.False(t, g.IsColored())

	shape, ok := g.Shape()
	require.True(t, ok)
	assert.Equal(t, lattice.Shape{Length: 4, Dimension: 1, PBC: true}, shape)
}

func TestHypercube_OddRingNotBipartite(t *testing.T) {
	g, err := lattice.Hypercube(5, 1, true)
	require.NoError(t, err)
	assert.False(t, g.IsBipartite())
	assert.True(t, g.IsConnected())
}

func TestHypercube_PathDistances(t *testing.T) {
	g, err := lattice.Hypercube(4, 1, false)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumEdges())
	dist := g.AllDistances()
	assert.Equal(t, 3, dist[0][3])
	assert.Equal(t, 3, g.Distance(3, 0))
	assert.Equal(t, 0, g.Distance(2, 2))
	assert.Equal(t, 3, g.Diameter())
	assert.Equal(t, lattice.Unreachable, g.Distance(0, 4))
}

func TestHypercube_TwoDimensional(t *testing.T) {
	tests := []struct {
		length    int
		pbc       bool
		edges     int
		bipartite bool
		diameter  int
	}{
		{length: 2, pbc: false, edges: 4, bipartite: true, diameter: 2},
		{length: 3, pbc: false, edges: 12, bipartite: true, diameter: 4},
		{length: 3, pbc: true, edges: 18, bipartite: false, diameter: 2},
		{length: 4, pbc: true, edges: 32, bipartite: true, diameter: 4},
	}
	for _, tt := range tests {
		g, err := lattice.Hypercube(tt.length, 2, tt.pbc)
		require.NoError(t, err)
		assert.Equal(t, tt.length*tt.length, g.NumSites())
		assert.Equal(t, tt.edges, g.NumEdges(), "L=%d pbc=%v", tt.length, tt.pbc)
		assert.Equal(t, tt.bipartite, g.IsBipartite(), "L=%d pbc=%v", tt.length, tt.pbc)
		assert.Equal(t, tt.diameter, g.Diameter(), "L=%d pbc=%v", tt.length, tt.pbc)
		assert.True(t, g.IsConnected())
	}
}

func TestHypercube_EveryPeriodicSiteHasDegree2D(t *testing.T) {
	g, err := lattice.Hypercube(3, 3, true)
	require.NoError(t, err)
	for site := range g.NumSites() {
		assert.Equal(t, 6, g.Degree(site), "site %d", site)
	}
}

func TestHypercube_SingleSite(t *testing.T) {
	g, err := lattice.Hypercube(1, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumSites())
	assert.Zero(t, g.NumEdges())
	assert.True(t, g.IsConnected())
	assert.True(t, g.IsBipartite())
	assert.Equal(t, [][]int{{0}}, g.SymmetryTable())
}

func TestHypercube_SingleSiteHugeDimension(t *testing.T) {
	g, err := lattice.Hypercube(1, 1<<40, false)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumSites())
	assert.Zero(t, g.NumEdges())
	assert.Equal(t, 1, g.NumSymmetries())
	assert.Equal(t, [][]int{{0}}, g.SymmetryTable())
}

func TestHypercubeFromSpecs(t *testing.T) {
	shape := lattice.Shape{Length: 3, Dimension: 1, PBC: true}

	g, err := lattice.HypercubeFromSpecs(shape, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumEdges())
	assert.False(t, g.IsColored())

	g, err = lattice.HypercubeFromSpecs(shape, []lattice.EdgeSpec{
		lattice.Pair(2, 0), lattice.Pair(0, 1), lattice.Pair(1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumEdges())

	g, err = lattice.HypercubeFromSpecs(shape, []lattice.EdgeSpec{
		lattice.Colored(0, 1, 0), lattice.Colored(1, 2, 1), lattice.Colored(0, 2, 0),
	})
	require.NoError(t, err)
	assert.True(t, g.IsColored())
}

func TestHypercubeFromSpecs_Mismatch(t *testing.T) {
	shape := lattice.Shape{Length: 3, Dimension: 1, PBC: false}
	tests := []struct {
		name  string
		specs []lattice.EdgeSpec
		want  error
	}{
		{"missing edge", []lattice.EdgeSpec{lattice.Pair(0, 1)}, lattice.ErrEdgeMismatch},
		{"foreign edge", []lattice.EdgeSpec{lattice.Pair(0, 1), lattice.Pair(1, 2), lattice.Pair(0, 2)}, lattice.ErrEdgeMismatch},
		{"mixed shapes", []lattice.EdgeSpec{lattice.Pair(0, 1), lattice.Colored(1, 2, 0)}, lattice.ErrMixedEdgeShapes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lattice.HypercubeFromSpecs(shape, tt.specs)
			requireMalformed(t, err, tt.want)
		})
	}
}

func TestHypercube_Errors(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		dim      int
		pbc      bool
		sentinel error
	}{
		{"periodic length 2", 2, 1, true, lattice.ErrLatticeTooShort},
		{"periodic length 1", 1, 2, true, lattice.ErrLatticeTooShort},
		{"zero length", 0, 1, false, lattice.ErrLatticeTooShort},
		{"zero dimension", 3, 0, false, lattice.ErrInvalidDimension},
		{"too many sites", 2, 25, false, lattice.ErrTooManySites},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := lattice.Hypercube(tt.length, tt.dim, tt.pbc)
			requireMalformed(t, err, tt.sentinel)
			assert.Nil(t, g)
		})
	}
}

func TestShapeCoordinates(t *testing.T) {
	s := lattice.Shape{Length: 3, Dimension: 2}
	coords, err := s.Coordinates(5)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, coords)

	for site := range s.NumSites() {
		c, err := s.Coordinates(site)
		require.NoError(t, err)
		back, err := s.Site(c)
		require.NoError(t, err)
		assert.Equal(t, site, back)
	}

	_, err = s.Coordinates(9)
	requireMalformed(t, err, lattice.ErrInvalidSite)
	_, err = s.Site([]int{0, 3})
	requireMalformed(t, err, lattice.ErrInvalidSite)
	_, err = s.Site([]int{0})
	requireMalformed(t, err, lattice.ErrInvalidSite)
}

func ringColors() lattice.ColorMap {
	return lattice.ColorMap{{0, 1}: 0, {1, 2}: 1, {2, 3}: 0, {0, 3}: 1}
}

func TestColoredHypercube(t *testing.T) {
	g, err := lattice.ColoredHypercube(4, 1, true, ringColors())
	require.NoError(t, err)
	assert.True(t, g.IsColored())
	c, ok := g.Color(lattice.MakeEdge(3, 0))
	assert.True(t, ok)
	assert.Equal(t, 1, c)

	// The graph keeps its own copy.
	colors := g.Colors()
	colors[lattice.MakeEdge(0, 1)] = 7
	c, _ = g.Color(lattice.MakeEdge(0, 1))
	assert.Equal(t, 0, c)
}

func TestColoredHypercube_Coverage(t *testing.T) {
	missing := ringColors()
	delete(missing, lattice.MakeEdge(0, 3))

	extra := ringColors()
	extra[lattice.MakeEdge(0, 2)] = 0

	// Same size as the edge set, but one edge swapped for a non-edge.
	swapped := ringColors()
	delete(swapped, lattice.MakeEdge(1, 2))
	swapped[lattice.MakeEdge(1, 3)] = 1

	negative := ringColors()
	negative[lattice.MakeEdge(2, 3)] = -1

	tests := []struct {
		name     string
		colors   lattice.ColorMap
		sentinel error
	}{
		{"missing edge", missing, lattice.ErrColorCoverage},
		{"extra edge", extra, lattice.ErrColorCoverage},
		{"swapped edge", swapped, lattice.ErrColorCoverage},
		{"negative color", negative, lattice.ErrInvalidColor},
		{"nil map", nil, lattice.ErrColorCoverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lattice.ColoredHypercube(4, 1, true, tt.colors)
			requireMalformed(t, err, tt.sentinel)
		})
	}
}

func TestCustom_InferredSites(t *testing.T) {
	g, err := lattice.Custom([]lattice.EdgeSpec{lattice.Pair(0, 1), lattice.Pair(3, 2)}, lattice.CustomOptions{})
	require.NoError(t, err)

	assert.Equal(t, lattice.KindCustom, g.Kind())
	assert.Equal(t, 4, g.NumSites())
	assert.False(t, g.IsConnected())
	assert.True(t, g.IsBipartite())
	assert.Equal(t, lattice.Unreachable, g.Distance(0, 2))
	assert.Equal(t, 1, g.Diameter())
	_, ok := g.Shape()
	assert.False(t, ok)
}

func TestCustom_DeclaredSites(t *testing.T) {
	g, err := lattice.Custom([]lattice.EdgeSpec{lattice.Pair(0, 1)}, lattice.CustomOptions{NumSites: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumSites())
	assert.Empty(t, g.Neighbors(2))
	assert.Zero(t, g.Degree(2))
	assert.Equal(t, 1, g.Degree(0))
	assert.False(t, g.IsConnected())

	_, err = lattice.Custom([]lattice.EdgeSpec{lattice.Pair(0, 3)}, lattice.CustomOptions{NumSites: 3})
	requireMalformed(t, err, lattice.ErrInvalidSite)

	_, err = lattice.Custom(nil, lattice.CustomOptions{NumSites: -1})
	requireMalformed(t, err, lattice.ErrInvalidSite)

	_, err = lattice.Custom(nil, lattice.CustomOptions{NumSites: lattice.MaxSites + 1})
	requireMalformed(t, err, lattice.ErrTooManySites)

	_, err = lattice.Custom([]lattice.EdgeSpec{lattice.Pair(0, 1 << 40)}, lattice.CustomOptions{})
	requireMalformed(t, err, lattice.ErrTooManySites)
}

func TestCustom_EmptyGraph(t *testing.T) {
	g, err := lattice.Custom(nil, lattice.CustomOptions{})
	require.NoError(t, err)
	assert.Zero(t, g.NumSites())
	assert.True(t, g.IsConnected())
	assert.True(t, g.IsBipartite())
	assert.Empty(t, g.AllDistances())
	assert.Empty(t, g.SymmetryTable())
}

func TestCustom_DeclaredPropertiesAreTrusted(t *testing.T) {
	declared := false
	autos := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}}
	g, err := lattice.Custom(
		[]lattice.EdgeSpec{lattice.Pair(0, 1), lattice.Pair(1, 2)},
		lattice.CustomOptions{Automorphisms: autos, Bipartite: &declared},
	)
	require.NoError(t, err)

	// The last entry is not an automorphism of the path, but it is kept.
	assert.Equal(t, autos, g.SymmetryTable())
	assert.Equal(t, 3, g.NumSymmetries())

	value, ok := g.DeclaredBipartite()
	assert.True(t, ok)
	assert.False(t, value)
	assert.True(t, g.IsBipartite(), "computed from the edges")

	// Mutating the caller's slices does not reach the graph.
	autos[0][0] = 9
	declared = true
	assert.Equal(t, 0, g.SymmetryTable()[0][0])
	value, _ = g.DeclaredBipartite()
	assert.False(t, value)
}

func TestCustom_Colored(t *testing.T) {
	g, err := lattice.Custom([]lattice.EdgeSpec{
		lattice.Colored(0, 1, 2), lattice.Colored(2, 1, 5),
	}, lattice.CustomOptions{})
	require.NoError(t, err)
	assert.True(t, g.IsColored())
	assert.Equal(t, lattice.ColorMap{{0, 1}: 2, {1, 2}: 5}, g.Colors())

	_, err = lattice.Custom([]lattice.EdgeSpec{lattice.Pair(0, 1), lattice.Pair(1, 0)}, lattice.CustomOptions{})
	requireMalformed(t, err, lattice.ErrDuplicateEdge)
}

func TestAdjacencyList(t *testing.T) {
	g, err := lattice.Custom([]lattice.EdgeSpec{
		lattice.Pair(2, 0), lattice.Pair(1, 2), lattice.Pair(3, 2), lattice.Pair(0, 1),
	}, lattice.CustomOptions{})
	require.NoError(t, err)

	want := [][]int{{1, 2}, {0, 2}, {0, 1, 3}, {2}}
	assert.Equal(t, want, g.AdjacencyList())
	assert.True(t, g.HasEdge(2, 3))
	assert.True(t, g.HasEdge(3, 2))
	assert.False(t, g.HasEdge(0, 3))
	assert.Nil(t, g.Neighbors(-1))
	assert.False(t, g.IsBipartite(), "triangle 0-1-2")
}

func TestAnalyze(t *testing.T) {
	g, err := lattice.Hypercube(4, 1, false)
	require.NoError(t, err)

	a := g.Analyze(false)
	assert.Equal(t, lattice.Analysis{
		Kind:          "hypercube",
		NumSites:      4,
		NumEdges:      3,
		Bipartite:     true,
		Connected:     true,
		Diameter:      3,
		NumSymmetries: 2,
	}, a)

	full := g.Analyze(true)
	assert.Equal(t, g.AdjacencyList(), full.Adjacency)
	assert.Equal(t, g.AllDistances(), full.Distances)
}

func TestConcurrentReaders(t *testing.T) {
	g, err := lattice.Hypercube(6, 2, true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.AllDistances()[0][21] + len(g.SymmetryTable())
			_ = g.IsBipartite()
			_ = g.IsConnected()
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}
