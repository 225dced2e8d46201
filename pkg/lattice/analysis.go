package lattice

import (
	"slices"
)

// Unreachable is the distance reported by AllDistances between sites that no
// path connects.
const Unreachable = -1

// AdjacencyList returns, for each site, its neighbours in ascending order.
// It is derived in a single pass over the edge list and cached; the returned
// slices are shared and must be treated as read-only.
func (g *Graph) AdjacencyList() [][]int {
	g.adjOnce.Do(func() {
		adj := make([][]int, g.n)
		for _, e := range g.edges {
			adj[e.Lo] = append(adj[e.Lo], e.Hi)
			if e.Hi != e.Lo {
				adj[e.Hi] = append(adj[e.Hi], e.Lo)
			}
		}
		// Edges are sorted by (Lo, Hi), so adj[v] receives its higher
		// neighbours in order but its lower ones interleaved.
		for _, nbrs := range adj {
			slices.Sort(nbrs)
		}
		g.adj = adj
	})
	return g.adj
}

// Neighbors returns the ascending neighbour list of site, or nil for a site
// outside [0, NumSites).
func (g *Graph) Neighbors(site int) []int {
	if site < 0 || site >= g.n {
		return nil
	}
	return g.AdjacencyList()[site]
}

// Degree returns the number of neighbours of site.
func (g *Graph) Degree(site int) int { return len(g.Neighbors(site)) }

// HasEdge reports whether a and b are joined by an edge, in either order.
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.edgeIndex(MakeEdge(a, b))
	return ok
}

func (g *Graph) edgeIndex(e Edge) (int, bool) {
	return slices.BinarySearchFunc(g.edges, e, Edge.Compare)
}

// IsBipartite reports whether the sites can be two-colored so that every edge
// joins sites of different colors. It runs a breadth-first two-coloring from
// each uncolored site in turn, so disconnected graphs and isolated sites are
// handled. The declared flag of a custom graph plays no part; see
// DeclaredBipartite.
func (g *Graph) IsBipartite() bool {
	g.bipOnce.Do(func() {
		g.bip = g.twoColor()
	})
	return g.bip
}

func (g *Graph) twoColor() bool {
	const uncolored = -1

	adj := g.AdjacencyList()
	color := make([]int, g.n)
	for i := range color {
		color[i] = uncolored
	}

	queue := make([]int, 0, g.n)
	for start := range g.n {
		if color[start] != uncolored {
			continue
		}
		color[start] = 0
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj[v] {
				switch color[w] {
				case uncolored:
					color[w] = 1 - color[v]
					queue = append(queue, w)
				case color[v]:
					return false
				}
			}
		}
	}
	return true
}

// IsConnected reports whether a single traversal from site 0 reaches every
// site. The empty graph is connected.
func (g *Graph) IsConnected() bool {
	g.connOnce.Do(func() {
		if g.n == 0 {
			g.conn = true
			return
		}
		reached := 0
		for _, d := range g.bfs(0, nil) {
			if d != Unreachable {
				reached++
			}
		}
		g.conn = reached == g.n
	})
	return g.conn
}

// AllDistances returns the all-pairs shortest path lengths, computed with one
// breadth-first traversal per site. Entry [i][j] is Unreachable when no path
// joins i and j. The table is cached and shared; treat it as read-only.
func (g *Graph) AllDistances() [][]int {
	g.distOnce.Do(func() {
		dist := make([][]int, g.n)
		queue := make([]int, 0, g.n)
		for i := range g.n {
			dist[i] = g.bfs(i, queue)
		}
		g.dist = dist
	})
	return g.dist
}

// Distance returns the shortest path length between a and b, or Unreachable.
func (g *Graph) Distance(a, b int) int {
	if a < 0 || a >= g.n || b < 0 || b >= g.n {
		return Unreachable
	}
	return g.AllDistances()[a][b]
}

// bfs returns distances from src. queue is optional scratch space.
func (g *Graph) bfs(src int, queue []int) []int {
	adj := g.AdjacencyList()
	dist := make([]int, g.n)
	for i := range dist {
		dist[i] = Unreachable
	}
	dist[src] = 0
	queue = append(queue[:0], src)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if dist[w] == Unreachable {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// Analysis is a serializable snapshot of a graph's derived properties.
type Analysis struct {
	Kind          string  `json:"kind" bson:"kind"`
	NumSites      int     `json:"n_sites" bson:"n_sites"`
	NumEdges      int     `json:"n_edges" bson:"n_edges"`
	Colored       bool    `json:"colored" bson:"colored"`
	Bipartite     bool    `json:"bipartite" bson:"bipartite"`
	Connected     bool    `json:"connected" bson:"connected"`
	Diameter      int     `json:"diameter" bson:"diameter"`
	NumSymmetries int     `json:"n_symmetries" bson:"n_symmetries"`
	Adjacency     [][]int `json:"adjacency,omitempty" bson:"adjacency,omitempty"`
	Distances     [][]int `json:"distances,omitempty" bson:"distances,omitempty"`
}

// Analyze computes every derived property of g. The adjacency list and the
// distance table are included only when full is set, since the latter grows
// quadratically with the site count.
func (g *Graph) Analyze(full bool) Analysis {
	a := Analysis{
		Kind:          g.kind.String(),
		NumSites:      g.n,
		NumEdges:      len(g.edges),
		Colored:       g.IsColored(),
		Bipartite:     g.IsBipartite(),
		Connected:     g.IsConnected(),
		Diameter:      g.Diameter(),
		NumSymmetries: g.NumSymmetries(),
	}
	if full {
		a.Adjacency = g.AdjacencyList()
		a.Distances = g.AllDistances()
	}
	return a
}

// Diameter returns the largest finite distance between two sites, or 0 for a
// graph without edges.
func (g *Graph) Diameter() int {
	d := 0
	for _, row := range g.AllDistances() {
		for _, x := range row {
			d = max(d, x)
		}
	}
	return d
}
