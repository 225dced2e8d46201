// Package nodelink draws lattices as node-link diagrams with Graphviz.
//
// [ToDOT] emits an undirected DOT graph: one circle per site labelled with
// its index, one line per edge, colored from [Palette] when the lattice
// carries edge colors. Hypercube sites are pinned to their coordinates for
// dimensions up to three, so the picture keeps the grid shape:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{ShowColors: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// [Render] is the one-call form used by the pipeline; it also covers DOT
// passthrough and PNG/PDF via rsvg-convert.
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// SVG rendering.
package nodelink
