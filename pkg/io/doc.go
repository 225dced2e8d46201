// Package io reads and writes lattice graphs as JSON.
//
// # JSON Format
//
// A custom graph lists its edges as [i, j] pairs or [i, j, color] triples,
// together with its declared properties:
//
//	{
//	  "n_sites": 4,
//	  "edges": [[0, 1], [1, 2], [2, 3]],
//	  "automorphisms": [[0, 1, 2, 3], [3, 2, 1, 0]],
//	  "bipartite": true
//	}
//
// n_sites is optional; when omitted it is inferred from the edges. The first
// edge fixes whether the list holds pairs or triples.
//
// A generated lattice is described by its shape instead:
//
//	{
//	  "hypercube": {"length": 4, "dimension": 2, "pbc": true}
//	}
//
// On export the edges of a hypercube are written too, as a convenience for
// other tools. On import, colored triples become the lattice's color map and
// must cover every edge; plain pairs must match the generated edges exactly.
//
// # Import and Export
//
// [ReadJSON] and [WriteJSON] work on any reader or writer; [ImportJSON] and
// [ExportJSON] wrap them for files. [FromGraph] and [Document.Graph] convert
// between a *lattice.Graph and the wire form, which is also what the store
// persists.
package io
