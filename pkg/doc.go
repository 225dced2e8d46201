// Package pkg provides the core libraries of latticekit.
//
// # Overview
//
// latticekit builds lattice graphs, analyses them and indexes the basis
// states of many-body Hilbert spaces defined on them. The pkg directory is
// organized into three main areas:
//
//  1. Domain logic: [lattice] and [hilbert]
//  2. Descriptions and serialization: [config] and [io]
//  3. Infrastructure: [pipeline], [cache], [store], [render], [server] and
//     [observability]
//
// # Architecture
//
// The typical data flow:
//
//	TOML/YAML/JSON description or graph document
//	         ↓
//	    [config] / [io] (decode and validate)
//	         ↓
//	    [lattice] graph + [hilbert] space
//	         ↓
//	    [pipeline] (analyze, render; cached)
//	         ↓
//	    CLI output, HTTP responses, stored documents
//
// # Quick Start
//
// Build a periodic square lattice and index the zero-magnetization sector of
// spin-1/2 on it:
//
//	g, _ := lattice.Hypercube(4, 2, true)
//	fmt.Println(g.NumSites(), g.NumEdges(), g.NumSymmetries()) // 16 32 64
//
//	sp, _ := hilbert.Spin(g, 0.5, hilbert.WithTotalSz(0))
//	idx, err := hilbert.NewIndex(sp)
//	if err != nil {
//	    return err
//	}
//	conf, _ := idx.NumberToState(42)
//
// # Main Packages
//
// [lattice] - Undirected graphs of sites: hypercubes of any dimension with
// open or periodic boundaries, and custom edge lists. Edges may carry
// integer colors. Graphs know their symmetry table, bipartiteness,
// connectivity and distances.
//
// [hilbert] - Local state spaces (spin, qubit, boson, custom) with optional
// sum constraints, and the dense integer index of their product basis.
//
// [config] - Lattice and Hilbert-space descriptions read from TOML, YAML or
// JSON and validated with struct tags.
//
// [io] - The JSON graph document, the wire format shared by the CLI, the
// HTTP API and the document store.
//
// [pipeline] - Build, analyze and render stages used by both the CLI and the
// server. Analyses and pictures are cached by graph content hash.
//
// [cache] - File, redis and null caches behind one interface.
//
// [store] - Durable graph documents in memory or MongoDB.
//
// [render] - DOT, SVG, PNG and PDF pictures of lattices via Graphviz.
//
// [server] - The HTTP API.
//
// [observability] - Hook registry for build, cache and HTTP events, with a
// Prometheus implementation.
//
// [lattice]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/lattice
// [hilbert]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/hilbert
// [config]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/latticekit/pkg/observability
package pkg
