package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/lattice"
	"github.com/matzehuels/latticekit/pkg/render"
)

// Engine is a Graphviz layout engine.
type Engine string

// Supported engines. Neato honours pinned positions, so it is the default.
const (
	EngineNeato Engine = "neato"
	EngineFDP   Engine = "fdp"
	EngineSFDP  Engine = "sfdp"
	EngineCirco Engine = "circo"
	EngineDot   Engine = "dot"
)

// Engines lists the accepted engines.
var Engines = []Engine{EngineNeato, EngineFDP, EngineSFDP, EngineCirco, EngineDot}

// ParseEngine validates an engine name. The empty string selects EngineNeato.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineNeato, nil
	}
	e := Engine(strings.ToLower(name))
	if !slices.Contains(Engines, e) {
		return "", errs.New(errs.ErrCodeInvalidInput, "unknown layout engine %q", name)
	}
	return e, nil
}

// Options configures diagram generation.
type Options struct {
	// ShowColors writes the edge color next to each colored edge.
	ShowColors bool

	// Spacing is the distance between neighbouring sites in inches when
	// positions are pinned. Zero means 1.
	Spacing float64

	// NoPin leaves placement entirely to the layout engine.
	NoPin bool
}

// Palette is cycled through for edge colors.
var Palette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

// ToDOT converts a lattice to an undirected Graphviz graph.
//
// Sites of one- and two-dimensional hypercubes (and an oblique projection of
// three-dimensional ones) are pinned to their coordinates, periodic chains
// sit on a circle. Boundary-wrapping edges of pinned grids are dashed.
// Everything else is left to the engine.
func ToDOT(g *lattice.Graph, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 1
	}
	var pos func(site int) (x, y float64, ok bool)
	shape, isCube := g.Shape()
	if isCube && !opts.NoPin {
		pos = positioner(shape, spacing)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.35, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	for site := range g.NumSites() {
		attrs := []string{fmt.Sprintf("label=\"%d\"", site)}
		if pos != nil {
			if x, y, ok := pos(site); ok {
				attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", x, y))
			}
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", site, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(g, e, opts)
		if pos != nil && isWrap(shape, e) {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.Lo, e.Hi)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.Lo, e.Hi, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtEdgeAttrs(g *lattice.Graph, e lattice.Edge, opts Options) []string {
	c, ok := g.Color(e)
	if !ok {
		return nil
	}
	attrs := []string{fmt.Sprintf("color=%q", Palette[c%len(Palette)])}
	if opts.ShowColors {
		attrs = append(attrs, fmt.Sprintf("label=\"%d\"", c), "fontsize=10")
	}
	return attrs
}

func positioner(s lattice.Shape, spacing float64) func(int) (float64, float64, bool) {
	if s.Dimension == 1 && s.PBC {
		r := spacing * float64(s.Length) / (2 * math.Pi)
		return func(site int) (float64, float64, bool) {
			theta := 2 * math.Pi * float64(site) / float64(s.Length)
			return r * math.Cos(theta), r * math.Sin(theta), true
		}
	}
	if s.Dimension > 3 {
		return nil
	}
	return func(site int) (float64, float64, bool) {
		c, err := s.Coordinates(site)
		if err != nil {
			return 0, 0, false
		}
		var x, y float64
		x = float64(c[0])
		if len(c) > 1 {
			y = float64(c[1])
		}
		if len(c) > 2 {
			x += 0.5 * float64(c[2])
			y += 0.35 * float64(c[2])
		}
		return x * spacing, y * spacing, true
	}
}

// isWrap reports whether e closes a periodic boundary on a pinned grid.
func isWrap(s lattice.Shape, e lattice.Edge) bool {
	if !s.PBC || s.Dimension == 1 || s.Dimension > 3 {
		return false
	}
	a, err := s.Coordinates(e.Lo)
	if err != nil {
		return false
	}
	b, err := s.Coordinates(e.Hi)
	if err != nil {
		return false
	}
	for k := range a {
		if d := a[k] - b[k]; d > 1 || d < -1 {
			return true
		}
	}
	return false
}

// RenderSVG lays out and renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	if engine == "" {
		engine = EngineNeato
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render with %s", engine)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the picture scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// Render produces the picture of g in the given format (one of
// render.Formats).
func Render(ctx context.Context, g *lattice.Graph, format string, engine Engine, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)
	if format == render.FormatDOT {
		return []byte(dot), nil
	}
	switch format {
	case render.FormatSVG, render.FormatPNG, render.FormatPDF:
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format %q (want one of %s)",
			format, strings.Join(render.Formats, ", "))
	}

	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, 2.0)
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	}
	return svg, nil
}
